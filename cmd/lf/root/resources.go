package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/engine"
	"github.com/silviuClosca/languageForge/internal/storage"
	"github.com/silviuClosca/languageForge/internal/ui"
)

func newResourcesCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"res"},
		Short:   "Study resource library",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			items := engine.FilterResources(svc.Resources(), filter)
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no resources)"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBook, "Resources"))
			for _, item := range items {
				line := fmt.Sprintf(" %s %s", ui.ResourceIcon(item.Type), item.Name)
				if len(item.Tags) > 0 {
					line += " " + ui.Muted.Render("#"+strings.Join(item.Tags, " #"))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				if item.Link != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", ui.Muted.Render(item.Link))
				}
				if item.DeckName != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", ui.Muted.Render("deck: "+item.DeckName))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", ui.Dim.Render("id: "+item.ID))
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&filter, "filter", "f", "", `Filter query (free text, or "tag:x")`)

	cmd.AddCommand(newResourcesAddCmd(), newResourcesEditCmd(), newResourcesRemoveCmd())
	return cmd
}

func newResourcesAddCmd() *cobra.Command {
	var resourceType, link, notes, deck, tags string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a resource",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			item := svc.AddResource(storage.ResourceItem{
				Type:     resourceType,
				Name:     args[0],
				Link:     link,
				Notes:    notes,
				DeckName: deck,
				Tags:     engine.ParseTags(tags),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s added %s\n",
				ui.Good.Render(ui.IconDone), ui.ResourceIcon(item.Type), item.Name, ui.Dim.Render("(id: "+item.ID+")"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&resourceType, "type", "t", "Book", "Type ("+strings.Join(engine.WellKnownResourceTypes, "|")+" or free text)")
	cmd.Flags().StringVarP(&link, "link", "l", "", "URL")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")
	cmd.Flags().StringVar(&deck, "deck", "", "Linked Anki deck name")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	return cmd
}

func newResourcesEditCmd() *cobra.Command {
	var name, resourceType, link, notes, deck, tags string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a resource's fields",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("resource id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			var item *storage.ResourceItem
			items := svc.Resources()
			for i := range items {
				if items[i].ID == args[0] {
					item = &items[i]
					break
				}
			}
			if item == nil {
				return fmt.Errorf("no resource with id %q", args[0])
			}

			if cmd.Flags().Changed("name") {
				item.Name = name
			}
			if cmd.Flags().Changed("type") {
				item.Type = resourceType
			}
			if cmd.Flags().Changed("link") {
				item.Link = link
			}
			if cmd.Flags().Changed("notes") {
				item.Notes = notes
			}
			if cmd.Flags().Changed("deck") {
				item.DeckName = deck
			}
			if cmd.Flags().Changed("tags") {
				item.Tags = engine.ParseTags(tags)
			}
			if !svc.UpdateResource(*item) {
				return fmt.Errorf("no resource with id %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s updated.\n", ui.Good.Render(ui.IconDone), item.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&resourceType, "type", "t", "", "New type")
	cmd.Flags().StringVarP(&link, "link", "l", "", "New URL")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "New notes")
	cmd.Flags().StringVar(&deck, "deck", "", "New Anki deck name")
	cmd.Flags().StringVar(&tags, "tags", "", "New comma-separated tags")
	return cmd
}

func newResourcesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a resource",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("resource id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			if !svc.RemoveResource(args[0]) {
				return fmt.Errorf("no resource with id %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Resource removed."))
			return nil
		},
	}
}
