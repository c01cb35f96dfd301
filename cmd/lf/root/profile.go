package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/storage"
	"github.com/silviuClosca/languageForge/internal/ui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage language profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileList(cmd)
		},
	}

	cmd.AddCommand(
		newProfileListCmd(),
		newProfileCreateCmd(),
		newProfileSwitchCmd(),
		newProfileRenameCmd(),
		newProfileDeleteCmd(),
		newProfileCleanupCmd(),
	)
	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileList(cmd)
		},
	}
}

func runProfileList(cmd *cobra.Command) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	reg := svc.Registry()
	active := reg.ActiveID()

	fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconProfile, "Profiles"))
	for _, p := range reg.List() {
		marker := "  "
		if p.ID == active {
			marker = ui.Good.Render("* ")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n", marker, p.DisplayName, ui.Muted.Render("("+p.ID+")"))
	}
	return nil
}

func newProfileCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("profile name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			res := svc.Registry().Create(args[0])
			if !res.OK {
				return errors.New(res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" "+res.Message))
			return nil
		},
	}
}

func newProfileSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "switch <id>",
		Aliases: []string{"use"},
		Short:   "Switch the active profile",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("profile id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			reg := svc.Registry()

			id := args[0]
			if !reg.Exists(id) {
				id = storage.SanitizeName(id)
			}
			if !reg.SetActive(id) {
				return fmt.Errorf("profile %q does not exist", args[0])
			}
			name, _ := reg.DisplayName(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to %s\n", ui.Good.Render(ui.IconDone), name)
			return nil
		},
	}
}

func newProfileRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new name>",
		Short: "Rename a profile",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("profile id and new name are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			res := svc.Registry().Rename(args[0], args[1])
			if !res.OK {
				return errors.New(res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" "+res.Message))
			return nil
		},
	}
}

func newProfileCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove profile directories no registered profile owns",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			n := svc.Registry().CleanupOrphans()
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clean up.")
				return nil
			}
			noun := "directories"
			if n == 1 {
				noun = "directory"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %d orphaned %s.\n", ui.Warn.Render(ui.IconWarn), n, noun)
			return nil
		},
	}
}

func newProfileDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile and its data",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("profile id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			res := svc.Registry().Delete(args[0])
			if !res.OK {
				return errors.New(res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(res.Message))
			return nil
		},
	}
}
