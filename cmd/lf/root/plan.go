package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/storage"
	"github.com/silviuClosca/languageForge/internal/ui"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Daily study plan (4 slots)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			p := svc.LoadDailyPlan()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconNote, "Daily plan"))
			for i, task := range p.Tasks {
				if strings.TrimSpace(task) == "" {
					fmt.Fprintf(cmd.OutOrStdout(), " %d. %s\n", i+1, ui.Muted.Render("(empty)"))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), " %d. %s\n", i+1, task)
			}
			if p.ShowOnStartup {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Shown on startup."))
			}
			return nil
		},
	}

	cmd.AddCommand(newPlanSetCmd(), newPlanStartupCmd())
	return cmd
}

func newPlanSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <slot> <text>",
		Short: "Set one plan slot",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("slot and text are required")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > storage.PlanSlots {
				return fmt.Errorf("slot must be 1-%d", storage.PlanSlots)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			slot, _ := strconv.Atoi(args[0])

			p := svc.LoadDailyPlan()
			p.Tasks[slot-1] = args[1]
			svc.SaveDailyPlan(p)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Plan slot %d saved.\n", ui.Good.Render(ui.IconDone), slot)
			return nil
		},
	}
}

func newPlanStartupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "startup <on|off>",
		Short: "Show the plan on startup",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
				return errors.New("argument must be on or off")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			p := svc.LoadDailyPlan()
			p.ShowOnStartup = args[0] == "on"
			svc.SaveDailyPlan(p)
			fmt.Fprintf(cmd.OutOrStdout(), "Startup display %s.\n", args[0])
			return nil
		},
	}
}
