package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/engine"
	"github.com/silviuClosca/languageForge/internal/storage"
	"github.com/silviuClosca/languageForge/internal/ui"
)

func newGoalsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Monthly goals (3 per month)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoalsShow(cmd, month)
		},
	}
	cmd.PersistentFlags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default current)")

	cmd.AddCommand(
		newGoalsSetCmd(&month),
		newGoalsCheckCmd(&month),
		newGoalsCategoryCmd(&month),
		newGoalsClearCmd(&month),
		newGoalsReflectCmd(&month),
		newGoalsSubtaskCmd(&month),
		newGoalsNotesCmd(&month),
		newGoalsArchiveCmd(&month),
		newGoalsAllCmd(),
	)
	return cmd
}

func runGoalsShow(cmd *cobra.Command, month string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	m, err := engine.ParseMonth(month)
	if err != nil {
		return err
	}
	g := svc.LoadGoalsForMonth(m)

	title := ui.Heading(ui.IconGoal, "Goals for "+m)
	if g.Archived {
		title += " " + ui.BadgeArchived
	}
	fmt.Fprintln(cmd.OutOrStdout(), title)

	for i := 0; i < storage.GoalSlots; i++ {
		text := g.Goals[i]
		if strings.TrimSpace(text) == "" {
			fmt.Fprintf(cmd.OutOrStdout(), " %d. %s %s\n", i+1, ui.Check(false), ui.Muted.Render("(empty)"))
			continue
		}
		line := fmt.Sprintf(" %d. %s %s", i+1, ui.Check(g.Completed[i]), text)
		if g.Categories[i] != "" && g.Categories[i] != engine.DefaultCategory {
			line += " " + ui.Muted.Render("["+g.Categories[i]+"]")
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
		for j, st := range g.Subtasks[i] {
			done := j < len(g.SubtasksDone[i]) && g.SubtasksDone[i][j]
			fmt.Fprintf(cmd.OutOrStdout(), "      %s %s\n", ui.Check(done), st)
		}
		if g.Reflections[i] != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", ui.Muted.Render("reflection: "+g.Reflections[i]))
		}
	}
	if strings.TrimSpace(g.Notes) != "" {
		fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Notes", g.Notes))
	}
	return nil
}

func newGoalsSetCmd(month *string) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "set <slot> <text>",
		Short: "Set one goal's text",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("slot and text are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}
			if category != "" && !validCategory(category) {
				return fmt.Errorf("unknown category %q (one of %s)", category, strings.Join(engine.GoalCategories, ", "))
			}

			g := svc.LoadGoalsForMonth(m)
			g.Goals[slot] = args[1]
			if category != "" {
				g.Categories[slot] = category
			}
			if !svc.SaveGoalsForMonth(g, "cli") {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Nothing to save."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Goal %d for %s saved.\n", ui.Good.Render(ui.IconDone), slot+1, m)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Goal category ("+strings.Join(engine.GoalCategories, "|")+")")
	return cmd
}

func newGoalsCheckCmd(month *string) *cobra.Command {
	return &cobra.Command{
		Use:     "check <slot>",
		Aliases: []string{"done"},
		Short:   "Toggle a goal's completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("slot is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}

			g := svc.LoadGoalsForMonth(m)
			g.Completed[slot] = !g.Completed[slot]
			svc.SaveGoalsForMonth(g, "cli")
			if g.Completed[slot] {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Goal %d completed.\n", ui.Good.Render(ui.IconDone), slot+1)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal %d reopened.\n", slot+1)
			}
			return nil
		},
	}
}

func newGoalsCategoryCmd(month *string) *cobra.Command {
	return &cobra.Command{
		Use:   "category <slot> <category>",
		Short: "Set a goal's category",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("slot and category are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}
			if !validCategory(args[1]) {
				return fmt.Errorf("unknown category %q (one of %s)", args[1], strings.Join(engine.GoalCategories, ", "))
			}

			g := svc.LoadGoalsForMonth(m)
			g.Categories[slot] = args[1]
			svc.SaveGoalsForMonth(g, "cli")
			fmt.Fprintf(cmd.OutOrStdout(), "%s Goal %d is now %s.\n", ui.Good.Render(ui.IconDone), slot+1, args[1])
			return nil
		},
	}
}

func newGoalsClearCmd(month *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <slot>",
		Short: "Reset one goal slot entirely",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("slot is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}

			svc.ClearGoalSlot(m, slot)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Goal %d for %s cleared.\n", ui.Warn.Render(ui.IconWarn), slot+1, m)
			return nil
		},
	}
}

func newGoalsReflectCmd(month *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reflect <slot> <text>",
		Short: "Record a reflection on a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("slot and text are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}

			g := svc.LoadGoalsForMonth(m)
			g.Reflections[slot] = args[1]
			svc.SaveGoalsForMonth(g, "cli")
			fmt.Fprintf(cmd.OutOrStdout(), "%s Reflection for goal %d saved.\n", ui.Good.Render(ui.IconNote), slot+1)
			return nil
		},
	}
}

func newGoalsSubtaskCmd(month *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage a goal's subtasks",
	}

	add := &cobra.Command{
		Use:   "add <slot> <text>",
		Short: "Add a subtask",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("slot and text are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}

			g := svc.LoadGoalsForMonth(m)
			g.Subtasks[slot] = append(g.Subtasks[slot], args[1])
			g.SubtasksDone[slot] = append(g.SubtasksDone[slot], false)
			svc.SaveGoalsForMonth(g, "cli")
			fmt.Fprintf(cmd.OutOrStdout(), "%s Subtask added to goal %d.\n", ui.Good.Render(ui.IconDone), slot+1)
			return nil
		},
	}

	check := &cobra.Command{
		Use:   "check <slot> <n>",
		Short: "Toggle a subtask",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("slot and subtask number are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}

			g := svc.LoadGoalsForMonth(m)
			n, err := parseIndex(args[1], len(g.Subtasks[slot]))
			if err != nil {
				return err
			}
			g.SubtasksDone[slot][n] = !g.SubtasksDone[slot][n]
			svc.SaveGoalsForMonth(g, "cli")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Check(g.SubtasksDone[slot][n]), g.Subtasks[slot][n])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <slot> <n>",
		Short: "Remove a subtask",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("slot and subtask number are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}

			g := svc.LoadGoalsForMonth(m)
			n, err := parseIndex(args[1], len(g.Subtasks[slot]))
			if err != nil {
				return err
			}
			removed := g.Subtasks[slot][n]
			g.Subtasks[slot] = append(g.Subtasks[slot][:n], g.Subtasks[slot][n+1:]...)
			g.SubtasksDone[slot] = append(g.SubtasksDone[slot][:n], g.SubtasksDone[slot][n+1:]...)
			svc.SaveGoalsForMonth(g, "cli")
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed: %s\n", ui.Warn.Render(ui.IconWarn), removed)
			return nil
		},
	}

	cmd.AddCommand(add, check, remove)
	return cmd
}

func newGoalsNotesCmd(month *string) *cobra.Command {
	return &cobra.Command{
		Use:   "notes [text]",
		Short: "Show or set the month's notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				g := svc.LoadGoalsForMonth(m)
				if strings.TrimSpace(g.Notes) == "" {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no notes)"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), g.Notes)
				return nil
			}
			if err := svc.CheckGoalsEditable(m); err != nil {
				return err
			}

			g := svc.LoadGoalsForMonth(m)
			g.Notes = strings.Join(args, " ")
			if !svc.SaveGoalsForMonth(g, "cli") {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Nothing to save."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Notes for %s saved.\n", ui.Good.Render(ui.IconNote), m)
			return nil
		},
	}
}

func newGoalsArchiveCmd(month *string) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive a month (or undo with --undo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, m, err := openGoalsMonth(*month)
			if err != nil {
				return err
			}
			g := svc.LoadGoalsForMonth(m)
			g.Archived = !undo
			if !svc.SaveGoalsForMonth(g, "cli") {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Nothing stored for "+m+"."))
				return nil
			}
			if undo {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is editable again.\n", m)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s archived.\n", m)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Make the month editable again")
	return cmd
}

func newGoalsAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "all",
		Aliases: []string{"list"},
		Short:   "Summarize every stored month",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			all := svc.AllGoals()
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no goals yet)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGoal, "All months"))
			for _, g := range all {
				set, done := 0, 0
				for i := 0; i < storage.GoalSlots; i++ {
					if strings.TrimSpace(g.Goals[i]) != "" {
						set++
					}
					if g.Completed[i] {
						done++
					}
				}
				line := fmt.Sprintf(" %s  %d/%d done", g.Month, done, set)
				if g.Archived {
					line += "  " + ui.BadgeArchived
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func openGoalsMonth(monthFlag string) (*engine.Service, string, error) {
	svc, err := openService()
	if err != nil {
		return nil, "", err
	}
	m, err := engine.ParseMonth(monthFlag)
	if err != nil {
		return nil, "", err
	}
	return svc, m, nil
}

func parseSlot(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > storage.GoalSlots {
		return 0, fmt.Errorf("slot must be 1-%d", storage.GoalSlots)
	}
	return n - 1, nil
}

func parseIndex(arg string, length int) (int, error) {
	if length == 0 {
		return 0, errors.New("goal has no subtasks")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > length {
		return 0, fmt.Errorf("subtask number must be 1-%d", length)
	}
	return n - 1, nil
}

func validCategory(category string) bool {
	for _, c := range engine.GoalCategories {
		if c == category {
			return true
		}
	}
	return false
}
