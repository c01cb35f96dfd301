package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/engine"
	"github.com/silviuClosca/languageForge/internal/ui"
)

func newTrackCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "track [skill]",
		Short: "Daily practice tracker",
		Long:  "With a skill argument, toggles that skill for the day. Without arguments, shows the day.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one skill argument")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			d, err := engine.ParseDate(date)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				skill, err := engine.ParseSkill(args[0])
				if err != nil {
					return err
				}
				if svc.ToggleSkill(d, skill) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s marked done.\n", ui.Good.Render(ui.IconDone), d, skill)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s unmarked.\n", d, skill)
				}
			}
			return runTrackDay(cmd, svc, d)
		},
	}
	cmd.PersistentFlags().StringVarP(&date, "date", "d", "", "Date (YYYY-MM-DD, default today)")

	cmd.AddCommand(newTrackMonthCmd(), newTrackWeekCmd(&date))
	return cmd
}

func runTrackDay(cmd *cobra.Command, svc *engine.Service, date string) error {
	a := svc.Activity()
	fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCalendar, date))
	for _, skill := range engine.Skills {
		fmt.Fprintf(cmd.OutOrStdout(), " %s %s %s\n", ui.Check(a.Done(date, string(skill))), ui.SkillIcon(string(skill)), skill)
	}
	return nil
}

func newTrackMonthCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Month statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			m, err := engine.ParseMonth(month)
			if err != nil {
				return err
			}
			stats := svc.MonthActivityStats(m)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCalendar, "Practice in "+m))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Active days", fmt.Sprintf("%d of %d", stats.ActiveDays, stats.DaysInMonth)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Longest streak", fmt.Sprintf("%d %s", stats.LongestStreak, ui.IconStreak)))
			for _, skill := range engine.Skills {
				fmt.Fprintf(cmd.OutOrStdout(), " %s %-10s %2d days (%s)\n",
					ui.SkillIcon(string(skill)), skill, stats.SkillCounts[skill], ui.PercentText(stats.SkillPercent[skill]))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default current)")
	return cmd
}

func newTrackWeekCmd(date *string) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Week consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			d, err := engine.ParseDate(*date)
			if err != nil {
				return err
			}
			stats := svc.WeekConsistency(d)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCalendar, "Week of "+stats.Start))
			fmt.Fprintf(cmd.OutOrStdout(), "%s active days of 7 (%s)\n", ui.Good.Render(fmt.Sprintf("%d", stats.ActiveDays)), ui.PercentText(stats.Percent))
			return nil
		},
	}
}
