package root

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/engine"
	"github.com/silviuClosca/languageForge/internal/storage"
	"github.com/silviuClosca/languageForge/internal/ui"
)

func newRadarCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "radar",
		Short: "Monthly skill self-ratings (0-5)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRadarShow(cmd, month)
		},
	}
	cmd.PersistentFlags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default current)")

	cmd.AddCommand(newRadarSetCmd(&month), newRadarHistoryCmd())
	return cmd
}

func runRadarShow(cmd *cobra.Command, month string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	m, err := engine.ParseMonth(month)
	if err != nil {
		return err
	}
	snap := svc.SnapshotForMonth(m)

	fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconRadar, "Skill radar — "+m))

	var trends map[engine.Skill]engine.Trend
	if prev, ok := svc.PreviousSnapshot(m); ok {
		trends = engine.Trends(snap, prev)
	}
	for _, skill := range engine.Skills {
		line := fmt.Sprintf(" %s %-10s %s", ui.SkillIcon(string(skill)), skill, ratingBar(engine.Rating(snap, skill)))
		if trends != nil {
			line += " " + ui.TrendMark(string(trends[skill]))
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	if score, ok := engine.BalanceIndex(snap); ok {
		fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", ui.PercentText(score)))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No ratings entered for this month."))
	}
	if days, ok := svc.DaysSinceLastSnapshot(); ok && days > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Last check-in %d days ago.", days)))
	}
	return nil
}

func newRadarSetCmd(month *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <reading> <listening> <speaking> <writing>",
		Short: "Record the month's ratings",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != len(engine.Skills) {
				return fmt.Errorf("%d ratings are required (reading listening speaking writing)", len(engine.Skills))
			}
			for _, a := range args {
				if _, err := strconv.Atoi(a); err != nil {
					return errors.New("ratings must be integers 0-5")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			m, err := engine.ParseMonth(*month)
			if err != nil {
				return err
			}

			values := make([]int, len(args))
			for i, a := range args {
				values[i], _ = strconv.Atoi(a)
			}
			svc.SaveRadarSnapshot(storage.RadarSnapshot{
				Month:     m,
				Reading:   values[0],
				Listening: values[1],
				Speaking:  values[2],
				Writing:   values[3],
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s Ratings for %s saved.\n", ui.Good.Render(ui.IconDone), m)
			return runRadarShow(cmd, m)
		},
	}
}

func newRadarHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List every month's ratings",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			snaps := svc.Snapshots()
			if len(snaps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no check-ins yet)"))
				return nil
			}

			months := make([]string, 0, len(snaps))
			for m := range snaps {
				months = append(months, m)
			}
			sort.Strings(months)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconRadar, "Check-in history"))
			for _, m := range months {
				snap := snaps[m]
				line := fmt.Sprintf(" %s  R%d L%d S%d W%d", m, snap.Reading, snap.Listening, snap.Speaking, snap.Writing)
				if score, ok := engine.BalanceIndex(snap); ok {
					line += "  " + ui.Muted.Render(fmt.Sprintf("balance %d", score))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func ratingBar(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 5 {
		v = 5
	}
	return strings.Repeat("●", v) + strings.Repeat("○", 5-v)
}
