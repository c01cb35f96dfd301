package root

import (
	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			return tui.RunDashboard(svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
