package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/tui"
	"github.com/silviuClosca/languageForge/internal/ui"
)

const Version = "0.1.0"

var (
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "lf",
	Short:         "LanguageForge — personal language-learning companion",
	Long:          "LanguageForge tracks monthly goals, daily practice, skill self-ratings and study resources, one profile per language.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		if svc.ShowDashboardOnStartup() {
			return tui.RunDashboard(svc, cmd.OutOrStdout())
		}
		return cmd.Help()
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	rootCmd.AddCommand(
		newProfileCmd(),
		newGoalsCmd(),
		newRadarCmd(),
		newTrackCmd(),
		newPlanCmd(),
		newResourcesCmd(),
		newSettingsCmd(),
		newDashboardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
