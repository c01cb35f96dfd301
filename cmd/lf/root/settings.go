package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silviuClosca/languageForge/internal/engine"
	"github.com/silviuClosca/languageForge/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Application settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			cfg := svc.LoadSettings()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconInfo, "Settings"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("theme", cfg.Theme))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("font-size", cfg.FontSize))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("open-on-startup", cfg.OpenOnStartup))
			return nil
		},
	}

	cmd.AddCommand(newSettingsSetCmd())
	return cmd
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long:  "Keys: theme (" + strings.Join(engine.Themes, "|") + "), font-size (" + strings.Join(engine.FontSizes, "|") + "), open-on-startup (on|off)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("key and value are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			cfg := svc.LoadSettings()

			key, value := args[0], args[1]
			switch key {
			case "theme":
				if !containsString(engine.Themes, value) {
					return fmt.Errorf("unknown theme %q (one of %s)", value, strings.Join(engine.Themes, ", "))
				}
				cfg.Theme = value
			case "font-size":
				if !containsString(engine.FontSizes, value) {
					return fmt.Errorf("unknown font size %q (one of %s)", value, strings.Join(engine.FontSizes, ", "))
				}
				cfg.FontSize = value
			case "open-on-startup":
				switch value {
				case "on":
					cfg.OpenOnStartup = true
				case "off":
					cfg.OpenOnStartup = false
				default:
					return errors.New("open-on-startup must be on or off")
				}
			default:
				return fmt.Errorf("unknown setting %q (theme, font-size, open-on-startup)", key)
			}

			svc.SaveSettings(cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", ui.Good.Render(ui.IconDone), key, value)
			return nil
		},
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
