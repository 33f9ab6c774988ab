package cmd

import (
	"github.com/jon4hz/quotevault/internal/api/models"
	"github.com/jon4hz/quotevault/internal/validation"
	"github.com/spf13/cobra"
)

var settingsFlags struct {
	Theme         string
	Accent        string
	FontSize      string
	Notifications bool
	Time          string
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change your preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current preferences",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			s, err := a.engine.Settings().GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), s)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences, unset flags keep their value",
	Example: `quotevault settings set --theme dark --accent purple
quotevault settings set --notifications=false
quotevault settings set --time 07:30`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			current, err := a.engine.Settings().GetSettings(cmd.Context())
			if err != nil {
				return err
			}

			req := models.SettingsRequest{
				ThemeMode:           string(current.ThemeMode),
				AccentColor:         string(current.AccentColor),
				FontSize:            string(current.FontSize),
				NotificationEnabled: current.NotificationEnabled,
				NotificationTime:    current.NotificationTime.String(),
			}
			flags := cmd.Flags()
			if flags.Changed("theme") {
				req.ThemeMode = settingsFlags.Theme
			}
			if flags.Changed("accent") {
				req.AccentColor = settingsFlags.Accent
			}
			if flags.Changed("font-size") {
				req.FontSize = settingsFlags.FontSize
			}
			if flags.Changed("notifications") {
				req.NotificationEnabled = settingsFlags.Notifications
			}
			if flags.Changed("time") {
				req.NotificationTime = settingsFlags.Time
			}
			if err := validation.New().Validate(req); err != nil {
				return err
			}

			settings := req.ToSettings()
			if err := a.engine.Settings().UpdateSettings(cmd.Context(), settings); err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), settings)
			return nil
		})
	},
}

func init() {
	f := settingsSetCmd.Flags()
	f.StringVar(&settingsFlags.Theme, "theme", "", "Theme mode: light, dark or system")
	f.StringVar(&settingsFlags.Accent, "accent", "", "Accent color: default, blue, green, purple or orange")
	f.StringVar(&settingsFlags.FontSize, "font-size", "", "Font size: small, medium, large or extra_large")
	f.BoolVar(&settingsFlags.Notifications, "notifications", true, "Enable the daily quote notification")
	f.StringVar(&settingsFlags.Time, "time", "", "Delivery time of the daily quote as HH:MM")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
