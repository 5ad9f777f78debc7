package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	setCompanyName   string
	setCompanyInfo   string
	setGuestEnabled  bool
	setGuestUsername string
	setGuestPassword string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := requireSession(); err != nil {
			return err
		}
		settings := application.Settings.Get(cmd.Context())
		fmt.Printf("Company name:  %s\n", settings.CompanyName)
		fmt.Printf("Company info:  %s\n", settings.CompanyInfo)
		fmt.Printf("Guest access:  %v", settings.GuestCredentials.Enabled)
		if settings.GuestCredentials.Enabled {
			fmt.Printf(" (username %q)", settings.GuestCredentials.Username)
		}
		fmt.Println()
		if logo := application.Settings.GetLogo(cmd.Context()); logo != nil {
			fmt.Printf("Company logo:  set (%d bytes)\n", len(*logo))
		} else {
			fmt.Println("Company logo:  not set")
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change settings fields. Flags that are set replace the stored
value; unset flags keep it. Requires the change-settings capability.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}

		settings := application.Settings.Get(cmd.Context())
		if cmd.Flags().Changed("company-name") {
			settings.CompanyName = setCompanyName
		}
		if cmd.Flags().Changed("company-info") {
			settings.CompanyInfo = setCompanyInfo
		}
		if cmd.Flags().Changed("guest-enabled") {
			settings.GuestCredentials.Enabled = setGuestEnabled
		}
		if cmd.Flags().Changed("guest-username") {
			settings.GuestCredentials.Username = setGuestUsername
		}
		if cmd.Flags().Changed("guest-password") {
			settings.GuestCredentials.Password = setGuestPassword
		}

		if err := application.Settings.Update(cmd.Context(), actor, settings); err != nil {
			return err
		}
		color.Green("Settings saved")
		return nil
	},
}

var settingsLogoCmd = &cobra.Command{
	Use:   "logo <image-file>",
	Short: "Set the company logo",
	Long: `Embed an image file (png, jpeg or webp) as the company logo. Pass
"none" to clear it. Requires the change-settings capability.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}

		if args[0] == "none" {
			if err := application.Settings.SetLogo(cmd.Context(), actor, nil); err != nil {
				return err
			}
			fmt.Println("Logo cleared.")
			return nil
		}

		dataURL, err := resolveImage(args[0])
		if err != nil {
			return err
		}
		if err := application.Settings.SetLogo(cmd.Context(), actor, &dataURL); err != nil {
			return err
		}
		color.Green("Logo updated")
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().StringVar(&setCompanyName, "company-name", "", "company name shown in the header")
	settingsSetCmd.Flags().StringVar(&setCompanyInfo, "company-info", "", "company contact info")
	settingsSetCmd.Flags().BoolVar(&setGuestEnabled, "guest-enabled", false, "enable the guest account")
	settingsSetCmd.Flags().StringVar(&setGuestUsername, "guest-username", "", "guest account username")
	settingsSetCmd.Flags().StringVar(&setGuestPassword, "guest-password", "", "guest account password")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsLogoCmd)
	rootCmd.AddCommand(settingsCmd)
}
