package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a registered user or guest",
	Long: `Authenticate against the registered accounts, or against the guest
account when guest access is enabled in the settings. The session is kept
until you run "catalog logout".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		username := loginUsername
		if username == "" {
			fmt.Print("Username: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}

		password := loginPassword
		if password == "" {
			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = string(raw)
		}

		user, err := application.Auth.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}

		color.Green("Logged in as %s", user.Username)
		if user.IsGuest() {
			fmt.Println("Guest sessions see the published catalog and cannot make changes.")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the active session",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := application.Auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	RunE: func(_ *cobra.Command, _ []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", user.Username)
		fmt.Printf("  can add:             %v\n", user.Permissions.CanAdd)
		fmt.Printf("  can delete:          %v\n", user.Permissions.CanDelete)
		fmt.Printf("  can change settings: %v\n", user.Permissions.CanChangeSettings)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
