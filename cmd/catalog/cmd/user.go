package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sam-pro/catalog/internal/models"
)

var (
	userUsername    string
	userPassword    string
	userCanAdd      bool
	userCanDelete   bool
	userCanSettings bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long: `Manage the registered accounts and their permissions. Requires the
change-settings capability.`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}
		users, err := application.Users.List(cmd.Context(), actor)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tADD\tDELETE\tSETTINGS")
		for _, u := range users {
			marker := ""
			if u.ID == actor.ID {
				marker = " (you)"
			}
			fmt.Fprintf(w, "%s\t%s%s\t%v\t%v\t%v\n",
				u.ID, u.Username, marker,
				u.Permissions.CanAdd, u.Permissions.CanDelete, u.Permissions.CanChangeSettings)
		}
		return w.Flush()
	},
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}
		user, err := application.Users.Add(cmd.Context(), actor, models.User{
			Username: userUsername,
			Password: userPassword,
			Permissions: models.UserPermissions{
				CanAdd:            userCanAdd,
				CanDelete:         userCanDelete,
				CanChangeSettings: userCanSettings,
			},
		})
		if err != nil {
			return err
		}
		color.Green("Created user %s (%s)", user.Username, user.ID)
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Long: `Update an account's password and permissions. Permission flags that
are set replace the stored value; an omitted --password keeps the current
one. Changes to your own account take effect immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}

		users, err := application.Users.List(cmd.Context(), actor)
		if err != nil {
			return err
		}
		var current *models.User
		for i := range users {
			if users[i].ID == args[0] {
				current = &users[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("no user with id %s", args[0])
		}

		user := *current
		if cmd.Flags().Changed("password") {
			user.Password = userPassword
		} else {
			user.Password = ""
		}
		if cmd.Flags().Changed("can-add") {
			user.Permissions.CanAdd = userCanAdd
		}
		if cmd.Flags().Changed("can-delete") {
			user.Permissions.CanDelete = userCanDelete
		}
		if cmd.Flags().Changed("can-settings") {
			user.Permissions.CanChangeSettings = userCanSettings
		}

		if err := application.Users.Update(cmd.Context(), actor, user); err != nil {
			return err
		}
		color.Green("Updated user %s", user.Username)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}
		if err := application.Users.Delete(cmd.Context(), actor, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{userAddCmd, userUpdateCmd} {
		c.Flags().StringVar(&userPassword, "password", "", "account password")
		c.Flags().BoolVar(&userCanAdd, "can-add", false, "grant add/edit capability")
		c.Flags().BoolVar(&userCanDelete, "can-delete", false, "grant delete capability")
		c.Flags().BoolVar(&userCanSettings, "can-settings", false, "grant settings/user-management capability")
	}
	userAddCmd.Flags().StringVar(&userUsername, "username", "", "account username")

	userCmd.AddCommand(userListCmd, userAddCmd, userUpdateCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}
