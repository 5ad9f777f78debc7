package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sam-pro/catalog/internal/models"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Manage the quick-entry value lists",
	Long: `Manage the nine quick-entry collections used to speed up data
entry: models, barcodes, colors, materials, prices, types, categories,
sizes and countries. Values stay deduplicated and sorted.`,
}

var quickListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "Show quick-entry values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}
		data, err := application.QuickEntry.List(cmd.Context(), user)
		if err != nil {
			return err
		}

		categories := models.QuickEntryCategories
		if len(args) == 1 {
			categories = []models.QuickEntryCategory{models.QuickEntryCategory(args[0])}
		}
		for _, category := range categories {
			if category == models.CategoryPrices {
				fmt.Printf("%s:\n", category)
				for _, p := range data.Prices {
					fmt.Printf("  %s\n", strconv.FormatFloat(p, 'f', -1, 64))
				}
				continue
			}
			col := data.StringCollection(category)
			if col == nil {
				return fmt.Errorf("unknown category %q", category)
			}
			fmt.Printf("%s:\n", category)
			for _, v := range *col {
				fmt.Printf("  %s\n", v)
			}
		}
		return nil
	},
}

var quickAddCmd = &cobra.Command{
	Use:   "add <category> <value>",
	Short: "Add a quick-entry value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}
		category := models.QuickEntryCategory(args[0])
		if err := application.QuickEntry.Add(cmd.Context(), user, category, args[1]); err != nil {
			return err
		}
		color.Green("Added %q to %s", args[1], category)
		return nil
	},
}

var quickRenameCmd = &cobra.Command{
	Use:   "rename <category> <old> <new>",
	Short: "Rename a quick-entry value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}
		category := models.QuickEntryCategory(args[0])
		if err := application.QuickEntry.Rename(cmd.Context(), user, category, args[1], args[2]); err != nil {
			return err
		}
		color.Green("Renamed %q to %q in %s", args[1], args[2], category)
		return nil
	},
}

var quickDeleteCmd = &cobra.Command{
	Use:   "delete <category> <value>",
	Short: "Delete a quick-entry value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}
		category := models.QuickEntryCategory(args[0])
		if err := application.QuickEntry.Delete(cmd.Context(), user, category, args[1]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	quickCmd.AddCommand(quickListCmd, quickAddCmd, quickRenameCmd, quickDeleteCmd)
	rootCmd.AddCommand(quickCmd)
}
