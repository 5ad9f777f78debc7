package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sam-pro/catalog/internal/export"
	"github.com/sam-pro/catalog/internal/service"
)

var backupOutput string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up, restore and publish the dataset",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full dataset as a backup document",
	Long: `Write the current items, quick-entry data, settings and logo as a
portable JSON document, read straight from the persistent store.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}
		data, err := application.Backup.Export(cmd.Context(), actor)
		if err != nil {
			return err
		}

		out := os.Stdout
		if backupOutput != "" {
			f, err := os.Create(backupOutput)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(data); err != nil {
			return err
		}
		if backupOutput != "" {
			color.Green("Backup written to %s", backupOutput)
		}
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore the dataset from a backup document",
	Long: `Replace the items, quick-entry data, settings and logo wholesale
with the contents of a backup document. A document missing required fields
is rejected and nothing changes. Requires the change-settings capability.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}
		doc, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup file: %w", err)
		}
		data, err := application.Backup.Import(cmd.Context(), actor, doc)
		if err != nil {
			return err
		}
		color.Green("Imported %d item(s)", len(data.Items))
		return nil
	},
}

var backupPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the dataset as publishable snapshot source",
	Long: `Render the current persisted state as the distributable snapshot
source. Replace internal/masterdata/masterdata.json with the output and
rebuild to make it the new published dataset. Requires the change-settings
capability.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		actor, err := requireSession()
		if err != nil {
			return err
		}
		if !actor.Permissions.CanChangeSettings {
			return service.ErrPermissionDenied
		}
		data, err := application.Backup.Export(cmd.Context(), actor)
		if err != nil {
			return err
		}

		src, err := export.RenderPublishable(data)
		if err != nil {
			return err
		}

		if backupOutput == "" {
			fmt.Print(src)
			return nil
		}
		if err := os.WriteFile(backupOutput, []byte(src), 0o644); err != nil {
			return fmt.Errorf("write snapshot source: %w", err)
		}
		color.Green("Snapshot source written to %s", backupOutput)
		return nil
	},
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "write to file instead of stdout")
	backupPublishCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "write to file instead of stdout")

	backupCmd.AddCommand(backupExportCmd, backupImportCmd, backupPublishCmd)
	rootCmd.AddCommand(backupCmd)
}
