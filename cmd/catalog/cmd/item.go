package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sam-pro/catalog/internal/export"
	"github.com/sam-pro/catalog/internal/models"
	"github.com/sam-pro/catalog/internal/service"
)

var (
	itemFields  models.Item
	itemImage   string
	listFilters models.Filters
	listFormat  string
	listOutput  string
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage catalog items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new item",
	Long: `Add an item to the catalog. Name, type, image and a positive price
are required; the new item is placed at the head of the catalog.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}

		item := itemFields
		item.Image, err = resolveImage(itemImage)
		if err != nil {
			return err
		}

		added, err := application.Catalog.Add(cmd.Context(), user, item)
		if err != nil {
			return err
		}
		color.Green("Added item %s (%s)", added.Name, added.ID)
		return nil
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items, optionally filtered",
	Long: `List the catalog, newest first. All filter flags are combined: an
item is shown only when every given clause matches. --search matches the
name or model as a case-insensitive substring; --barcode is a substring
match; the remaining filters are exact matches.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}
		if listFilters.Type == "" {
			listFilters.Type = models.FilterAllTypes
		}

		items, err := application.Catalog.Filter(cmd.Context(), user, listFilters)
		if err != nil {
			return err
		}

		out := os.Stdout
		if listOutput != "" {
			f, err := os.Create(listOutput)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		switch listFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		case "csv":
			return export.WriteCSV(out, items)
		default:
			return printItemsTable(out, items)
		}
	},
}

var itemGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}
		item, err := application.Catalog.Get(cmd.Context(), user, args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(item)
	},
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace an item's fields",
	Long: `Update an item by id. Flags that are set replace the stored value;
unset flags keep it. Updating a non-existent id changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}

		current, err := application.Catalog.Get(cmd.Context(), user, args[0])
		if err != nil {
			return err
		}

		item := *current
		applyItemFlags(cmd, &item)
		if itemImage != "" {
			item.Image, err = resolveImage(itemImage)
			if err != nil {
				return err
			}
		}

		if err := application.Catalog.Update(cmd.Context(), user, item); err != nil {
			return err
		}
		color.Green("Updated item %s", item.ID)
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireSession()
		if err != nil {
			return err
		}
		if err := application.Catalog.Delete(cmd.Context(), user, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

// applyItemFlags copies only the flags the user actually set onto item.
func applyItemFlags(cmd *cobra.Command, item *models.Item) {
	fields := map[string]struct{ src, dst *string }{
		"name":        {&itemFields.Name, &item.Name},
		"model":       {&itemFields.Model, &item.Model},
		"barcode":     {&itemFields.Barcode, &item.Barcode},
		"type":        {&itemFields.Type, &item.Type},
		"category":    {&itemFields.Category, &item.Category},
		"size":        {&itemFields.Size, &item.Size},
		"color":       {&itemFields.Color, &item.Color},
		"material":    {&itemFields.Material, &item.Material},
		"country":     {&itemFields.Country, &item.Country},
		"description": {&itemFields.Description, &item.Description},
	}
	for name, f := range fields {
		if cmd.Flags().Changed(name) {
			*f.dst = *f.src
		}
	}
	if cmd.Flags().Changed("price") {
		item.Price = itemFields.Price
	}
}

// resolveImage turns the --image argument into a data URL. A value already
// in data URL form is used as-is; otherwise it is read as an image file.
func resolveImage(arg string) (string, error) {
	if arg == "" || strings.HasPrefix(arg, "data:") {
		return arg, nil
	}

	raw, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	var mime string
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".webp":
		mime = "image/webp"
	default:
		return "", fmt.Errorf("%w: unsupported image type %q (png, jpeg, webp)", service.ErrValidation, filepath.Ext(arg))
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func printItemsTable(out *os.File, items []models.Item) error {
	if len(items) == 0 {
		fmt.Fprintln(out, "No items found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODEL\tTYPE\tCATEGORY\tSIZE\tCOLOR\tPRICE")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			item.ID, item.Name, item.Model, item.Type,
			item.Category, item.Size, item.Color, item.Price)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d item(s)\n", len(items))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{itemAddCmd, itemUpdateCmd} {
		c.Flags().StringVar(&itemFields.Name, "name", "", "item name")
		c.Flags().StringVar(&itemFields.Model, "model", "", "model code")
		c.Flags().StringVar(&itemFields.Barcode, "barcode", "", "barcode")
		c.Flags().StringVar(&itemFields.Type, "type", "", "item type")
		c.Flags().StringVar(&itemFields.Category, "category", "", "category")
		c.Flags().StringVar(&itemFields.Size, "size", "", "size")
		c.Flags().StringVar(&itemFields.Color, "color", "", "color")
		c.Flags().StringVar(&itemFields.Material, "material", "", "material")
		c.Flags().StringVar(&itemFields.Country, "country", "", "country of origin")
		c.Flags().Float64Var(&itemFields.Price, "price", 0, "price (must be positive)")
		c.Flags().StringVar(&itemFields.Description, "description", "", "description")
		c.Flags().StringVar(&itemImage, "image", "", "image file path or data URL")
	}

	itemListCmd.Flags().StringVar(&listFilters.SearchTerm, "search", "", "match name or model")
	itemListCmd.Flags().StringVar(&listFilters.Type, "type", "", "filter by type")
	itemListCmd.Flags().StringVar(&listFilters.Country, "country", "", "filter by country")
	itemListCmd.Flags().StringVar(&listFilters.Barcode, "barcode", "", "filter by barcode substring")
	itemListCmd.Flags().StringVar(&listFilters.Category, "category", "", "filter by category")
	itemListCmd.Flags().StringVar(&listFilters.Size, "size", "", "filter by size")
	itemListCmd.Flags().StringVar(&listFilters.Color, "color", "", "filter by color")
	itemListCmd.Flags().StringVar(&listFilters.Material, "material", "", "filter by material")
	itemListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json, csv)")
	itemListCmd.Flags().StringVarP(&listOutput, "output", "o", "", "write to file instead of stdout")

	itemCmd.AddCommand(itemAddCmd, itemListCmd, itemGetCmd, itemUpdateCmd, itemDeleteCmd)
	rootCmd.AddCommand(itemCmd)
}
