package service

import (
	"sort"
	"strings"

	"github.com/sam-pro/catalog/internal/models"
)

// FilterItems applies the multi-field predicate over items and returns the
// passing subset in the original order. All clauses are ANDed. It is a pure
// function with no persistence of its own.
func FilterItems(items []models.Item, f models.Filters) []models.Item {
	term := strings.ToLower(f.SearchTerm)

	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		searchMatch := term == "" ||
			strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Model), term)
		typeMatch := f.Type == "" || f.Type == models.FilterAllTypes || item.Type == f.Type
		countryMatch := f.Country == "" || item.Country == f.Country
		barcodeMatch := f.Barcode == "" || strings.Contains(item.Barcode, f.Barcode)
		categoryMatch := f.Category == "" || item.Category == f.Category
		sizeMatch := f.Size == "" || item.Size == f.Size
		colorMatch := f.Color == "" || item.Color == f.Color
		materialMatch := f.Material == "" || item.Material == f.Material

		if searchMatch && typeMatch && countryMatch && barcodeMatch &&
			categoryMatch && sizeMatch && colorMatch && materialMatch {
			out = append(out, item)
		}
	}
	return out
}

// FilterOptions holds the derived value lists that populate the filter
// dropdowns: per field, the sorted union of the distinct non-empty item
// values and the corresponding quick-entry collection.
type FilterOptions struct {
	Types      []string
	Countries  []string
	Categories []string
	Sizes      []string
	Colors     []string
	Materials  []string
}

// Options recomputes the derived value lists from the current catalog and
// quick-entry data.
func Options(items []models.Item, quick models.UniqueData) FilterOptions {
	return FilterOptions{
		Types:      uniqueOptions(items, quick.Types, func(i models.Item) string { return i.Type }),
		Countries:  uniqueOptions(items, quick.Countries, func(i models.Item) string { return i.Country }),
		Categories: uniqueOptions(items, quick.Categories, func(i models.Item) string { return i.Category }),
		Sizes:      uniqueOptions(items, quick.Sizes, func(i models.Item) string { return i.Size }),
		Colors:     uniqueOptions(items, quick.Colors, func(i models.Item) string { return i.Color }),
		Materials:  uniqueOptions(items, quick.Materials, func(i models.Item) string { return i.Material }),
	}
}

// uniqueOptions merges the non-empty field values of items with the
// quick-entry collection, deduplicated and sorted.
func uniqueOptions(items []models.Item, quick []string, field func(models.Item) string) []string {
	seen := make(map[string]struct{}, len(items)+len(quick))
	for _, item := range items {
		if v := field(item); v != "" {
			seen[v] = struct{}{}
		}
	}
	for _, v := range quick {
		seen[v] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
