// Package export renders the catalog into portable textual forms: the CSV
// spreadsheet and the publishable snapshot source.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sam-pro/catalog/internal/models"
)

// csvHeader is the fixed Arabic header row of the exported spreadsheet.
var csvHeader = []string{
	"المعرّف",
	"الاسم",
	"الموديل",
	"الباركود",
	"النوع",
	"الفئة",
	"المقاس",
	"اللون",
	"المادة",
	"بلد المنشأ",
	"السعر",
	"الوصف",
}

// utf8BOM makes spreadsheet applications detect the encoding so the Arabic
// header renders correctly.
const utf8BOM = "\uFEFF"

// WriteCSV writes the items as a UTF-8 CSV document with a byte-order marker
// and the fixed Arabic header row, one row per item. Embedded quotes are
// escaped by doubling, per RFC 4180.
func WriteCSV(w io.Writer, items []models.Item) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, item := range items {
		row := []string{
			item.ID,
			item.Name,
			item.Model,
			item.Barcode,
			item.Type,
			item.Category,
			item.Size,
			item.Color,
			item.Material,
			item.Country,
			strconv.FormatFloat(item.Price, 'f', -1, 64),
			item.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
