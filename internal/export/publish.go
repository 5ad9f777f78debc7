package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sam-pro/catalog/internal/models"
)

// RenderPublishable renders a backup snapshot as the distributable snapshot
// source: the JSON document that replaces internal/masterdata/masterdata.json
// at the next distribution build. It is pure text generation, not a state
// mutation.
func RenderPublishable(data models.BackupData) (string, error) {
	if data.Items == nil {
		data.Items = []models.Item{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// Keep Arabic values readable instead of \u-escaped.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return "", fmt.Errorf("render snapshot: %w", err)
	}
	return buf.String(), nil
}
