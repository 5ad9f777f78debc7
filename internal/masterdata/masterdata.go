// Package masterdata embeds the published snapshot: the fixed dataset that
// ships with the application. It seeds a fresh installation's local data and
// is the permanent, read-only view guest sessions observe. Updating it is an
// out-of-band republish action: an administrator exports the current state
// ("backup publish") and replaces masterdata.json before the next build.
package masterdata

import (
	_ "embed"
	"encoding/json"

	"github.com/sam-pro/catalog/internal/models"
)

//go:embed masterdata.json
var raw []byte

// Snapshot decodes a fresh copy of the published snapshot. Decoding on every
// call keeps callers from mutating shared state through slice aliasing.
func Snapshot() models.BackupData {
	var data models.BackupData
	if err := json.Unmarshal(raw, &data); err != nil {
		// The snapshot is a build-time artifact; a parse failure means a
		// broken distribution, not a runtime condition.
		panic("masterdata: invalid embedded snapshot: " + err.Error())
	}
	if data.Items == nil {
		data.Items = []models.Item{}
	}
	return data
}

// Items returns the published item catalog.
func Items() []models.Item {
	return Snapshot().Items
}

// QuickEntryData returns the published quick-entry collections.
func QuickEntryData() models.UniqueData {
	return Snapshot().QuickEntryData
}

// Settings returns the published default settings.
func Settings() models.AppSettings {
	return Snapshot().Settings
}

// CompanyLogo returns the published logo data URL, usually nil.
func CompanyLogo() *string {
	return Snapshot().CompanyLogo
}
