// Package models defines the core data structures for the inventory catalog:
// items, quick-entry value lists, users, settings and backup documents.
// JSON tags match the wire shapes of the original deployment's storage slots.
package models

// Item represents one inventory catalog entry.
type Item struct {
	// ID is the unique identifier for the item, assigned at creation.
	ID string `json:"id"`
	// Image is the embedded image payload as a base64 data URL.
	Image string `json:"image"`
	// Name is the display name of the item.
	Name string `json:"name"`
	// Model is the manufacturer model code.
	Model string `json:"model"`
	// Barcode is the item barcode, free text.
	Barcode string `json:"barcode"`
	// Type is an open string, not a closed enum; any value is accepted.
	Type string `json:"type"`
	// Category groups items for filtering.
	Category string `json:"category"`
	// Size is the item size label (S, M, 42, ...).
	Size string `json:"size"`
	// Color is the item color label.
	Color string `json:"color"`
	// Material is the item material label.
	Material string `json:"material"`
	// Country is the country of origin, free text.
	Country string `json:"country"`
	// Price is the item price; must be positive to pass entry validation.
	Price float64 `json:"price"`
	// Description holds free-form notes about the item.
	Description string `json:"description"`
}

// UniqueData holds the nine quick-entry value collections used to populate
// forms and filter dropdowns. Each collection is deduplicated and kept sorted
// ascending after every mutation: lexicographic for the string collections,
// numeric for Prices.
type UniqueData struct {
	Models     []string  `json:"models"`
	Barcodes   []string  `json:"barcodes"`
	Colors     []string  `json:"colors"`
	Materials  []string  `json:"materials"`
	Prices     []float64 `json:"prices"`
	Types      []string  `json:"types"`
	Categories []string  `json:"categories"`
	Sizes      []string  `json:"sizes"`
	Countries  []string  `json:"countries"`
}

// QuickEntryCategory identifies one of the nine UniqueData collections.
type QuickEntryCategory string

const (
	CategoryModels     QuickEntryCategory = "models"
	CategoryBarcodes   QuickEntryCategory = "barcodes"
	CategoryColors     QuickEntryCategory = "colors"
	CategoryMaterials  QuickEntryCategory = "materials"
	CategoryPrices     QuickEntryCategory = "prices"
	CategoryTypes      QuickEntryCategory = "types"
	CategoryCategories QuickEntryCategory = "categories"
	CategorySizes      QuickEntryCategory = "sizes"
	CategoryCountries  QuickEntryCategory = "countries"
)

// QuickEntryCategories lists every valid category in display order.
var QuickEntryCategories = []QuickEntryCategory{
	CategoryModels,
	CategoryBarcodes,
	CategoryColors,
	CategoryMaterials,
	CategoryPrices,
	CategoryTypes,
	CategoryCategories,
	CategorySizes,
	CategoryCountries,
}

// StringCollection returns a pointer to the string collection for the given
// category, or nil when the category is unknown or is the numeric Prices
// collection.
func (u *UniqueData) StringCollection(category QuickEntryCategory) *[]string {
	switch category {
	case CategoryModels:
		return &u.Models
	case CategoryBarcodes:
		return &u.Barcodes
	case CategoryColors:
		return &u.Colors
	case CategoryMaterials:
		return &u.Materials
	case CategoryTypes:
		return &u.Types
	case CategoryCategories:
		return &u.Categories
	case CategorySizes:
		return &u.Sizes
	case CategoryCountries:
		return &u.Countries
	}
	return nil
}

// UserPermissions is the set of three independent capabilities granted to an
// account.
type UserPermissions struct {
	CanAdd            bool `json:"canAdd"`
	CanDelete         bool `json:"canDelete"`
	CanChangeSettings bool `json:"canChangeSettings"`
}

// User represents an account.
type User struct {
	// ID is the unique identifier for the user, assigned at creation.
	ID string `json:"id"`
	// Username is the login name; unique among registered users,
	// enforced at creation time only.
	Username string `json:"username"`
	// Password is the stored credential. Accounts created by this
	// implementation hold a bcrypt hash; plaintext values imported from the
	// original deployment are still accepted at login.
	Password string `json:"password"`
	// Permissions holds the account's capability flags.
	Permissions UserPermissions `json:"permissions"`
}

// GuestUserID is the fixed identifier of the synthesized guest session.
const GuestUserID = "guest-user"

// GuestMarker decorates a guest session's username.
const GuestMarker = "(زائر)"

// IsGuest reports whether the user is the synthesized guest identity.
func (u *User) IsGuest() bool {
	return u != nil && u.ID == GuestUserID
}

// Default administrator credentials materialized on first run when the user
// registry is empty.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

// GuestCredentials configures the optional shared guest account.
type GuestCredentials struct {
	Enabled  bool   `json:"enabled"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AppSettings holds the mutable application settings.
type AppSettings struct {
	CompanyName      string           `json:"companyName"`
	CompanyInfo      string           `json:"companyInfo"`
	GuestCredentials GuestCredentials `json:"guestCredentials"`
}

// BackupData is the portable document produced by backup export and consumed
// by import: the full application state minus the user registry.
type BackupData struct {
	Items          []Item      `json:"items"`
	QuickEntryData UniqueData  `json:"quickEntryData"`
	Settings       AppSettings `json:"settings"`
	CompanyLogo    *string     `json:"companyLogo"`
}

// FilterAllTypes is the sentinel type-filter value that matches every item.
const FilterAllTypes = "الكل"

// Filters holds the multi-field predicate applied over the catalog.
// SearchTerm matches name or model as a case-insensitive substring; Barcode
// is a substring match; Type is an exact match with the FilterAllTypes
// sentinel; the remaining fields are exact matches where the empty string
// matches everything.
type Filters struct {
	SearchTerm string `json:"searchTerm"`
	Type       string `json:"type"`
	Country    string `json:"country"`
	Barcode    string `json:"barcode"`
	Category   string `json:"category"`
	Size       string `json:"size"`
	Color      string `json:"color"`
	Material   string `json:"material"`
}

// DefaultFilters returns the pass-everything filter set.
func DefaultFilters() Filters {
	return Filters{Type: FilterAllTypes}
}
