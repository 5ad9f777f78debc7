package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sam-pro/catalog/internal/masterdata"
	"github.com/sam-pro/catalog/internal/models"
)

// QuickEntryRepository defines the persistence operations over the
// quick-entry slot.
type QuickEntryRepository interface {
	// LoadQuickEntry returns the stored collections, or def when absent.
	LoadQuickEntry(ctx context.Context, def models.UniqueData) models.UniqueData
	// SaveQuickEntry persists the collections.
	SaveQuickEntry(ctx context.Context, data models.UniqueData) error
}

// QuickEntryService manages the nine quick-entry value collections. The
// prices collection is numeric and sorted numerically; every other
// collection is free text sorted lexicographically, so operations dispatch
// on category identity.
type QuickEntryService struct {
	repo QuickEntryRepository
	log  *zap.Logger
}

// NewQuickEntryService constructs a QuickEntryService using the provided
// repository.
func NewQuickEntryService(repo QuickEntryRepository, log *zap.Logger) *QuickEntryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuickEntryService{repo: repo, log: log}
}

// List returns the collections visible to the actor: the published snapshot
// for guests, the persisted registry otherwise.
func (s *QuickEntryService) List(ctx context.Context, actor *models.User) (models.UniqueData, error) {
	if err := requireActor(actor); err != nil {
		return models.UniqueData{}, err
	}
	if actor.IsGuest() {
		return masterdata.QuickEntryData(), nil
	}
	return s.repo.LoadQuickEntry(ctx, masterdata.QuickEntryData()), nil
}

// Add inserts a value into the given collection and re-sorts it. Requires
// the canAdd capability. Empty values and duplicates (case-sensitive exact
// match) are rejected.
func (s *QuickEntryService) Add(ctx context.Context, actor *models.User, category models.QuickEntryCategory, raw string) error {
	if err := requireCanAdd(actor); err != nil {
		return err
	}

	data := s.repo.LoadQuickEntry(ctx, masterdata.QuickEntryData())

	if category == models.CategoryPrices {
		price, err := parsePrice(raw)
		if err != nil {
			return err
		}
		if containsFloat(data.Prices, price) {
			return fmt.Errorf("%w: price %v already exists", ErrValidation, price)
		}
		data.Prices = append(data.Prices, price)
		sort.Float64s(data.Prices)
	} else {
		col := data.StringCollection(category)
		if col == nil {
			return fmt.Errorf("%w: unknown category %q", ErrValidation, category)
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			return fmt.Errorf("%w: value is empty", ErrValidation)
		}
		if containsString(*col, value) {
			return fmt.Errorf("%w: %q already exists in %s", ErrValidation, value, category)
		}
		*col = append(*col, value)
		sort.Strings(*col)
	}

	return s.persist(ctx, data)
}

// Rename replaces oldValue with newValue in the given collection and
// re-sorts it. newValue is validated exactly as Add validates, except that a
// rename to the same value is allowed. An absent oldValue is a no-op.
// Requires the canAdd capability.
func (s *QuickEntryService) Rename(ctx context.Context, actor *models.User, category models.QuickEntryCategory, oldValue, newValue string) error {
	if err := requireCanAdd(actor); err != nil {
		return err
	}

	data := s.repo.LoadQuickEntry(ctx, masterdata.QuickEntryData())

	if category == models.CategoryPrices {
		oldPrice, _ := parsePrice(oldValue)
		newPrice, err := parsePrice(newValue)
		if err != nil {
			return err
		}
		if newPrice != oldPrice && containsFloat(data.Prices, newPrice) {
			return fmt.Errorf("%w: price %v already exists", ErrValidation, newPrice)
		}
		for i, p := range data.Prices {
			if p == oldPrice {
				data.Prices[i] = newPrice
			}
		}
		sort.Float64s(data.Prices)
	} else {
		col := data.StringCollection(category)
		if col == nil {
			return fmt.Errorf("%w: unknown category %q", ErrValidation, category)
		}
		value := strings.TrimSpace(newValue)
		if value == "" {
			return fmt.Errorf("%w: value is empty", ErrValidation)
		}
		if value != oldValue && containsString(*col, value) {
			return fmt.Errorf("%w: %q already exists in %s", ErrValidation, value, category)
		}
		for i, v := range *col {
			if v == oldValue {
				(*col)[i] = value
			}
		}
		sort.Strings(*col)
	}

	return s.persist(ctx, data)
}

// Delete removes every entry equal to value from the given collection. An
// absent value is a silent no-op. Requires the canDelete capability.
func (s *QuickEntryService) Delete(ctx context.Context, actor *models.User, category models.QuickEntryCategory, value string) error {
	if err := requireCanDelete(actor); err != nil {
		return err
	}

	data := s.repo.LoadQuickEntry(ctx, masterdata.QuickEntryData())

	if category == models.CategoryPrices {
		price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrValidation, value)
		}
		kept := data.Prices[:0:0]
		for _, p := range data.Prices {
			if p != price {
				kept = append(kept, p)
			}
		}
		data.Prices = kept
	} else {
		col := data.StringCollection(category)
		if col == nil {
			return fmt.Errorf("%w: unknown category %q", ErrValidation, category)
		}
		kept := (*col)[:0:0]
		for _, v := range *col {
			if v != value {
				kept = append(kept, v)
			}
		}
		*col = kept
	}

	return s.persist(ctx, data)
}

func (s *QuickEntryService) persist(ctx context.Context, data models.UniqueData) error {
	if err := s.repo.SaveQuickEntry(ctx, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// parsePrice parses and validates a quick-entry price value.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrValidation, raw)
	}
	if price <= 0 {
		return 0, fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	return price, nil
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsFloat(values []float64, v float64) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
