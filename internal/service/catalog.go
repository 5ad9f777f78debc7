package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sam-pro/catalog/internal/masterdata"
	"github.com/sam-pro/catalog/internal/models"
)

// CatalogRepository defines the persistence operations over the item slot.
type CatalogRepository interface {
	// LoadItems returns the stored catalog, or def when absent.
	LoadItems(ctx context.Context, def []models.Item) []models.Item
	// SaveItems persists the catalog.
	SaveItems(ctx context.Context, items []models.Item) error
}

// CatalogService implements the permission-gated item catalog. Registered
// sessions operate on the persisted catalog; guest sessions observe the
// published snapshot and every mutation under a guest session is refused.
type CatalogService struct {
	repo CatalogRepository
	log  *zap.Logger
}

// NewCatalogService constructs a CatalogService using the provided repository.
func NewCatalogService(repo CatalogRepository, log *zap.Logger) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{repo: repo, log: log}
}

// List returns the catalog visible to the actor, newest first.
func (s *CatalogService) List(ctx context.Context, actor *models.User) ([]models.Item, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if actor.IsGuest() {
		return masterdata.Items(), nil
	}
	return s.repo.LoadItems(ctx, masterdata.Items()), nil
}

// Get returns the item with the given id, or ErrItemNotFound.
func (s *CatalogService) Get(ctx context.Context, actor *models.User, id string) (*models.Item, error) {
	items, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrItemNotFound
}

// Filter returns the catalog subset passing every filter clause, preserving
// catalog order.
func (s *CatalogService) Filter(ctx context.Context, actor *models.User, filters models.Filters) ([]models.Item, error) {
	items, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	return FilterItems(items, filters), nil
}

// Add validates the new item, assigns a fresh id and prepends it to the
// catalog. Requires the canAdd capability.
func (s *CatalogService) Add(ctx context.Context, actor *models.User, item models.Item) (*models.Item, error) {
	if err := requireCanAdd(actor); err != nil {
		return nil, err
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	item.ID = uuid.NewString()
	items := append([]models.Item{item}, s.repo.LoadItems(ctx, masterdata.Items())...)
	if err := s.repo.SaveItems(ctx, items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.log.Info("item added", zap.String("id", item.ID), zap.String("name", item.Name))
	return &item, nil
}

// Update replaces the stored item whose id matches. A missing id is a silent
// no-op. Requires the canAdd capability.
func (s *CatalogService) Update(ctx context.Context, actor *models.User, item models.Item) error {
	if err := requireCanAdd(actor); err != nil {
		return err
	}
	if err := validateItem(item); err != nil {
		return err
	}

	items := s.repo.LoadItems(ctx, masterdata.Items())
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			break
		}
	}
	if err := s.repo.SaveItems(ctx, items); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Delete removes the item whose id matches. A missing id is a silent no-op.
// Requires the canDelete capability.
func (s *CatalogService) Delete(ctx context.Context, actor *models.User, id string) error {
	if err := requireCanDelete(actor); err != nil {
		return err
	}

	items := s.repo.LoadItems(ctx, masterdata.Items())
	kept := items[:0:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if err := s.repo.SaveItems(ctx, kept); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// validateItem enforces the entry-boundary requirements: name, type and
// image present, price positive. Stored items are never revalidated.
func validateItem(item models.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if item.Type == "" {
		return fmt.Errorf("%w: type is required", ErrValidation)
	}
	if item.Image == "" {
		return fmt.Errorf("%w: image is required", ErrValidation)
	}
	if item.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	return nil
}
