// Package catalog holds the set of loanable items and their availability flag.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/circulib/lending-ledger-go/lending"
)

// Catalog manages the items of the library.
// It owns item lifetime; availability transitions are driven by the ledger.
type Catalog struct {
	items lending.ItemRepository
}

// New creates a Catalog backed by the given item repository.
func New(items lending.ItemRepository) Catalog {
	return Catalog{items: items}
}

// Add puts an item into the catalog. No duplicate check is performed.
func (c Catalog) Add(ctx context.Context, item lending.Item) error {
	return c.items.InsertItem(ctx, item)
}

// Remove deletes an item by identity.
//
// Returns lending.ErrItemNotFound for an unknown item and
// lending.ErrItemOnLoan while an active loan references the item, since
// removing it would leave the loan record with a dangling reference.
func (c Catalog) Remove(ctx context.Context, itemID uuid.UUID) error {
	item, err := c.items.ItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	if !item.Available {
		return lending.ErrItemOnLoan
	}

	return c.items.RemoveItem(ctx, itemID)
}

// Find returns all items matching the search criteria,
// the full catalog for an empty search.
func (c Catalog) Find(ctx context.Context, search lending.ItemSearch) ([]lending.Item, error) {
	return c.items.SearchItems(ctx, search)
}

// ListAvailable returns the items whose availability flag is true.
func (c Catalog) ListAvailable(ctx context.Context) ([]lending.Item, error) {
	all, err := c.items.SearchItems(ctx, lending.BuildItemSearch().MatchingAnyItem())
	if err != nil {
		return nil, err
	}

	available := make([]lending.Item, 0)

	for _, item := range all {
		if item.Available {
			available = append(available, item)
		}
	}

	return available, nil
}

// ItemByID returns a single item by identity.
func (c Catalog) ItemByID(ctx context.Context, itemID uuid.UUID) (lending.Item, error) {
	return c.items.ItemByID(ctx, itemID)
}

// IsOnLoan reports whether the item exists and is currently lent out.
func (c Catalog) IsOnLoan(ctx context.Context, itemID uuid.UUID) (bool, error) {
	item, err := c.items.ItemByID(ctx, itemID)
	if err != nil {
		return false, err
	}

	return !item.Available, nil
}
