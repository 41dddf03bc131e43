package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qrdine/qrdine-api/models"
)

// CartStore persists one cart per table. The Redis implementation lives in
// the storage package; tests use an in-memory fake.
type CartStore interface {
	Load(ctx context.Context, tableID string) ([]models.CartItem, error)
	Save(ctx context.Context, tableID string, items []models.CartItem) error
	Delete(ctx context.Context, tableID string) error
}

// CartService owns the table-scoped cart aggregate. Every mutation writes the
// full cart snapshot back through the store before returning.
type CartService struct {
	store   CartStore
	taxRate float64
}

func NewCartService(store CartStore) *CartService {
	return &CartService{store: store, taxRate: ConfiguredTaxRate()}
}

func (s *CartService) Get(ctx context.Context, tableID string) ([]models.CartItem, error) {
	return s.store.Load(ctx, tableID)
}

// AddItem appends a configured line item, merging into an existing line when
// the menu item, size and extra set are identical. Special instructions are
// not part of the identity; on a merge the first entry's instructions win.
func (s *CartService) AddItem(ctx context.Context, tableID string, menuItem models.MenuItem, quantity int, size *models.Size, extras []models.Extra, instructions string) ([]models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	extras = dedupeExtras(extras)

	candidate := models.CartItem{
		ID:                  uuid.NewString(),
		MenuItem:            menuItem,
		Quantity:            quantity,
		SelectedSize:        size,
		SelectedExtras:      extras,
		SpecialInstructions: instructions,
	}
	if _, err := LineTotal(candidate); err != nil {
		return nil, err
	}

	items, err := s.store.Load(ctx, tableID)
	if err != nil {
		return nil, err
	}

	key := configKey(menuItem.ID, size, extras)
	merged := false
	for i := range items {
		if configKey(items[i].MenuItem.ID, items[i].SelectedSize, items[i].SelectedExtras) == key {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, candidate)
	}

	if err := s.store.Save(ctx, tableID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem drops a line unconditionally; a missing id is not an error.
func (s *CartService) RemoveItem(ctx context.Context, tableID, lineID string) ([]models.CartItem, error) {
	items, err := s.store.Load(ctx, tableID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != lineID {
			kept = append(kept, item)
		}
	}

	if err := s.store.Save(ctx, tableID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less
// removes the line, so a non-positive quantity is never persisted. A missing
// id is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, tableID, lineID string, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, tableID, lineID)
	}

	items, err := s.store.Load(ctx, tableID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == lineID {
			items[i].Quantity = quantity
			if err := s.store.Save(ctx, tableID, items); err != nil {
				return nil, err
			}
			break
		}
	}
	return items, nil
}

func (s *CartService) Totals(ctx context.Context, tableID string) (Totals, error) {
	items, err := s.store.Load(ctx, tableID)
	if err != nil {
		return Totals{}, err
	}
	return OrderTotals(items, s.taxRate)
}

// ItemCount is the sum of quantities, used for the cart badge.
func (s *CartService) ItemCount(ctx context.Context, tableID string) (int, error) {
	items, err := s.store.Load(ctx, tableID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Clear empties the cart and evicts its persisted slot.
func (s *CartService) Clear(ctx context.Context, tableID string) error {
	return s.store.Delete(ctx, tableID)
}

// configKey identifies a line item configuration: menu item, size, and the
// sorted set of extra ids. Instructions are deliberately excluded.
func configKey(menuItemID uint, size *models.Size, extras []models.Extra) string {
	ids := make([]string, 0, len(extras))
	for _, extra := range extras {
		ids = append(ids, extra.ID)
	}
	sort.Strings(ids)

	sizeID := ""
	if size != nil {
		sizeID = size.ID
	}
	return strconv.FormatUint(uint64(menuItemID), 10) + "|" + sizeID + "|" + strings.Join(ids, ",")
}

func dedupeExtras(extras []models.Extra) []models.Extra {
	seen := make(map[string]bool, len(extras))
	out := make([]models.Extra, 0, len(extras))
	for _, extra := range extras {
		if seen[extra.ID] {
			continue
		}
		seen[extra.ID] = true
		out = append(out, extra)
	}
	return out
}
