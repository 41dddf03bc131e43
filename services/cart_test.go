package services

import (
	"context"
	"testing"

	"github.com/qrdine/qrdine-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCartStore is an in-memory CartStore for tests.
type memCartStore struct {
	carts map[string][]models.CartItem
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string][]models.CartItem)}
}

func (s *memCartStore) Load(_ context.Context, tableID string) ([]models.CartItem, error) {
	items := s.carts[tableID]
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *memCartStore) Save(_ context.Context, tableID string, items []models.CartItem) error {
	saved := make([]models.CartItem, len(items))
	copy(saved, items)
	s.carts[tableID] = saved
	return nil
}

func (s *memCartStore) Delete(_ context.Context, tableID string) error {
	delete(s.carts, tableID)
	return nil
}

func testMenuItem() models.MenuItem {
	item := models.MenuItem{
		Name:         "Masala Dosa",
		Price:        300,
		CategoryName: "South Indian",
		IsAvailable:  true,
	}
	item.ID = 7
	return item
}

func TestAddItemMergesIdenticalConfiguration(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	ctx := context.Background()
	item := testMenuItem()
	size := &models.Size{ID: "r", Name: "Regular"}
	extras := []models.Extra{{ID: "cheese", Name: "Cheese", Price: 50}}

	_, err := svc.AddItem(ctx, "t1", item, 1, size, extras, "less spicy")
	require.NoError(t, err)

	items, err := svc.AddItem(ctx, "t1", item, 2, size, extras, "extra spicy")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "less spicy", items[0].SpecialInstructions)
}

func TestAddItemExtraOrderDoesNotSplitLines(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	ctx := context.Background()
	item := testMenuItem()
	cheese := models.Extra{ID: "cheese", Price: 50}
	butter := models.Extra{ID: "butter", Price: 30}

	_, err := svc.AddItem(ctx, "t1", item, 1, nil, []models.Extra{cheese, butter}, "")
	require.NoError(t, err)

	items, err := svc.AddItem(ctx, "t1", item, 1, nil, []models.Extra{butter, cheese}, "")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItemDifferentSizeCreatesNewLine(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	ctx := context.Background()
	item := testMenuItem()

	_, err := svc.AddItem(ctx, "t1", item, 1, &models.Size{ID: "r"}, nil, "")
	require.NoError(t, err)

	items, err := svc.AddItem(ctx, "t1", item, 1, &models.Size{ID: "l", PriceModifier: 100}, nil, "")
	require.NoError(t, err)

	assert.Len(t, items, 2)
}

func TestAddItemClampsQuantityToOne(t *testing.T) {
	svc := NewCartService(newMemCartStore())

	items, err := svc.AddItem(context.Background(), "t1", testMenuItem(), 0, nil, nil, "")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddItemRejectsNegativeUnitPrice(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	size := &models.Size{ID: "broken", PriceModifier: -500}

	_, err := svc.AddItem(context.Background(), "t1", testMenuItem(), 1, size, nil, "")
	require.ErrorIs(t, err, ErrNegativeUnitPrice)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	ctx := context.Background()

	items, err := svc.AddItem(ctx, "t1", testMenuItem(), 2, nil, nil, "")
	require.NoError(t, err)
	lineID := items[0].ID

	items, err = svc.UpdateQuantity(ctx, "t1", lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = svc.AddItem(ctx, "t1", testMenuItem(), 1, nil, nil, "")
	require.NoError(t, err)
	items, err = svc.UpdateQuantity(ctx, "t1", items[0].ID, -3)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantityMissingLineIsNoop(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "t1", testMenuItem(), 1, nil, nil, "")
	require.NoError(t, err)

	items, err := svc.UpdateQuantity(ctx, "t1", "no-such-line", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItemMissingLineSucceeds(t *testing.T) {
	svc := NewCartService(newMemCartStore())

	items, err := svc.RemoveItem(context.Background(), "t1", "no-such-line")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartsAreScopedPerTable(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "t1", testMenuItem(), 1, nil, nil, "")
	require.NoError(t, err)

	other, err := svc.Get(ctx, "t2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestItemCountSumsQuantities(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	ctx := context.Background()
	item := testMenuItem()

	_, err := svc.AddItem(ctx, "t1", item, 2, nil, nil, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "t1", item, 3, &models.Size{ID: "l", PriceModifier: 100}, nil, "")
	require.NoError(t, err)

	count, err := svc.ItemCount(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestClearEmptiesCart(t *testing.T) {
	svc := NewCartService(newMemCartStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "t1", testMenuItem(), 1, nil, nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "t1"))

	items, err := svc.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
