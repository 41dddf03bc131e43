package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Size is a per-item variant whose modifier is added to the base price.
// The first size in a menu item's list is the customer's default selection.
type Size struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceModifier int64  `json:"priceModifier"`
}

// Extra is an optional add-on, selectable at most once per line item.
type Extra struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type MenuItem struct {
	gorm.Model
	Name         string                     `json:"name" binding:"required"`
	Description  string                     `json:"description"`
	Price        int64                      `json:"price"`
	ImageURL     string                     `json:"imageUrl"`
	CategoryID   string                     `json:"categoryId"`
	CategoryName string                     `json:"categoryName"`
	IsAvailable  bool                       `json:"isAvailable"`
	IsPopular    bool                       `json:"isPopular"`
	Sizes        datatypes.JSONSlice[Size]  `json:"sizes"`
	Extras       datatypes.JSONSlice[Extra] `json:"extras"`
}

// DefaultSize returns the conventional default selection, nil when the item
// has no size variants.
func (m *MenuItem) DefaultSize() *Size {
	if len(m.Sizes) == 0 {
		return nil
	}
	size := m.Sizes[0]
	return &size
}

// FindSize looks up a size variant by id.
func (m *MenuItem) FindSize(id string) *Size {
	for i := range m.Sizes {
		if m.Sizes[i].ID == id {
			size := m.Sizes[i]
			return &size
		}
	}
	return nil
}

// FindExtra looks up an add-on by id.
func (m *MenuItem) FindExtra(id string) *Extra {
	for i := range m.Extras {
		if m.Extras[i].ID == id {
			extra := m.Extras[i]
			return &extra
		}
	}
	return nil
}
