package models

// CartItem is one configured line of a table's cart. The menu item is an
// embedded snapshot, not a live reference: later catalog edits must not change
// the price of something already in a cart.
type CartItem struct {
	ID                  string   `json:"id"`
	MenuItem            MenuItem `json:"menuItem"`
	Quantity            int      `json:"quantity"`
	SelectedSize        *Size    `json:"selectedSize,omitempty"`
	SelectedExtras      []Extra  `json:"selectedExtras"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// Cart is the table-scoped collection of line items. It is not a database
// table: carts live in Redis under one slot per table and are serialized
// whole on every mutation.
type Cart struct {
	TableID string     `json:"tableId"`
	Items   []CartItem `json:"items"`
}
