package models

import "gorm.io/gorm"

// Table is a physical restaurant table. Orders reference tables by id only,
// so deleting a table never cascades to its historical orders.
type Table struct {
	gorm.Model
	Name           string `json:"name" binding:"required"`
	Seats          int    `json:"seats"`
	IsOccupied     bool   `json:"isOccupied"`
	CurrentOrderID *uint  `json:"currentOrderId,omitempty"`
}
