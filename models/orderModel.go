package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order. Transitions are governed by
// the state machine in the services package.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
)

type Feedback struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order is a frozen financial record: items and totals are copied out of the
// cart at submission time and never recomputed afterwards.
type Order struct {
	gorm.Model
	TableID       *uint       `json:"tableId"` // nil means delivery/pickup; weak reference, never a FK
	CustomerName  string      `json:"customerName"`
	Phone         string      `json:"phone"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	Subtotal      int64       `json:"subtotal"`
	Tax           int64       `json:"tax"`
	Total         int64       `json:"total"`
	Feedback      *Feedback   `json:"feedback,omitempty" gorm:"serializer:json"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is the persisted snapshot of one cart line at checkout.
type OrderItem struct {
	gorm.Model
	OrderID             uint                       `json:"orderId"`
	MenuItemID          uint                       `json:"menuItemId"`
	Name                string                     `json:"name"`
	CategoryName        string                     `json:"categoryName"`
	BasePrice           int64                      `json:"basePrice"`
	SelectedSize        *Size                      `json:"selectedSize,omitempty" gorm:"serializer:json"`
	SelectedExtras      datatypes.JSONSlice[Extra] `json:"selectedExtras"`
	Quantity            int                        `json:"quantity"`
	SpecialInstructions string                     `json:"specialInstructions,omitempty"`
	UnitPrice           int64                      `json:"unitPrice"`
	LineTotal           int64                      `json:"lineTotal"`
}
