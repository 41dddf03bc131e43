package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/qrdine/qrdine-api/models"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrInvalidPayment = errors.New("payment method is required")
)

// OrderStore is the persistence boundary for orders. List returns the full
// set ordered by creation time descending with items preloaded. Lookups and
// updates on absent ids return ErrOrderNotFound, distinct from other
// persistence failures.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
	SaveFeedback(ctx context.Context, id uint, feedback models.Feedback) error
	Delete(ctx context.Context, id uint) error
}

// Broadcaster fans a consistent snapshot of the full order set out to every
// live viewer (kitchen board, admin board, customer tracking pages).
type Broadcaster interface {
	Broadcast(orders []models.Order)
}

// OrderEvent is the lifecycle record published to the event stream.
type OrderEvent struct {
	Type    string             `json:"type"`
	OrderID uint               `json:"orderId"`
	TableID *uint              `json:"tableId,omitempty"`
	Status  models.OrderStatus `json:"status"`
	Total   int64              `json:"total"`
	At      time.Time          `json:"at"`
}

// EventPublisher emits order lifecycle events. Publishing is best-effort and
// must never fail a request.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent)
}

// Notifier pushes a newly created order to an external webhook, best-effort.
type Notifier interface {
	OrderCreated(ctx context.Context, order models.Order)
}

// SubmitRequest carries everything checkout provides besides the cart itself.
type SubmitRequest struct {
	TableID       *uint
	CartKey       string
	CustomerName  string
	Phone         string
	PaymentMethod string
}

// OrderService coordinates the order lifecycle: cart snapshot to persisted
// record to real-time fan-out. Hub, events and notifier may be nil.
type OrderService struct {
	store    OrderStore
	carts    *CartService
	hub      Broadcaster
	events   EventPublisher
	notifier Notifier
}

func NewOrderService(store OrderStore, carts *CartService, hub Broadcaster, events EventPublisher, notifier Notifier) *OrderService {
	return &OrderService{store: store, carts: carts, hub: hub, events: events, notifier: notifier}
}

// Submit snapshots the table's cart into a new pending order, freezes totals
// computed by the pricing engine, and persists it. The cart is cleared only
// after persistence succeeds, so a failed submission leaves it intact for a
// retry.
func (s *OrderService) Submit(ctx context.Context, req SubmitRequest) (*models.Order, error) {
	if req.PaymentMethod == "" {
		return nil, ErrInvalidPayment
	}

	items, err := s.carts.Get(ctx, req.CartKey)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals, err := OrderTotals(items, s.carts.taxRate)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Status:        models.StatusPending,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Items:         snapshotItems(items),
	}

	if err := s.store.Create(ctx, order); err != nil {
		return nil, err
	}

	// Persistence succeeded; a failed cart eviction must not fail checkout.
	if err := s.carts.Clear(ctx, req.CartKey); err != nil {
		log.Println("order created but cart not cleared:", err)
	}

	s.publish(ctx, "order.created", *order)
	if s.notifier != nil {
		s.notifier.OrderCreated(ctx, *order)
	}
	s.broadcast(ctx)
	return order, nil
}

// Advance moves an order to its single legal next status. Terminal orders
// yield ErrNoTransition and are left untouched, which also makes concurrent
// double-advances harmless.
func (s *OrderService) Advance(ctx context.Context, orderID uint) (models.OrderStatus, error) {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return "", err
	}

	next, ok := NextStatus(order.Status)
	if !ok {
		return "", fmt.Errorf("%w: order %d is %s", ErrNoTransition, orderID, order.Status)
	}

	if err := s.store.UpdateStatus(ctx, orderID, next); err != nil {
		return "", err
	}

	order.Status = next
	s.publish(ctx, "order.status_changed", *order)
	s.broadcast(ctx)
	return next, nil
}

// Cancel is the administrative alternate terminal, legal from any
// non-terminal state.
func (s *OrderService) Cancel(ctx context.Context, orderID uint) error {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !CanCancel(order.Status) {
		return fmt.Errorf("%w: order %d is %s", ErrNoTransition, orderID, order.Status)
	}

	if err := s.store.UpdateStatus(ctx, orderID, models.StatusCancelled); err != nil {
		return err
	}

	order.Status = models.StatusCancelled
	s.publish(ctx, "order.cancelled", *order)
	s.broadcast(ctx)
	return nil
}

// SubmitFeedback records a customer rating on a finished order.
func (s *OrderService) SubmitFeedback(ctx context.Context, orderID uint, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if _, err := s.store.Get(ctx, orderID); err != nil {
		return err
	}
	return s.store.SaveFeedback(ctx, orderID, models.Feedback{
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	})
}

// Delete removes an order administratively.
func (s *OrderService) Delete(ctx context.Context, orderID uint) error {
	if err := s.store.Delete(ctx, orderID); err != nil {
		return err
	}
	s.broadcast(ctx)
	return nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.store.Get(ctx, orderID)
}

// PublishSnapshot pushes the current order set to subscribers without a
// preceding mutation. Called once at startup so new websocket clients have a
// snapshot waiting.
func (s *OrderService) PublishSnapshot(ctx context.Context) {
	s.broadcast(ctx)
}

func (s *OrderService) broadcast(ctx context.Context) {
	if s.hub == nil {
		return
	}
	orders, err := s.store.List(ctx)
	if err != nil {
		log.Println("unable to load orders for broadcast:", err)
		return
	}
	s.hub.Broadcast(orders)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order models.Order) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, OrderEvent{
		Type:    eventType,
		OrderID: order.ID,
		TableID: order.TableID,
		Status:  order.Status,
		Total:   order.Total,
		At:      time.Now(),
	})
}

// snapshotItems deep-copies cart lines into order rows so later cart or
// catalog mutations cannot reach the frozen record.
func snapshotItems(items []models.CartItem) []models.OrderItem {
	rows := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		unit := UnitPrice(item.MenuItem, item.SelectedSize, item.SelectedExtras)

		var size *models.Size
		if item.SelectedSize != nil {
			copied := *item.SelectedSize
			size = &copied
		}
		extras := make([]models.Extra, len(item.SelectedExtras))
		copy(extras, item.SelectedExtras)

		rows = append(rows, models.OrderItem{
			MenuItemID:          item.MenuItem.ID,
			Name:                item.MenuItem.Name,
			CategoryName:        item.MenuItem.CategoryName,
			BasePrice:           item.MenuItem.Price,
			SelectedSize:        size,
			SelectedExtras:      extras,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
			UnitPrice:           unit,
			LineTotal:           unit * int64(item.Quantity),
		})
	}
	return rows
}
