package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/models"
	"github.com/qrdine/qrdine-api/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type submitOrderBody struct {
	TableID       *uint  `json:"tableId"`
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// SubmitOrder checks out the table's cart into a new pending order.
func (c *OrderController) SubmitOrder(ctx *gin.Context) {
	tableID := ctx.Param("tableId")

	var body submitOrderBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := c.orders.Submit(ctx.Request.Context(), services.SubmitRequest{
		TableID:       body.TableID,
		CartKey:       tableID,
		CustomerName:  body.CustomerName,
		Phone:         body.Phone,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			sendErrorResponse(ctx, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, services.ErrInvalidPayment):
			sendErrorResponse(ctx, http.StatusBadRequest, "Payment method is required")
		case errors.Is(err, services.ErrNegativeUnitPrice):
			sendErrorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Println("Unable to submit order:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to place order")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed",
		"order":   order,
	})
}

// GetOrders lists all orders, newest first, with optional status filtering
// and page/limit pagination for the admin history view.
func (c *OrderController) GetOrders(ctx *gin.Context) {
	orders, err := c.orders.List(ctx.Request.Context())
	if err != nil {
		log.Println("Unable to list orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	if status := ctx.Query("status"); status != "" {
		filtered := orders[:0]
		for _, order := range orders {
			if order.Status == models.OrderStatus(status) {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}

	total := len(orders)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders[start:end],
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := c.orders.Get(ctx.Request.Context(), uint(orderID))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Unable to fetch order:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// AdvanceOrder moves an order one step along its lifecycle. Advancing a
// terminal order is a conflict, not a server failure.
func (c *OrderController) AdvanceOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	next, err := c.orders.Advance(ctx.Request.Context(), uint(orderID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrNoTransition):
			sendErrorResponse(ctx, http.StatusConflict, err.Error())
		default:
			log.Println("Unable to advance order:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order updated", "status": next})
}

// CancelOrder moves a non-terminal order to cancelled.
func (c *OrderController) CancelOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if err := c.orders.Cancel(ctx.Request.Context(), uint(orderID)); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrNoTransition):
			sendErrorResponse(ctx, http.StatusConflict, err.Error())
		default:
			log.Println("Unable to cancel order:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to cancel order")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order cancelled", "status": models.StatusCancelled})
}

// SubmitFeedback attaches a customer rating to an order.
func (c *OrderController) SubmitFeedback(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var body struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := c.orders.SubmitFeedback(ctx.Request.Context(), uint(orderID), body.Rating, body.Comment); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrInvalidRating):
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		default:
			log.Println("Unable to save feedback:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save feedback")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Thank you for your feedback"})
}

// DeleteOrder removes an order from history.
func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if err := c.orders.Delete(ctx.Request.Context(), uint(orderID)); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Unable to delete order:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted"})
}
