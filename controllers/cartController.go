package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/models"
	"github.com/qrdine/qrdine-api/services"
	"gorm.io/gorm"
)

type CartController struct {
	carts *services.CartService
	db    *gorm.DB
}

func NewCartController(carts *services.CartService, db *gorm.DB) *CartController {
	return &CartController{carts: carts, db: db}
}

type addCartItemBody struct {
	MenuItemID          uint     `json:"menuItemId" binding:"required"`
	Quantity            int      `json:"quantity"`
	SizeID              string   `json:"sizeId"`
	ExtraIDs            []string `json:"extraIds"`
	SpecialInstructions string   `json:"specialInstructions"`
}

// GetCart returns the table's cart with live totals and the badge count.
func (c *CartController) GetCart(ctx *gin.Context) {
	tableID := ctx.Param("tableId")

	items, err := c.carts.Get(ctx.Request.Context(), tableID)
	if err != nil {
		log.Println("Unable to load cart:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	totals, err := services.OrderTotals(items, services.ConfiguredTaxRate())
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":     items,
		"totals":    totals,
		"itemCount": count,
	})
}

// AddCartItem resolves the configuration against the live catalog, snapshots
// the menu item into the cart, and merges with an identical existing line.
func (c *CartController) AddCartItem(ctx *gin.Context) {
	tableID := ctx.Param("tableId")

	var body addCartItemBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	var menuItem models.MenuItem
	if err := c.db.First(&menuItem, body.MenuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Menu item not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch menu item")
		}
		return
	}

	if !menuItem.IsAvailable {
		sendErrorResponse(ctx, http.StatusConflict, menuItem.Name+" is currently unavailable")
		return
	}

	size := menuItem.DefaultSize()
	if body.SizeID != "" {
		if size = menuItem.FindSize(body.SizeID); size == nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown size for this item")
			return
		}
	}

	var extras []models.Extra
	for _, id := range body.ExtraIDs {
		extra := menuItem.FindExtra(id)
		if extra == nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown extra for this item")
			return
		}
		extras = append(extras, *extra)
	}

	items, err := c.carts.AddItem(ctx.Request.Context(), tableID, menuItem, body.Quantity, size, extras, body.SpecialInstructions)
	if err != nil {
		if errors.Is(err, services.ErrNegativeUnitPrice) {
			sendErrorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Println("Unable to add cart item:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": menuItem.Name + " added to cart",
		"items":   items,
	})
}

// UpdateCartItem changes a line's quantity; zero or less removes the line.
func (c *CartController) UpdateCartItem(ctx *gin.Context) {
	tableID := ctx.Param("tableId")
	lineID := ctx.Param("itemId")

	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	items, err := c.carts.UpdateQuantity(ctx.Request.Context(), tableID, lineID, *body.Quantity)
	if err != nil {
		log.Println("Unable to update cart item:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": items})
}

// RemoveCartItem drops a line. Removing an absent line succeeds.
func (c *CartController) RemoveCartItem(ctx *gin.Context) {
	tableID := ctx.Param("tableId")
	lineID := ctx.Param("itemId")

	items, err := c.carts.RemoveItem(ctx.Request.Context(), tableID, lineID)
	if err != nil {
		log.Println("Unable to remove cart item:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": items})
}

// ClearCart empties the table's cart.
func (c *CartController) ClearCart(ctx *gin.Context) {
	tableID := ctx.Param("tableId")

	if err := c.carts.Clear(ctx.Request.Context(), tableID); err != nil {
		log.Println("Unable to clear cart:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}
