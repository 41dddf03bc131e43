package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/models"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type TableController struct {
	db *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{db: db}
}

func (c *TableController) CreateTable(ctx *gin.Context) {
	var table models.Table
	if err := ctx.ShouldBindJSON(&table); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if table.Name == "" {
		respondWithError(ctx, http.StatusBadRequest, "Table name is required", nil)
		return
	}

	if err := c.db.Create(&table).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create table", err)
		return
	}

	ctx.JSON(http.StatusCreated, table)
}

func (c *TableController) GetTables(ctx *gin.Context) {
	var tables []models.Table
	if result := c.db.Order("name").Find(&tables); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch tables", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tables": tables})
}

func (c *TableController) GetTable(ctx *gin.Context) {
	tableID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid table ID", err)
		return
	}

	var table models.Table
	if err := c.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Table not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve table", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, table)
}

func (c *TableController) UpdateTable(ctx *gin.Context) {
	tableID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid table ID", err)
		return
	}

	var table models.Table
	if err := c.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Table not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve table", err)
		}
		return
	}

	var updates models.Table
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updates.ID = table.ID
	if err := c.db.Model(&table).Select("*").Omit("id", "created_at").Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update table", err)
		return
	}

	ctx.JSON(http.StatusOK, table)
}

// SetOccupancy marks a table occupied or free and tracks the active order.
func (c *TableController) SetOccupancy(ctx *gin.Context) {
	tableID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid table ID", err)
		return
	}

	var body struct {
		IsOccupied     bool  `json:"isOccupied"`
		CurrentOrderID *uint `json:"currentOrderId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updates := map[string]interface{}{
		"is_occupied":      body.IsOccupied,
		"current_order_id": body.CurrentOrderID,
	}
	if !body.IsOccupied {
		updates["current_order_id"] = nil
	}

	result := c.db.Model(&models.Table{}).Where("id = ?", tableID).Updates(updates)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update table", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Table not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Table updated", "isOccupied": body.IsOccupied})
}

// DeleteTable removes the table permanently. Orders reference tables weakly,
// so existing history keeps its table id even after the table is gone.
func (c *TableController) DeleteTable(ctx *gin.Context) {
	tableID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid table ID", err)
		return
	}

	result := c.db.Unscoped().Delete(&models.Table{}, tableID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete table", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Table not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}

// GetTableQR renders the table's ordering link as a QR PNG, ready to print.
func (c *TableController) GetTableQR(ctx *gin.Context) {
	tableID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid table ID", err)
		return
	}

	var table models.Table
	if err := c.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Table not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve table", err)
		}
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	link := fmt.Sprintf("%s/menu?table=%d", frontend, table.ID)

	size := 256
	if s, err := strconv.Atoi(ctx.DefaultQuery("size", "256")); err == nil && s >= 64 && s <= 1024 {
		size = s
	}

	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to generate QR code", err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=table-%d.png", table.ID))
	ctx.Data(http.StatusOK, "image/png", png)
}
