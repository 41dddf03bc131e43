package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/models"
	"gorm.io/gorm"
)

type MenuController struct {
	db *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{db: db}
}

// validateMenuItem enforces catalog invariants before anything touches the
// database: non-negative base price, non-negative extras, and when sizes are
// present the list must be non-empty with the default first.
func validateMenuItem(item *models.MenuItem) error {
	if item.Price < 0 {
		return errors.New("price must not be negative")
	}
	for _, extra := range item.Extras {
		if extra.Price < 0 {
			return fmt.Errorf("extra %q has a negative price", extra.Name)
		}
	}
	for _, size := range item.Sizes {
		if item.Price+size.PriceModifier < 0 {
			return fmt.Errorf("size %q drives the unit price below zero", size.Name)
		}
	}
	return nil
}

func (c *MenuController) CreateMenuItem(ctx *gin.Context) {
	var item models.MenuItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := validateMenuItem(&item); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item", err)
		return
	}

	if err := c.db.Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create menu item", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// GetMenu lists the catalog. `?available=true` narrows to orderable items
// for the customer-facing menu; staff views fetch everything.
func (c *MenuController) GetMenu(ctx *gin.Context) {
	query := c.db.Model(&models.MenuItem{})

	if ctx.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var items []models.MenuItem
	if result := query.Order("category_name, name").Find(&items); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch menu", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"menu": items})
}

func (c *MenuController) GetMenuItem(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item ID", err)
		return
	}

	var item models.MenuItem
	result := c.db.First(&item, itemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Menu item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve menu item", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func (c *MenuController) UpdateMenuItem(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item ID", err)
		return
	}

	var item models.MenuItem
	if err := c.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Menu item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve menu item", err)
		}
		return
	}

	var updates models.MenuItem
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateMenuItem(&updates); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item", err)
		return
	}

	updates.ID = item.ID
	if err := c.db.Model(&item).Select("*").Omit("id", "created_at").Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update menu item", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// ToggleAvailability flips the high-churn availability flag. A missing item
// is reported as not-found, distinct from a write failure, so optimistic
// clients know whether to roll back or drop the row.
func (c *MenuController) ToggleAvailability(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item ID", err)
		return
	}

	var body struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result := c.db.Model(&models.MenuItem{}).
		Where("id = ?", itemID).
		Update("is_available", body.IsAvailable)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update availability", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Menu item not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Availability updated", "isAvailable": body.IsAvailable})
}

// DeleteMenuItem removes the catalog row permanently. Orders keep their own
// snapshots, so history is unaffected.
func (c *MenuController) DeleteMenuItem(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item ID", err)
		return
	}

	result := c.db.Unscoped().Delete(&models.MenuItem{}, itemID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete menu item", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Menu item not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadMenuItemImage stores the image in S3 and saves the public URL on the
// menu item.
func (c *MenuController) UploadMenuItemImage(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid menu item ID", err)
		return
	}

	var item models.MenuItem
	if err := c.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Menu item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate menu item", err)
		}
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to read uploaded file", err)
		return
	}
	defer f.Close()

	uniqueFilename := fmt.Sprintf("menu/%d-%s-%s", itemID, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	if err := c.db.Model(&item).Update("image_url", result.Location).Error; err != nil {
		log.Printf("Image uploaded but not saved to menu item %d: %v", itemID, err)
		respondWithError(ctx, http.StatusInternalServerError, "Image uploaded but not saved", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "url": result.Location})
}
