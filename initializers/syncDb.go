package initializers

import (
	"log"

	"github.com/qrdine/qrdine-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) {
	db.AutoMigrate(&models.User{}, &models.MenuItem{}, &models.Table{}, &models.Order{}, &models.OrderItem{})
	log.Println("Database synced successfully.")
}
