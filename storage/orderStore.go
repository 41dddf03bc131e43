package storage

import (
	"context"
	"errors"
	"time"

	"github.com/qrdine/qrdine-api/models"
	"github.com/qrdine/qrdine-api/services"
	"gorm.io/gorm"
)

// GormOrderStore is the MySQL-backed order store.
type GormOrderStore struct {
	db *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

func (s *GormOrderStore) Create(ctx context.Context, order *models.Order) error {
	// Items are created in the same transaction so a half-written order can
	// never become visible to the boards.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (s *GormOrderStore) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	result := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func (s *GormOrderStore) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	result := s.db.WithContext(ctx).Preload("Items").First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, services.ErrOrderNotFound
		}
		return nil, result.Error
	}
	return &order, nil
}

func (s *GormOrderStore) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrOrderNotFound
	}
	return nil
}

func (s *GormOrderStore) SaveFeedback(ctx context.Context, id uint, feedback models.Feedback) error {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrOrderNotFound
		}
		return err
	}
	order.Feedback = &feedback
	return s.db.WithContext(ctx).Save(&order).Error
}

func (s *GormOrderStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Order{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrOrderNotFound
	}
	return nil
}
