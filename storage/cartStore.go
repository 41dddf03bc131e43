package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qrdine/qrdine-api/models"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// RedisCartStore keeps one cart document per table, written whole on every
// mutation. Carts have no expiry: they live until checkout clears them.
type RedisCartStore struct {
	client *redis.Client
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{client: client}
}

func (s *RedisCartStore) Load(ctx context.Context, tableID string) ([]models.CartItem, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+tableID).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart for table %s: %w", tableID, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding cart for table %s: %w", tableID, err)
	}
	return items, nil
}

func (s *RedisCartStore) Save(ctx context.Context, tableID string, items []models.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart for table %s: %w", tableID, err)
	}
	if err := s.client.Set(ctx, cartKeyPrefix+tableID, raw, 0).Err(); err != nil {
		return fmt.Errorf("saving cart for table %s: %w", tableID, err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, tableID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+tableID).Err(); err != nil {
		return fmt.Errorf("clearing cart for table %s: %w", tableID, err)
	}
	return nil
}
