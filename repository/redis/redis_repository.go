package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	redisclient "github.com/kartanikah/wedding-commerce/cmd/redis"
	"github.com/kartanikah/wedding-commerce/model"
)

// Repository is the read cache over the catalog. All methods degrade
// to no-ops when the client is not initialized.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetProduct(ctx context.Context, id uint64) (*model.ProductEntity, error)
	SetProduct(ctx context.Context, product *model.ProductEntity, ttl time.Duration) error
	DeleteProduct(ctx context.Context, id uint64) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

func productKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

// Get retrieves a value by key from Redis
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	client := redisclient.Get()
	if client == nil {
		return "", nil
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetWithTTL stores a key/value pair with time-to-live
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (r *redis) Delete(ctx context.Context, key string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, key).Err()
}

// GetProduct returns the cached product, or (nil, nil) on a miss.
func (r *redis) GetProduct(ctx context.Context, id uint64) (*model.ProductEntity, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, nil
	}
	val, err := client.Get(ctx, productKey(id)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product model.ProductEntity
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redis) SetProduct(ctx context.Context, product *model.ProductEntity, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	b, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return client.Set(ctx, productKey(product.ID), string(b), ttl).Err()
}

func (r *redis) DeleteProduct(ctx context.Context, id uint64) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, productKey(id)).Err()
}
