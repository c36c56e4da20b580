package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository is the catalog store. The backing store is a namespaced
// key-value entry holding the full catalog, seeded with the default set the
// first time it is read.
type ProductRepository interface {
	EnsureSeed(ctx context.Context) error
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	DecrementStock(ctx context.Context, lines map[string]int) error
}

type RedisProductRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewRedisProductRepository(client *redis.Client, logger *zap.Logger) *RedisProductRepository {
	return &RedisProductRepository{
		client: client,
		key:    "rationalart:products",
		logger: logger,
	}
}

// EnsureSeed writes the default catalog if no catalog exists yet. The seed is
// an explicit initialize-if-absent contract, not a side effect of a read.
func (r *RedisProductRepository) EnsureSeed(ctx context.Context) error {
	data, err := json.Marshal(SeedProducts())
	if err != nil {
		return err
	}
	created, err := r.client.SetNX(ctx, r.key, data, 0).Result()
	if err != nil {
		return err
	}
	if created {
		r.logger.Info("Seeded default catalog", zap.Int("products", len(SeedProducts())))
	}
	return nil
}

func (r *RedisProductRepository) List(ctx context.Context) ([]models.Product, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		if err := r.EnsureSeed(ctx); err != nil {
			return nil, err
		}
		return SeedProducts(), nil
	}
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RedisProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// Save upserts a product into the catalog.
func (r *RedisProductRepository) Save(ctx context.Context, product *models.Product) error {
	return r.mutate(ctx, func(products []models.Product) []models.Product {
		for i := range products {
			if products[i].ID == product.ID {
				products[i] = *product
				return products
			}
		}
		return append(products, *product)
	})
}

func (r *RedisProductRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		stock = 0
	}
	found := false
	err := r.mutate(ctx, func(products []models.Product) []models.Product {
		for i := range products {
			if products[i].ID == id {
				products[i].Stock = stock
				found = true
			}
		}
		return products
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStock applies the per-product quantities from a finalized order.
// Stock is clamped at zero, never negative. Unknown product ids are skipped.
func (r *RedisProductRepository) DecrementStock(ctx context.Context, lines map[string]int) error {
	return r.mutate(ctx, func(products []models.Product) []models.Product {
		return applyDecrement(products, lines)
	})
}

// applyDecrement subtracts the ordered quantities in place, clamped at zero.
func applyDecrement(products []models.Product, lines map[string]int) []models.Product {
	for i := range products {
		qty, ok := lines[products[i].ID]
		if !ok {
			continue
		}
		products[i].Stock -= qty
		if products[i].Stock < 0 {
			products[i].Stock = 0
		}
	}
	return products
}

// mutate applies fn to the catalog under an optimistic WATCH transaction so
// concurrent writers cannot lose updates. Retries a few times on conflict.
func (r *RedisProductRepository) mutate(ctx context.Context, fn func([]models.Product) []models.Product) error {
	const maxRetries = 5

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, r.key).Result()
		var products []models.Product
		switch {
		case err == redis.Nil:
			products = SeedProducts()
		case err != nil:
			return err
		default:
			if err := json.Unmarshal([]byte(data), &products); err != nil {
				return err
			}
		}

		products = fn(products)

		updated, err := json.Marshal(products)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, updated, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := r.client.Watch(ctx, txf, r.key)
		if err == nil {
			return nil
		}
		if err == redis.TxFailedErr {
			time.Sleep(time.Duration(i+1) * 10 * time.Millisecond)
			continue
		}
		return err
	}
	return redis.TxFailedErr
}
