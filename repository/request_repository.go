package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/incognitoworld123-dev/RationalART/models"
)

// DesignRequestRepository stores commission requests in the same namespaced
// key-value store as the catalog.
type DesignRequestRepository interface {
	Append(ctx context.Context, req *models.DesignRequest) error
	List(ctx context.Context) ([]models.DesignRequest, error)
}

type RedisDesignRequestRepository struct {
	client *redis.Client
	key    string
}

func NewRedisDesignRequestRepository(client *redis.Client) *RedisDesignRequestRepository {
	return &RedisDesignRequestRepository{
		client: client,
		key:    "rationalart:requests",
	}
}

func (r *RedisDesignRequestRepository) Append(ctx context.Context, req *models.DesignRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, r.key, data).Err()
}

func (r *RedisDesignRequestRepository) List(ctx context.Context) ([]models.DesignRequest, error) {
	entries, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err == redis.Nil {
		return []models.DesignRequest{}, nil
	}
	if err != nil {
		return nil, err
	}

	requests := make([]models.DesignRequest, 0, len(entries))
	for _, entry := range entries {
		var req models.DesignRequest
		if err := json.Unmarshal([]byte(entry), &req); err != nil {
			continue
		}
		requests = append(requests, req)
	}
	return requests, nil
}
