package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"subhealth/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClient() (*RedisClient, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://:redis123@localhost:6379/0"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	_, err = client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		ctx:    ctx,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func multimodalKey(userID uint) string {
	return fmt.Sprintf("risk:multimodal:%d", userID)
}

func contextualKey(userID uint) string {
	return fmt.Sprintf("risk:contextual:%d", userID)
}

// StoreMultimodalRisk caches the scored condition set. Invalidated
// whenever a recompute lands new snapshot data.
func (r *RedisClient) StoreMultimodalRisk(userID uint, response *models.MultimodalRiskResponse, duration time.Duration) error {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal multimodal risk: %w", err)
	}

	err = r.client.Set(r.ctx, multimodalKey(userID), jsonData, duration).Err()
	if err != nil {
		return fmt.Errorf("failed to store multimodal risk in Redis: %w", err)
	}
	return nil
}

// GetMultimodalRisk returns the cached response, a hit flag, and any
// transport error. A miss is not an error.
func (r *RedisClient) GetMultimodalRisk(userID uint) (*models.MultimodalRiskResponse, bool, error) {
	data, err := r.client.Get(r.ctx, multimodalKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get multimodal risk from Redis: %w", err)
	}

	var response models.MultimodalRiskResponse
	if err := json.Unmarshal([]byte(data), &response); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal multimodal risk: %w", err)
	}
	return &response, true, nil
}

// StoreContextualRisk caches the fused daily payload.
func (r *RedisClient) StoreContextualRisk(userID uint, response *models.ContextualRiskResponse, duration time.Duration) error {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal contextual risk: %w", err)
	}

	err = r.client.Set(r.ctx, contextualKey(userID), jsonData, duration).Err()
	if err != nil {
		return fmt.Errorf("failed to store contextual risk in Redis: %w", err)
	}
	return nil
}

func (r *RedisClient) GetContextualRisk(userID uint) (*models.ContextualRiskResponse, bool, error) {
	data, err := r.client.Get(r.ctx, contextualKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get contextual risk from Redis: %w", err)
	}

	var response models.ContextualRiskResponse
	if err := json.Unmarshal([]byte(data), &response); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal contextual risk: %w", err)
	}
	return &response, true, nil
}

// InvalidateUser drops both cached risk payloads for a user.
func (r *RedisClient) InvalidateUser(userID uint) error {
	return r.client.Del(r.ctx, multimodalKey(userID), contextualKey(userID)).Err()
}

// GetStatus reports pool health for the diagnostics endpoint.
func (r *RedisClient) GetStatus() (map[string]interface{}, error) {
	info, err := r.client.Info(r.ctx).Result()
	if err != nil {
		return nil, err
	}

	stats := r.client.PoolStats()

	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
		"redis_info":   info,
	}, nil
}
