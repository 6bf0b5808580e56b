package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"amparo/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// CacheService fronts hot lookups (users by id/email, elders by id) with a
// JSON-encoded Redis cache. Misses fall through to the database.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	user, err := s.GetUser(ctx, s.GenerateKey("user", "id", userID))
	if err != nil {
		// Nothing cached under the id key; drop just that key.
		return s.Delete(ctx, s.GenerateKey("user", "id", userID))
	}

	return s.Delete(ctx,
		s.GenerateKey("user", "id", userID),
		s.GenerateKey("user", "email", user.Email),
	)
}

// Elder caching

func (s *CacheService) CacheElder(ctx context.Context, elder *models.Elder) error {
	if elder == nil {
		return errors.New("cannot cache nil elder")
	}
	return s.Set(ctx, s.GenerateKey("elder", "id", elder.ID), elder)
}

func (s *CacheService) GetElder(ctx context.Context, elderID uint) (*models.Elder, error) {
	var elder models.Elder
	found, err := s.Get(ctx, s.GenerateKey("elder", "id", elderID), &elder)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("elder not found in cache")
	}
	return &elder, nil
}

func (s *CacheService) InvalidateElder(ctx context.Context, elderID uint) error {
	return s.Delete(ctx, s.GenerateKey("elder", "id", elderID))
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll flushes all keys from the cache.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
