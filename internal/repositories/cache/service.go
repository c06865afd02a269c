package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"solifin/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss reports a key absent from the cache.
var ErrCacheMiss = errors.New("cache miss")

// CacheService provides JSON-marshalled caching over Redis.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheService creates a CacheService with a default TTL.
func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, ttl: defaultTTL}
}

// Set stores a value under key with the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

// SetWithTTL stores a value under key with an explicit TTL.
func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get loads a value into dest; ErrCacheMiss when the key is absent.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

// Delete removes keys from the cache.
func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// FlushAll clears the whole cache.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close releases the underlying Redis connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}

func userKey(id uint) string {
	return fmt.Sprintf("user:id:%d", id)
}

func walletKey(userID uint) string {
	return fmt.Sprintf("wallet:user:%d", userID)
}

// CacheUser stores a user under its ID key.
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	return s.Set(ctx, userKey(user.ID), user)
}

// GetUser loads a cached user by ID.
func (s *CacheService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.Get(ctx, userKey(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// InvalidateUser drops a user from the cache.
func (s *CacheService) InvalidateUser(ctx context.Context, id uint) error {
	return s.Delete(ctx, userKey(id))
}

// CacheWallet stores a wallet under its owner's key.
func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	return s.SetWithTTL(ctx, walletKey(wallet.UserID), wallet, 5*time.Minute)
}

// GetWallet loads a cached wallet by owner.
func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.Get(ctx, walletKey(userID), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// InvalidateWallet drops a wallet from the cache.
func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) error {
	return s.Delete(ctx, walletKey(userID))
}
