package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"complyhub-backend/shared/config"
)

// CacheManager wraps the Redis connection used for webhook event dedup.
// The cache is a fast path only: the database conditional claim remains the
// authority on whether a process may be provisioned.
type CacheManager struct {
	client *redis.Client
	ctx    context.Context
}

var (
	globalCacheManager *CacheManager

	// SeenEventTTL bounds how long a processor event ID is remembered.
	SeenEventTTL = 24 * time.Hour
)

// InitCacheManager initializes the global cache manager
func InitCacheManager() error {
	cfg := config.GetConfig()

	redisDB, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		log.Printf("❌ Invalid Redis DB number: %s, using default 0", cfg.RedisDB)
		redisDB = 0
	}

	// Create Redis client
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       redisDB,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	globalCacheManager = &CacheManager{
		client: client,
		ctx:    ctx,
	}

	log.Println("✅ Cache manager initialized")
	return nil
}

// GetCacheManager returns the global cache manager (nil if not initialized)
func GetCacheManager() *CacheManager {
	return globalCacheManager
}

func eventKey(eventID string) string {
	return fmt.Sprintf("webhook:event:%s", eventID)
}

// MarkEventSeen records a processor event ID. Returns true when this is the
// first time the event was seen.
func (cm *CacheManager) MarkEventSeen(eventID string) (bool, error) {
	if eventID == "" {
		return true, nil
	}
	return cm.client.SetNX(cm.ctx, eventKey(eventID), time.Now().UTC().Format(time.RFC3339), SeenEventTTL).Result()
}

// IsEventSeen reports whether a processor event ID was already recorded
func (cm *CacheManager) IsEventSeen(eventID string) (bool, error) {
	count, err := cm.client.Exists(cm.ctx, eventKey(eventID)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Close closes the Redis connection
func (cm *CacheManager) Close() error {
	if cm.client != nil {
		return cm.client.Close()
	}
	return nil
}
