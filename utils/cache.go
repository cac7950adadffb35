package utils

import (
	"context"
	"log"
	"time"

	"coachhub/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// EventDeduper remembers which external events were already processed.
type EventDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewEventDeduper(client *redis.Client, prefix string, ttl time.Duration) *EventDeduper {
	return &EventDeduper{client: client, prefix: prefix, ttl: ttl}
}

// FirstSeen marks id as processed and reports whether this is the first time it was seen.
func (d *EventDeduper) FirstSeen(ctx context.Context, id string) (bool, error) {
	return d.client.SetNX(ctx, d.prefix+id, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
}

// Forget drops the marker so a failed event can be delivered again.
func (d *EventDeduper) Forget(ctx context.Context, id string) error {
	return d.client.Del(ctx, d.prefix+id).Err()
}
