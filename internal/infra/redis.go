package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis parses a redis:// URL and returns a connected client.
// The invoice job queues and their DLQ live on this connection, so a
// broken Redis fails startup instead of surfacing later as lost jobs.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
