package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

func NewRedisConnection(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not ping redis at %s: %w", addr, err)
	}

	return client, nil
}
