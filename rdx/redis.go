package rdx

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Connect builds the client for addr and checks it answers.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password, // Empty if no password
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Printf("[rdx] connected to %s", addr)
	return client, nil
}
