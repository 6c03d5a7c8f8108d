package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// ConnectRedis initializes a singleton Redis client based on environment
// variables. Redis holds short-lived state only (OTP codes), so a failed
// connection disables the OTP flow instead of crashing the server.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		pass := os.Getenv("REDIS_PASS")
		dbNum := 0
		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			if v, e := strconv.Atoi(dbStr); e == nil {
				dbNum = v
			}
		}

		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: pass,
			DB:       dbNum,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			err = fmt.Errorf("redis ping failed: %w", pingErr)
			log.Printf("Redis unavailable at %s, OTP sign-in disabled: %v", addr, pingErr)
			return
		}
		redisClient = client
	})
	return redisClient, err
}

// GetRedisClient returns the initialized client, or nil when Redis was
// never reachable.
func GetRedisClient() *redis.Client {
	return redisClient
}

// SetRedisClient replaces the client, used by tests.
func SetRedisClient(c *redis.Client) {
	redisClient = c
}
