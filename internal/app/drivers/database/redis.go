package database

import (
	"context"
	"log"
	"net"
	"telemed-service/internal/app/config"

	"github.com/redis/go-redis/v9"
)

func redisOptions(cfg config.Redis) *redis.Options {
	options := &redis.Options{
		Addr:        net.JoinHostPort(cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: connectTimeout(cfg.ConnectTimeoutInSeconds),
	}
	if cfg.PoolSize > 0 {
		options.PoolSize = cfg.PoolSize
	}
	return options
}

// NewRedisClient backs the sweeper leader lock only, so a small pool is enough.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	options := redisOptions(driverConfig.Redis)
	rdb := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), options.DialTimeout)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		log.Fatalf("Could not connect to Redis at %s (db %d): %v", options.Addr, options.DB, err)
	}

	log.Printf("Successfully connected to redis at %s (db %d)", options.Addr, options.DB)
	return rdb
}
