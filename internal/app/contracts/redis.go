package contracts

import (
	"context"
	"time"
)

// RedisRepository is the narrow key/value surface the slot sweeper lock
// needs. Values are stored JSON encoded.
type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, exp time.Duration) error
	// TrySetNX reports whether the key was created by this call.
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}
