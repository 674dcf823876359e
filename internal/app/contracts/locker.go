package contracts

import (
	"context"
	"time"
)

// Lease is a held lock. Token proves ownership on Release and Extend.
type Lease struct {
	Key   string
	Token string
	TTL   time.Duration
}

// LockerService hands out expiring leases on named keys. The consultation
// sweeper takes one per tick so only a single replica cancels expired rows.
type LockerService interface {
	// Acquire returns a nil lease without error when another holder owns key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error)
	// Release deletes the key only while lease still owns it.
	Release(ctx context.Context, lease *Lease) error
	// Extend pushes the expiry out by lease.TTL and fails once ownership is lost.
	Extend(ctx context.Context, lease *Lease) error
}
