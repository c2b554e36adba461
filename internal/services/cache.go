package services

import (
	"context"
	"time"
)

// LookupCache stores dropdown data. A miss is reported as an error.
type LookupCache interface {
	SetLookup(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetLookup(ctx context.Context, key string, dest interface{}) error
	InvalidateLookups(ctx context.Context, prefix string) error
}

// OrderLocker serializes saves of the same order across requests.
type OrderLocker interface {
	AcquireOrderLock(ctx context.Context, orderNo string, ttl time.Duration) (string, error)
	ReleaseOrderLock(ctx context.Context, orderNo, token string) error
}

type noCache struct{}

// NoCache is used when Redis is not configured. Every read misses.
func NoCache() LookupCache { return noCache{} }

func (noCache) SetLookup(context.Context, string, interface{}, time.Duration) error { return nil }
func (noCache) GetLookup(context.Context, string, interface{}) error {
	return errCacheDisabled
}
func (noCache) InvalidateLookups(context.Context, string) error { return nil }

type noLock struct{}

// NoLock grants every lock. Used when Redis is not configured.
func NoLock() OrderLocker { return noLock{} }

func (noLock) AcquireOrderLock(context.Context, string, time.Duration) (string, error) {
	return "", nil
}
func (noLock) ReleaseOrderLock(context.Context, string, string) error { return nil }
