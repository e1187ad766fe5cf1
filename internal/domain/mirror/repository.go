package mirror

import (
	"context"
	"time"
)

// Remote is what the client side needs from a mirror.
type Remote interface {
	Lookup(ctx context.Context, key string) (*Entry, error)
	SavePreferences(ctx context.Context, key string, prefs Preferences) error
	Upsert(ctx context.Context, update StatusUpdate) error
}

type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	// UpsertStatus never clears a revocation already stored.
	UpsertStatus(ctx context.Context, update StatusUpdate) error
	// UpdatePreferences returns ErrNotFound for unknown keys.
	UpdatePreferences(ctx context.Context, key string, prefs Preferences) error
	Ping(ctx context.Context) error
}

type Cache interface {
	Get(ctx context.Context, key string) (*Entry, bool)
	Set(ctx context.Context, entry Entry, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (*Entry, bool) { return nil, false }
func (nopCache) Set(context.Context, Entry, time.Duration)  {}
func (nopCache) Delete(context.Context, string)             {}
