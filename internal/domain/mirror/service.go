package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
)

const DefaultCacheTTL = 30 * time.Second

type Servicer interface {
	Lookup(ctx context.Context, key string) (*Entry, error)
	SavePreferences(ctx context.Context, key string, prefs Preferences) error
	Upsert(ctx context.Context, update StatusUpdate) error
	Ready(ctx context.Context) error
}

// Service is the mirror's server side: repository plus an optional read cache.
type Service struct {
	repo     Repository
	cache    Cache
	ttl      time.Duration
	validate *validator.Validate
	log      *slog.Logger
	// writes is bumped before every repository write. A lookup that sees it
	// move while reading does not leave its result in the cache.
	writes atomic.Uint64
}

func NewService(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	if cache == nil {
		cache = nopCache{}
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		ttl:      ttl,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With("component", "mirror_service"),
	}
}

func (s *Service) Lookup(ctx context.Context, key string) (*Entry, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrNotFound
	}

	if e, ok := s.cache.Get(ctx, key); ok {
		return e, nil
	}

	gen := s.writes.Load()
	e, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("mirror lookup failed", "error", err)
		}
		return nil, err
	}

	if s.writes.Load() != gen {
		return e, nil
	}
	s.cache.Set(ctx, *e, s.ttl)
	if s.writes.Load() != gen {
		s.cache.Delete(ctx, key)
	}
	return e, nil
}

func (s *Service) SavePreferences(ctx context.Context, key string, prefs Preferences) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrNotFound
	}
	if err := s.validate.Struct(prefs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.writes.Add(1)
	if err := s.repo.UpdatePreferences(ctx, key, prefs); err != nil {
		return err
	}
	s.cache.Delete(ctx, key)
	return nil
}

// Upsert records issuance or revocation. A revoked license stays revoked.
func (s *Service) Upsert(ctx context.Context, update StatusUpdate) error {
	update.LicenseKey = strings.TrimSpace(update.LicenseKey)
	update.RevokedReason = strings.TrimSpace(update.RevokedReason)
	if err := s.validate.Struct(update); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !update.IsRevoked {
		update.RevokedReason = ""
	}

	s.writes.Add(1)
	if err := s.repo.UpsertStatus(ctx, update); err != nil {
		s.log.Error("mirror upsert failed", "error", err)
		return err
	}
	s.cache.Delete(ctx, update.LicenseKey)
	return nil
}

func (s *Service) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
