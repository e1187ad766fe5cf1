package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/mirror"
)

type licenseLister interface {
	List(ctx context.Context, includeRevoked bool) ([]license.Record, error)
}

// StatsStore хранит статистику синхронизации между запусками
type StatsStore interface {
	Load(ctx context.Context, dst any) error
	Save(ctx context.Context, src any) error
}

// SyncService отправляет статусы локальных лицензий на зеркало
type SyncService struct {
	licenses licenseLister
	remote   mirror.Remote
	store    StatsStore
	log      *slog.Logger
	config   SyncConfig

	mu        sync.Mutex
	isSyncing bool
	loaded    bool
	stats     SyncStats
}

// SyncConfig конфигурация синхронизации
type SyncConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// SyncError ошибка синхронизации одной лицензии
type SyncError struct {
	Key       string    `json:"key"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
	Retry     int       `json:"retry"`
}

// SyncStats статистика синхронизации
type SyncStats struct {
	TotalSyncs     int       `json:"total_syncs"`
	LastSuccessful time.Time `json:"last_successful"`
	LastFailed     time.Time `json:"last_failed"`
	TotalUploaded  int       `json:"total_uploaded"`
	TotalErrors    int       `json:"total_errors"`
}

// SyncResult результат синхронизации
type SyncResult struct {
	Success   bool          `json:"success"`
	Uploaded  int           `json:"uploaded"`
	Revoked   int           `json:"revoked"`
	Errors    []SyncError   `json:"errors"`
	Duration  time.Duration `json:"duration"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
}

// NewSyncService создает новый сервис синхронизации. Без store статистика
// живет только в памяти процесса.
func NewSyncService(licenses licenseLister, remote mirror.Remote, store StatsStore, cfg SyncConfig, log *slog.Logger) *SyncService {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &SyncService{
		licenses: licenses,
		remote:   remote,
		store:    store,
		config:   cfg,
		log:      log.With("component", "sync_service"),
	}
}

// Sync отправляет все лицензии, включая отозванные. Зеркало само
// гарантирует, что отзыв не откатывается.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		return nil, fmt.Errorf("синхронизация уже выполняется")
	}
	s.isSyncing = true
	s.loadStatsLocked(ctx)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	result := &SyncResult{StartTime: time.Now()}

	records, err := s.licenses.List(ctx, true)
	if err != nil {
		s.finish(ctx, result)
		return result, fmt.Errorf("чтение локальных лицензий: %w", err)
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			s.finish(ctx, result)
			return result, err
		}

		retry, err := s.upload(ctx, rec)
		if err != nil {
			result.Errors = append(result.Errors, SyncError{
				Key:       rec.Key,
				Error:     err.Error(),
				Timestamp: time.Now(),
				Retry:     retry,
			})
			s.log.Error("Ошибка отправки лицензии после всех попыток",
				"key", license.MaskKey(rec.Key),
				"error", err)
			continue
		}

		result.Uploaded++
		if rec.Revoked {
			result.Revoked++
		}
	}

	result.Success = len(result.Errors) == 0
	s.finish(ctx, result)

	s.log.Info("Синхронизация завершена",
		"uploaded", result.Uploaded,
		"errors", len(result.Errors),
		"duration", result.Duration)
	return result, nil
}

// upload повторяет только временные сбои
func (s *SyncService) upload(ctx context.Context, rec license.Record) (int, error) {
	update := mirror.StatusUpdate{
		LicenseKey:    rec.Key,
		Name:          rec.Name,
		Email:         rec.Email,
		IssuedAt:      rec.IssuedAt,
		IsRevoked:     rec.Revoked,
		RevokedReason: rec.RevokedReason,
	}

	var err error
	for retry := 0; retry <= s.config.MaxRetries; retry++ {
		if retry > 0 {
			s.log.Debug("Повторная попытка отправки лицензии",
				"key", license.MaskKey(rec.Key),
				"retry", retry)
			select {
			case <-ctx.Done():
				return retry, ctx.Err()
			case <-time.After(s.config.RetryDelay):
			}
		}

		err = s.remote.Upsert(ctx, update)
		if err == nil || !IsTransient(err) {
			return retry + 1, err
		}
	}
	return s.config.MaxRetries + 1, err
}

func (s *SyncService) finish(ctx context.Context, result *SyncResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.TotalSyncs++
	s.stats.TotalUploaded += result.Uploaded
	s.stats.TotalErrors += len(result.Errors)
	if result.Success {
		s.stats.LastSuccessful = result.EndTime
	} else {
		s.stats.LastFailed = result.EndTime
	}

	if s.store == nil {
		return
	}
	if err := s.store.Save(context.WithoutCancel(ctx), s.stats); err != nil {
		s.log.Warn("Не удалось сохранить статистику синхронизации", "error", err)
	}
}

func (s *SyncService) loadStatsLocked(ctx context.Context) {
	if s.loaded || s.store == nil {
		return
	}
	s.loaded = true
	if err := s.store.Load(ctx, &s.stats); err != nil {
		s.log.Warn("Не удалось прочитать статистику синхронизации", "error", err)
	}
}

// GetStats возвращает копию накопленной статистики
func (s *SyncService) GetStats(ctx context.Context) SyncStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadStatsLocked(ctx)
	return s.stats
}
