package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/mirror"
)

type staticLister struct {
	records []license.Record
	err     error
}

func (s staticLister) List(context.Context, bool) ([]license.Record, error) {
	return s.records, s.err
}

// MockRemote is a mock implementation of mirror.Remote for testing
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) Lookup(ctx context.Context, key string) (*mirror.Entry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mirror.Entry), args.Error(1)
}

func (m *MockRemote) SavePreferences(ctx context.Context, key string, prefs mirror.Preferences) error {
	return m.Called(ctx, key, prefs).Error(0)
}

func (m *MockRemote) Upsert(ctx context.Context, update mirror.StatusUpdate) error {
	return m.Called(ctx, update).Error(0)
}

func TestSyncService_Sync(t *testing.T) {
	ctx := context.Background()
	records := []license.Record{
		{Key: "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA", Name: "a"},
		{Key: "DTE-BBBBBBBB-BBBBBBBB-BBBBBBBB-BBBBBBBB", Name: "b", Revoked: true, RevokedReason: "fraud"},
	}

	remote := new(MockRemote)
	remote.On("Upsert", ctx, mock.Anything).Return(nil)

	svc := NewSyncService(staticLister{records: records}, remote, nil, SyncConfig{}, testLogger())
	res, err := svc.Sync(ctx)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Uploaded)
	assert.Equal(t, 1, res.Revoked)
	remote.AssertCalled(t, "Upsert", ctx, mock.MatchedBy(func(u mirror.StatusUpdate) bool {
		return u.LicenseKey == records[1].Key && u.IsRevoked && u.RevokedReason == "fraud"
	}))

	stats := svc.GetStats(ctx)
	assert.Equal(t, 1, stats.TotalSyncs)
	assert.Equal(t, 2, stats.TotalUploaded)
	assert.False(t, stats.LastSuccessful.IsZero())
}

func TestSyncService_RetriesTransientOnly(t *testing.T) {
	ctx := context.Background()
	rec := license.Record{Key: "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA"}

	t.Run("transient then success", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("Upsert", ctx, mock.Anything).Return(fmt.Errorf("%w: 503", mirror.ErrUnavailable)).Once()
		remote.On("Upsert", ctx, mock.Anything).Return(nil).Once()

		svc := NewSyncService(staticLister{records: []license.Record{rec}}, remote, nil, SyncConfig{MaxRetries: 2, RetryDelay: time.Millisecond}, testLogger())
		res, err := svc.Sync(ctx)
		require.NoError(t, err)
		assert.True(t, res.Success)
		remote.AssertNumberOfCalls(t, "Upsert", 2)
	})

	t.Run("permanent failure is not retried", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("Upsert", ctx, mock.Anything).Return(errors.New("ошибка сервера: статус 401"))

		svc := NewSyncService(staticLister{records: []license.Record{rec}}, remote, nil, SyncConfig{MaxRetries: 3, RetryDelay: time.Millisecond}, testLogger())
		res, err := svc.Sync(ctx)
		require.NoError(t, err)
		assert.False(t, res.Success)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, rec.Key, res.Errors[0].Key)
		remote.AssertNumberOfCalls(t, "Upsert", 1)
	})

	t.Run("gives up after retries", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("Upsert", ctx, mock.Anything).Return(mirror.ErrUnavailable)

		svc := NewSyncService(staticLister{records: []license.Record{rec}}, remote, nil, SyncConfig{MaxRetries: 2, RetryDelay: time.Millisecond}, testLogger())
		res, err := svc.Sync(ctx)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, 3, res.Errors[0].Retry)
		remote.AssertNumberOfCalls(t, "Upsert", 3)
		assert.Equal(t, 1, svc.GetStats(ctx).TotalErrors)
	})
}

func TestSyncService_LocalStoreUnreadable(t *testing.T) {
	remote := new(MockRemote)
	svc := NewSyncService(staticLister{err: license.ErrDecryption}, remote, nil, SyncConfig{}, testLogger())

	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, license.ErrDecryption)
	remote.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

type memoryStatsStore struct {
	data []byte
}

func (m *memoryStatsStore) Load(_ context.Context, dst any) error {
	if m.data == nil {
		return nil
	}
	return json.Unmarshal(m.data, dst)
}

func (m *memoryStatsStore) Save(_ context.Context, src any) error {
	data, err := json.Marshal(src)
	m.data = data
	return err
}

func TestSyncService_StatsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	store := &memoryStatsStore{}
	records := []license.Record{{Key: "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA"}}

	remote := new(MockRemote)
	remote.On("Upsert", ctx, mock.Anything).Return(nil)

	first := NewSyncService(staticLister{records: records}, remote, store, SyncConfig{}, testLogger())
	_, err := first.Sync(ctx)
	require.NoError(t, err)

	// Новый процесс CLI видит статистику прошлых запусков
	second := NewSyncService(staticLister{records: records}, remote, store, SyncConfig{}, testLogger())
	assert.Equal(t, 1, second.GetStats(ctx).TotalSyncs)

	_, err = second.Sync(ctx)
	require.NoError(t, err)

	stats := NewSyncService(staticLister{}, remote, store, SyncConfig{}, testLogger()).GetStats(ctx)
	assert.Equal(t, 2, stats.TotalSyncs)
	assert.Equal(t, 2, stats.TotalUploaded)
	assert.False(t, stats.LastSuccessful.IsZero())
}
