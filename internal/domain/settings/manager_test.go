package settings

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type memoryRepository struct {
	s *Settings
}

func (m *memoryRepository) Load(context.Context) (Settings, error) {
	if m.s == nil {
		return Defaults(), nil
	}
	return *m.s, nil
}

func (m *memoryRepository) Save(_ context.Context, s Settings) error {
	m.s = &s
	return nil
}

// MockCredentialStore is a mock implementation of the CredentialStore interface for testing
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Set(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

func (m *MockCredentialStore) Get(ctx context.Context, email string) (string, bool) {
	args := m.Called(ctx, email)
	return args.String(0), args.Bool(1)
}

func (m *MockCredentialStore) Clear(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockCredentialStore) Name() string {
	return "mock"
}

func newManager() (*Manager, *memoryRepository, *MockCredentialStore) {
	repo := &memoryRepository{}
	creds := new(MockCredentialStore)
	return NewManager(repo, creds, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, creds
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "gmail", d.Provider)
	assert.True(t, d.RememberEmail)
	assert.True(t, d.RememberPassword)
	assert.True(t, d.RememberLicense)
	assert.Equal(t, []string{".json"}, d.Filters.FileExts)
	assert.Empty(t, d.PasswordEnc)
}

func TestManager_Set(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(t *testing.T, s Settings)
	}{
		{key: "provider", value: "Outlook", check: func(t *testing.T, s Settings) { assert.Equal(t, "outlook", s.Provider) }},
		{key: "remember_password", value: "false", check: func(t *testing.T, s Settings) { assert.False(t, s.RememberPassword) }},
		{key: "filters.date_from", value: "2025-01-31", check: func(t *testing.T, s Settings) { assert.Equal(t, "2025-01-31", s.Filters.DateFrom) }},
		{key: "filters.file_exts", value: "XML, .pdf", check: func(t *testing.T, s Settings) {
			assert.Equal(t, []string{".xml", ".pdf"}, s.Filters.FileExts)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, repo, _ := newManager()
			s, err := m.Set(context.Background(), tt.key, tt.value)
			require.NoError(t, err)
			tt.check(t, s)
			require.NotNil(t, repo.s)
			tt.check(t, *repo.s)
		})
	}
}

func TestManager_SetRejects(t *testing.T) {
	tests := []struct {
		key, value string
		want       error
	}{
		{key: "nope", value: "x", want: ErrUnknownKey},
		{key: "remember_email", value: "maybe", want: ErrInvalidValue},
		{key: "filters.date_to", value: "31/01/2025", want: ErrInvalidValue},
		{key: "provider", value: " ", want: ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, repo, _ := newManager()
			_, err := m.Set(context.Background(), tt.key, tt.value)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, repo.s)
		})
	}
}

func TestManager_PasswordNoopWithoutEmail(t *testing.T) {
	ctx := context.Background()
	m, _, creds := newManager()

	require.NoError(t, m.SetPassword(ctx, "", "pw"))
	_, ok := m.GetPassword(ctx, "")
	assert.False(t, ok)
	require.NoError(t, m.ClearPassword(ctx, ""))

	creds.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	creds.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	creds.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestManager_PasswordDelegates(t *testing.T) {
	ctx := context.Background()
	m, _, creds := newManager()
	creds.On("Set", ctx, "me@x.com", "pw").Return(nil)
	creds.On("Get", ctx, "me@x.com").Return("pw", true)

	require.NoError(t, m.SetPassword(ctx, "me@x.com", "pw"))
	pw, ok := m.GetPassword(ctx, "me@x.com")
	assert.True(t, ok)
	assert.Equal(t, "pw", pw)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "filters.file_exts")
	assert.IsIncreasing(t, keys)
}
