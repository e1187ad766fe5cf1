package preferences

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"licensekeeper/internal/app/client/crypto"
	"licensekeeper/internal/domain/mirror"
)

// MockRemote is a mock implementation of the mirror for testing
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

func newService(t *testing.T, remote *MockRemote) (*Service, *crypto.Cipher) {
	t.Helper()
	key, err := crypto.GenerateRandomBytes(crypto.KeySize)
	require.NoError(t, err)
	c, err := crypto.NewCipher(key)
	require.NoError(t, err)
	return NewService(remote, c, slog.New(slog.NewTextHandler(io.Discard, nil))), c
}

const key = "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA"

func TestService_SaveEncryptsPassword(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	svc, c := newService(t, remote)

	var sent mirror.Preferences
	remote.On("SavePreferences", ctx, key, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).(mirror.Preferences) }).
		Return(nil)

	err := svc.Save(ctx, " "+key, View{Email: " me@x.com ", Password: "hunter2", Extensions: []string{"JSON", ".csv", "json", " "}})
	require.NoError(t, err)

	assert.Equal(t, "me@x.com", sent.Email)
	assert.Equal(t, ".json,.csv", sent.Extensions)
	assert.NotContains(t, sent.PasswordEnc, "hunter2")

	plain, err := c.DecryptString(sent.PasswordEnc)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)
}

func TestService_SaveEmptyPassword(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	svc, _ := newService(t, remote)
	remote.On("SavePreferences", ctx, key, mirror.Preferences{Email: "me@x.com"}).Return(nil)

	require.NoError(t, svc.Save(ctx, key, View{Email: "me@x.com"}))
	remote.AssertExpectations(t)
}

func TestService_SaveRequiresKey(t *testing.T) {
	remote := new(MockRemote)
	svc, _ := newService(t, remote)
	err := svc.Save(context.Background(), "", View{})
	assert.ErrorIs(t, err, mirror.ErrInvalidInput)
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	svc, c := newService(t, remote)

	enc, err := c.EncryptString("hunter2")
	require.NoError(t, err)
	remote.On("Lookup", ctx, key).Return(&mirror.Entry{SavedEmail: "me@x.com", PasswordEnc: enc, SavedExtensions: ".json,.csv"}, nil)

	view, err := svc.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, View{Email: "me@x.com", Password: "hunter2", Extensions: []string{".json", ".csv"}}, view)
}

func TestService_LoadUndecryptablePassword(t *testing.T) {
	remote := new(MockRemote)
	svc, _ := newService(t, remote)
	view := svc.FromEntry(&mirror.Entry{PasswordEnc: "garbage"})
	assert.Equal(t, "", view.Password)
}

func TestService_LoadUnavailable(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	svc, _ := newService(t, remote)
	remote.On("Lookup", ctx, key).Return(nil, mirror.ErrUnavailable)

	_, err := svc.Load(ctx, key)
	assert.ErrorIs(t, err, mirror.ErrUnavailable)
}

func TestSplitExtensions(t *testing.T) {
	assert.Equal(t, []string{}, SplitExtensions(""))
	assert.Equal(t, []string{".pdf", ".xml"}, SplitExtensions("PDF, .xml ,pdf"))
}
