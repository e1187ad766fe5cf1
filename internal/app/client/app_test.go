package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"licensekeeper/internal/app/client/config"
	"licensekeeper/internal/app/client/crypto"
	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/validation"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	secret, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &config.Config{
		ConfigDir:     filepath.Join(t.TempDir(), "cfg"),
		SecretKey:     secret,
		KeyPrefix:     "DTE",
		MirrorTimeout: time.Second,
	}
}

func TestApp_WithoutSecret(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.SecretKey = ""

	app, err := New(cfg, testLogger())
	require.NoError(t, err)

	_, err = app.Licenses()
	assert.ErrorIs(t, err, config.ErrMissingSecret)
	_, err = app.Validator(true)
	assert.ErrorIs(t, err, config.ErrMissingSecret)
	_, err = app.Settings()
	assert.ErrorIs(t, err, config.ErrMissingSecret)
	assert.NotNil(t, app.Verifier())
}

func TestApp_SettingsChoosesStoreOnFirstUse(t *testing.T) {
	keyring.MockInitWithError(errors.New("keyring locked"))
	t.Cleanup(keyring.MockInit)

	app, err := New(newTestConfig(t), testLogger())
	require.NoError(t, err)
	assert.Nil(t, app.settings, "keyring must not be touched before settings are needed")

	mgr, err := app.Settings()
	require.NoError(t, err)
	require.NotNil(t, mgr)
	assert.Equal(t, "file", mgr.CredentialStoreName())

	again, err := app.Settings()
	require.NoError(t, err)
	assert.Same(t, mgr, again)
}

func TestApp_InvalidSecret(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.SecretKey = "too-short"

	_, err := New(cfg, testLogger())
	assert.ErrorIs(t, err, crypto.ErrInvalidKey)
}

func TestApp_LocalLifecycle(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()

	app, err := New(newTestConfig(t), testLogger())
	require.NoError(t, err)

	licenses, err := app.Licenses()
	require.NoError(t, err)

	res, err := licenses.Generate(ctx, license.GenerateRequest{Name: "Acme", Email: "a@b.com"})
	require.NoError(t, err)
	assert.FileExists(t, res.ExportPath)

	v, err := app.Validator(false)
	require.NoError(t, err)
	out := v.Validate(ctx, res.Key)
	assert.Equal(t, validation.StatusValid, out.Status)
	assert.Equal(t, "Acme", out.Entry.Name)

	changed, err := licenses.Revoke(ctx, res.Key, "nonpayment")
	require.NoError(t, err)
	assert.True(t, changed)

	out = v.Validate(ctx, res.Key)
	assert.Equal(t, validation.StatusRevoked, out.Status)
	assert.Equal(t, "revoked: nonpayment", out.Message)

	history, err := app.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, license.ActionRevoke, history[1].Action)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, app.Report(ctx, path, true))
	assert.FileExists(t, path)

	_, err = app.Sync()
	assert.ErrorIs(t, err, ErrMirrorNotConfigured)
	_, err = app.Preferences()
	assert.ErrorIs(t, err, ErrMirrorNotConfigured)
}

func TestApp_ValidatorUsesMirror(t *testing.T) {
	keyring.MockInit()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := newTestConfig(t)
	cfg.MirrorAddress = srv.URL

	app, err := New(cfg, testLogger())
	require.NoError(t, err)

	v, err := app.Validator(false)
	require.NoError(t, err)
	out := v.Validate(context.Background(), testKey)
	assert.Equal(t, validation.StatusConnectionError, out.Status)
	assert.True(t, out.Retryable())

	_, err = app.Sync()
	assert.NoError(t, err)
}
