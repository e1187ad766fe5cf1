package cmd

import (
	"bytes"
	"strings"
	"testing"

	"licensekeeper/internal/app/client/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeygen(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"keygen"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	_, err := rootCmd.ExecuteC()
	require.NoError(t, err)

	key, err := crypto.ParseKey(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Len(t, key, crypto.KeySize)
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"admin", "init"},
		{"admin", "change-password"},
		{"admin", "verify"},
		{"license", "generate"},
		{"license", "revoke"},
		{"license", "validate"},
		{"license", "report"},
		{"license", "sync"},
		{"prefs", "save"},
		{"settings", "set"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}
