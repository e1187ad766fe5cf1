package license

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyGenerator(t *testing.T) {
	gen, err := NewKeyGenerator("")
	require.NoError(t, err)

	const n = 2000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		key, err := gen()
		require.NoError(t, err)
		assert.True(t, IsValidKey(key), key)
		assert.True(t, strings.HasPrefix(key, "DTE-"))
		seen[key] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestNewKeyGenerator_Prefix(t *testing.T) {
	gen, err := NewKeyGenerator(" acme ")
	require.NoError(t, err)
	key, err := gen()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "ACME-"))

	_, err = NewKeyGenerator("no spaces")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Acme Corp", want: "Acme_Corp"},
		{in: "  ", want: "unnamed"},
		{in: "", want: "unnamed"},
		{in: "a/../b", want: "a_b"},
		{in: "José & Co.", want: "Jos_Co_"},
		{in: "keep-this_one", want: "keep-this_one"},
		{in: strings.Repeat("x", 80), want: strings.Repeat("x", 60)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestShortKey(t *testing.T) {
	assert.Equal(t, "9ABCDE", ShortKey("DTE-11111111-22222222-33333333-4569ABCDE"))
	assert.Equal(t, "ABC", ShortKey("abc"))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "DTE-1234...CDEF", MaskKey("DTE-12345678-00000000-00000000-0000CDEF"))
	assert.Equal(t, "*****", MaskKey("short"))
}
