package crypto

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomHex(t *testing.T) {
	value, err := GenerateRandomHex(16)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{32}$`), value)

	other, err := GenerateRandomHex(16)
	require.NoError(t, err)
	assert.NotEqual(t, value, other)
}

func TestClearMemory(t *testing.T) {
	data := []byte("secret")
	ClearMemory(data)
	assert.Equal(t, make([]byte, 6), data)
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "short", in: "ab", want: "********"},
		{name: "long", in: "correct horse battery staple", want: "********"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskSecret(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.in != "" {
				assert.NotContains(t, got, tt.in[:1])
			}
		})
	}
}
