package license

import (
	"testing"
	"time"

	"licensekeeper/internal/domain/license"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Алиса В...", truncate("Алиса Владимировна", 10))
}

func TestDetails(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		entry license.AuditEntry
		want  string
	}{
		{
			name:  "revoke shows reason",
			entry: license.AuditEntry{TS: now, Action: license.ActionRevoke, Reason: "refund"},
			want:  "refund",
		},
		{
			name:  "generate with email",
			entry: license.AuditEntry{TS: now, Action: license.ActionGenerate, Name: "Alice", Email: "a@x.io"},
			want:  "Alice <a@x.io>",
		},
		{
			name:  "generate without email",
			entry: license.AuditEntry{TS: now, Action: license.ActionGenerate, Name: "Bob"},
			want:  "Bob",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, details(tt.entry))
		})
	}
}
