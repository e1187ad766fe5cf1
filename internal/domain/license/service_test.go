package license

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// memoryRepository keeps the database in memory and counts writes
type memoryRepository struct {
	db      *Database
	writes  int
	loadErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{db: NewDatabase()}
}

func (m *memoryRepository) Load(context.Context) (*Database, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	cp := *m.db
	cp.Licenses = append([]Record(nil), m.db.Licenses...)
	return &cp, nil
}

func (m *memoryRepository) Update(ctx context.Context, fn func(db *Database) (bool, error)) error {
	db, err := m.Load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(db)
	if err != nil {
		return err
	}
	if changed {
		m.db = db
		m.writes++
	}
	return nil
}

// MockExporter is a mock implementation of the Exporter interface for testing
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context, rec Record, at time.Time) (string, error) {
	args := m.Called(ctx, rec, at)
	return args.String(0), args.Error(1)
}

// MockAuditLog is a mock implementation of the AuditLog interface for testing
type MockAuditLog struct {
	mock.Mock
}

func (m *MockAuditLog) Append(ctx context.Context, entry AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedKeys(keys ...string) KeyGenerator {
	i := 0
	return func() (string, error) {
		k := keys[i%len(keys)]
		i++
		return k, nil
	}
}

func newTestService(t *testing.T, repo Repository) (*Service, *MockExporter, *MockAuditLog) {
	t.Helper()
	keys, err := NewKeyGenerator(DefaultPrefix)
	require.NoError(t, err)

	exporter := new(MockExporter)
	audit := new(MockAuditLog)
	svc := NewService(repo, exporter, audit, keys, testLogger())
	return svc, exporter, audit
}

func TestService_GenerateRevokeValidate(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc, exporter, audit := newTestService(t, repo)

	exporter.On("Export", ctx, mock.Anything, mock.Anything).Return("/tmp/receipt.lic.json", nil)
	audit.On("Append", ctx, mock.Anything).Return(nil)

	res, err := svc.Generate(ctx, GenerateRequest{Name: "Acme", Email: "a@b.com"})
	require.NoError(t, err)
	assert.True(t, IsValidKey(res.Key))
	assert.Equal(t, "/tmp/receipt.lic.json", res.ExportPath)

	ok, msg := svc.Validate(ctx, res.Key)
	assert.True(t, ok)
	assert.Equal(t, MsgValid, msg)

	changed, err := svc.Revoke(ctx, res.Key, "nonpayment")
	require.NoError(t, err)
	assert.True(t, changed)

	ok, msg = svc.Validate(ctx, res.Key)
	assert.False(t, ok)
	assert.Equal(t, "revoked: nonpayment", msg)

	first, err := svc.Get(ctx, res.Key)
	require.NoError(t, err)
	require.NotNil(t, first.RevokedAt)
	revokedAt := *first.RevokedAt

	later := revokedAt.Add(72 * time.Hour)
	svc.now = func() time.Time { return later }

	changed, err = svc.Revoke(ctx, res.Key, "x")
	require.NoError(t, err)
	assert.False(t, changed)

	rec, err := svc.Get(ctx, res.Key)
	require.NoError(t, err)
	assert.True(t, rec.Revoked)
	assert.Equal(t, "nonpayment", rec.RevokedReason)
	require.NotNil(t, rec.RevokedAt)
	assert.True(t, revokedAt.Equal(*rec.RevokedAt), "second revoke must keep the first date")

	audit.AssertNumberOfCalls(t, "Append", 2)
	audit.AssertCalled(t, "Append", ctx, mock.MatchedBy(func(e AuditEntry) bool {
		return e.Action == ActionGenerate && e.Key == res.Key && e.File == "/tmp/receipt.lic.json"
	}))
	audit.AssertCalled(t, "Append", ctx, mock.MatchedBy(func(e AuditEntry) bool {
		return e.Action == ActionRevoke && e.Key == res.Key && e.Reason == "nonpayment"
	}))
}

func TestService_GenerateInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  GenerateRequest
		msg  string
	}{
		{name: "empty name", req: GenerateRequest{Name: ""}, msg: "name is required"},
		{name: "blank name", req: GenerateRequest{Name: "   "}, msg: "name is required"},
		{name: "bad email", req: GenerateRequest{Name: "Acme", Email: "not-an-email"}, msg: "email is not well formed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepository()
			svc, exporter, audit := newTestService(t, repo)

			_, err := svc.Generate(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var derr *DomainError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.msg, derr.Message)
			assert.Equal(t, CodeInvalidInput, derr.Code)

			assert.Zero(t, repo.writes)
			exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
			audit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		})
	}
}

func TestService_GenerateTrimsInput(t *testing.T) {
	ctx := context.Background()
	svc, exporter, audit := newTestService(t, newMemoryRepository())
	exporter.On("Export", ctx, mock.Anything, mock.Anything).Return("p", nil)
	audit.On("Append", ctx, mock.Anything).Return(nil)

	res, err := svc.Generate(ctx, GenerateRequest{Name: "  Acme  ", Email: " a@b.com ", Notes: " n "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", res.Record.Name)
	assert.Equal(t, "a@b.com", res.Record.Email)
	assert.Equal(t, "n", res.Record.Notes)
	assert.False(t, res.Record.Revoked)
	assert.Nil(t, res.Record.RevokedAt)
}

func TestService_GenerateRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	const taken = "DTE-00000000-00000000-00000000-00000001"
	const fresh = "DTE-00000000-00000000-00000000-00000002"

	repo := newMemoryRepository()
	repo.db.Licenses = append(repo.db.Licenses, Record{Key: taken, Name: "old"})

	exporter := new(MockExporter)
	audit := new(MockAuditLog)
	exporter.On("Export", ctx, mock.Anything, mock.Anything).Return("p", nil)
	audit.On("Append", ctx, mock.Anything).Return(nil)

	svc := NewService(repo, exporter, audit, fixedKeys(taken, taken, fresh), testLogger())
	res, err := svc.Generate(ctx, GenerateRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, fresh, res.Key)
	assert.Len(t, repo.db.Licenses, 2)
}

func TestService_GenerateKeySpaceExhausted(t *testing.T) {
	const taken = "DTE-00000000-00000000-00000000-00000001"
	repo := newMemoryRepository()
	repo.db.Licenses = append(repo.db.Licenses, Record{Key: taken})

	svc := NewService(repo, new(MockExporter), new(MockAuditLog), fixedKeys(taken), testLogger())
	_, err := svc.Generate(context.Background(), GenerateRequest{Name: "Acme"})
	assert.ErrorIs(t, err, ErrKeySpace)
	assert.Zero(t, repo.writes)
}

func TestService_GeneratePartialIssue(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	t.Run("export fails", func(t *testing.T) {
		repo := newMemoryRepository()
		svc, exporter, audit := newTestService(t, repo)
		exporter.On("Export", ctx, mock.Anything, mock.Anything).Return("", boom)

		res, err := svc.Generate(ctx, GenerateRequest{Name: "Acme"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPartialIssue)
		assert.ErrorIs(t, err, boom)

		var perr *PartialIssueError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, StepExport, perr.Step)
		assert.Equal(t, res.Key, perr.Key)

		// the license is still stored and valid
		ok, msg := svc.Validate(ctx, res.Key)
		assert.True(t, ok)
		assert.Equal(t, MsgValid, msg)
		audit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("audit fails", func(t *testing.T) {
		repo := newMemoryRepository()
		svc, exporter, audit := newTestService(t, repo)
		exporter.On("Export", ctx, mock.Anything, mock.Anything).Return("receipt", nil)
		audit.On("Append", ctx, mock.Anything).Return(boom)

		res, err := svc.Generate(ctx, GenerateRequest{Name: "Acme"})
		var perr *PartialIssueError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, StepAudit, perr.Step)
		assert.Equal(t, "receipt", res.ExportPath)
		assert.Equal(t, 1, repo.writes)
	})
}

func TestService_Validate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	repo := newMemoryRepository()
	repo.db.Licenses = []Record{
		{Key: "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA", Name: "valid"},
		{Key: "DTE-BBBBBBBB-BBBBBBBB-BBBBBBBB-BBBBBBBB", Revoked: true, RevokedAt: &now, RevokedReason: "fraud"},
		{Key: "DTE-CCCCCCCC-CCCCCCCC-CCCCCCCC-CCCCCCCC", Revoked: true, RevokedAt: &now},
	}
	svc, _, _ := newTestService(t, repo)

	tests := []struct {
		name string
		key  string
		ok   bool
		msg  string
	}{
		{name: "valid", key: "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA", ok: true, msg: "valid"},
		{name: "surrounding whitespace", key: "  DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA\n", ok: true, msg: "valid"},
		{name: "revoked with reason", key: "DTE-BBBBBBBB-BBBBBBBB-BBBBBBBB-BBBBBBBB", msg: "revoked: fraud"},
		{name: "revoked without reason", key: "DTE-CCCCCCCC-CCCCCCCC-CCCCCCCC-CCCCCCCC", msg: "revoked"},
		{name: "unknown", key: "DTE-DDDDDDDD-DDDDDDDD-DDDDDDDD-DDDDDDDD", msg: "not found"},
		{name: "empty", key: "", msg: "not found"},
		{name: "case sensitive", key: "dte-aaaaaaaa-aaaaaaaa-aaaaaaaa-aaaaaaaa", msg: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := svc.Validate(ctx, tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestService_ValidateUnreadableStore(t *testing.T) {
	repo := newMemoryRepository()
	repo.loadErr = ErrDecryption
	svc, _, _ := newTestService(t, repo)

	ok, msg := svc.Validate(context.Background(), "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA")
	assert.False(t, ok)
	assert.Equal(t, MsgUnreadable, msg)
}

func TestService_RevokeUnknown(t *testing.T) {
	repo := newMemoryRepository()
	svc, _, audit := newTestService(t, repo)

	changed, err := svc.Revoke(context.Background(), "DTE-00000000-00000000-00000000-00000000", "x")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, repo.writes)
	audit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestService_RevokeAuditFailure(t *testing.T) {
	ctx := context.Background()
	const key = "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA"
	repo := newMemoryRepository()
	repo.db.Licenses = []Record{{Key: key}}
	svc, _, audit := newTestService(t, repo)
	audit.On("Append", ctx, mock.Anything).Return(errors.New("read-only fs"))

	changed, err := svc.Revoke(ctx, key, " chargeback ")
	assert.True(t, changed)
	assert.ErrorIs(t, err, ErrAudit)

	rec, err := svc.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, rec.Revoked)
	assert.Equal(t, "chargeback", rec.RevokedReason)
}

func TestService_List(t *testing.T) {
	repo := newMemoryRepository()
	repo.db.Licenses = []Record{
		{Key: "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA"},
		{Key: "DTE-BBBBBBBB-BBBBBBBB-BBBBBBBB-BBBBBBBB", Revoked: true},
	}
	svc, _, _ := newTestService(t, repo)

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	const key = "DTE-AAAAAAAA-AAAAAAAA-AAAAAAAA-AAAAAAAA"
	repo := newMemoryRepository()
	repo.db.Licenses = []Record{{Key: key, Name: "Acme"}}
	svc, exporter, _ := newTestService(t, repo)
	exporter.On("Export", ctx, mock.MatchedBy(func(r Record) bool { return r.Key == key }), mock.Anything).
		Return("/out/LIC.json", nil)

	path, err := svc.Export(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/out/LIC.json", path)

	_, err = svc.Export(ctx, "DTE-BBBBBBBB-BBBBBBBB-BBBBBBBB-BBBBBBBB")
	assert.ErrorIs(t, err, ErrNotFound)
}
