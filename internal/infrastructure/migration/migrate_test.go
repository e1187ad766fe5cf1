package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"licensekeeper/internal/app/server/config"
)

// MockMigrator - мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func testConfig(driver, uri string) *config.Config {
	return &config.Config{DB: config.DB{Driver: driver, DatabaseURI: uri, Migrations: "migrations"}}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var gotSource, gotDB string
	engine := func(source, db string) (Migrator, error) {
		gotSource, gotDB = source, db
		return mockM, nil
	}

	err := NewMigration(testConfig(config.DriverPostgres, "postgres://localhost/mirror"), engine).Up()

	assert.NoError(t, err)
	assert.Equal(t, "file://migrations/postgres", gotSource)
	assert.Equal(t, "postgres://localhost/mirror", gotDB)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(source, db string) (Migrator, error) {
		return mockM, nil
	}

	assert.NoError(t, NewMigration(testConfig(config.DriverSQLite, "mirror.db"), engine).Up())
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(source, db string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	err := NewMigration(testConfig(config.DriverSQLite, "mirror.db"), engine).Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_Up_CloseError(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, errors.New("db close"))

	engine := func(source, db string) (Migrator, error) { return mockM, nil }

	err := NewMigration(testConfig(config.DriverSQLite, "mirror.db"), engine).Up()
	assert.ErrorContains(t, err, "db close")
}

func TestMigration_DatabaseURL(t *testing.T) {
	mg := NewMigration(testConfig(config.DriverSQLite, "/var/lib/mirror.db"), nil)
	assert.Equal(t, "sqlite3:///var/lib/mirror.db", mg.DatabaseURL())
	assert.Equal(t, "file://migrations/sqlite", mg.SourceURL())
}
