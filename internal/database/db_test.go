package database

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDirectoryAndTables(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "readings.db")

	db, err := Open(&Config{Type: "sqlite", DSN: dsn}, logrus.New())
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable("readings"))
	assert.FileExists(t, dsn)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestOpenUnsupportedType(t *testing.T) {
	_, err := Open(&Config{Type: "oracle", DSN: "x"}, logrus.New())
	assert.Error(t, err)
}

func TestSetupAndMustDB(t *testing.T) {
	original := DB
	t.Cleanup(func() { DB = original })

	DB = nil
	assert.PanicsWithValue(t, ErrNotInitialized, func() { MustDB() })

	require.NoError(t, Setup(&Config{Type: "sqlite", DSN: "file:setup_test?mode=memory&cache=shared"}, logrus.New()))
	assert.NotNil(t, MustDB())
	assert.NoError(t, Close())
}
