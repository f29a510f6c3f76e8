package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMigrates(t *testing.T) {
	db, err := Init(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable("generation_records"))
	assert.True(t, db.Migrator().HasTable("app_settings"))
}
