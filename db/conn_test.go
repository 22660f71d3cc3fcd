package db

import (
	"bitwise74/medflow-api/config"
	"bitwise74/medflow-api/internal/model"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSqlite(t *testing.T) {
	c := &config.Config{}
	c.Database.Driver = "sqlite"
	c.Database.DSN = filepath.Join(t.TempDir(), "medflow.db")

	conn, err := New(c)
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, m := range []any{&model.User{}, &model.Category{}, &model.Question{}} {
		assert.True(t, conn.Migrator().HasTable(m))
	}
}

func TestNewUnknownDriver(t *testing.T) {
	c := &config.Config{}
	c.Database.Driver = "oracle"

	_, err := New(c)
	assert.Error(t, err)
}
