// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/canteen/internal/config"
	"github.com/Skotchmaster/canteen/internal/db"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}
