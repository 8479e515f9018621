package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"productoptions/configs"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := configs.OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepo(t *testing.T) *OptionRepository {
	t.Helper()
	return NewOptionRepository(newTestDB(t), quietLogger())
}

func mustCreate(t *testing.T, r *OptionRepository, shop, name string, position int, values ...string) string {
	t.Helper()
	opt, err := r.CreateOption(context.Background(), shop, CreateOptionInput{
		Name:     name,
		Position: position,
		Values:   Values(values...),
	})
	require.NoError(t, err)
	return opt.ID
}
