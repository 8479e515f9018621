package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"productoptions/configs"
	"productoptions/pkg/catalog"
	"productoptions/repository"
)

type fixture struct {
	options  *OptionService
	actions  *ActionService
	products *ProductOptionService
}

func newFixture(t *testing.T, cat catalog.Catalog) fixture {
	t.Helper()
	db, err := configs.OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	optRepo := repository.NewOptionRepository(db, log)
	options := NewOptionService(optRepo, log)
	return fixture{
		options:  options,
		actions:  NewActionService(options, log),
		products: NewProductOptionService(repository.NewProductOptionRepository(db, log), optRepo, cat, log),
	}
}

func intPtr(n int) *int { return &n }
