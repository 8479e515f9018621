package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"productoptions/entity"
	"productoptions/pkg/apperr"
	"productoptions/pkg/catalog"
	"productoptions/repository"
)

type ProductOptionService struct {
	Repo    *repository.ProductOptionRepository
	Options *repository.OptionRepository
	Catalog catalog.Catalog
	Log     *slog.Logger
}

func NewProductOptionService(
	repo *repository.ProductOptionRepository,
	options *repository.OptionRepository,
	cat catalog.Catalog,
	logger *slog.Logger,
) *ProductOptionService {
	if cat == nil {
		cat = catalog.IDOnly{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductOptionService{
		Repo:    repo,
		Options: options,
		Catalog: cat,
		Log:     logger.With("component", "product_option_service"),
	}
}

// Apply resolves product (a handle or an id) and attaches optionIDs to it in
// the given order. Every option must belong to shop.
func (s *ProductOptionService) Apply(ctx context.Context, shop, product string, optionIDs []string) (string, error) {
	const op = "applyOptions"
	product = strings.TrimSpace(product)
	if shop == "" {
		return "", apperr.ValidationErr(op, "shop is required")
	}
	if product == "" {
		return "", apperr.ValidationErr(op, "product is required")
	}
	if len(optionIDs) == 0 {
		return "", apperr.ValidationErr(op, "at least one option id is required")
	}

	productID, err := s.Catalog.ResolveProduct(ctx, shop, product)
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return "", apperr.ValidationErr(op, "product "+product+" not found")
	case errors.Is(err, catalog.ErrHandlesUnsupported):
		return "", apperr.ValidationErr(op, "product handles cannot be resolved; pass a product id")
	case err != nil:
		return "", apperr.StorageErr(op, err)
	}

	missing, err := s.Options.MissingOptionIDs(ctx, shop, optionIDs)
	if err != nil {
		return "", err
	}
	if len(missing) > 0 {
		return "", apperr.NotFoundOrForbiddenErr(op, missing)
	}

	if err := s.Repo.Attach(ctx, shop, productID, optionIDs); err != nil {
		return "", err
	}
	s.Log.InfoContext(ctx, "options applied", "shop", shop, "product_id", productID, "options", len(optionIDs))
	return productID, nil
}

func (s *ProductOptionService) Detach(ctx context.Context, shop, productID, optionID string) error {
	removed, err := s.Repo.Detach(ctx, shop, productID, optionID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFoundOrForbiddenErr("detachOption", []string{optionID})
	}
	return nil
}

func (s *ProductOptionService) ListByProduct(ctx context.Context, shop, productID string) ([]entity.Option, error) {
	return s.Repo.FindByProduct(ctx, shop, productID)
}
