package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"gorm.io/gorm"

	"productoptions/entity"
	"productoptions/pkg/apperr"
)

type ProductOptionRepository struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func NewProductOptionRepository(db *gorm.DB, logger *slog.Logger) *ProductOptionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductOptionRepository{DB: db, Log: logger.With("component", "product_option_repository")}
}

// Attach options เข้า product ตามลำดับที่ส่งมา ต่อท้าย option ที่ผูกไว้แล้ว
// option ที่ผูกอยู่แล้วจะถูกย้ายตำแหน่งตามลำดับใหม่ (ไม่สร้างซ้ำ)
func (r *ProductOptionRepository) Attach(ctx context.Context, shop, productID string, optionIDs []string) error {
	ids := uniqueIDs(optionIDs)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last sql.NullInt64
		if err := tx.Model(&entity.ProductOption{}).
			Where("product_id = ? AND shop = ? AND option_id NOT IN ?", productID, shop, ids).
			Select("MAX(position)").
			Row().
			Scan(&last); err != nil {
			return err
		}
		base := 0
		if last.Valid {
			base = int(last.Int64) + 1
		}

		for i, optionID := range ids {
			po := entity.ProductOption{
				ProductID: productID,
				OptionID:  optionID,
				Shop:      shop,
				Position:  base + i,
			}
			if err := tx.
				Where("product_id = ? AND option_id = ?", productID, optionID).
				Assign(map[string]any{"position": base + i}).
				FirstOrCreate(&po).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.Log.ErrorContext(ctx, "attach options failed", "shop", shop, "product_id", productID, "err", err)
		return apperr.StorageErr("applyOptions", err)
	}
	return nil
}

// Detach option ออกจาก product
func (r *ProductOptionRepository) Detach(ctx context.Context, shop, productID, optionID string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("shop = ? AND product_id = ? AND option_id = ?", shop, productID, optionID).
		Delete(&entity.ProductOption{})
	if res.Error != nil {
		r.Log.ErrorContext(ctx, "detach option failed", "shop", shop, "product_id", productID, "err", res.Error)
		return false, apperr.StorageErr("detachOption", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ดึง options ของ product
func (r *ProductOptionRepository) FindByProduct(ctx context.Context, shop, productID string) ([]entity.Option, error) {
	var opts []entity.Option
	err := r.DB.WithContext(ctx).
		Joins("JOIN product_options po ON po.option_id = options.id").
		Where("po.product_id = ? AND po.shop = ? AND options.shop = ?", productID, shop, shop).
		Order("po.position ASC").
		Order("po.created_at ASC").
		Preload("Values", valuesByPosition).
		Find(&opts).Error
	if err != nil {
		r.Log.ErrorContext(ctx, "list product options failed", "shop", shop, "product_id", productID, "err", err)
		return nil, apperr.StorageErr("listProductOptions", err)
	}
	return opts, nil
}
