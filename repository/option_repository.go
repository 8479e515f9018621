package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"productoptions/entity"
	"productoptions/pkg/apperr"
)

type OptionRepository struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func NewOptionRepository(db *gorm.DB, logger *slog.Logger) *OptionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &OptionRepository{DB: db, Log: logger.With("component", "option_repository")}
}

type DeleteResult struct {
	Count          int             `json:"count"`
	DeletedOptions []entity.Option `json:"deletedOptions"`
}

func valuesByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ดึง Option ทั้งหมดของร้าน (พร้อม Values) เรียงตาม position
func (r *OptionRepository) ListOptions(ctx context.Context, shop string) ([]entity.Option, error) {
	const op = "listOptions"
	if shop == "" {
		return nil, apperr.ValidationErr(op, "shop is required")
	}
	var opts []entity.Option
	err := r.DB.WithContext(ctx).
		Preload("Values", valuesByPosition).
		Where("shop = ?", shop).
		Order("position ASC").
		Order("created_at ASC").
		Find(&opts).Error
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return opts, nil
}

// ดึง Option เดียว ต้องเป็นของร้านนี้เท่านั้น
func (r *OptionRepository) FindOption(ctx context.Context, shop, id string) (*entity.Option, error) {
	const op = "findOption"
	if shop == "" || id == "" {
		return nil, apperr.ValidationErr(op, "shop and option id are required")
	}
	var opt entity.Option
	err := r.DB.WithContext(ctx).
		Preload("Values", valuesByPosition).
		Where("id = ? AND shop = ?", id, shop).
		First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundOrForbiddenErr(op, []string{id})
	}
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return &opt, nil
}

// สร้าง Option พร้อม Values ใน transaction เดียว
func (r *OptionRepository) CreateOption(ctx context.Context, shop string, in CreateOptionInput) (*entity.Option, error) {
	const op = "createOption"
	name := strings.TrimSpace(in.Name)
	if shop == "" {
		return nil, apperr.ValidationErr(op, "shop is required")
	}
	if name == "" {
		return nil, apperr.ValidationErr(op, "option name is required")
	}
	typ := in.Type
	if typ == "" {
		typ = entity.OptionTypeText
	}

	opt := entity.Option{
		Shop:       shop,
		Name:       name,
		Type:       typ,
		Position:   in.Position,
		IsRequired: in.IsRequired,
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&opt).Error; err != nil {
			return err
		}
		values := buildValues(opt.ID, in.Values)
		if len(values) > 0 {
			if err := tx.Create(&values).Error; err != nil {
				return err
			}
		}
		opt.Values = values
		return nil
	})
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}

	r.Log.InfoContext(ctx, "option created", "shop", shop, "option_id", opt.ID, "values", len(opt.Values))
	return &opt, nil
}

// UpdateOption deletes every value of the option, inserts the replacement set
// and then updates the scalar columns. Value ids change on every update.
func (r *OptionRepository) UpdateOption(ctx context.Context, shop, id string, in UpdateOptionInput) (*entity.Option, error) {
	const op = "updateOption"
	name := strings.TrimSpace(in.Name)
	if shop == "" {
		return nil, apperr.ValidationErr(op, "shop is required")
	}
	if id == "" {
		return nil, apperr.ValidationErr(op, "option id is required")
	}
	if name == "" {
		return nil, apperr.ValidationErr(op, "option name is required")
	}

	var out entity.Option
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entity.Option
		err := tx.Where("id = ? AND shop = ?", id, shop).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundOrForbiddenErr(op, []string{id})
		}
		if err != nil {
			return err
		}
		if in.Type != "" && in.Type != current.Type {
			return apperr.ValidationErr(op, "option type cannot be changed after creation")
		}

		if err := tx.Where("option_id = ?", id).Delete(&entity.OptionValue{}).Error; err != nil {
			return err
		}
		values := buildValues(id, in.Values)
		if len(values) > 0 {
			if err := tx.Create(&values).Error; err != nil {
				return err
			}
		}

		fields := map[string]any{
			"name":       name,
			"updated_at": time.Now(),
		}
		if in.Position != nil {
			fields["position"] = *in.Position
		}
		if in.IsRequired != nil {
			fields["is_required"] = *in.IsRequired
		}
		if err := tx.Model(&entity.Option{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Preload("Values", valuesByPosition).First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}

	r.Log.InfoContext(ctx, "option updated", "shop", shop, "option_id", id, "values", len(out.Values))
	return &out, nil
}

// DeleteOptions removes the given options of shop together with their values
// and product links. Nothing is deleted unless every id belongs to shop.
func (r *OptionRepository) DeleteOptions(ctx context.Context, ids []string, shop string) (*DeleteResult, error) {
	const op = "deleteOptions"
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, apperr.ValidationErr(op, "at least one option id is required")
	}
	if shop == "" {
		return nil, apperr.ValidationErr(op, "shop is required")
	}

	var out DeleteResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found []entity.Option
		if err := tx.Preload("Values", valuesByPosition).
			Where("shop = ? AND id IN ?", shop, ids).
			Order("position ASC").
			Find(&found).Error; err != nil {
			return err
		}
		if missing := missingIDs(ids, found); len(missing) > 0 {
			return apperr.NotFoundOrForbiddenErr(op, missing)
		}

		if err := tx.Where("option_id IN ?", ids).Delete(&entity.ProductOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("option_id IN ?", ids).Delete(&entity.OptionValue{}).Error; err != nil {
			return err
		}
		res := tx.Where("shop = ? AND id IN ?", shop, ids).Delete(&entity.Option{})
		if res.Error != nil {
			return res.Error
		}
		out = DeleteResult{Count: int(res.RowsAffected), DeletedOptions: found}
		return nil
	})
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}

	r.Log.InfoContext(ctx, "options deleted", "shop", shop, "count", out.Count)
	return &out, nil
}

// MissingOptionIDs returns the ids that do not exist or belong to another shop.
func (r *OptionRepository) MissingOptionIDs(ctx context.Context, shop string, ids []string) ([]string, error) {
	const op = "verifyOptions"
	ids = uniqueIDs(ids)
	var found []entity.Option
	if err := r.DB.WithContext(ctx).
		Select("id").
		Where("shop = ? AND id IN ?", shop, ids).
		Find(&found).Error; err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return missingIDs(ids, found), nil
}

// NextPosition returns the position that appends an option after the shop's last one.
func (r *OptionRepository) NextPosition(ctx context.Context, shop string) (int, error) {
	var max sql.NullInt64
	err := r.DB.WithContext(ctx).
		Model(&entity.Option{}).
		Where("shop = ?", shop).
		Select("MAX(position)").
		Row().
		Scan(&max)
	if err != nil {
		return 0, r.fail(ctx, "nextPosition", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// fail logs and converts err; it never swallows it.
func (r *OptionRepository) fail(ctx context.Context, op string, err error) error {
	if ae, ok := apperr.As(err); ok {
		if ae.Kind == apperr.NotFoundOrForbidden {
			r.Log.WarnContext(ctx, "option ownership check failed", "op", op, "ids", ae.IDs)
		}
		return ae
	}
	if IsDuplicateKey(err) {
		r.Log.WarnContext(ctx, "unique constraint violated", "op", op, "err", err)
		return apperr.ConflictErr(op, "an option or value with this name already exists", err)
	}
	r.Log.ErrorContext(ctx, "storage failure", "op", op, "err", err)
	return apperr.StorageErr(op, err)
}

func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(want []string, found []entity.Option) []string {
	have := make(map[string]struct{}, len(found))
	for _, o := range found {
		have[o.ID] = struct{}{}
	}
	var missing []string
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
