package configs

import (
	"log/slog"

	"productoptions/entity"
)

// SeedDemoOptions สร้าง option ตัวอย่างให้ร้านที่ระบุ ถ้ายังไม่มี option ชื่อนั้น
func SeedDemoOptions(shop string, logger *slog.Logger) error {
	if shop == "" {
		logger.Info("skip seeding demo options: SEED_SHOP not set")
		return nil
	}

	demo := []entity.Option{
		{Name: "Color", Type: entity.OptionTypeColor, Position: 0, Values: seedValues("Red", "Blue", "Green")},
		{Name: "Size", Type: entity.OptionTypeText, Position: 1, IsRequired: true, Values: seedValues("S", "M", "L", "XL")},
		{Name: "Material", Type: entity.OptionTypeText, Position: 2, Values: seedValues("Cotton", "Linen")},
	}

	for _, opt := range demo {
		opt.Shop = shop
		var count int64
		if err := db.Model(&entity.Option{}).Where("shop = ? AND name = ?", shop, opt.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&opt).Error; err != nil {
			return err
		}
	}

	logger.Info("demo options seeded", "shop", shop)
	return nil
}

func seedValues(names ...string) []entity.OptionValue {
	out := make([]entity.OptionValue, 0, len(names))
	for i, n := range names {
		out = append(out, entity.OptionValue{Value: n, Position: i, IsActive: true})
	}
	return out
}
