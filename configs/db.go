package configs

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"productoptions/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// OpenDB opens a gorm connection for driver ("sqlite" or "mysql").
// Constraint violations are translated to gorm.ErrDuplicatedKey.
func OpenDB(driver, source string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(source)
	case "mysql":
		dialector = mysql.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func ConnectionDB(cfg *Config) error {
	database, err := OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	db = database
	return nil
}

func SetupDatabase() error {
	return Migrate(db)
}

// Migrate the schema
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.Option{},
		&entity.OptionValue{},
		&entity.ProductOption{},
	)
}

// OpenMemoryDB opens a private, migrated in-memory sqlite database. Each call
// gets its own database.
func OpenMemoryDB() (*gorm.DB, error) {
	database, err := OpenDB("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	// shared-cache memory dbs lock per table; one connection avoids SQLITE_LOCKED
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}
