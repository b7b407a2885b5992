package db

import (
	"fmt"
	"time"

	"restaurant/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options every connection shares. TranslateError maps unique violations to gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        time.Now,
		// order_items keep pointing at hard-deleted menu items
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// Connect opens postgres and returns *gorm.DB.
func Connect(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gormDB, nil
}

// Models in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.MenuItem{},
		&model.Table{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusChange{},
	}
}

// AutoMigrate builds the schema from the models. Used where the SQL migrations can't run (sqlite).
func AutoMigrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(Models()...)
}

func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
