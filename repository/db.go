package repository

import (
	"fmt"
	"sync"

	"kindle/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB
var dbOnce sync.Once

// InitDatabase opens the configured database and migrates the schema.
// Safe to call more than once; the first caller wins.
func InitDatabase(cfg config.DatabaseConfig) *gorm.DB {
	dbOnce.Do(
		func() {
			var err error
			db, err = openDatabase(cfg)
			if err != nil {
				panic(fmt.Errorf("failed to connect database, error: %v", err))
			}
		},
	)

	return db
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = mysql.Open(cfg.DSN())
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		//Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates or updates all application tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&User{},
		&Book{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Todo{},
		&Poetry{},
		&Chat{},
	)
}
