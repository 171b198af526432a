package repo

import (
	"PassVault/internal/model"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает подключение к БД по DSN и прогоняет миграции.
// Postgres — если DSN похож на строку подключения postgres, иначе SQLite.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host="):
		dial = postgres.Open(dsn)
	default:
		if dsn == "" {
			dsn = "passvault.db"
		}
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.PasswordGroup{}, &model.PasswordEntry{}); err != nil {
		return nil, err
	}
	return db, nil
}
