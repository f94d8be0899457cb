package client

import (
	"log"

	"bytebazaar-storefront/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitSqliteClient opens the embedded store holding session and preference
// rows, the only state this client persists locally.
func InitSqliteClient(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open local store:", err)
	}

	if err := db.AutoMigrate(
		&model.Session{},
		&model.Preference{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
