package database

import (
	"fmt"

	"github.com/marinhotg/satshack24/internal/domain/bills"
	"github.com/marinhotg/satshack24/internal/domain/ratings"
	"github.com/marinhotg/satshack24/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres database and migrates the domain models.
// The returned handle is passed into services explicitly; there is no
// package-level DB.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&bills.Bill{},
		&ratings.Rating{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
