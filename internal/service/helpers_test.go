package service_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marinhotg/satshack24/database"
	"github.com/marinhotg/satshack24/internal/domain/users"
	"github.com/marinhotg/satshack24/internal/service"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one shared in-memory database per test, named after it
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *users.User {
	t.Helper()

	user := users.User{
		Name:         "Test " + email,
		Email:        email,
		PasswordHash: "irrelevant",
		NodeID:       "node-" + email,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPendingBill(t *testing.T, svc *service.Bills, uploaderID uint, amount float64) uint {
	t.Helper()

	bill, err := svc.Create(service.CreateBillParams{
		Amount:      amount,
		DueDate:     time.Now().Add(24 * time.Hour),
		Currency:    "USD",
		BonusRate:   5,
		PaymentType: "PIX",
		UploadedBy:  uploaderID,
	})
	require.NoError(t, err)
	return bill.ID
}
