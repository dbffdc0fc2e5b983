package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/domain/users"
	"github.com/marinhotg/satshack24/internal/service"
)

func settlePaidBill(t *testing.T, svc *service.Bills, uploaderID, reserverID uint, amount float64) uint {
	t.Helper()

	billID := createPendingBill(t, svc, uploaderID, amount)
	_, err := svc.Reserve(billID, reserverID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.AttachReceipt(billID, "https://blob.example/r.png", "r.png")
	require.NoError(t, err)
	_, err = svc.Approve(billID)
	require.NoError(t, err)
	_, err = svc.Settle(billID, "inv1", "hash1")
	require.NoError(t, err)
	return billID
}

func TestCreateRating(t *testing.T) {
	db := testDB(t)
	billSvc := service.NewBills(db)
	svc := service.NewRatings(db, billSvc)
	uploader := seedUser(t, db, "uploader@example.com")
	reserver := seedUser(t, db, "reserver@example.com")

	billID := settlePaidBill(t, billSvc, uploader.ID, reserver.ID, 100)

	rating, err := svc.Create(service.CreateRatingParams{
		BillID:  billID,
		RaterID: reserver.ID,
		Rating:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Rating)

	// the uploader's average now includes the new rating
	var fresh users.User
	require.NoError(t, db.First(&fresh, uploader.ID).Error)
	assert.InDelta(t, 4, fresh.AverageRating, 1e-9)

	t.Run("SecondRatingConflicts", func(t *testing.T) {
		_, err := svc.Create(service.CreateRatingParams{
			BillID:  billID,
			RaterID: reserver.ID,
			Rating:  5,
		})
		var conflict *apperr.ConflictError
		require.Error(t, err)
		assert.True(t, errors.As(err, &conflict))
	})

	t.Run("AverageOverSeveralBills", func(t *testing.T) {
		second := settlePaidBill(t, billSvc, uploader.ID, reserver.ID, 50)
		_, err := svc.Create(service.CreateRatingParams{
			BillID:  second,
			RaterID: reserver.ID,
			Rating:  2,
		})
		require.NoError(t, err)

		var fresh users.User
		require.NoError(t, db.First(&fresh, uploader.ID).Error)
		assert.InDelta(t, 3, fresh.AverageRating, 1e-9) // (4+2)/2
	})
}

func TestCreateRatingRequiresPaidBill(t *testing.T) {
	db := testDB(t)
	billSvc := service.NewBills(db)
	svc := service.NewRatings(db, billSvc)
	uploader := seedUser(t, db, "uploader@example.com")
	reserver := seedUser(t, db, "reserver@example.com")

	billID := createPendingBill(t, billSvc, uploader.ID, 100)

	_, err := svc.Create(service.CreateRatingParams{
		BillID:  billID,
		RaterID: reserver.ID,
		Rating:  5,
	})
	var state *apperr.InvalidStateError
	require.Error(t, err)
	assert.True(t, errors.As(err, &state))
}

func TestCreateRatingValidation(t *testing.T) {
	db := testDB(t)
	billSvc := service.NewBills(db)
	svc := service.NewRatings(db, billSvc)

	for _, value := range []int{0, -1, 6} {
		_, err := svc.Create(service.CreateRatingParams{BillID: 1, RaterID: 1, Rating: value})
		var validation *apperr.ValidationError
		require.Error(t, err)
		assert.True(t, errors.As(err, &validation))
	}

	_, err := svc.Create(service.CreateRatingParams{BillID: 999, RaterID: 1, Rating: 3})
	var notFound *apperr.NotFoundError
	require.Error(t, err)
	assert.True(t, errors.As(err, &notFound))
}
