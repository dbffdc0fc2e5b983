package service

import (
	"github.com/marinhotg/satshack24/internal/domain/bills"
	"github.com/marinhotg/satshack24/internal/domain/ratings"
	"github.com/marinhotg/satshack24/internal/domain/users"

	"gorm.io/gorm"
)

// User aggregates are derived data. They are recomputed inside the same
// transaction as the mutation that invalidates them: totalPaid at
// settlement, averageRating at rating creation, totalUploaded at bill
// creation.

func recomputeTotalPaid(tx *gorm.DB, userID uint) error {
	var total float64
	err := tx.Model(&bills.Bill{}).
		Where("reserved_by = ? AND status = ?", userID, bills.StatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	return tx.Model(&users.User{}).Where("id = ?", userID).
		Update("total_paid", total).Error
}

func recomputeTotalUploaded(tx *gorm.DB, userID uint) error {
	var total float64
	err := tx.Model(&bills.Bill{}).
		Where("uploaded_by = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	return tx.Model(&users.User{}).Where("id = ?", userID).
		Update("total_uploaded", total).Error
}

// recomputeAverageRating averages all ratings attached to bills the user
// uploaded; 0 when none exist.
func recomputeAverageRating(tx *gorm.DB, userID uint) error {
	var avg float64
	err := tx.Model(&ratings.Rating{}).
		Joins("JOIN bills ON bills.id = ratings.bill_id").
		Where("bills.uploaded_by = ?", userID).
		Select("COALESCE(AVG(ratings.rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return err
	}
	return tx.Model(&users.User{}).Where("id = ?", userID).
		Update("average_rating", avg).Error
}
