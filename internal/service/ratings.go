package service

import (
	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/domain/bills"
	"github.com/marinhotg/satshack24/internal/domain/ratings"

	"gorm.io/gorm"
)

type Ratings struct {
	db    *gorm.DB
	bills *Bills
}

func NewRatings(db *gorm.DB, billSvc *Bills) *Ratings {
	return &Ratings{db: db, bills: billSvc}
}

type CreateRatingParams struct {
	BillID  uint
	RaterID uint
	Rating  int
	Comment *string
}

// Create records a rating against a settled bill and folds it into the
// uploader's average inside the same transaction. Only PAID bills can be
// rated, once each.
func (s *Ratings) Create(params CreateRatingParams) (*ratings.Rating, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, apperr.Validation("Rating must be between 1 and 5")
	}

	bill, err := s.bills.Get(params.BillID)
	if err != nil {
		return nil, err
	}
	if bill.Status != bills.StatusPaid {
		return nil, apperr.InvalidState("Only paid bills can be rated")
	}
	if bill.Rating != nil {
		return nil, apperr.Conflict("Bill has already been rated")
	}

	rating := ratings.Rating{
		BillID:  params.BillID,
		RaterID: params.RaterID,
		Rating:  params.Rating,
		Comment: params.Comment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}
		return recomputeAverageRating(tx, bill.UploadedBy)
	})
	if err != nil {
		return nil, err
	}

	return &rating, nil
}
