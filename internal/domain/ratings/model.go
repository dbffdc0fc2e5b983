package ratings

import (
	"time"

	"github.com/marinhotg/satshack24/internal/domain/users"
)

// Rating is created once per paid bill and immutable afterward.
type Rating struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Rating  int     `gorm:"not null" json:"rating"`
	Comment *string `json:"comment,omitempty"`

	BillID uint `gorm:"not null;uniqueIndex:idx_ratings_bill" json:"billId"`

	RaterID uint       `gorm:"not null" json:"raterId"`
	Rater   users.User `gorm:"foreignKey:RaterID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}
