package users

import "time"

// User is an account that can upload bills, reserve them, or both.
// TotalUploaded, TotalPaid and AverageRating are derived aggregates,
// recomputed from bill and rating rows after every relevant mutation;
// they are never written directly by handlers.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	NodeID       string `gorm:"not null" json:"nodeId"`

	TotalUploaded float64 `gorm:"not null;default:0" json:"totalUploaded"`
	TotalPaid     float64 `gorm:"not null;default:0" json:"totalPaid"`
	AverageRating float64 `gorm:"not null;default:0" json:"averageRating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
