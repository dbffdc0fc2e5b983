package bills

import (
	"time"

	"github.com/marinhotg/satshack24/internal/domain/ratings"
	"github.com/marinhotg/satshack24/internal/domain/users"
)

type PaymentType string

const (
	PaymentPix    PaymentType = "PIX"
	PaymentBoleto PaymentType = "BOLETO"
)

func (p PaymentType) Valid() bool {
	return p == PaymentPix || p == PaymentBoleto
}

// Bill is a payable obligation uploaded by one user for another to settle.
// Amount is denominated in Currency; BonusRate is the percentage premium
// paid to the reserver on top of it.
type Bill struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Currency    string  `gorm:"type:varchar(8);not null" json:"currency"`
	DueDate     time.Time   `gorm:"not null;index" json:"dueDate"`
	PaymentType PaymentType `gorm:"type:varchar(10);not null" json:"paymentType"`
	PaymentCode *string     `json:"paymentCode,omitempty"`
	BonusRate   float64     `gorm:"not null;default:0" json:"bonusRate"`
	Status      Status      `gorm:"type:varchar(12);not null;index" json:"status"`

	UploadedBy uint       `gorm:"not null;index" json:"uploadedBy"`
	Uploader   users.User `gorm:"foreignKey:UploadedBy" json:"uploader"`

	ReservedBy    *uint       `gorm:"index" json:"reservedBy,omitempty"`
	Reserver      *users.User `gorm:"foreignKey:ReservedBy" json:"reserver,omitempty"`
	ReservedUntil *time.Time  `json:"reservedUntil,omitempty"`

	// Uploaded bill document, kept in blob storage and referenced here.
	FileURL  *string `json:"fileUrl,omitempty"`
	FileName *string `json:"fileName,omitempty"`
	FileType *string `json:"fileType,omitempty"`

	ReceiptURL        *string    `json:"receiptUrl,omitempty"`
	ReceiptPathname   *string    `json:"receiptPathname,omitempty"`
	ReceiptUploadedAt *time.Time `json:"receiptUploadedAt,omitempty"`

	InvoiceID   *string `json:"invoiceId,omitempty"`
	PaymentHash *string `json:"paymentHash,omitempty"`

	Rating *ratings.Rating `gorm:"foreignKey:BillID" json:"rating,omitempty"`

	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
