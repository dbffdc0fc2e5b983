package bills

import (
	"time"

	"github.com/marinhotg/satshack24/internal/domain/bills"
	"github.com/marinhotg/satshack24/internal/domain/users"
)

// ---------- requests

type CreateBillRequest struct {
	Amount      float64   `json:"amount" binding:"required"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	Currency    string    `json:"currency" binding:"required"`
	BonusRate   float64   `json:"bonusRate"`
	PaymentType string    `json:"paymentType" binding:"required"`
	PaymentCode *string   `json:"paymentCode"`

	FileURL  *string `json:"fileUrl"`
	FileName *string `json:"fileName"`
	FileType *string `json:"fileType"`
}

type ReserveRequest struct {
	BillID          uint      `json:"billId" binding:"required"`
	ReservationTime time.Time `json:"reservationTime" binding:"required"`
}

type UpdateReceiptRequest struct {
	ReceiptURL      string `json:"receiptUrl" binding:"required"`
	ReceiptPathname string `json:"receiptPathname"`
}

type PayRequest struct {
	InvoiceID   string `json:"invoiceId" binding:"required"`
	PaymentHash string `json:"paymentHash" binding:"required"`
}

type InvoiceRequest struct {
	BillID uint    `json:"billId" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	// Unit disambiguates amount: "btc" or "sats". Empty falls back to
	// the legacy heuristic (values > 1 are satoshis).
	Unit string `json:"unit"`
	Memo string `json:"memo"`
}

type UserInvoiceRequest struct {
	NodeID string  `json:"nodeId" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Unit   string  `json:"unit"`
	Memo   string  `json:"memo"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ---------- responses

type UserSummary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	NodeID        string  `json:"nodeId"`
	AverageRating float64 `json:"averageRating"`
}

type RatingResponse struct {
	ID      uint    `json:"id"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

type BillResponse struct {
	ID          uint      `json:"id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	DueDate     time.Time `json:"dueDate"`
	PaymentType string    `json:"paymentType"`
	PaymentCode *string   `json:"paymentCode,omitempty"`
	BonusRate   float64   `json:"bonusRate"`
	Status      string    `json:"status"`

	Uploader *UserSummary `json:"uploader,omitempty"`
	Reserver *UserSummary `json:"reserver,omitempty"`

	ReservedUntil *time.Time `json:"reservedUntil,omitempty"`

	FileURL  *string `json:"fileUrl,omitempty"`
	FileName *string `json:"fileName,omitempty"`

	ReceiptURL        *string    `json:"receiptUrl,omitempty"`
	ReceiptPathname   *string    `json:"receiptPathname,omitempty"`
	ReceiptUploadedAt *time.Time `json:"receiptUploadedAt,omitempty"`

	InvoiceID   *string `json:"invoiceId,omitempty"`
	PaymentHash *string `json:"paymentHash,omitempty"`

	Rating *RatingResponse `json:"rating,omitempty"`

	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toUserSummary(u *users.User) *UserSummary {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &UserSummary{
		ID:            u.ID,
		Name:          u.Name,
		NodeID:        u.NodeID,
		AverageRating: u.AverageRating,
	}
}

func toBillResponse(b *bills.Bill) BillResponse {
	resp := BillResponse{
		ID:                b.ID,
		Amount:            b.Amount,
		Currency:          b.Currency,
		DueDate:           b.DueDate,
		PaymentType:       string(b.PaymentType),
		PaymentCode:       b.PaymentCode,
		BonusRate:         b.BonusRate,
		Status:            string(b.Status),
		Uploader:          toUserSummary(&b.Uploader),
		Reserver:          toUserSummary(b.Reserver),
		ReservedUntil:     b.ReservedUntil,
		FileURL:           b.FileURL,
		FileName:          b.FileName,
		ReceiptURL:        b.ReceiptURL,
		ReceiptPathname:   b.ReceiptPathname,
		ReceiptUploadedAt: b.ReceiptUploadedAt,
		InvoiceID:         b.InvoiceID,
		PaymentHash:       b.PaymentHash,
		PaidAt:            b.PaidAt,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
	if b.Rating != nil {
		resp.Rating = &RatingResponse{
			ID:      b.Rating.ID,
			Rating:  b.Rating.Rating,
			Comment: b.Rating.Comment,
		}
	}
	return resp
}

func toBillResponses(list []bills.Bill) []BillResponse {
	out := make([]BillResponse, 0, len(list))
	for i := range list {
		out = append(out, toBillResponse(&list[i]))
	}
	return out
}
