// Package service holds the application services: the bill lifecycle
// manager, account management, rating creation and the reservation
// expiry sweeper. Services are constructed once in main and passed into
// handlers.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/domain/bills"

	"gorm.io/gorm"
)

// Bills owns every state transition of a bill and validates its
// preconditions before mutating anything.
type Bills struct {
	db *gorm.DB
}

func NewBills(db *gorm.DB) *Bills {
	return &Bills{db: db}
}

type CreateBillParams struct {
	Amount      float64
	DueDate     time.Time
	Currency    string
	BonusRate   float64
	PaymentType bills.PaymentType
	PaymentCode *string
	UploadedBy  uint

	FileURL  *string
	FileName *string
	FileType *string
}

func (s *Bills) Create(params CreateBillParams) (*bills.Bill, error) {
	if params.Amount <= 0 {
		return nil, apperr.Validation("Amount must be greater than zero")
	}
	if params.BonusRate < 0 {
		return nil, apperr.Validation("Bonus rate cannot be negative")
	}
	if params.Currency == "" {
		return nil, apperr.Validation("Currency is required")
	}
	if !params.PaymentType.Valid() {
		return nil, apperr.Validation("Payment type must be PIX or BOLETO")
	}

	bill := bills.Bill{
		Amount:      params.Amount,
		DueDate:     params.DueDate,
		Currency:    params.Currency,
		BonusRate:   params.BonusRate,
		PaymentType: params.PaymentType,
		PaymentCode: params.PaymentCode,
		Status:      bills.StatusPending,
		UploadedBy:  params.UploadedBy,
		FileURL:     params.FileURL,
		FileName:    params.FileName,
		FileType:    params.FileType,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bill).Error; err != nil {
			return fmt.Errorf("create bill: %w", err)
		}
		return recomputeTotalUploaded(tx, params.UploadedBy)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(bill.ID)
}

// Get returns a bill with uploader, reserver and rating expanded.
func (s *Bills) Get(id uint) (*bills.Bill, error) {
	var bill bills.Bill
	err := s.db.Preload("Uploader").Preload("Reserver").Preload("Rating").
		First(&bill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Bill not found")
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// ListPending returns bills awaiting reservation, earliest due first.
func (s *Bills) ListPending() ([]bills.Bill, error) {
	var out []bills.Bill
	err := s.db.Preload("Uploader").
		Where("status = ?", bills.StatusPending).
		Order("due_date ASC").
		Find(&out).Error
	return out, err
}

// ListUserBills returns bills the user uploaded or reserved, most recent
// first, optionally filtered by status.
func (s *Bills) ListUserBills(userID uint, status *bills.Status) ([]bills.Bill, error) {
	q := s.db.Preload("Uploader").Preload("Reserver").Preload("Rating").
		Where("uploaded_by = ? OR reserved_by = ?", userID, userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var out []bills.Bill
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// Reserve claims a pending bill for userID until reservedUntil. The
// update is conditional on the current status so at most one reserver
// wins a race; the loser gets a ConflictError.
func (s *Bills) Reserve(billID, userID uint, reservedUntil time.Time) (*bills.Bill, error) {
	if !reservedUntil.After(time.Now()) {
		return nil, apperr.Validation("Reservation time must be in the future")
	}

	res := s.db.Model(&bills.Bill{}).
		Where("id = ? AND status = ?", billID, bills.StatusPending).
		Updates(map[string]interface{}{
			"status":         bills.StatusReserved,
			"reserved_by":    userID,
			"reserved_until": reservedUntil,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&bills.Bill{}).Where("id = ?", billID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Bill not found")
		}
		return nil, apperr.Conflict("Bill is no longer available for reservation")
	}

	return s.Get(billID)
}

// AttachReceipt stores the receipt reference and moves the bill to
// PROCESSING. Only a RESERVED bill accepts a receipt.
func (s *Bills) AttachReceipt(billID uint, receiptURL, receiptPathname string) (*bills.Bill, error) {
	if receiptURL == "" {
		return nil, apperr.Validation("Receipt URL is required")
	}

	bill, err := s.Get(billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != bills.StatusReserved {
		return nil, apperr.InvalidState("Bill cannot be updated in its current status")
	}

	now := time.Now()
	err = s.db.Model(bill).Updates(map[string]interface{}{
		"status":              bills.StatusProcessing,
		"receipt_url":         receiptURL,
		"receipt_pathname":    receiptPathname,
		"receipt_uploaded_at": now,
	}).Error
	if err != nil {
		return nil, err
	}

	return s.Get(billID)
}

// Approve requires a PROCESSING bill with a receipt attached.
func (s *Bills) Approve(billID uint) (*bills.Bill, error) {
	bill, err := s.Get(billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != bills.StatusProcessing {
		return nil, apperr.InvalidState("Bill cannot be approved in its current status")
	}
	if bill.ReceiptURL == nil || *bill.ReceiptURL == "" {
		return nil, apperr.InvalidState("Cannot approve bill without receipt")
	}

	if err := s.db.Model(bill).Update("status", bills.StatusApproved).Error; err != nil {
		return nil, err
	}

	return s.Get(billID)
}

// Settle marks an approved bill PAID, stamps paidAt and stores the
// invoice references, then recomputes the reserver's totalPaid. Both
// writes happen in one transaction so the aggregate can never go stale
// against a settled bill.
func (s *Bills) Settle(billID uint, invoiceID, paymentHash string) (*bills.Bill, error) {
	bill, err := s.Get(billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != bills.StatusApproved {
		return nil, apperr.InvalidState("Bill cannot be settled in its current status")
	}
	if bill.ReservedBy == nil {
		return nil, apperr.InvalidState("Bill has no reserver to settle with")
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(bill).Updates(map[string]interface{}{
			"status":       bills.StatusPaid,
			"paid_at":      now,
			"invoice_id":   invoiceID,
			"payment_hash": paymentHash,
		}).Error; err != nil {
			return err
		}
		return recomputeTotalPaid(tx, *bill.ReservedBy)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(billID)
}

// UpdateStatus performs a direct status change, guarded by the
// transition table. CANCELLED and EXPIRED are only reachable this way.
func (s *Bills) UpdateStatus(billID uint, next bills.Status) (*bills.Bill, error) {
	if !next.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("Unknown status %q", next))
	}

	bill, err := s.Get(billID)
	if err != nil {
		return nil, err
	}
	if !bill.Status.CanTransition(next) {
		return nil, apperr.InvalidState(fmt.Sprintf("Bill cannot move from %s to %s", bill.Status, next))
	}

	if err := s.db.Model(bill).Update("status", next).Error; err != nil {
		return nil, err
	}

	return s.Get(billID)
}
