package lightning

import (
	"context"
	"fmt"
	"strings"

	"github.com/marinhotg/satshack24/internal/apperr"
)

// Issuer turns a bill amount into a Lightning invoice plus its QR
// rendering: unit normalization, bounds validation, msat conversion,
// invoice creation and error sanitization.
type Issuer struct {
	client Client
}

func NewIssuer(client Client) *Issuer {
	return &Issuer{client: client}
}

type InvoiceRequest struct {
	BillID uint
	// NodeID of the receiving node; empty means the adapter's own node.
	NodeID string
	Amount float64
	// Unit is "btc", "sats" or empty (heuristic applies, see NormalizeToBTC).
	Unit string
	Memo string
}

type IssuedInvoice struct {
	InvoiceID      string `json:"invoiceId"`
	EncodedInvoice string `json:"invoiceCode"`
	PaymentHash    string `json:"paymentHash"`
	QRCode         string `json:"qrCode"`
}

func (i *Issuer) Issue(ctx context.Context, req InvoiceRequest) (*IssuedInvoice, error) {
	btc, err := NormalizeToBTC(req.Amount, req.Unit)
	if err != nil {
		return nil, err
	}
	if err := ValidateBTCAmount(btc); err != nil {
		return nil, err
	}

	memo := req.Memo
	if memo == "" {
		memo = fmt.Sprintf("Payment for bill #%d", req.BillID)
	}

	invoice, err := i.client.CreateInvoice(ctx, req.NodeID, BTCToMsats(btc), memo)
	if err != nil {
		return nil, mapClientError(err)
	}

	qr, err := InvoiceQRCode(invoice.EncodedPaymentRequest)
	if err != nil {
		return nil, apperr.External("Failed to render invoice QR code", err)
	}

	return &IssuedInvoice{
		InvoiceID:      invoice.ID,
		EncodedInvoice: invoice.EncodedPaymentRequest,
		PaymentHash:    invoice.PaymentHash,
		QRCode:         qr,
	}, nil
}

// mapClientError collapses provider errors into the two user-facing
// categories the UI distinguishes.
func mapClientError(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "node not found") {
		return apperr.External("Lightning node not found; check configuration", err)
	}
	return apperr.External("Failed to create Lightning invoice", err)
}
