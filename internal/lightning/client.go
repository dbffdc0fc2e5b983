// Package lightning wraps the Lightspark node client: invoice creation
// in millisatoshis, invoice payment, transaction listing and QR
// rendering of encoded invoices.
package lightning

import (
	"context"
	"time"
)

type Invoice struct {
	ID                    string `json:"id"`
	EncodedPaymentRequest string `json:"encodedPaymentRequest"`
	PaymentHash           string `json:"paymentHash"`
}

type Payment struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Transaction struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client is the surface the rest of the application sees. Handlers and
// tests substitute fakes; the production implementation talks to
// Lightspark.
type Client interface {
	// CreateInvoice requests an invoice for amountMsats against nodeID,
	// or the adapter's own node when nodeID is empty.
	CreateInvoice(ctx context.Context, nodeID string, amountMsats int64, memo string) (*Invoice, error)

	// PayInvoice pays an encoded invoice from the adapter's node.
	PayInvoice(ctx context.Context, encodedInvoice string, maximumFeesMsats int64) (*Payment, error)

	// Transactions lists recent account transactions, newest first.
	Transactions(ctx context.Context, limit int) ([]Transaction, error)
}
