package lightning_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/lightning"
)

type fakeClient struct {
	err error

	gotNodeID string
	gotMsats  int64
	gotMemo   string
}

func (f *fakeClient) CreateInvoice(_ context.Context, nodeID string, amountMsats int64, memo string) (*lightning.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotNodeID = nodeID
	f.gotMsats = amountMsats
	f.gotMemo = memo
	return &lightning.Invoice{
		ID:                    "Invoice:test",
		EncodedPaymentRequest: "lnbcrt15u1pfakeinvoice",
		PaymentHash:           "hash123",
	}, nil
}

func (f *fakeClient) PayInvoice(context.Context, string, int64) (*lightning.Payment, error) {
	return &lightning.Payment{ID: "Payment:test", Status: "SUCCESS"}, nil
}

func (f *fakeClient) Transactions(context.Context, int) ([]lightning.Transaction, error) {
	return nil, nil
}

func TestIssuerIssue(t *testing.T) {
	client := &fakeClient{}
	issuer := lightning.NewIssuer(client)

	issued, err := issuer.Issue(context.Background(), lightning.InvoiceRequest{
		BillID: 7,
		NodeID: "node-abc",
		Amount: 150_000, // sats by heuristic
	})
	require.NoError(t, err)

	assert.Equal(t, "node-abc", client.gotNodeID)
	assert.Equal(t, int64(150_000_000), client.gotMsats)
	assert.Equal(t, "Payment for bill #7", client.gotMemo)

	assert.Equal(t, "Invoice:test", issued.InvoiceID)
	assert.Equal(t, "lnbcrt15u1pfakeinvoice", issued.EncodedInvoice)
	assert.Equal(t, "hash123", issued.PaymentHash)
	assert.True(t, strings.HasPrefix(issued.QRCode, "data:image/png;base64,"))
}

func TestIssuerKeepsExplicitMemo(t *testing.T) {
	client := &fakeClient{}
	issuer := lightning.NewIssuer(client)

	_, err := issuer.Issue(context.Background(), lightning.InvoiceRequest{
		BillID: 7,
		Amount: 0.0015,
		Unit:   "btc",
		Memo:   "dinner split",
	})
	require.NoError(t, err)
	assert.Equal(t, "dinner split", client.gotMemo)
}

func TestIssuerRejectsOutOfBounds(t *testing.T) {
	issuer := lightning.NewIssuer(&fakeClient{})

	// 150,000,000 reads as sats, i.e. 1.5 BTC: over the maximum.
	_, err := issuer.Issue(context.Background(), lightning.InvoiceRequest{
		BillID: 1,
		Amount: 150_000_000,
	})
	var validation *apperr.ValidationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &validation))
}

func TestIssuerMapsNodeNotFound(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "NodeNotFound",
			err:     errors.New("graphql: Node not found: LightsparkNodeWithOSK"),
			wantMsg: "Lightning node not found; check configuration",
		},
		{
			name:    "GenericFailure",
			err:     errors.New("rate limited"),
			wantMsg: "Failed to create Lightning invoice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := lightning.NewIssuer(&fakeClient{err: tt.err})

			_, err := issuer.Issue(context.Background(), lightning.InvoiceRequest{
				BillID: 1,
				Amount: 0.001,
				Unit:   "btc",
			})
			var external *apperr.ExternalServiceError
			require.Error(t, err)
			require.True(t, errors.As(err, &external))
			assert.Equal(t, tt.wantMsg, external.Msg)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
