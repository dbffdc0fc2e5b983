package lightning

import (
	"context"
	"errors"
	"fmt"

	"github.com/lightsparkdev/go-sdk/objects"
	"github.com/lightsparkdev/go-sdk/services"
)

const paymentTimeoutSecs = 60

type LightsparkConfig struct {
	TokenID      string
	TokenSecret  string
	NodeID       string
	NodePassword string
}

// lightsparkClient implements Client against the Lightspark API with an
// OSK node unlocked by password at construction time.
type lightsparkClient struct {
	client *services.LightsparkClient
	nodeID string
}

// NewLightsparkClient fails fast when any credential is missing and when
// the node signing key cannot be recovered.
func NewLightsparkClient(cfg LightsparkConfig) (Client, error) {
	if cfg.TokenID == "" || cfg.TokenSecret == "" || cfg.NodeID == "" || cfg.NodePassword == "" {
		return nil, errors.New("lightspark: token id, token secret, node id and node password are all required")
	}

	client := services.NewLightsparkClient(cfg.TokenID, cfg.TokenSecret, nil)

	// LoadNodeSigningKey discards load errors, so unlock the key by hand
	// to surface a bad node password at startup.
	loader := services.NewSigningKeyLoaderFromNodeIdAndPassword(cfg.NodeID, cfg.NodePassword)
	key, err := loader.LoadSigningKey(*client.Requester)
	if err != nil {
		return nil, fmt.Errorf("lightspark: recover node signing key: %w", err)
	}
	client.SetNodeSigningKey(cfg.NodeID, key)

	return &lightsparkClient{client: client, nodeID: cfg.NodeID}, nil
}

func (c *lightsparkClient) CreateInvoice(_ context.Context, nodeID string, amountMsats int64, memo string) (*Invoice, error) {
	if nodeID == "" {
		nodeID = c.nodeID
	}

	invoice, err := c.client.CreateInvoice(nodeID, amountMsats, &memo, nil, nil)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, errors.New("lightspark: empty invoice response")
	}

	return &Invoice{
		ID:                    invoice.Id,
		EncodedPaymentRequest: invoice.Data.EncodedPaymentRequest,
		PaymentHash:           invoice.Data.PaymentHash,
	}, nil
}

func (c *lightsparkClient) PayInvoice(_ context.Context, encodedInvoice string, maximumFeesMsats int64) (*Payment, error) {
	payment, err := c.client.PayInvoice(c.nodeID, encodedInvoice, paymentTimeoutSecs, maximumFeesMsats, nil)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors.New("lightspark: empty payment response")
	}

	return &Payment{
		ID:     payment.Id,
		Status: payment.Status.StringValue(),
	}, nil
}

func (c *lightsparkClient) Transactions(_ context.Context, limit int) ([]Transaction, error) {
	account, err := c.client.GetCurrentAccount()
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("lightspark: unable to fetch the account")
	}

	first := int64(limit)
	conn, err := account.GetTransactions(c.client.Requester, &first, nil, nil, nil, nil, nil, &c.nodeID, nil, nil)
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(conn.Entities))
	for _, entity := range conn.Entities {
		txs = append(txs, transactionFromEntity(entity))
	}
	return txs, nil
}

func transactionFromEntity(entity objects.Transaction) Transaction {
	return Transaction{
		ID:        entity.GetId(),
		Status:    entity.GetStatus().StringValue(),
		Amount:    entity.GetAmount().OriginalValue,
		CreatedAt: entity.GetCreatedAt(),
	}
}
