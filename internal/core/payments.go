package core

import (
	"context"
	"fmt"
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentDetails is the raw input for one payment attempt. Card number and
// CVV are used in-memory only and must never be persisted or echoed back.
type PaymentDetails struct {
	CardNumber  string `json:"card_number,omitempty"`
	CVV         string `json:"cvv,omitempty"`
	ExpiryMonth int    `json:"expiry_month,omitempty"`
	ExpiryYear  int    `json:"expiry_year,omitempty"`

	RoutingNumber string `json:"routing_number,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	AccountType   string `json:"account_type,omitempty"` // checking, savings
}

// PaymentResult is the tokenized outcome of a successful attempt.
type PaymentResult struct {
	TransactionID string        `json:"transaction_id"`
	Method        PaymentMethod `json:"method"`
	Last4         string        `json:"last4"`
	CardBrand     string        `json:"card_brand,omitempty"`
	AccountType   string        `json:"account_type,omitempty"`
	Amount        int64         `json:"amount"`
}

// PaymentProcessor makes a single deterministic payment attempt. A decline
// is reported as an error wrapping ErrPaymentDeclined carrying the reason.
type PaymentProcessor interface {
	Attempt(ctx context.Context, method PaymentMethod, details PaymentDetails, amount int64) (PaymentResult, error)
}

// DeclinedError builds the decline error surfaced to callers.
func DeclinedError(reason string) error {
	return fmt.Errorf("%w: %s", ErrPaymentDeclined, reason)
}

// Payment is the persisted record of a successful bind payment. Only the
// tokenized details survive.
type Payment struct {
	ID            string        `json:"id"`
	PolicyID      string        `json:"policy_id"`
	Method        PaymentMethod `json:"method"`
	Last4         string        `json:"last4"`
	CardBrand     string        `json:"card_brand,omitempty"`
	AccountType   string        `json:"account_type,omitempty"`
	TransactionID string        `json:"transaction_id"`
	Amount        int64         `json:"amount"`
	CreatedAt     time.Time     `json:"created_at"`
}

type PaymentRepo interface {
	Create(ctx context.Context, p Payment) error
	ListByPolicyID(ctx context.Context, policyID string) ([]Payment, error)
}
