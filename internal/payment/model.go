package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrUnauthorized  = errors.New("invalid ingest key")
	ErrEmptyMessage  = errors.New("message is required")
	ErrNotStored     = errors.New("notification was not stored")
	ErrAlreadyUsed   = errors.New("transaction already used")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Notification is one forwarded provider SMS. Phone, UserID and Name stay
// nil until an order claims the transaction.
type Notification struct {
	ID          int64     `json:"id"`
	TrxID       string    `json:"trx_id"`
	Provider    string    `json:"provider"`
	Amount      string    `json:"amount"` // as written in the SMS, e.g. "1,500.00"
	Sender      string    `json:"sender"`
	PaymentTime string    `json:"payment_time"`
	RawMessage  string    `json:"-"`
	ReceivedAt  time.Time `json:"received_at"`

	Phone          *string    `json:"phone,omitempty"`
	UserID         *int64     `json:"user_id,omitempty"`
	Name           *string    `json:"name,omitempty"`
	ClaimedAt      *time.Time `json:"claimed_at,omitempty"`
	ClaimedOrderID *int64     `json:"claimed_order_id,omitempty"`
}

func (n *Notification) Claimed() bool { return n.ClaimedAt != nil }

// AmountValue parses the SMS amount, dropping thousands separators.
func (n *Notification) AmountValue() (decimal.Decimal, error) {
	return ParseAmount(n.Amount)
}

func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
