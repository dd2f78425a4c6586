package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type VerifyRequest struct {
	TrxID  string          `json:"TrxID"`
	Amount decimal.Decimal `json:"amount"`
	Phone  string          `json:"phone"`
	Name   string          `json:"name"`
}

type VerifyResult struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}

func rejected(reason string) VerifyResult { return VerifyResult{Reason: reason} }

// Verifier checks a customer-submitted TrxID against stored notifications.
// It never claims the notification; the order transaction does that.
type Verifier struct{ repo Repository }

func NewVerifier(repo Repository) *Verifier { return &Verifier{repo: repo} }

func (v *Verifier) Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	trxID := strings.TrimSpace(req.TrxID)
	if trxID == "" {
		return rejected("transaction id is required"), nil
	}
	if !req.Amount.IsPositive() {
		return rejected("amount must be positive"), nil
	}

	n, err := v.repo.FindByTrxID(ctx, trxID)
	if errors.Is(err, ErrNotFound) {
		return rejected(ErrNotFound.Error()), nil
	}
	if err != nil {
		return VerifyResult{}, fmt.Errorf("find notification: %w", err)
	}
	if n.Claimed() {
		return rejected(ErrAlreadyUsed.Error()), nil
	}

	stored, err := n.AmountValue()
	if err != nil {
		return rejected("stored amount is unreadable"), nil
	}
	if !stored.Equal(req.Amount) {
		return rejected(fmt.Sprintf("amount mismatch: paid %s, claimed %s", stored.StringFixed(2), req.Amount.StringFixed(2))), nil
	}
	return VerifyResult{Verified: true}, nil
}
