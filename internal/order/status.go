package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/gookit/slog"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
}

// CanTransition reports whether an order may move from one status to another.
// A paid order may also be refunded while it has not shipped.
func CanTransition(from, to Status, paymentStatus string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	if to == StatusRefunded && paymentStatus == PaymentPaid {
		return from == StatusPending || from == StatusProcessing
	}
	return false
}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return st, true
	}
	return "", false
}

type StatusUpdater struct{ repo Repository }

func NewStatusUpdater(repo Repository) *StatusUpdater { return &StatusUpdater{repo: repo} }

// UpdateStatus moves an order along its lifecycle and appends a history row.
func (u *StatusUpdater) UpdateStatus(ctx context.Context, orderID int64, to Status, by, notes string) (*Order, error) {
	var out *Order
	err := u.repo.InTx(ctx, func(tx Tx) error {
		o, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !CanTransition(o.Status, to, o.PaymentStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
		}

		pay := o.PaymentStatus
		switch {
		case to == StatusRefunded:
			pay = PaymentRefunded
		case to == StatusDelivered && o.PaymentMethod == MethodCOD:
			pay = PaymentPaid
		}
		if err := tx.SetStatus(ctx, o.ID, to, pay); err != nil {
			return err
		}

		if by == "" {
			by = "admin"
		}
		h := StatusEntry{OrderID: o.ID, Status: to, CreatedBy: by, Notes: notes}
		if err := tx.InsertStatus(ctx, &h); err != nil {
			return fmt.Errorf("insert status history: %w", err)
		}

		o.Status, o.PaymentStatus = to, pay
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Infof("[order] status id=%d -> %s by=%s", orderID, to, by)
	return out, nil
}
