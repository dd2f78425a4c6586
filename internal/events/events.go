// Package events publishes domain events to NATS after the database work has committed.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gookit/slog"
	"github.com/nats-io/nats.go"
)

const (
	SubjectOrderCreated    = "orders.created"
	SubjectPaymentNotified = "payments.notified"
)

type OrderCreated struct {
	OrderID        int64     `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	TrackingNumber string    `json:"tracking_number"`
	PaymentMethod  string    `json:"payment_method"`
	PaymentStatus  string    `json:"payment_status"`
	Total          string    `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
}

type PaymentNotified struct {
	NotificationID int64     `json:"notification_id"`
	TrxID          string    `json:"trx_id"`
	Provider       string    `json:"provider"`
	Amount         string    `json:"amount"`
	ReceivedAt     time.Time `json:"received_at"`
}

// Publisher is best effort: callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
}

type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

type NATS struct{ nc *nats.Conn }

func Connect(url string) (*NATS, error) {
	nc, err := nats.Connect(url,
		nats.Name("storefront"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	slog.Infof("[events] connected to %s", nc.ConnectedUrl())
	return &NATS{nc: nc}, nil
}

func (p *NATS) Publish(_ context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, data)
}

func (p *NATS) Close() {
	_ = p.nc.Drain()
}

// Emit publishes and only logs on failure.
func Emit(ctx context.Context, p Publisher, subject string, v any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, subject, v); err != nil {
		slog.Warnf("[events] publish %s: %v", subject, err)
	}
}
