package payment

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/gookit/slog"

	"github.com/MikeMC777/storefront-ecom/internal/events"
)

// Ingestor stores provider notifications relayed by the SMS forwarder.
type Ingestor struct {
	repo   Repository
	key    string
	events events.Publisher
}

func NewIngestor(repo Repository, key string, pub events.Publisher) *Ingestor {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Ingestor{repo: repo, key: key, events: pub}
}

func (s *Ingestor) authorized(key string) bool {
	if s.key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.key)) == 1
}

// Ingest checks the shared key, extracts the SMS fields and inserts one row.
// Duplicate TrxIDs are accepted; claiming is where uniqueness matters.
func (s *Ingestor) Ingest(ctx context.Context, key, text string) (*Notification, error) {
	if !s.authorized(key) {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	n := Parse(text)
	if err := s.repo.Insert(ctx, &n); err != nil {
		if errors.Is(err, ErrNotStored) {
			return nil, err
		}
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	if n.TrxID == "" {
		slog.Warnf("[payment] notification %d stored without a TrxID", n.ID)
	}
	slog.Infof("[payment] stored notification id=%d trx=%s provider=%q amount=%s", n.ID, n.TrxID, n.Provider, n.Amount)

	events.Emit(ctx, s.events, events.SubjectPaymentNotified, events.PaymentNotified{
		NotificationID: n.ID,
		TrxID:          n.TrxID,
		Provider:       n.Provider,
		Amount:         n.Amount,
		ReceivedAt:     n.ReceivedAt,
	})
	return &n, nil
}
