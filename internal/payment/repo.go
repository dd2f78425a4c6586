package payment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Insert(ctx context.Context, n *Notification) error
	FindByTrxID(ctx context.Context, trxID string) (*Notification, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Columns is the select list shared with the order writer, which reads
// notifications inside its own transaction.
const Columns = `id, trx_id, provider, amount, sender, payment_time, raw_message, received_at,
	phone, user_id, name, claimed_at, claimed_order_id`

// FindByTrxIDQuery returns the oldest notification for a transaction id.
const FindByTrxIDQuery = `SELECT ` + Columns + ` FROM payment_notifications
	WHERE trx_id = $1 ORDER BY id LIMIT 1`

func (r *PGRepo) Insert(ctx context.Context, n *Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO payment_notifications (trx_id, provider, amount, sender, payment_time, raw_message, received_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
		RETURNING id, received_at
	`, n.TrxID, n.Provider, n.Amount, n.Sender, n.PaymentTime, n.RawMessage).Scan(&n.ID, &n.ReceivedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotStored
	}
	return err
}

func (r *PGRepo) FindByTrxID(ctx context.Context, trxID string) (*Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return ScanNotification(r.db.QueryRow(ctx, FindByTrxIDQuery, trxID))
}

// ScanNotification reads one row selected with Columns.
func ScanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.TrxID, &n.Provider, &n.Amount, &n.Sender, &n.PaymentTime,
		&n.RawMessage, &n.ReceivedAt, &n.Phone, &n.UserID, &n.Name, &n.ClaimedAt, &n.ClaimedOrderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}
