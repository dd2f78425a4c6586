package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront-ecom/internal/payment"
)

// Tx is the set of writes that must commit together.
type Tx interface {
	InsertCustomer(ctx context.Context, c *Customer) error
	InsertAddress(ctx context.Context, a *Address) error
	FindNotification(ctx context.Context, trxID string) (*payment.Notification, error)
	// ClaimNotification links an unclaimed notification to the order. It
	// reports false when another order got there first.
	ClaimNotification(ctx context.Context, notificationID, orderID int64, c Customer) (bool, error)
	InsertOrder(ctx context.Context, o *Order) error
	InsertItem(ctx context.Context, it *Item) error
	InsertStatus(ctx context.Context, e *StatusEntry) error
	LockOrder(ctx context.Context, id int64) (*Order, error)
	SetStatus(ctx context.Context, id int64, status Status, paymentStatus string) error
}

type Repository interface {
	// InTx runs fn in one transaction, committing only when fn returns nil.
	InTx(ctx context.Context, fn func(Tx) error) error
	FindByKey(ctx context.Context, key string) (*Order, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	GetAddress(ctx context.Context, id int64) (*Address, error)
	ListItems(ctx context.Context, orderID int64) ([]ItemView, error)
	ListHistory(ctx context.Context, orderID int64) ([]StatusEntry, error)
	SetInvoice(ctx context.Context, orderID int64, status, link string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) InTx(ctx context.Context, fn func(Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("scan %s: %w", field, err)
	}
	return d, nil
}

type pgTx struct{ tx pgx.Tx }

// InsertCustomer uses ON CONFLICT so a duplicate email does not abort the
// surrounding transaction.
func (t *pgTx) InsertCustomer(ctx context.Context, c *Customer) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, created_at)
		VALUES ($1,$2,$3,NOW())
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`, c.Name, c.Email, c.Phone).Scan(&c.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDuplicateEmail
	}
	return err
}

func (t *pgTx) InsertAddress(ctx context.Context, a *Address) error {
	return t.tx.QueryRow(ctx, `
		INSERT INTO addresses (customer_id, type, full_name, address_line1, address_line2,
		                       city, state, postal_code, country, phone, is_default)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`, a.CustomerID, a.Type, a.FullName, a.Line1, a.Line2,
		a.City, a.State, a.PostalCode, a.Country, a.Phone, a.IsDefault).Scan(&a.ID)
}

func (t *pgTx) FindNotification(ctx context.Context, trxID string) (*payment.Notification, error) {
	return payment.ScanNotification(t.tx.QueryRow(ctx, payment.FindByTrxIDQuery, trxID))
}

// ClaimNotification is a conditional update: concurrent claimers serialise
// on the row lock and the loser sees claimed_at already set.
func (t *pgTx) ClaimNotification(ctx context.Context, notificationID, orderID int64, c Customer) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE payment_notifications
		SET claimed_at = NOW(), claimed_order_id = $2, user_id = $3, phone = $4, name = $5
		WHERE id = $1 AND claimed_at IS NULL
	`, notificationID, orderID, c.ID, c.Phone, c.Name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (t *pgTx) InsertOrder(ctx context.Context, o *Order) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, tracking_number, tracking_id, customer_id,
		                    shipping_address_id, billing_address_id, total_amount, status,
		                    payment_status, payment_method, notes, shipping_fee, shipping_type,
		                    invoice_status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`, o.OrderNumber, o.TrackingNumber, o.TrackingID, o.CustomerID,
		o.ShippingAddressID, o.BillingAddressID, o.TotalAmount.String(), string(o.Status),
		o.PaymentStatus, o.PaymentMethod, o.Notes, o.ShippingFee.String(), o.ShippingType,
		o.InvoiceStatus).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if isUniqueViolation(err, "orders_order_number_key") {
		return ErrOrderNumberTaken
	}
	return err
}

func (t *pgTx) InsertItem(ctx context.Context, it *Item) error {
	return t.tx.QueryRow(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice.String(), it.TotalPrice.String()).Scan(&it.ID)
}

func (t *pgTx) InsertStatus(ctx context.Context, e *StatusEntry) error {
	return t.tx.QueryRow(ctx, `
		INSERT INTO order_status_history (order_id, status, created_by, notes, created_at)
		VALUES ($1,$2,$3,$4,NOW())
		RETURNING id, created_at
	`, e.OrderID, string(e.Status), e.CreatedBy, e.Notes).Scan(&e.ID, &e.CreatedAt)
}

func (t *pgTx) LockOrder(ctx context.Context, id int64) (*Order, error) {
	return scanOrder(t.tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
}

func (t *pgTx) SetStatus(ctx context.Context, id int64, status Status, paymentStatus string) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE orders SET status = $2, payment_status = $3, updated_at = NOW()
		WHERE id = $1
	`, id, string(status), paymentStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const orderColumns = `id, order_number, tracking_number, tracking_id, customer_id,
	shipping_address_id, billing_address_id, total_amount::text, status, payment_status,
	payment_method, notes, shipping_fee::text, shipping_type, invoice_status, invoice_link,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o          Order
		total, fee string
		status     string
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.TrackingNumber, &o.TrackingID, &o.CustomerID,
		&o.ShippingAddressID, &o.BillingAddressID, &total, &status, &o.PaymentStatus,
		&o.PaymentMethod, &o.Notes, &fee, &o.ShippingType, &o.InvoiceStatus, &o.InvoiceLink,
		&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	if o.TotalAmount, err = parseDecimal("total_amount", total); err != nil {
		return nil, err
	}
	if o.ShippingFee, err = parseDecimal("shipping_fee", fee); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepo) FindByKey(ctx context.Context, key string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE tracking_number = $1 OR order_number = $1
		LIMIT 1
	`, key))
}

func (r *PGRepo) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Customer
	err := r.db.QueryRow(ctx, `SELECT id, name, email, phone FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepo) GetAddress(ctx context.Context, id int64) (*Address, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a Address
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, type, full_name, address_line1, address_line2,
		       city, state, postal_code, country, phone, is_default
		FROM addresses WHERE id = $1
	`, id).Scan(&a.ID, &a.CustomerID, &a.Type, &a.FullName, &a.Line1, &a.Line2,
		&a.City, &a.State, &a.PostalCode, &a.Country, &a.Phone, &a.IsDefault)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGRepo) ListItems(ctx context.Context, orderID int64) ([]ItemView, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price::text, oi.total_price::text,
		       COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemView
	for rows.Next() {
		var (
			it          ItemView
			unit, total string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &unit, &total, &it.ProductName); err != nil {
			return nil, err
		}
		if it.UnitPrice, err = parseDecimal("unit_price", unit); err != nil {
			return nil, err
		}
		if it.TotalPrice, err = parseDecimal("total_price", total); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListHistory(ctx context.Context, orderID int64) ([]StatusEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, status, created_by, notes, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at DESC, id DESC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusEntry
	for rows.Next() {
		var (
			e      StatusEntry
			status string
		)
		if err := rows.Scan(&e.ID, &e.OrderID, &status, &e.CreatedBy, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Status = Status(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) SetInvoice(ctx context.Context, orderID int64, status, link string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET invoice_status = $2, invoice_link = COALESCE(NULLIF($3, ''), invoice_link), updated_at = NOW()
		WHERE id = $1
	`, orderID, status, link)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
