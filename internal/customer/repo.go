// Package customer serves back office reads of customer records. Rows are
// written by the order writer, one per checkout.
package customer

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("customer not found")

type Customer struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	OrderCount int       `json:"order_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context, limit, offset int) ([]Customer, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectCustomers = `
	SELECT c.id, c.name, c.email, c.phone, COUNT(o.id), c.created_at
	FROM customers c
	LEFT JOIN orders o ON o.customer_id = c.id`

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Customer
	err := r.db.QueryRow(ctx, selectCustomers+`
		WHERE c.id = $1
		GROUP BY c.id
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.OrderCount, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, selectCustomers+`
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.OrderCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
