package order

import (
	"context"
	"fmt"
	"strings"
)

// Tracking is the customer facing view of one order.
type Tracking struct {
	Order           Order         `json:"order"`
	Customer        Customer      `json:"customer"`
	ShippingAddress Address       `json:"shipping_address"`
	Items           []ItemView    `json:"items"`
	History         []StatusEntry `json:"history"` // newest first
}

type Reader struct{ repo Repository }

func NewReader(repo Repository) *Reader { return &Reader{repo: repo} }

// Track looks an order up by tracking number or order number.
func (r *Reader) Track(ctx context.Context, key string) (*Tracking, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrNotFound
	}
	o, err := r.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	c, err := r.repo.GetCustomer(ctx, o.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", o.CustomerID, err)
	}
	addr, err := r.repo.GetAddress(ctx, o.ShippingAddressID)
	if err != nil {
		return nil, fmt.Errorf("address %d: %w", o.ShippingAddressID, err)
	}
	items, err := r.repo.ListItems(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	for i := range items {
		if items[i].ProductName == "" {
			items[i].ProductName = fmt.Sprintf("Product #%d", items[i].ProductID)
		}
	}
	history, err := r.repo.ListHistory(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	return &Tracking{
		Order:           *o,
		Customer:        *c,
		ShippingAddress: *addr,
		Items:           items,
		History:         history,
	}, nil
}
