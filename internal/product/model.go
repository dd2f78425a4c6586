package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Prices are NUMERIC in Postgres; decimal avoids float rounding.
	Price     decimal.Decimal  `json:"price"      swaggertype:"number"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty" swaggertype:"number"`
	// CurrentPrice is EffectivePrice, filled in for API responses.
	CurrentPrice decimal.Decimal `json:"current_price" swaggertype:"number"`
	Stock        int             `json:"stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// EffectivePrice is what the storefront charges right now.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.IsPositive() {
		return *p.SalePrice
	}
	return p.Price
}

func (p *Product) priced() { p.CurrentPrice = p.EffectivePrice() }

// Priced fills CurrentPrice on every product.
func Priced(ps []Product) []Product {
	for i := range ps {
		ps[i].priced()
	}
	return ps
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	// items found
	Items []Product `json:"items"`
}
