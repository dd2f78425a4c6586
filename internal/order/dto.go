package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CartItem is one cart line as submitted at checkout.
// swagger:model CartItem
type CartItem struct {
	ID        int64            `json:"id"         example:"7"`
	Quantity  int              `json:"quantity"   example:"2"`
	Price     decimal.Decimal  `json:"price"      swaggertype:"number" example:"500"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty" swaggertype:"number"`
}

// UnitPrice is the sale price when one is set, the list price otherwise.
func (c CartItem) UnitPrice() decimal.Decimal {
	if c.SalePrice != nil && c.SalePrice.IsPositive() {
		return *c.SalePrice
	}
	return c.Price
}

// AddressInput is the structured alternative to the freeform address string.
// swagger:model AddressInput
type AddressInput struct {
	Line1      string `json:"address_line1" example:"House 1, Road 2"`
	Line2      string `json:"address_line2"`
	City       string `json:"city"          example:"Dhaka"`
	State      string `json:"state"         example:"Dhaka"`
	PostalCode string `json:"postal_code"   example:"1200"`
	Country    string `json:"country"`
}

// CustomerInput carries contact details. Address is the freeform text the
// storefront form sends; ShippingAddress wins when both are present.
// swagger:model CustomerInput
type CustomerInput struct {
	Name            string        `json:"name"    example:"Karim"`
	Email           string        `json:"email"   example:"k@x.com"`
	Phone           string        `json:"phone"   example:"01711111111"`
	Address         string        `json:"address" example:"House 1\nDhaka, Dhaka, 1200"`
	ShippingAddress *AddressInput `json:"shipping_address,omitempty"`
}

func (c CustomerInput) hasAddress() bool {
	if c.ShippingAddress != nil && strings.TrimSpace(c.ShippingAddress.Line1) != "" {
		return true
	}
	return strings.TrimSpace(c.Address) != ""
}

// CreateOrderRequest is the checkout payload.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"          swaggertype:"number" example:"1000"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"   swaggertype:"number" example:"90"`
	ShippingType  string          `json:"shipping_type"  example:"inside_dhaka"`
	Customer      CustomerInput   `json:"customer"`
	PaymentMethod string          `json:"payment_method" example:"cod" enums:"cod,online"`
	TrxID         string          `json:"trxId,omitempty"`
}

type CreateOrderResult struct {
	OrderID        int64  `json:"orderId"`
	OrderNumber    string `json:"orderNumber"`
	TrackingNumber string `json:"trackingNumber"`
	PaymentStatus  string `json:"paymentStatus"`
}

// UpdateStatusRequest is the back office status change payload.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"processing"`
	Notes  string `json:"notes"`
}
