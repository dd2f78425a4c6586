package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	MethodCOD    = "cash_on_delivery"
	MethodOnline = "online_payment"

	InvoicePending = "pending"
	InvoiceSent    = "sent"
	InvoiceFailed  = "failed"

	AddressShipping = "shipping"
	DefaultCountry  = "Bangladesh"
)

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Address struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Type       string `json:"type"`
	FullName   string `json:"full_name"`
	Line1      string `json:"address_line1"`
	Line2      string `json:"address_line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

type Order struct {
	ID                int64           `json:"id"`
	OrderNumber       string          `json:"order_number"`
	TrackingNumber    string          `json:"tracking_number"`
	TrackingID        *string         `json:"tracking_id"` // provider TrxID for online payments
	CustomerID        int64           `json:"customer_id"`
	ShippingAddressID int64           `json:"shipping_address_id"`
	BillingAddressID  int64           `json:"billing_address_id"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Status            Status          `json:"status"`
	PaymentStatus     string          `json:"payment_status"`
	PaymentMethod     string          `json:"payment_method"`
	Notes             string          `json:"notes"`
	ShippingFee       decimal.Decimal `json:"shipping_fee"`
	ShippingType      string          `json:"shipping_type"`
	InvoiceStatus     string          `json:"invoice_status"`
	InvoiceLink       *string         `json:"invoice_link,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type Item struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ItemView is an order line joined to its product name.
type ItemView struct {
	Item
	ProductName string `json:"product_name"`
}

type StatusEntry struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Status    Status    `json:"status"`
	CreatedBy string    `json:"created_by"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
