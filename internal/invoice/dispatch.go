package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gookit/slog"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront-ecom/internal/order"
)

type Sender interface {
	Create(ctx context.Context, in Request) (*Response, error)
}

type OrderSource interface {
	Track(ctx context.Context, key string) (*order.Tracking, error)
}

type StatusSink interface {
	SetInvoice(ctx context.Context, orderID int64, status, link string) error
}

// Dispatcher sends one invoice request for a committed order and records
// the outcome on the order row.
type Dispatcher struct {
	sender  Sender
	orders  OrderSource
	sink    StatusSink
	company Company
}

func NewDispatcher(sender Sender, orders OrderSource, sink StatusSink, company Company) *Dispatcher {
	return &Dispatcher{sender: sender, orders: orders, sink: sink, company: company}
}

type Result struct {
	Status string `json:"invoiceStatus"`
	Link   string `json:"invoiceLink,omitempty"`
}

// Dispatch never affects the order itself; a failed call only marks
// invoice_status failed so clients can retry.
func (d *Dispatcher) Dispatch(ctx context.Context, orderNumber string) (*Result, error) {
	return d.DispatchOrder(ctx, 0, orderNumber)
}

// DispatchOrder is Dispatch for an order whose id the caller already holds,
// so a failed lookup is still recorded as a failed invoice.
func (d *Dispatcher) DispatchOrder(ctx context.Context, orderID int64, orderNumber string) (*Result, error) {
	t, err := d.orders.Track(ctx, orderNumber)
	if err != nil {
		if orderID == 0 || errors.Is(err, order.ErrNotFound) {
			return nil, err
		}
		slog.Errorf("[invoice] load order=%s: %v", orderNumber, err)
		out := &Result{Status: order.InvoiceFailed}
		d.record(ctx, orderID, orderNumber, out)
		return out, err
	}

	res, sendErr := d.sender.Create(ctx, BuildRequest(t, d.company))
	out := &Result{Status: order.InvoiceSent}
	if sendErr != nil {
		out.Status = order.InvoiceFailed
		slog.Errorf("[invoice] order=%s: %v", t.Order.OrderNumber, sendErr)
	} else {
		out.Link = res.InvoiceLink
		slog.Infof("[invoice] order=%s link=%s", t.Order.OrderNumber, res.InvoiceLink)
	}

	d.record(ctx, t.Order.ID, t.Order.OrderNumber, out)
	if sendErr != nil {
		return out, sendErr
	}
	return out, nil
}

func (d *Dispatcher) record(ctx context.Context, orderID int64, orderNumber string, out *Result) {
	if err := d.sink.SetInvoice(ctx, orderID, out.Status, out.Link); err != nil {
		slog.Errorf("[invoice] record status order=%s: %v", orderNumber, err)
	}
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func paymentLabel(method string) string {
	switch method {
	case order.MethodCOD:
		return "Cash on Delivery"
	case order.MethodOnline:
		return "Online Payment"
	}
	return method
}

// BuildRequest renders the invoice payload from the tracked order.
func BuildRequest(t *order.Tracking, company Company) Request {
	subtotal := decimal.Zero
	lines := make([]Line, 0, len(t.Items))
	for _, it := range t.Items {
		subtotal = subtotal.Add(it.TotalPrice)
		lines = append(lines, Line{
			Name:     it.ProductName,
			Quantity: it.Quantity,
			Price:    money(it.UnitPrice),
			Total:    money(it.TotalPrice),
		})
	}

	a := t.ShippingAddress
	address := strings.TrimSpace(strings.Join(nonEmpty(a.Line1, a.Line2, a.Country), ", "))
	discount := subtotal.Sub(t.Order.TotalAmount)
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return Request{
		Customer: Customer{
			Name:    t.Customer.Name,
			Email:   t.Customer.Email,
			Phone:   t.Customer.Phone,
			Address: address,
		},
		Invoice: Invoice{
			Number:         t.Order.OrderNumber,
			Date:           t.Order.CreatedAt.Format("2006-01-02"),
			Items:          lines,
			Subtotal:       money(subtotal),
			Discount:       money(discount),
			Tax:            money(decimal.Zero),
			ShippingFee:    money(t.Order.ShippingFee),
			ShippingMethod: t.Order.ShippingType,
			Total:          money(t.Order.TotalAmount.Add(t.Order.ShippingFee)),
			PaymentMethod:  paymentLabel(t.Order.PaymentMethod),
			ThankYou:       fmt.Sprintf("Thank you for shopping with %s!", company.Name),
		},
		Company: company,
	}
}

func nonEmpty(vals ...string) []string {
	var out []string
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
