package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gookit/slog"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront-ecom/internal/events"
	"github.com/MikeMC777/storefront-ecom/internal/payment"
)

const (
	paymentCOD    = "cod"
	paymentOnline = "online"
)

// Writer creates orders. Customer, address, order, items and the first
// history row are written in a single transaction.
type Writer struct {
	repo   Repository
	events events.Publisher
	now    func() time.Time
}

func NewWriter(repo Repository, pub events.Publisher) *Writer {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Writer{repo: repo, events: pub, now: time.Now}
}

func (req *CreateOrderRequest) Validate() error {
	v := &ValidationError{}
	c := req.Customer
	if strings.TrimSpace(c.Name) == "" {
		v.add("customer name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		v.add("customer email is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		v.add("customer phone is required")
	}
	if !c.hasAddress() {
		v.add("customer address is required")
	}
	if len(req.Items) == 0 {
		v.add("cart is empty")
	}
	for i, it := range req.Items {
		if it.Quantity <= 0 {
			v.add(fmt.Sprintf("item %d: quantity must be positive", i))
		}
		if it.Price.IsNegative() {
			v.add(fmt.Sprintf("item %d: price must not be negative", i))
		}
	}
	if !req.Total.IsPositive() {
		v.add("total must be positive")
	}
	if req.ShippingFee.IsNegative() {
		v.add("shipping fee must not be negative")
	}
	switch req.PaymentMethod {
	case paymentCOD:
	case paymentOnline:
		if strings.TrimSpace(req.TrxID) == "" {
			v.add("trxId is required for online payment")
		}
	default:
		v.add("payment_method must be cod or online")
	}
	return v.orNil()
}

type paymentMeta struct {
	method       string
	status       string
	trackingID   *string
	notes        string
	notification *payment.Notification
}

func resolvePayment(ctx context.Context, tx Tx, req *CreateOrderRequest) (paymentMeta, error) {
	if req.PaymentMethod == paymentCOD {
		return paymentMeta{
			method: MethodCOD,
			status: PaymentPending,
			notes:  "Order placed by customer",
		}, nil
	}

	trxID := strings.TrimSpace(req.TrxID)
	n, err := tx.FindNotification(ctx, trxID)
	if errors.Is(err, payment.ErrNotFound) {
		return paymentMeta{}, fmt.Errorf("%w: %s", payment.ErrNotFound, trxID)
	}
	if err != nil {
		return paymentMeta{}, fmt.Errorf("find notification: %w", err)
	}
	if n.Claimed() {
		return paymentMeta{}, fmt.Errorf("%w: %s", payment.ErrAlreadyUsed, trxID)
	}
	return paymentMeta{
		method:       MethodOnline,
		status:       PaymentPaid,
		trackingID:   &trxID,
		notes:        n.Provider,
		notification: n,
	}, nil
}

func insertCustomer(ctx context.Context, tx Tx, in CustomerInput) (Customer, error) {
	c := Customer{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
	err := tx.InsertCustomer(ctx, &c)
	if errors.Is(err, ErrDuplicateEmail) {
		c.Email = uniqueEmail(c.Email)
		err = tx.InsertCustomer(ctx, &c)
	}
	if err != nil {
		return Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return c, nil
}

// Create validates req and writes the whole order or nothing.
func (w *Writer) Create(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var o Order
	err := w.repo.InTx(ctx, func(tx Tx) error {
		c, err := insertCustomer(ctx, tx, req.Customer)
		if err != nil {
			return err
		}

		addr := buildAddress(req.Customer, c.ID)
		if err := tx.InsertAddress(ctx, &addr); err != nil {
			return fmt.Errorf("insert address: %w", err)
		}

		pay, err := resolvePayment(ctx, tx, &req)
		if err != nil {
			return err
		}

		o = Order{
			OrderNumber:       NewOrderNumber(w.now()),
			TrackingNumber:    NewTrackingNumber(),
			TrackingID:        pay.trackingID,
			CustomerID:        c.ID,
			ShippingAddressID: addr.ID,
			BillingAddressID:  addr.ID,
			TotalAmount:       req.Total,
			Status:            StatusPending,
			PaymentStatus:     pay.status,
			PaymentMethod:     pay.method,
			Notes:             pay.notes,
			ShippingFee:       req.ShippingFee,
			ShippingType:      strings.TrimSpace(req.ShippingType),
			InvoiceStatus:     InvoicePending,
		}
		if err := tx.InsertOrder(ctx, &o); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if pay.notification != nil {
			ok, err := tx.ClaimNotification(ctx, pay.notification.ID, o.ID, c)
			if err != nil {
				return fmt.Errorf("claim notification: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", payment.ErrAlreadyUsed, *pay.trackingID)
			}
		}

		for _, line := range req.Items {
			// Columns are NUMERIC(12,2); the line total is taken from the stored unit price.
			unit := line.UnitPrice().Round(2)
			it := Item{
				OrderID:    o.ID,
				ProductID:  line.ID,
				Quantity:   line.Quantity,
				UnitPrice:  unit,
				TotalPrice: unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
			}
			if err := tx.InsertItem(ctx, &it); err != nil {
				return fmt.Errorf("insert item for product %d: %w", line.ID, err)
			}
		}

		h := StatusEntry{OrderID: o.ID, Status: StatusPending, CreatedBy: "system", Notes: "Order created"}
		if err := tx.InsertStatus(ctx, &h); err != nil {
			return fmt.Errorf("insert status history: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.Errorf("[order] create failed email=%q method=%s trx=%q items=%d: %v",
			req.Customer.Email, req.PaymentMethod, req.TrxID, len(req.Items), err)
		return nil, err
	}

	slog.Infof("[order] created id=%d number=%s tracking=%s method=%s payment=%s",
		o.ID, o.OrderNumber, o.TrackingNumber, o.PaymentMethod, o.PaymentStatus)
	events.Emit(ctx, w.events, events.SubjectOrderCreated, events.OrderCreated{
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		TrackingNumber: o.TrackingNumber,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		Total:          o.TotalAmount.StringFixed(2),
		CreatedAt:      o.CreatedAt,
	})

	return &CreateOrderResult{
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		TrackingNumber: o.TrackingNumber,
		PaymentStatus:  o.PaymentStatus,
	}, nil
}
