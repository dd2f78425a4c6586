package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storefront-ecom/internal/events"
	"github.com/MikeMC777/storefront-ecom/internal/payment"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func karimOrder() CreateOrderRequest {
	return CreateOrderRequest{
		Items:         []CartItem{{ID: 7, Quantity: 2, Price: dec("500")}},
		Total:         dec("1000"),
		ShippingFee:   dec("90"),
		ShippingType:  "inside_dhaka",
		PaymentMethod: "cod",
		Customer: CustomerInput{
			Name:    "Karim",
			Email:   "k@x.com",
			Phone:   "01711111111",
			Address: "House 1\nDhaka, Dhaka, 1200",
		},
	}
}

type spy struct{ subjects []string }

func (s *spy) Publish(_ context.Context, subject string, _ any) error {
	s.subjects = append(s.subjects, subject)
	return nil
}

func TestCreate_CODExample(t *testing.T) {
	repo := newMemRepo()
	pub := &spy{}
	w := NewWriter(repo, pub)

	res, err := w.Create(context.Background(), karimOrder())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.OrderNumber, "ORD-"))
	assert.True(t, strings.HasPrefix(res.TrackingNumber, "TRK-"))
	assert.Equal(t, PaymentPending, res.PaymentStatus)

	require.Len(t, repo.db.orders, 1)
	o := repo.db.orders[0]
	assert.Equal(t, res.OrderID, o.ID)
	assert.True(t, o.TotalAmount.Equal(dec("1000")))
	assert.True(t, o.ShippingFee.Equal(dec("90")))
	assert.Equal(t, MethodCOD, o.PaymentMethod)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	assert.Nil(t, o.TrackingID)
	assert.Equal(t, "Order placed by customer", o.Notes)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, InvoicePending, o.InvoiceStatus)
	assert.Equal(t, o.ShippingAddressID, o.BillingAddressID)

	require.Len(t, repo.db.items, 1)
	it := repo.db.items[0]
	assert.Equal(t, int64(7), it.ProductID)
	assert.True(t, it.TotalPrice.Equal(dec("1000")))

	require.Len(t, repo.db.history, 1)
	assert.Equal(t, StatusPending, repo.db.history[0].Status)
	assert.Equal(t, "Order created", repo.db.history[0].Notes)

	require.Len(t, repo.db.addresses, 1)
	a := repo.db.addresses[0]
	assert.Equal(t, repo.db.customers[0].ID, a.CustomerID)
	assert.Equal(t, AddressShipping, a.Type)
	assert.Equal(t, "House 1", a.Line1)
	assert.Equal(t, "Dhaka", a.City)
	assert.Equal(t, "1200", a.PostalCode)

	assert.Equal(t, []string{events.SubjectOrderCreated}, pub.subjects)
}

func TestCreate_COD_IgnoresTrxID(t *testing.T) {
	repo := newMemRepo()
	req := karimOrder()
	req.TrxID = "BK7Q2X9ZLM"
	req.Items = append(req.Items, CartItem{ID: 9, Quantity: 5, Price: dec("12.5")})

	_, err := NewWriter(repo, nil).Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, repo.db.orders[0].PaymentStatus)
	assert.Nil(t, repo.db.orders[0].TrackingID)
}

func TestCreate_LineTotals(t *testing.T) {
	repo := newMemRepo()
	req := karimOrder()
	sale := dec("399.99")
	req.Items = []CartItem{
		{ID: 1, Quantity: 3, Price: dec("450"), SalePrice: &sale},
		{ID: 2, Quantity: 7, Price: dec("19.95")},
		{ID: 3, Quantity: 1, Price: dec("10"), SalePrice: &decimal.Zero},
	}

	_, err := NewWriter(repo, nil).Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, repo.db.items, 3)

	assert.True(t, repo.db.items[0].UnitPrice.Equal(sale))
	assert.True(t, repo.db.items[0].TotalPrice.Equal(dec("1199.97")))
	assert.True(t, repo.db.items[1].TotalPrice.Equal(dec("139.65")))
	assert.True(t, repo.db.items[2].UnitPrice.Equal(dec("10")))
	for _, it := range repo.db.items {
		assert.True(t, it.TotalPrice.Equal(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))))
	}
}

func TestCreate_LineTotalsRoundedToCents(t *testing.T) {
	repo := newMemRepo()
	req := karimOrder()
	req.Items = []CartItem{{ID: 1, Quantity: 3, Price: dec("0.335")}}

	_, err := NewWriter(repo, nil).Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, repo.db.items, 1)

	it := repo.db.items[0]
	assert.Equal(t, "0.34", it.UnitPrice.String())
	assert.Equal(t, "1.02", it.TotalPrice.String())
	// what NUMERIC(12,2) keeps must still satisfy total == unit * qty
	stored := it.UnitPrice.Round(2).Mul(decimal.NewFromInt(int64(it.Quantity)))
	assert.True(t, it.TotalPrice.Round(2).Equal(stored))
}

func TestCreate_ValidationWritesNothing(t *testing.T) {
	cases := map[string]func(*CreateOrderRequest){
		"no name":        func(r *CreateOrderRequest) { r.Customer.Name = " " },
		"no email":       func(r *CreateOrderRequest) { r.Customer.Email = "" },
		"no phone":       func(r *CreateOrderRequest) { r.Customer.Phone = "" },
		"no address":     func(r *CreateOrderRequest) { r.Customer.Address = "" },
		"empty cart":     func(r *CreateOrderRequest) { r.Items = nil },
		"zero total":     func(r *CreateOrderRequest) { r.Total = decimal.Zero },
		"negative total": func(r *CreateOrderRequest) { r.Total = dec("-1") },
		"zero quantity":  func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 },
		"bad method":     func(r *CreateOrderRequest) { r.PaymentMethod = "card" },
		"online no trx":  func(r *CreateOrderRequest) { r.PaymentMethod = "online" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newMemRepo()
			req := karimOrder()
			mutate(&req)

			_, err := NewWriter(repo, nil).Create(context.Background(), req)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "want validation error, got %v", err)
			c, a, o, i, h := repo.counts()
			assert.Zero(t, c+a+o+i+h)
		})
	}
}

func TestCreate_StructuredAddressAccepted(t *testing.T) {
	repo := newMemRepo()
	req := karimOrder()
	req.Customer.Address = ""
	req.Customer.ShippingAddress = &AddressInput{Line1: "Road 5", City: "Chattogram", PostalCode: "4000"}

	_, err := NewWriter(repo, nil).Create(context.Background(), req)
	require.NoError(t, err)
	a := repo.db.addresses[0]
	assert.Equal(t, "Road 5", a.Line1)
	assert.Equal(t, "Chattogram, 4000", a.Line2)
	assert.Equal(t, "Chattogram", a.City)
	assert.Empty(t, a.State)
	assert.Equal(t, DefaultCountry, a.Country)
}

func TestCreate_AtomicOnInjectedFailure(t *testing.T) {
	for _, step := range []string{"customer", "address", "order", "claim", "item", "status"} {
		t.Run(step, func(t *testing.T) {
			repo := newMemRepo()
			repo.db.notifications = []payment.Notification{{ID: 100, TrxID: "BK7Q2X9ZLM", Provider: "bKash", Amount: "1,090.00"}}
			boom := errors.New("injected " + step)
			repo.failOn[step] = boom

			req := karimOrder()
			req.PaymentMethod = "online"
			req.TrxID = "BK7Q2X9ZLM"

			_, err := NewWriter(repo, nil).Create(context.Background(), req)
			require.ErrorIs(t, err, boom)

			c, a, o, i, h := repo.counts()
			assert.Zero(t, c, "customers")
			assert.Zero(t, a, "addresses")
			assert.Zero(t, o, "orders")
			assert.Zero(t, i, "items")
			assert.Zero(t, h, "history")
			assert.Nil(t, repo.db.notifications[0].ClaimedAt)
		})
	}
}

func TestCreate_DuplicateEmailRetriedOnce(t *testing.T) {
	repo := newMemRepo()
	w := NewWriter(repo, nil)

	_, err := w.Create(context.Background(), karimOrder())
	require.NoError(t, err)
	_, err = w.Create(context.Background(), karimOrder())
	require.NoError(t, err)

	require.Len(t, repo.db.customers, 2)
	first, second := repo.db.customers[0].Email, repo.db.customers[1].Email
	assert.Equal(t, "k@x.com", first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "k+"))
	assert.True(t, strings.HasSuffix(second, "@x.com"))
	assert.Len(t, repo.db.orders, 2)
}

func TestCreate_DuplicateEmailRetryFails(t *testing.T) {
	repo := newMemRepo()
	repo.alwaysDuplicate = true

	_, err := NewWriter(repo, nil).Create(context.Background(), karimOrder())
	require.ErrorIs(t, err, ErrDuplicateEmail)
	_, _, o, _, _ := repo.counts()
	assert.Zero(t, o)
}

func TestCreate_OnlineUnknownTrxID(t *testing.T) {
	repo := newMemRepo()
	req := karimOrder()
	req.PaymentMethod = "online"
	req.TrxID = "MISSING001"

	_, err := NewWriter(repo, nil).Create(context.Background(), req)
	require.ErrorIs(t, err, payment.ErrNotFound)
	c, a, o, i, h := repo.counts()
	assert.Zero(t, c+a+o+i+h)
}

func TestCreate_OnlineClaimsNotification(t *testing.T) {
	repo := newMemRepo()
	repo.db.notifications = []payment.Notification{{ID: 100, TrxID: "BK7Q2X9ZLM", Provider: "bKash", Amount: "1,090.00"}}
	req := karimOrder()
	req.PaymentMethod = "online"
	req.TrxID = "BK7Q2X9ZLM"

	res, err := NewWriter(repo, nil).Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, res.PaymentStatus)

	o := repo.db.orders[0]
	assert.Equal(t, MethodOnline, o.PaymentMethod)
	assert.Equal(t, PaymentPaid, o.PaymentStatus)
	require.NotNil(t, o.TrackingID)
	assert.Equal(t, "BK7Q2X9ZLM", *o.TrackingID)
	assert.Equal(t, "bKash", o.Notes)

	n := repo.db.notifications[0]
	require.NotNil(t, n.ClaimedAt)
	assert.Equal(t, o.ID, *n.ClaimedOrderID)
	assert.Equal(t, repo.db.customers[0].ID, *n.UserID)
	assert.Equal(t, "01711111111", *n.Phone)
	assert.Equal(t, "Karim", *n.Name)
}

func TestCreate_TrxIDConsumedOnce(t *testing.T) {
	repo := newMemRepo()
	repo.db.notifications = []payment.Notification{{ID: 100, TrxID: "BK7Q2X9ZLM", Provider: "bKash", Amount: "1090"}}
	req := karimOrder()
	req.PaymentMethod = "online"
	req.TrxID = "BK7Q2X9ZLM"
	w := NewWriter(repo, nil)

	_, err := w.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = w.Create(context.Background(), req)
	require.ErrorIs(t, err, payment.ErrAlreadyUsed)

	assert.Len(t, repo.db.orders, 1)
	assert.Len(t, repo.db.customers, 1)
}

func TestCreate_LostClaimRace(t *testing.T) {
	repo := newMemRepo()
	repo.db.notifications = []payment.Notification{{ID: 100, TrxID: "BK7Q2X9ZLM", Provider: "bKash", Amount: "1090"}}
	repo.loseClaim = true
	req := karimOrder()
	req.PaymentMethod = "online"
	req.TrxID = "BK7Q2X9ZLM"

	_, err := NewWriter(repo, nil).Create(context.Background(), req)
	require.ErrorIs(t, err, payment.ErrAlreadyUsed)
	_, _, o, _, _ := repo.counts()
	assert.Zero(t, o)
}
