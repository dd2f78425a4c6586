package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MikeMC777/storefront-ecom/internal/payment"
)

// memDB is a snapshot of every table the order flow touches.
type memDB struct {
	customers     []Customer
	addresses     []Address
	orders        []Order
	items         []Item
	history       []StatusEntry
	notifications []payment.Notification
}

func (d *memDB) clone() *memDB {
	return &memDB{
		customers:     append([]Customer(nil), d.customers...),
		addresses:     append([]Address(nil), d.addresses...),
		orders:        append([]Order(nil), d.orders...),
		items:         append([]Item(nil), d.items...),
		history:       append([]StatusEntry(nil), d.history...),
		notifications: append([]payment.Notification(nil), d.notifications...),
	}
}

// memRepo applies a transaction's writes only when fn succeeds, the same
// all-or-nothing contract the Postgres repository gives.
type memRepo struct {
	mu       sync.Mutex
	db       *memDB
	seq      int64
	products map[int64]string

	failOn          map[string]error
	alwaysDuplicate bool
	loseClaim       bool
}

func newMemRepo() *memRepo {
	return &memRepo{db: &memDB{}, products: map[int64]string{}, failOn: map[string]error{}}
}

func (r *memRepo) nextID() int64 {
	r.seq++
	return r.seq
}

func (r *memRepo) InTx(ctx context.Context, fn func(Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	work := r.db.clone()
	if err := fn(&memTx{repo: r, db: work}); err != nil {
		return err
	}
	r.db = work
	return nil
}

type memTx struct {
	repo *memRepo
	db   *memDB
}

func (t *memTx) fail(step string) error { return t.repo.failOn[step] }

func (t *memTx) InsertCustomer(_ context.Context, c *Customer) error {
	if err := t.fail("customer"); err != nil {
		return err
	}
	if t.repo.alwaysDuplicate {
		return ErrDuplicateEmail
	}
	for _, ex := range t.db.customers {
		if ex.Email == c.Email {
			return ErrDuplicateEmail
		}
	}
	c.ID = t.repo.nextID()
	t.db.customers = append(t.db.customers, *c)
	return nil
}

func (t *memTx) InsertAddress(_ context.Context, a *Address) error {
	if err := t.fail("address"); err != nil {
		return err
	}
	a.ID = t.repo.nextID()
	t.db.addresses = append(t.db.addresses, *a)
	return nil
}

func (t *memTx) FindNotification(_ context.Context, trxID string) (*payment.Notification, error) {
	for i := range t.db.notifications {
		if t.db.notifications[i].TrxID == trxID {
			cp := t.db.notifications[i]
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (t *memTx) ClaimNotification(_ context.Context, id, orderID int64, c Customer) (bool, error) {
	if err := t.fail("claim"); err != nil {
		return false, err
	}
	if t.repo.loseClaim {
		return false, nil
	}
	for i := range t.db.notifications {
		n := &t.db.notifications[i]
		if n.ID != id || n.ClaimedAt != nil {
			continue
		}
		now := time.Now()
		n.ClaimedAt, n.ClaimedOrderID = &now, &orderID
		n.UserID, n.Phone, n.Name = &c.ID, &c.Phone, &c.Name
		return true, nil
	}
	return false, nil
}

func (t *memTx) InsertOrder(_ context.Context, o *Order) error {
	if err := t.fail("order"); err != nil {
		return err
	}
	o.ID = t.repo.nextID()
	o.CreatedAt, o.UpdatedAt = time.Now(), time.Now()
	t.db.orders = append(t.db.orders, *o)
	return nil
}

func (t *memTx) InsertItem(_ context.Context, it *Item) error {
	if err := t.fail("item"); err != nil {
		return err
	}
	it.ID = t.repo.nextID()
	t.db.items = append(t.db.items, *it)
	return nil
}

func (t *memTx) InsertStatus(_ context.Context, e *StatusEntry) error {
	if err := t.fail("status"); err != nil {
		return err
	}
	e.ID = t.repo.nextID()
	e.CreatedAt = time.Now()
	t.db.history = append(t.db.history, *e)
	return nil
}

func (t *memTx) LockOrder(_ context.Context, id int64) (*Order, error) {
	for _, o := range t.db.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (t *memTx) SetStatus(_ context.Context, id int64, status Status, paymentStatus string) error {
	for i := range t.db.orders {
		if t.db.orders[i].ID == id {
			t.db.orders[i].Status = status
			t.db.orders[i].PaymentStatus = paymentStatus
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepo) FindByKey(_ context.Context, key string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.db.orders {
		if o.TrackingNumber == key || o.OrderNumber == key {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) GetCustomer(_ context.Context, id int64) (*Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.db.customers {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) GetAddress(_ context.Context, id int64) (*Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.db.addresses {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) ListItems(_ context.Context, orderID int64) ([]ItemView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ItemView
	for _, it := range r.db.items {
		if it.OrderID == orderID {
			out = append(out, ItemView{Item: it, ProductName: r.products[it.ProductID]})
		}
	}
	return out, nil
}

func (r *memRepo) ListHistory(_ context.Context, orderID int64) ([]StatusEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []StatusEntry
	for _, e := range r.db.history {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepo) SetInvoice(_ context.Context, orderID int64, status, link string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.db.orders {
		if r.db.orders[i].ID == orderID {
			r.db.orders[i].InvoiceStatus = status
			if link != "" {
				l := link
				r.db.orders[i].InvoiceLink = &l
			}
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepo) counts() (customers, addresses, orders, items, history int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.db.customers), len(r.db.addresses), len(r.db.orders), len(r.db.items), len(r.db.history)
}
