package payment

import (
	"context"
	"sync"
	"time"
)

type memRepo struct {
	mu        sync.Mutex
	rows      []Notification
	insertErr error
}

func (m *memRepo) Insert(_ context.Context, n *Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	n.ID = int64(len(m.rows) + 1)
	n.ReceivedAt = time.Now()
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memRepo) FindByTrxID(_ context.Context, trxID string) (*Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].TrxID == trxID {
			cp := m.rows[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
