package mailer

import (
	"context"
	"sync"
)

// Mock records messages for tests.
type Mock struct {
	mu   sync.Mutex
	Sent []Email
	Err  error
}

func (m *Mock) Send(_ context.Context, e Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, e)
	return m.Err
}

func (m *Mock) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
