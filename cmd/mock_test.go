package cmd

import (
	"context"
	"sync"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

type MockLink struct {
	UpFunc func(ctx context.Context) (string, error)
}

func (m *MockLink) Up(ctx context.Context) (string, error) {
	if m.UpFunc != nil {
		return m.UpFunc(ctx)
	}
	return "192.168.4.1", nil
}

type MockPublisher struct {
	mu       sync.Mutex
	received []model.Status
}

func (m *MockPublisher) Run(ctx context.Context, updates <-chan model.Status) error {
	for {
		select {
		case st := <-updates:
			m.mu.Lock()
			m.received = append(m.received, st)
			m.mu.Unlock()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (m *MockPublisher) Received() []model.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Status(nil), m.received...)
}

type MockScreen struct {
	mu       sync.Mutex
	rendered [][]string
}

func (m *MockScreen) Render(lines []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rendered = append(m.rendered, lines)
	return nil
}

func (m *MockScreen) Rendered() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.rendered...)
}
