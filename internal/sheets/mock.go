package sheets

import (
	"context"
	"sync"
)

// MockAPI is an in-memory implementation of API for testing. It records
// every call and serves rows from a configurable per-range table.
type MockAPI struct {
	GetFunc      func(ctx context.Context, rng string) ([][]string, error)
	UpdateFunc   func(ctx context.Context, rng string, rows [][]string) error
	AppendFunc   func(ctx context.Context, rng string, rows [][]string) error
	MetadataFunc func(ctx context.Context) (*Metadata, error)

	Ranges   map[string][][]string
	AuthMode AuthMode

	GetCalls      []string
	UpdateCalls   []WriteCall
	AppendCalls   []WriteCall
	MetadataCalls int

	mu sync.Mutex
}

// WriteCall records a single update or append invocation.
type WriteCall struct {
	Range string
	Rows  [][]string
}

// NewMockAPI creates a mock transport in service-account mode.
func NewMockAPI() *MockAPI {
	return &MockAPI{
		Ranges: make(map[string][][]string),
	}
}

// GetRange implements API.
func (m *MockAPI) GetRange(ctx context.Context, rng string) ([][]string, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, rng)
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, rng)
	}
	return m.Ranges[rng], nil
}

// UpdateRange implements API.
func (m *MockAPI) UpdateRange(ctx context.Context, rng string, rows [][]string) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, WriteCall{Range: rng, Rows: rows})
	m.mu.Unlock()

	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rng, rows)
	}
	return nil
}

// AppendRows implements API.
func (m *MockAPI) AppendRows(ctx context.Context, rng string, rows [][]string) error {
	m.mu.Lock()
	m.AppendCalls = append(m.AppendCalls, WriteCall{Range: rng, Rows: rows})
	m.mu.Unlock()

	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, rng, rows)
	}
	return nil
}

// Metadata implements API.
func (m *MockAPI) Metadata(ctx context.Context) (*Metadata, error) {
	m.mu.Lock()
	m.MetadataCalls++
	m.mu.Unlock()

	if m.MetadataFunc != nil {
		return m.MetadataFunc(ctx)
	}
	return &Metadata{Title: "Mock Spreadsheet"}, nil
}

// Mode implements API.
func (m *MockAPI) Mode() AuthMode {
	return m.AuthMode
}

// AppendedTo returns the rows appended to a range across all calls.
func (m *MockAPI) AppendedTo(rng string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows [][]string
	for _, call := range m.AppendCalls {
		if call.Range == rng {
			rows = append(rows, call.Rows...)
		}
	}
	return rows
}

// Reset clears all recorded calls.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = nil
	m.UpdateCalls = nil
	m.AppendCalls = nil
	m.MetadataCalls = 0
}
