package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// --- Mock implementations ---

// mockVulnerabilityAPI implements driven.VulnerabilityAPI for testing.
type mockVulnerabilityAPI struct {
	resp  *domain.SearchResponse
	err   error
	panic any
	calls atomic.Int32

	mu      sync.Mutex
	queries []string
}

func (m *mockVulnerabilityAPI) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.queries = append(m.queries, req.Query)
	m.mu.Unlock()

	if m.panic != nil {
		panic(m.panic)
	}
	return m.resp, m.err
}

func (m *mockVulnerabilityAPI) BaseURL() string {
	return "https://api.example.com"
}

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	data   map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.data[key].(string)
	return s
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/vulnsearch/config.toml"
}

// mockHostConfigStore implements driven.HostConfigStore for testing.
type mockHostConfigStore struct {
	doc     map[string]any
	exists  bool
	loadErr error
	saveErr error

	saved      map[string]any
	saveCalls  int
	backedUp   bool
	backupPath string
}

func (m *mockHostConfigStore) Load() (map[string]any, bool, error) {
	if m.loadErr != nil {
		return nil, true, m.loadErr
	}
	return m.doc, m.exists, nil
}

func (m *mockHostConfigStore) Backup() (string, error) {
	m.backedUp = true
	return m.backupPath, nil
}

func (m *mockHostConfigStore) Save(doc map[string]any) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = doc
	return nil
}

func (m *mockHostConfigStore) Path() string {
	return "/home/user/.config/Claude/claude_desktop_config.json"
}

func strPtr(s string) *string { return &s }
