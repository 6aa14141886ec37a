package git

import (
	"context"
	"sync"
)

// MockWorkspace is a test double for Workspace.
// It hands out repository handles without touching the filesystem.
type MockWorkspace struct {
	Errors map[string]error

	mu    sync.Mutex
	calls map[string]int
}

// NewMockWorkspace creates a MockWorkspace failing for the URLs in errs.
func NewMockWorkspace(errs map[string]error) *MockWorkspace {
	return &MockWorkspace{Errors: errs, calls: make(map[string]int)}
}

// Obtain returns a handle carrying uri, or the configured error.
func (m *MockWorkspace) Obtain(_ context.Context, uri string) (*Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[uri]++
	if err := m.Errors[uri]; err != nil {
		return nil, err
	}
	return &Repository{URL: uri}, nil
}

// Calls returns how many times uri was obtained.
func (m *MockWorkspace) Calls(uri string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[uri]
}

// MockReconciler is a test double for Reconciler, keyed by repository URL.
type MockReconciler struct {
	Histories map[string][]CommitInfo
	Errors    map[string]error
}

// NewMockReconciler creates a MockReconciler with the given data.
func NewMockReconciler(histories map[string][]CommitInfo, errs map[string]error) *MockReconciler {
	return &MockReconciler{Histories: histories, Errors: errs}
}

// History returns the predefined commits or error for repo.URL.
func (m *MockReconciler) History(_ context.Context, repo *Repository, _, _ string) ([]CommitInfo, error) {
	if err := m.Errors[repo.URL]; err != nil {
		return nil, err
	}
	commits := m.Histories[repo.URL]
	if commits == nil {
		commits = []CommitInfo{}
	}
	return commits, nil
}

var (
	_ RepositoryProvider = (*MockWorkspace)(nil)
	_ HistoryBuilder     = (*MockReconciler)(nil)
)
