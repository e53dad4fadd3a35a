package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/store"
)

// MemTaskStore is an in-memory store.TaskStore. Every operation is
// restricted to the given owner, mirroring the SQL predicates.
type MemTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]domain.Task
	calls  int
	now    func() time.Time

	// Err, when set, is returned by every method.
	Err error
}

var _ store.TaskStore = (*MemTaskStore)(nil)

// NewMemTaskStore creates an empty MemTaskStore.
func NewMemTaskStore() *MemTaskStore {
	return &MemTaskStore{
		tasks: make(map[int64]domain.Task),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ListByOwner implements store.TaskStore. Newest first, ties broken by ID.
func (m *MemTaskStore) ListByOwner(ctx context.Context, userID int64) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := []domain.Task{}
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Create implements store.TaskStore.
func (m *MemTaskStore) Create(ctx context.Context, userID int64, fields domain.TaskFields) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	now := m.now()
	m.tasks[m.nextID] = domain.Task{
		ID:         m.nextID,
		UserID:     userID,
		TaskFields: fields,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return m.nextID, nil
}

// Update implements store.TaskStore.
func (m *MemTaskStore) Update(ctx context.Context, userID, taskID int64, fields domain.TaskFields) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return 0, m.Err
	}
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	t.TaskFields = fields
	t.UpdatedAt = m.now()
	m.tasks[taskID] = t
	return 1, nil
}

// Delete implements store.TaskStore.
func (m *MemTaskStore) Delete(ctx context.Context, userID, taskID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return 0, m.Err
	}
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	delete(m.tasks, taskID)
	return 1, nil
}

// Calls returns how many store methods have been invoked.
func (m *MemTaskStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Get returns a task regardless of owner, for assertions.
func (m *MemTaskStore) Get(taskID int64) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	return t, ok
}
