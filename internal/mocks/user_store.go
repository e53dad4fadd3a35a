package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/store"
)

// MemUserStore is an in-memory store.UserStore.
type MemUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]domain.User

	// Err, when set, is returned by every method.
	Err error
}

var _ store.UserStore = (*MemUserStore)(nil)

// NewMemUserStore creates an empty MemUserStore.
func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]domain.User)}
}

// Create implements store.UserStore.
func (m *MemUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return store.ErrUsernameOrEmailExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	m.users[user.Username] = *user
	return nil
}

// GetByUsername implements store.UserStore.
func (m *MemUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// WithTx implements store.UserStore. The transaction is ignored.
func (m *MemUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// Len returns the number of stored users.
func (m *MemUserStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
