package users

import (
	"context"
	"sync"
	"time"

	"github.com/credgate/credgate/internal/common"
)

// InMemoryRepository keeps user records in a map guarded by a mutex. It
// honors the same uniqueness contract as the Postgres store and is used in
// tests and local development.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]User)}
}

func (r *InMemoryRepository) Create(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}

	u := *user
	u.CreatedAt = time.Now()
	r.users[u.UserName] = u

	created := u
	return &created, nil
}

func (r *InMemoryRepository) GetByUsername(_ context.Context, userName string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}

	found := u
	return &found, nil
}
