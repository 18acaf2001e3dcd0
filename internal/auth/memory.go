package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zarifin2103/ExamSphere/internal/errs"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

type memoryUserStore struct {
	mu    sync.RWMutex
	users map[string]Profile
}

// NewInMemoryUserStore backs tests and throwaway dev setups.
func NewInMemoryUserStore() UserStore {
	return &memoryUserStore{users: map[string]Profile{}}
}

func (m *memoryUserStore) Create(ctx context.Context, p Profile) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == p.Email {
			return Profile{}, errs.Conflictf("email %s already registered", p.Email)
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	p.CreatedAt, p.UpdatedAt = now, now
	m.users[p.ID] = p
	return p, nil
}

func (m *memoryUserStore) GetByID(ctx context.Context, id string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.users[id]
	if !ok {
		return Profile{}, errs.NotFoundf("user not found")
	}
	return p, nil
}

func (m *memoryUserStore) GetByEmail(ctx context.Context, email string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.users {
		if p.Email == email {
			return p, nil
		}
	}
	return Profile{}, errs.NotFoundf("user not found")
}

func (m *memoryUserStore) List(ctx context.Context, role rbac.Role) ([]Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Profile{}
	for _, p := range m.users {
		if role == "" || p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}
