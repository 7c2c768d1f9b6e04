package repository

import (
	"context"
	"strings"
	"sync"

	userdomain "github.com/lojazap/lojazap-backend/internal/domain/user"
	"github.com/lojazap/lojazap-backend/pkg/tenant"
)

// MemoryUserRepository implementa user.Repository em memória.
// Usuários não passam pelo clone via JSON do MemoryStore porque o hash de
// senha é excluído da serialização; aqui a cópia é feita por valor.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]userdomain.User
}

// NewMemoryUserRepository cria um novo repositório de usuários em memória
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]userdomain.User)}
}

// Create implementa user.Repository.Create
func (r *MemoryUserRepository) Create(ctx context.Context, u *userdomain.User) error {
	if u.TenantID == "" {
		return tenant.ErrNoActiveTenant
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; ok {
		return ErrDuplicateKey
	}
	r.users[u.ID] = *u
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *MemoryUserRepository) FindByID(ctx context.Context, tenantID, id string) (*userdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.TenantID != tenantID {
		return nil, userdomain.ErrUserNotFound
	}
	copy := u
	return &copy, nil
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *MemoryUserRepository) FindByEmail(ctx context.Context, tenantID, email string) (*userdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.TenantID == tenantID && strings.ToLower(u.Email) == email {
			copy := u
			return &copy, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

// Update implementa user.Repository.Update
func (r *MemoryUserRepository) Update(ctx context.Context, u *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[u.ID]
	if !ok || existing.TenantID != u.TenantID {
		return userdomain.ErrUserNotFound
	}
	r.users[u.ID] = *u
	return nil
}
