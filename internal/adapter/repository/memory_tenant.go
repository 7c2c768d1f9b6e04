package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	tenantdomain "github.com/lojazap/lojazap-backend/internal/domain/tenant"
)

var (
	ErrTenantNotFound     = errors.New("tenant não encontrado")
	ErrTenantHasOrders    = errors.New("tenant possui pedidos e não pode ser removido")
	ErrTenantDuplicateKey = errors.New("tenant com mesmo slug já existe")
)

// MemoryTenantRepository implementa tenant.Repository em memória.
// Tenants são a raiz do isolamento, então a coleção é global: cada tenant é
// carimbado com o próprio ID.
type MemoryTenantRepository struct {
	mu      sync.RWMutex
	store   *MemoryStore
	tenants map[string]*tenantdomain.Tenant
}

// NewMemoryTenantRepository cria um novo repositório de tenants em memória
func NewMemoryTenantRepository(store *MemoryStore) *MemoryTenantRepository {
	return &MemoryTenantRepository{
		store:   store,
		tenants: make(map[string]*tenantdomain.Tenant),
	}
}

// Create implementa tenant.Repository.Create
func (r *MemoryTenantRepository) Create(ctx context.Context, t *tenantdomain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tenants {
		if existing.Slug == t.Slug {
			return ErrTenantDuplicateKey
		}
	}

	r.tenants[t.ID] = clone(t).(*tenantdomain.Tenant)
	return nil
}

// FindByID implementa tenant.Repository.FindByID
func (r *MemoryTenantRepository) FindByID(ctx context.Context, id string) (*tenantdomain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tenants[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return clone(t).(*tenantdomain.Tenant), nil
}

// FindBySlug implementa tenant.Repository.FindBySlug
func (r *MemoryTenantRepository) FindBySlug(ctx context.Context, slug string) (*tenantdomain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slug = strings.ToLower(slug)
	for _, t := range r.tenants {
		if t.Slug == slug {
			return clone(t).(*tenantdomain.Tenant), nil
		}
	}
	return nil, ErrTenantNotFound
}

// List implementa tenant.Repository.List
func (r *MemoryTenantRepository) List(ctx context.Context, limit, offset int) ([]*tenantdomain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*tenantdomain.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		out = append(out, clone(t).(*tenantdomain.Tenant))
	}
	return paginate(out, limit, offset), nil
}

// Update implementa tenant.Repository.Update
func (r *MemoryTenantRepository) Update(ctx context.Context, t *tenantdomain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tenants[t.ID]; !ok {
		return ErrTenantNotFound
	}
	r.tenants[t.ID] = clone(t).(*tenantdomain.Tenant)
	return nil
}

// Delete implementa tenant.Repository.Delete. Tenants com pedidos vinculados
// não são removidos enquanto os pedidos existirem.
func (r *MemoryTenantRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tenants[id]; !ok {
		return ErrTenantNotFound
	}

	if r.store != nil {
		r.store.mu.RLock()
		for _, rec := range r.store.data[collectionOrders] {
			if rec.tenantID == id {
				r.store.mu.RUnlock()
				return ErrTenantHasOrders
			}
		}
		r.store.mu.RUnlock()
	}

	delete(r.tenants, id)
	return nil
}

// Exists implementa tenant.Repository.Exists
func (r *MemoryTenantRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tenants[id]
	return ok && t.IsActive(), nil
}

// ValidateTenant implementa a interface tenant.Validator do middleware
func (r *MemoryTenantRepository) ValidateTenant(tenantID string) (bool, error) {
	return r.Exists(context.Background(), tenantID)
}

// paginate aplica limit/offset sobre uma fatia já materializada
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
