package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	customerdomain "github.com/lojazap/lojazap-backend/internal/domain/customer"
)

// MemoryCustomerRepository implementa customer.Repository em memória
type MemoryCustomerRepository struct {
	store *MemoryStore
}

// NewMemoryCustomerRepository cria um novo repositório de clientes em memória
func NewMemoryCustomerRepository(store *MemoryStore) *MemoryCustomerRepository {
	return &MemoryCustomerRepository{store: store}
}

// Create implementa customer.Repository.Create
func (r *MemoryCustomerRepository) Create(ctx context.Context, c *customerdomain.Customer) error {
	return r.store.insert(collectionCustomers, c.TenantID, c.ID, c)
}

// FindByID implementa customer.Repository.FindByID
func (r *MemoryCustomerRepository) FindByID(ctx context.Context, tenantID, id string) (*customerdomain.Customer, error) {
	v, err := r.store.get(collectionCustomers, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, customerdomain.ErrCustomerNotFound
		}
		return nil, err
	}
	return v.(*customerdomain.Customer), nil
}

// FindByEmail implementa customer.Repository.FindByEmail
func (r *MemoryCustomerRepository) FindByEmail(ctx context.Context, tenantID, email string) (*customerdomain.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findBy(tenantID, func(c *customerdomain.Customer) bool {
		return c.Email != "" && c.Email == email
	})
}

// FindByPhone implementa customer.Repository.FindByPhone
func (r *MemoryCustomerRepository) FindByPhone(ctx context.Context, tenantID, phone string) (*customerdomain.Customer, error) {
	return r.findBy(tenantID, func(c *customerdomain.Customer) bool {
		return c.Phone != "" && c.Phone == phone
	})
}

func (r *MemoryCustomerRepository) findBy(tenantID string, match func(*customerdomain.Customer) bool) (*customerdomain.Customer, error) {
	values, err := r.store.list(collectionCustomers, tenantID)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		c := v.(*customerdomain.Customer)
		if match(c) {
			return c, nil
		}
	}
	return nil, customerdomain.ErrCustomerNotFound
}

// List implementa customer.Repository.List
func (r *MemoryCustomerRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*customerdomain.Customer, error) {
	values, err := r.store.list(collectionCustomers, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*customerdomain.Customer, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*customerdomain.Customer))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, limit, offset), nil
}

// Update implementa customer.Repository.Update
func (r *MemoryCustomerRepository) Update(ctx context.Context, c *customerdomain.Customer) error {
	if err := r.store.update(collectionCustomers, c.TenantID, c.ID, c); err != nil {
		if errors.Is(err, ErrNotFound) {
			return customerdomain.ErrCustomerNotFound
		}
		return err
	}
	return nil
}

// Delete implementa customer.Repository.Delete
func (r *MemoryCustomerRepository) Delete(ctx context.Context, tenantID, id string) error {
	if err := r.store.remove(collectionCustomers, tenantID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return customerdomain.ErrCustomerNotFound
		}
		return err
	}
	return nil
}
