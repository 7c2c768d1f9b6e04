package repository

import (
	"context"
	"errors"
	"sort"

	orderdomain "github.com/lojazap/lojazap-backend/internal/domain/order"
)

var (
	ErrOrderNotFound = errors.New("pedido não encontrado")
)

// MemoryOrderRepository implementa order.Repository em memória
type MemoryOrderRepository struct {
	store *MemoryStore
}

// NewMemoryOrderRepository cria um novo repositório de pedidos em memória
func NewMemoryOrderRepository(store *MemoryStore) *MemoryOrderRepository {
	return &MemoryOrderRepository{store: store}
}

// Create implementa order.Repository.Create
func (r *MemoryOrderRepository) Create(ctx context.Context, o *orderdomain.Order) error {
	return r.store.insert(collectionOrders, o.TenantID, o.ID, o)
}

// FindByID implementa order.Repository.FindByID
func (r *MemoryOrderRepository) FindByID(ctx context.Context, tenantID, id string) (*orderdomain.Order, error) {
	v, err := r.store.get(collectionOrders, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return v.(*orderdomain.Order), nil
}

// FindByCustomer implementa order.Repository.FindByCustomer.
// O histórico é devolvido do mais recente para o mais antigo.
func (r *MemoryOrderRepository) FindByCustomer(ctx context.Context, tenantID, customerID string) ([]*orderdomain.Order, error) {
	all, err := r.listSorted(tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*orderdomain.Order, 0)
	for _, o := range all {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

// List implementa order.Repository.List
func (r *MemoryOrderRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*orderdomain.Order, error) {
	all, err := r.listSorted(tenantID)
	if err != nil {
		return nil, err
	}
	return paginate(all, limit, offset), nil
}

// Update implementa order.Repository.Update
func (r *MemoryOrderRepository) Update(ctx context.Context, o *orderdomain.Order) error {
	if err := r.store.update(collectionOrders, o.TenantID, o.ID, o); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

// ListWithOpenInstallments implementa order.Repository.ListWithOpenInstallments
func (r *MemoryOrderRepository) ListWithOpenInstallments(ctx context.Context, tenantID string) ([]*orderdomain.Order, error) {
	all, err := r.listSorted(tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*orderdomain.Order, 0)
	for _, o := range all {
		if o.PaymentMethod != orderdomain.PaymentFiado {
			continue
		}
		for _, inst := range o.Installments {
			if inst.IsOpen() {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

// CountByTenant implementa order.Repository.CountByTenant
func (r *MemoryOrderRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	values, err := r.store.list(collectionOrders, tenantID)
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

func (r *MemoryOrderRepository) listSorted(tenantID string) ([]*orderdomain.Order, error) {
	values, err := r.store.list(collectionOrders, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*orderdomain.Order, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*orderdomain.Order))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
