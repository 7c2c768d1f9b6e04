package repository

import (
	"context"
	"errors"
	"sort"

	cartdomain "github.com/lojazap/lojazap-backend/internal/domain/cart"
)

var (
	ErrCartNotFound = errors.New("carrinho abandonado não encontrado")
)

// MemoryCartRepository implementa cart.Repository em memória
type MemoryCartRepository struct {
	store *MemoryStore
}

// NewMemoryCartRepository cria um novo repositório de carrinhos abandonados em memória
func NewMemoryCartRepository(store *MemoryStore) *MemoryCartRepository {
	return &MemoryCartRepository{store: store}
}

// Upsert implementa cart.Repository.Upsert: um telefone tem no máximo um
// carrinho abandonado por loja, sempre com o retrato mais recente.
func (r *MemoryCartRepository) Upsert(ctx context.Context, c *cartdomain.AbandonedCart) error {
	existing, err := r.FindByPhone(ctx, c.TenantID, c.Phone)
	if err == nil {
		c.ID = existing.ID
		return r.store.update(collectionCarts, c.TenantID, c.ID, c)
	}
	if !errors.Is(err, ErrCartNotFound) {
		return err
	}
	return r.store.insert(collectionCarts, c.TenantID, c.ID, c)
}

// FindByPhone implementa cart.Repository.FindByPhone
func (r *MemoryCartRepository) FindByPhone(ctx context.Context, tenantID, phone string) (*cartdomain.AbandonedCart, error) {
	values, err := r.store.list(collectionCarts, tenantID)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		c := v.(*cartdomain.AbandonedCart)
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, ErrCartNotFound
}

// List implementa cart.Repository.List
func (r *MemoryCartRepository) List(ctx context.Context, tenantID string) ([]*cartdomain.AbandonedCart, error) {
	values, err := r.store.list(collectionCarts, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*cartdomain.AbandonedCart, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*cartdomain.AbandonedCart))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// DeleteByPhone implementa cart.Repository.DeleteByPhone.
// Telefone sem carrinho registrado não é erro.
func (r *MemoryCartRepository) DeleteByPhone(ctx context.Context, tenantID, phone string) error {
	c, err := r.FindByPhone(ctx, tenantID, phone)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil
		}
		return err
	}
	return r.store.remove(collectionCarts, tenantID, c.ID)
}
