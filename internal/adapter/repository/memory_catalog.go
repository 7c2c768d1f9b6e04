package repository

import (
	"context"
	"errors"
	"sort"

	catalogdomain "github.com/lojazap/lojazap-backend/internal/domain/catalog"
)

var (
	ErrProductNotFound = errors.New("produto não encontrado")
)

// MemoryCatalogRepository implementa catalog.Repository em memória
type MemoryCatalogRepository struct {
	store *MemoryStore
}

// NewMemoryCatalogRepository cria um novo repositório de catálogo em memória
func NewMemoryCatalogRepository(store *MemoryStore) *MemoryCatalogRepository {
	return &MemoryCatalogRepository{store: store}
}

// CreateProduct implementa catalog.Repository.CreateProduct
func (r *MemoryCatalogRepository) CreateProduct(ctx context.Context, p *catalogdomain.Product) error {
	return r.store.insert(collectionProducts, p.TenantID, p.ID, p)
}

// FindProductByID implementa catalog.Repository.FindProductByID
func (r *MemoryCatalogRepository) FindProductByID(ctx context.Context, tenantID, id string) (*catalogdomain.Product, error) {
	v, err := r.store.get(collectionProducts, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return v.(*catalogdomain.Product), nil
}

// ListProducts implementa catalog.Repository.ListProducts
func (r *MemoryCatalogRepository) ListProducts(ctx context.Context, tenantID string, limit, offset int) ([]*catalogdomain.Product, error) {
	values, err := r.store.list(collectionProducts, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*catalogdomain.Product, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*catalogdomain.Product))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

// UpdateProduct implementa catalog.Repository.UpdateProduct
func (r *MemoryCatalogRepository) UpdateProduct(ctx context.Context, p *catalogdomain.Product) error {
	if err := r.store.update(collectionProducts, p.TenantID, p.ID, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// DeleteProduct implementa catalog.Repository.DeleteProduct
func (r *MemoryCatalogRepository) DeleteProduct(ctx context.Context, tenantID, id string) error {
	if err := r.store.remove(collectionProducts, tenantID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// CreateCategory implementa catalog.Repository.CreateCategory
func (r *MemoryCatalogRepository) CreateCategory(ctx context.Context, c *catalogdomain.Category) error {
	return r.store.insert(collectionCategories, c.TenantID, c.ID, c)
}

// ListCategories implementa catalog.Repository.ListCategories
func (r *MemoryCatalogRepository) ListCategories(ctx context.Context, tenantID string) ([]*catalogdomain.Category, error) {
	values, err := r.store.list(collectionCategories, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*catalogdomain.Category, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*catalogdomain.Category))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateUpsellOffer implementa catalog.Repository.CreateUpsellOffer
func (r *MemoryCatalogRepository) CreateUpsellOffer(ctx context.Context, o *catalogdomain.UpsellOffer) error {
	return r.store.insert(collectionOffers, o.TenantID, o.ID, o)
}

// ListUpsellOffers implementa catalog.Repository.ListUpsellOffers
func (r *MemoryCatalogRepository) ListUpsellOffers(ctx context.Context, tenantID string) ([]*catalogdomain.UpsellOffer, error) {
	values, err := r.store.list(collectionOffers, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*catalogdomain.UpsellOffer, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*catalogdomain.UpsellOffer))
	}
	return out, nil
}

// FindUpsellOffers implementa catalog.Repository.FindUpsellOffers
func (r *MemoryCatalogRepository) FindUpsellOffers(ctx context.Context, tenantID, triggerCategoryID, triggerSubcategory string) ([]*catalogdomain.UpsellOffer, error) {
	offers, err := r.ListUpsellOffers(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]*catalogdomain.UpsellOffer, 0)
	for _, o := range offers {
		if o.Matches(triggerCategoryID, triggerSubcategory) {
			out = append(out, o)
		}
	}
	return out, nil
}
