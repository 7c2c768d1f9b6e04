package catalog

import (
	"context"
)

// Repository define a interface de leitura/escrita do catálogo
type Repository interface {
	// CreateProduct cria um novo produto
	CreateProduct(ctx context.Context, p *Product) error

	// FindProductByID busca um produto pelo ID dentro do tenant
	FindProductByID(ctx context.Context, tenantID, id string) (*Product, error)

	// ListProducts lista os produtos de um tenant com paginação
	ListProducts(ctx context.Context, tenantID string, limit, offset int) ([]*Product, error)

	// UpdateProduct atualiza os dados de um produto existente
	UpdateProduct(ctx context.Context, p *Product) error

	// DeleteProduct remove um produto
	DeleteProduct(ctx context.Context, tenantID, id string) error

	// CreateCategory cria uma nova categoria
	CreateCategory(ctx context.Context, c *Category) error

	// ListCategories lista as categorias de um tenant
	ListCategories(ctx context.Context, tenantID string) ([]*Category, error)

	// CreateUpsellOffer cria uma nova oferta de upsell
	CreateUpsellOffer(ctx context.Context, o *UpsellOffer) error

	// ListUpsellOffers lista as ofertas de upsell de um tenant
	ListUpsellOffers(ctx context.Context, tenantID string) ([]*UpsellOffer, error)

	// FindUpsellOffers busca as ofertas ativas disparadas pela categoria/subcategoria
	FindUpsellOffers(ctx context.Context, tenantID, triggerCategoryID, triggerSubcategory string) ([]*UpsellOffer, error)
}
