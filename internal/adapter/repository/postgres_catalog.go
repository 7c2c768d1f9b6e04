package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	catalogdomain "github.com/lojazap/lojazap-backend/internal/domain/catalog"
)

// PostgresCatalogRepository implementa catalog.Repository sobre Postgres
type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCatalogRepository cria um novo repositório de catálogo em Postgres
func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

const productColumns = `id, tenant_id, name, category_id, subcategory, price, cost_price, stock, sizes, active, created_at, updated_at`

// CreateProduct implementa catalog.Repository.CreateProduct
func (r *PostgresCatalogRepository) CreateProduct(ctx context.Context, p *catalogdomain.Product) error {
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return fmt.Errorf("erro ao converter tamanhos para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO products (id, tenant_id, name, category_id, subcategory,
			price, cost_price, stock, sizes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.TenantID, p.Name, p.CategoryID, p.Subcategory,
		p.Price, p.CostPrice, p.Stock, sizes, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}
	return nil
}

// FindProductByID implementa catalog.Repository.FindProductByID
func (r *PostgresCatalogRepository) FindProductByID(ctx context.Context, tenantID, id string) (*catalogdomain.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	return scanProduct(row)
}

// ListProducts implementa catalog.Repository.ListProducts
func (r *PostgresCatalogRepository) ListProducts(ctx context.Context, tenantID string, limit, offset int) ([]*catalogdomain.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		WHERE tenant_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	products := make([]*catalogdomain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateProduct implementa catalog.Repository.UpdateProduct
func (r *PostgresCatalogRepository) UpdateProduct(ctx context.Context, p *catalogdomain.Product) error {
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return fmt.Errorf("erro ao converter tamanhos para JSON: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE products SET name = $3, category_id = $4, subcategory = $5,
			price = $6, cost_price = $7, stock = $8, sizes = $9, active = $10,
			updated_at = $11
		WHERE tenant_id = $1 AND id = $2`,
		p.TenantID, p.ID, p.Name, p.CategoryID, p.Subcategory,
		p.Price, p.CostPrice, p.Stock, sizes, p.Active, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct implementa catalog.Repository.DeleteProduct
func (r *PostgresCatalogRepository) DeleteProduct(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("erro ao remover produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// CreateCategory implementa catalog.Repository.CreateCategory
func (r *PostgresCatalogRepository) CreateCategory(ctx context.Context, c *catalogdomain.Category) error {
	subcategories, err := json.Marshal(c.Subcategories)
	if err != nil {
		return fmt.Errorf("erro ao converter subcategorias para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO categories (id, tenant_id, name, subcategories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.TenantID, c.Name, subcategories, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar categoria: %w", err)
	}
	return nil
}

// ListCategories implementa catalog.Repository.ListCategories
func (r *PostgresCatalogRepository) ListCategories(ctx context.Context, tenantID string) ([]*catalogdomain.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, name, subcategories, created_at, updated_at
		FROM categories WHERE tenant_id = $1 ORDER BY name ASC`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar categorias: %w", err)
	}
	defer rows.Close()

	categories := make([]*catalogdomain.Category, 0)
	for rows.Next() {
		var c catalogdomain.Category
		var subcategoriesJSON []byte

		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &subcategoriesJSON,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao buscar categoria: %w", err)
		}
		if err := json.Unmarshal(subcategoriesJSON, &c.Subcategories); err != nil {
			return nil, fmt.Errorf("erro ao converter subcategorias: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// CreateUpsellOffer implementa catalog.Repository.CreateUpsellOffer
func (r *PostgresCatalogRepository) CreateUpsellOffer(ctx context.Context, o *catalogdomain.UpsellOffer) error {
	categoryIDs, err := json.Marshal(o.TriggerCategoryIDs)
	if err != nil {
		return fmt.Errorf("erro ao converter categorias gatilho para JSON: %w", err)
	}
	subcategories, err := json.Marshal(o.TriggerSubcategories)
	if err != nil {
		return fmt.Errorf("erro ao converter subcategorias gatilho para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO upsell_offers (id, tenant_id, title, active, trigger_category_ids,
			trigger_subcategories, product_id, promo_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.TenantID, o.Title, o.Active, categoryIDs, subcategories,
		o.ProductID, o.PromoPrice, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar oferta: %w", err)
	}
	return nil
}

// ListUpsellOffers implementa catalog.Repository.ListUpsellOffers
func (r *PostgresCatalogRepository) ListUpsellOffers(ctx context.Context, tenantID string) ([]*catalogdomain.UpsellOffer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, title, active, trigger_category_ids,
			trigger_subcategories, product_id, promo_price, created_at, updated_at
		FROM upsell_offers WHERE tenant_id = $1
		ORDER BY created_at ASC`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar ofertas: %w", err)
	}
	defer rows.Close()

	offers := make([]*catalogdomain.UpsellOffer, 0)
	for rows.Next() {
		var o catalogdomain.UpsellOffer
		var categoryIDsJSON, subcategoriesJSON []byte

		if err := rows.Scan(&o.ID, &o.TenantID, &o.Title, &o.Active,
			&categoryIDsJSON, &subcategoriesJSON, &o.ProductID, &o.PromoPrice,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao buscar oferta: %w", err)
		}
		if err := json.Unmarshal(categoryIDsJSON, &o.TriggerCategoryIDs); err != nil {
			return nil, fmt.Errorf("erro ao converter categorias gatilho: %w", err)
		}
		if err := json.Unmarshal(subcategoriesJSON, &o.TriggerSubcategories); err != nil {
			return nil, fmt.Errorf("erro ao converter subcategorias gatilho: %w", err)
		}
		offers = append(offers, &o)
	}
	return offers, rows.Err()
}

// FindUpsellOffers implementa catalog.Repository.FindUpsellOffers.
// O casamento de gatilhos fica na regra de domínio, sobre as ofertas ativas.
func (r *PostgresCatalogRepository) FindUpsellOffers(ctx context.Context, tenantID, triggerCategoryID, triggerSubcategory string) ([]*catalogdomain.UpsellOffer, error) {
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

func scanProduct(row pgx.Row) (*catalogdomain.Product, error) {
	var p catalogdomain.Product
	var sizesJSON []byte

	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.CategoryID, &p.Subcategory,
		&p.Price, &p.CostPrice, &p.Stock, &sizesJSON, &p.Active,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
		return nil, fmt.Errorf("erro ao converter tamanhos: %w", err)
	}
	return &p, nil
}
