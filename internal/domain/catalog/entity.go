package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("nome não pode ser vazio")
	ErrInvalidPrice    = errors.New("preço não pode ser negativo")
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrOfferNotFound   = errors.New("oferta não encontrada")
)

// Category representa uma categoria de produtos da loja
type Category struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	Name          string    `json:"name"`
	Subcategories []string  `json:"subcategories"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCategory cria uma nova categoria
func NewCategory(tenantID, name string, subcategories []string) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Category{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Name:          name,
		Subcategories: subcategories,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Product representa um produto do catálogo
type Product struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	Name          string    `json:"name"`
	CategoryID    string    `json:"category_id"`
	Subcategory   string    `json:"subcategory"`
	Price         float64   `json:"price"`
	CostPrice     float64   `json:"cost_price"` // Base de custo para relatório de lucro
	Stock         int       `json:"stock"`
	Sizes         []string  `json:"sizes"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewProduct cria um novo produto
func NewProduct(tenantID, name, categoryID, subcategory string, price, costPrice float64, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price < 0 || costPrice < 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	return &Product{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        name,
		CategoryID:  categoryID,
		Subcategory: subcategory,
		Price:       price,
		CostPrice:   costPrice,
		Stock:       stock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpsellOffer é a regra de oferta casada: quando um item do carrinho pertence
// a uma das categorias/subcategorias gatilho, o produto da oferta é proposto
// no início do checkout pelo preço promocional.
type UpsellOffer struct {
	ID                    string    `json:"id"`
	TenantID              string    `json:"tenant_id"`
	Title                 string    `json:"title"`
	Active                bool      `json:"active"`
	TriggerCategoryIDs    []string  `json:"trigger_category_ids"`
	TriggerSubcategories  []string  `json:"trigger_subcategories"`
	ProductID             string    `json:"product_id"`
	PromoPrice            float64   `json:"promo_price"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// NewUpsellOffer cria uma nova oferta de upsell
func NewUpsellOffer(tenantID, title, productID string, promoPrice float64, triggerCategoryIDs, triggerSubcategories []string) (*UpsellOffer, error) {
	if title == "" {
		return nil, ErrEmptyName
	}
	if promoPrice < 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	return &UpsellOffer{
		ID:                   uuid.New().String(),
		TenantID:             tenantID,
		Title:                title,
		Active:               true,
		TriggerCategoryIDs:   triggerCategoryIDs,
		TriggerSubcategories: triggerSubcategories,
		ProductID:            productID,
		PromoPrice:           promoPrice,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// Matches informa se a oferta é disparada pela categoria/subcategoria informada
func (o *UpsellOffer) Matches(categoryID, subcategory string) bool {
	if !o.Active {
		return false
	}
	for _, id := range o.TriggerCategoryIDs {
		if id == categoryID {
			return true
		}
	}
	for _, sub := range o.TriggerSubcategories {
		if sub != "" && sub == subcategory {
			return true
		}
	}
	return false
}
