package dto

import (
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/catalog"
)

// ProductRequest representa a requisição de produto
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	CategoryID  string   `json:"category_id"`
	Subcategory string   `json:"subcategory"`
	Price       float64  `json:"price" binding:"gte=0"`
	CostPrice   float64  `json:"cost_price" binding:"gte=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Sizes       []string `json:"sizes"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	CategoryID  string    `json:"category_id"`
	Subcategory string    `json:"subcategory"`
	Price       float64   `json:"price"`
	CostPrice   float64   `json:"cost_price"`
	Stock       int       `json:"stock"`
	Sizes       []string  `json:"sizes"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse representa a resposta de lista de produtos
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

// CategoryRequest representa a requisição de categoria
type CategoryRequest struct {
	Name          string   `json:"name" binding:"required"`
	Subcategories []string `json:"subcategories"`
}

// CategoryResponse representa a resposta de categoria
type CategoryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Subcategories []string  `json:"subcategories"`
	CreatedAt     time.Time `json:"created_at"`
}

// UpsellOfferRequest representa a requisição de oferta de upsell
type UpsellOfferRequest struct {
	Title                string   `json:"title" binding:"required"`
	ProductID            string   `json:"product_id" binding:"required"`
	PromoPrice           float64  `json:"promo_price" binding:"gte=0"`
	TriggerCategoryIDs   []string `json:"trigger_category_ids"`
	TriggerSubcategories []string `json:"trigger_subcategories"`
}

// UpsellOfferResponse representa a resposta de oferta de upsell
type UpsellOfferResponse struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Active               bool      `json:"active"`
	ProductID            string    `json:"product_id"`
	PromoPrice           float64   `json:"promo_price"`
	TriggerCategoryIDs   []string  `json:"trigger_category_ids"`
	TriggerSubcategories []string  `json:"trigger_subcategories"`
	CreatedAt            time.Time `json:"created_at"`
}

// ToProductResponse converte um produto do domínio para DTO
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Subcategory: p.Subcategory,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos do domínio para DTO
func ToProductListResponse(products []*catalog.Product, total, page, size int) *ProductListResponse {
	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = *ToProductResponse(p)
	}

	return &ProductListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	}
}

// ToCategoryResponse converte uma categoria do domínio para DTO
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Subcategories: c.Subcategories,
		CreatedAt:     c.CreatedAt,
	}
}

// ToUpsellOfferResponse converte uma oferta do domínio para DTO
func ToUpsellOfferResponse(o *catalog.UpsellOffer) *UpsellOfferResponse {
	return &UpsellOfferResponse{
		ID:                   o.ID,
		Title:                o.Title,
		Active:               o.Active,
		ProductID:            o.ProductID,
		PromoPrice:           o.PromoPrice,
		TriggerCategoryIDs:   o.TriggerCategoryIDs,
		TriggerSubcategories: o.TriggerSubcategories,
		CreatedAt:            o.CreatedAt,
	}
}
