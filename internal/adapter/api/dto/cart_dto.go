package dto

import (
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/cart"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
)

// AbandonedCartResponse representa um carrinho abandonado para recuperação
type AbandonedCartResponse struct {
	ID        string           `json:"id"`
	Phone     string           `json:"phone"`
	Items     []order.CartItem `json:"items"`
	Subtotal  float64          `json:"subtotal"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AbandonedCartListResponse representa a lista de carrinhos abandonados
type AbandonedCartListResponse struct {
	Items []AbandonedCartResponse `json:"items"`
	Total int                     `json:"total"`
}

// ToAbandonedCartResponse converte um carrinho abandonado do domínio para DTO
func ToAbandonedCartResponse(c *cart.AbandonedCart) *AbandonedCartResponse {
	subtotal := 0.0
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	return &AbandonedCartResponse{
		ID:        c.ID,
		Phone:     c.Phone,
		Items:     c.Items,
		Subtotal:  subtotal,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToAbandonedCartListResponse converte uma lista de carrinhos abandonados para DTO
func ToAbandonedCartListResponse(carts []*cart.AbandonedCart) *AbandonedCartListResponse {
	items := make([]AbandonedCartResponse, len(carts))
	for i, c := range carts {
		items[i] = *ToAbandonedCartResponse(c)
	}

	return &AbandonedCartListResponse{
		Items: items,
		Total: len(items),
	}
}
