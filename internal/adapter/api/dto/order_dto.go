package dto

import (
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/order"
)

// CartItemRequest representa um item de carrinho vindo da loja
type CartItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"gte=0"`
	CostPrice float64 `json:"cost_price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Size      string  `json:"size"`
}

// ToCartItem converte a requisição para o item do domínio
func (r CartItemRequest) ToCartItem() order.CartItem {
	return order.CartItem{
		ProductID: r.ProductID,
		Name:      r.Name,
		Price:     r.Price,
		CostPrice: r.CostPrice,
		Quantity:  r.Quantity,
		Size:      r.Size,
	}
}

// ToCartItems converte uma lista de itens de requisição para o domínio
func ToCartItems(items []CartItemRequest) []order.CartItem {
	out := make([]order.CartItem, len(items))
	for i, item := range items {
		out[i] = item.ToCartItem()
	}
	return out
}

// OrderStatusRequest representa a requisição de mudança de status do pedido
type OrderStatusRequest struct {
	Status order.Status `json:"status" binding:"required,oneof=pending processing completed cancelled"`
}

// InstallmentResponse representa a resposta de parcela de fiado
type InstallmentResponse struct {
	ID                string                  `json:"id"`
	Number            int                     `json:"number"`
	TotalInstallments int                     `json:"total_installments"`
	Value             float64                 `json:"value"`
	DueDate           time.Time               `json:"due_date"`
	Status            order.InstallmentStatus `json:"status"`
	PaidAmount        float64                 `json:"paid_amount"`
	PaidDate          *time.Time              `json:"paid_date,omitempty"`
}

// OrderResponse representa a resposta de pedido
type OrderResponse struct {
	ID            string                `json:"id"`
	TenantID      string                `json:"tenant_id"`
	CustomerID    string                `json:"customer_id,omitempty"`
	Items         []order.CartItem      `json:"items"`
	Total         float64               `json:"total"`
	TotalCost     float64               `json:"total_cost"`
	DiscountUsed  float64               `json:"discount_used"`
	Shipping      order.Shipping        `json:"shipping"`
	PaymentMethod order.PaymentMethod   `json:"payment_method"`
	Status        order.Status          `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	WonPrize      *order.WonPrize       `json:"won_prize,omitempty"`
	Installments  []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// OrderListResponse representa a resposta de lista de pedidos
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// ToInstallmentResponse converte uma parcela do domínio para DTO
func ToInstallmentResponse(i order.Installment) InstallmentResponse {
	return InstallmentResponse{
		ID:                i.ID,
		Number:            i.Number,
		TotalInstallments: i.TotalInstallments,
		Value:             i.Value,
		DueDate:           i.DueDate,
		Status:            i.Status,
		PaidAmount:        i.PaidAmount,
		PaidDate:          i.PaidDate,
	}
}

// ToOrderResponse converte um pedido do domínio para DTO
func ToOrderResponse(o *order.Order) *OrderResponse {
	installments := make([]InstallmentResponse, len(o.Installments))
	for i, inst := range o.Installments {
		installments[i] = ToInstallmentResponse(inst)
	}

	return &OrderResponse{
		ID:            o.ID,
		TenantID:      o.TenantID,
		CustomerID:    o.CustomerID,
		Items:         o.Items,
		Total:         o.Total,
		TotalCost:     o.TotalCost,
		DiscountUsed:  o.DiscountUsed,
		Shipping:      o.Shipping,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		Notes:         o.Notes,
		WonPrize:      o.WonPrize,
		Installments:  installments,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderListResponse converte uma lista de pedidos do domínio para DTO
func ToOrderListResponse(orders []*order.Order, total, page, size int) *OrderListResponse {
	items := make([]OrderResponse, len(orders))
	for i, o := range orders {
		items[i] = *ToOrderResponse(o)
	}

	return &OrderListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	}
}
