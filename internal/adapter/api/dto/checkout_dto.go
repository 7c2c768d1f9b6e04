package dto

import (
	"time"

	"github.com/lojazap/lojazap-backend/internal/checkout"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/pricing"
)

// CapturePhoneRequest representa o portão de telefone do carrinho
type CapturePhoneRequest struct {
	Phone string            `json:"phone" binding:"required"`
	Items []CartItemRequest `json:"items" binding:"required,min=1"`
}

// CapturePhoneResponse informa se o telefone já pertence a um cliente
type CapturePhoneResponse struct {
	Recognized bool              `json:"recognized"`
	Customer   *CustomerResponse `json:"customer,omitempty"`
}

// StartCheckoutRequest representa a abertura de uma sessão de checkout
type StartCheckoutRequest struct {
	Items      []CartItemRequest `json:"items" binding:"required,min=1"`
	CustomerID string            `json:"customer_id"`
	Phone      string            `json:"phone"`
}

// CheckoutEventRequest representa um evento aplicado sobre a sessão
type CheckoutEventRequest struct {
	Type           string          `json:"type" binding:"required"`
	ShippingMethod string          `json:"shipping_method"`
	ShippingCost   float64         `json:"shipping_cost"`
	Email          string          `json:"email"`
	Details        *DetailsRequest `json:"details"`
	PaymentMethod  string          `json:"payment_method"`
	Notes          string          `json:"notes"`
	UseBalance     bool            `json:"use_balance"`
}

// DetailsRequest representa os dados do passo de cadastro do checkout
type DetailsRequest struct {
	Name    string         `json:"name" binding:"required"`
	Phone   string         `json:"phone" binding:"required"`
	CPF     string         `json:"cpf"`
	Address AddressRequest `json:"address"`
}

// ToEventRequest converte a requisição HTTP para o evento do checkout
func (r CheckoutEventRequest) ToEventRequest() checkout.EventRequest {
	ev := checkout.EventRequest{
		Type:           checkout.EventType(r.Type),
		ShippingMethod: order.ShippingMethod(r.ShippingMethod),
		ShippingCost:   r.ShippingCost,
		Email:          r.Email,
		PaymentMethod:  order.PaymentMethod(r.PaymentMethod),
		Notes:          r.Notes,
		UseBalance:     r.UseBalance,
	}

	if r.Details != nil {
		ev.Details = &checkout.Details{
			Name:    r.Details.Name,
			Phone:   r.Details.Phone,
			CPF:     r.Details.CPF,
			Address: r.Details.Address.ToAddress(),
		}
	}
	return ev
}

// SessionResponse representa o estado atual de uma sessão de checkout
type SessionResponse struct {
	ID            string           `json:"id"`
	Step          checkout.Step    `json:"step"`
	Items         []order.CartItem `json:"items"`
	Totals        pricing.Totals   `json:"totals"`
	ShippingCost  float64          `json:"shipping_cost"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	Prize         *order.WonPrize  `json:"prize,omitempty"`
	OrderID       string           `json:"order_id,omitempty"`
	WhatsAppLink  string           `json:"whatsapp_link,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ToSessionResponse converte uma sessão do checkout para DTO
func ToSessionResponse(s *checkout.Session) *SessionResponse {
	return &SessionResponse{
		ID:            s.ID,
		Step:          s.Flow.Step,
		Items:         s.Items,
		Totals:        s.Totals,
		ShippingCost:  s.ShippingCost,
		PaymentMethod: string(s.PaymentMethod),
		Prize:         s.Prize,
		OrderID:       s.OrderID,
		CreatedAt:     s.CreatedAt,
	}
}
