package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lojazap/lojazap-backend/internal/domain/order"
)

var (
	ErrEmptyPhone = errors.New("telefone não pode ser vazio")
)

// AbandonedCart é o retrato de um carrinho associado a um telefone quando o
// checkout não foi concluído, usado para recuperação de vendas. É apagado
// quando um pedido do mesmo telefone é finalizado.
type AbandonedCart struct {
	ID        string           `json:"id"`
	TenantID  string           `json:"tenant_id"`
	Phone     string           `json:"phone"`
	Items     []order.CartItem `json:"items"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewAbandonedCart cria um novo registro de carrinho abandonado
func NewAbandonedCart(tenantID, phone string, items []order.CartItem) (*AbandonedCart, error) {
	if phone == "" {
		return nil, ErrEmptyPhone
	}

	return &AbandonedCart{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Phone:     phone,
		Items:     items,
		UpdatedAt: time.Now(),
	}, nil
}
