package cart

import (
	"context"
)

// Repository define a interface para operações sobre carrinhos abandonados
type Repository interface {
	// Upsert cria ou atualiza o carrinho abandonado do telefone informado
	Upsert(ctx context.Context, c *AbandonedCart) error

	// FindByPhone busca o carrinho abandonado de um telefone
	FindByPhone(ctx context.Context, tenantID, phone string) (*AbandonedCart, error)

	// List lista os carrinhos abandonados de um tenant
	List(ctx context.Context, tenantID string) ([]*AbandonedCart, error)

	// DeleteByPhone remove o carrinho abandonado de um telefone
	DeleteByPhone(ctx context.Context, tenantID, phone string) error
}
