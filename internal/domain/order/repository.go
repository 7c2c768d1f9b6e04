package order

import (
	"context"
)

// Repository define a interface para operações de repositório de pedidos
type Repository interface {
	// Create cria um novo pedido
	Create(ctx context.Context, o *Order) error

	// FindByID busca um pedido pelo ID dentro do tenant
	FindByID(ctx context.Context, tenantID, id string) (*Order, error)

	// FindByCustomer lista o histórico de pedidos de um cliente, mais recentes primeiro
	FindByCustomer(ctx context.Context, tenantID, customerID string) ([]*Order, error)

	// List lista os pedidos de um tenant com paginação, mais recentes primeiro
	List(ctx context.Context, tenantID string, limit, offset int) ([]*Order, error)

	// Update persiste alterações de um pedido existente (status, parcelas)
	Update(ctx context.Context, o *Order) error

	// ListWithOpenInstallments lista os pedidos no fiado com parcelas em aberto
	ListWithOpenInstallments(ctx context.Context, tenantID string) ([]*Order, error)

	// CountByTenant conta quantos pedidos existem para um tenant
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}
