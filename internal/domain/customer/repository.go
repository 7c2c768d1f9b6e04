package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes.
// Toda busca é limitada ao tenant informado; nenhuma leitura cruza lojas.
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID dentro do tenant
	FindByID(ctx context.Context, tenantID, id string) (*Customer, error)

	// FindByEmail busca um cliente pelo email (reconhecimento no checkout)
	FindByEmail(ctx context.Context, tenantID, email string) (*Customer, error)

	// FindByPhone busca um cliente pelo telefone (auto-login do carrinho abandonado)
	FindByPhone(ctx context.Context, tenantID, phone string) (*Customer, error)

	// List lista os clientes de um tenant com paginação
	List(ctx context.Context, tenantID string, limit, offset int) ([]*Customer, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error

	// Delete remove um cliente
	Delete(ctx context.Context, tenantID, id string) error
}
