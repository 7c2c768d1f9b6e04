package tenant

import (
	"context"
)

// Repository define a interface para operações de repositório de tenants
type Repository interface {
	// Create cria um novo tenant
	Create(ctx context.Context, t *Tenant) error

	// FindByID busca um tenant pelo ID
	FindByID(ctx context.Context, id string) (*Tenant, error)

	// FindBySlug busca um tenant pelo slug de roteamento
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// List lista os tenants com paginação
	List(ctx context.Context, limit, offset int) ([]*Tenant, error)

	// Update atualiza os dados de um tenant existente
	Update(ctx context.Context, t *Tenant) error

	// Delete remove um tenant sem pedidos vinculados
	Delete(ctx context.Context, id string) error

	// Exists verifica se um tenant existe e está ativo
	Exists(ctx context.Context, id string) (bool, error)
}
