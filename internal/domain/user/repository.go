package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários do painel
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID dentro do tenant
	FindByID(ctx context.Context, tenantID, id string) (*User, error)

	// FindByEmail busca um usuário pelo email dentro do tenant
	FindByEmail(ctx context.Context, tenantID, email string) (*User, error)

	// Update atualiza os dados de um usuário existente
	Update(ctx context.Context, u *User) error
}
