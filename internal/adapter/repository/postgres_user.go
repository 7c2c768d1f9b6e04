package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	userdomain "github.com/lojazap/lojazap-backend/internal/domain/user"
)

// PostgresUserRepository implementa user.Repository sobre Postgres
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository cria um novo repositório de usuários em Postgres
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, tenant_id, name, email, password, role, status, last_login_at, created_at, updated_at`

// Create implementa user.Repository.Create
func (r *PostgresUserRepository) Create(ctx context.Context, u *userdomain.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, tenant_id, name, email, password, role, status,
			last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.TenantID, u.Name, u.Email, u.Password, u.Role, u.Status,
		u.LastLoginAt, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *PostgresUserRepository) FindByID(ctx context.Context, tenantID, id string) (*userdomain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	return scanUser(row)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, tenantID, email string) (*userdomain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = $1 AND email = $2`,
		tenantID, strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

// Update implementa user.Repository.Update
func (r *PostgresUserRepository) Update(ctx context.Context, u *userdomain.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET name = $3, email = $4, password = $5, role = $6,
			status = $7, last_login_at = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`,
		u.TenantID, u.ID, u.Name, u.Email, u.Password, u.Role, u.Status,
		u.LastLoginAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*userdomain.User, error) {
	var u userdomain.User

	err := row.Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Password,
		&u.Role, &u.Status, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	return &u, nil
}
