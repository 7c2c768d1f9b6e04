package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	tenantdomain "github.com/lojazap/lojazap-backend/internal/domain/tenant"
)

// PostgresTenantRepository implementa tenant.Repository sobre Postgres.
// As configurações da loja (roleta, fiado, taxas) são guardadas em jsonb.
type PostgresTenantRepository struct {
	db *pgxpool.Pool
}

// NewPostgresTenantRepository cria um novo repositório de tenants em Postgres
func NewPostgresTenantRepository(db *pgxpool.Pool) *PostgresTenantRepository {
	return &PostgresTenantRepository{db: db}
}

const tenantColumns = `id, name, slug, email, phone, status, settings, created_at, updated_at`

// Create implementa tenant.Repository.Create
func (r *PostgresTenantRepository) Create(ctx context.Context, t *tenantdomain.Tenant) error {
	settings, err := json.Marshal(t.Settings)
	if err != nil {
		return fmt.Errorf("erro ao converter configurações para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO tenants (id, name, slug, email, phone, status, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.Slug, t.Email, t.Phone, t.Status, settings, t.CreatedAt, t.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrTenantDuplicateKey
		}
		return fmt.Errorf("erro ao criar tenant: %w", err)
	}
	return nil
}

// FindByID implementa tenant.Repository.FindByID
func (r *PostgresTenantRepository) FindByID(ctx context.Context, id string) (*tenantdomain.Tenant, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

// FindBySlug implementa tenant.Repository.FindBySlug
func (r *PostgresTenantRepository) FindBySlug(ctx context.Context, slug string) (*tenantdomain.Tenant, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, strings.ToLower(slug))
	return scanTenant(row)
}

// List implementa tenant.Repository.List
func (r *PostgresTenantRepository) List(ctx context.Context, limit, offset int) ([]*tenantdomain.Tenant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]*tenantdomain.Tenant, 0)
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// Update implementa tenant.Repository.Update
func (r *PostgresTenantRepository) Update(ctx context.Context, t *tenantdomain.Tenant) error {
	settings, err := json.Marshal(t.Settings)
	if err != nil {
		return fmt.Errorf("erro ao converter configurações para JSON: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE tenants SET name = $2, slug = $3, email = $4, phone = $5,
			status = $6, settings = $7, updated_at = $8
		WHERE id = $1`,
		t.ID, t.Name, t.Slug, t.Email, t.Phone, t.Status, settings, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

// Delete implementa tenant.Repository.Delete. Tenants com pedidos vinculados
// não são removidos.
func (r *PostgresTenantRepository) Delete(ctx context.Context, id string) error {
	var hasOrders bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE tenant_id = $1)`, id).Scan(&hasOrders)
	if err != nil {
		return fmt.Errorf("erro ao verificar pedidos do tenant: %w", err)
	}
	if hasOrders {
		return ErrTenantHasOrders
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

// Exists implementa tenant.Repository.Exists
func (r *PostgresTenantRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1 AND status = $2)`,
		id, tenantdomain.StatusActive).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar tenant: %w", err)
	}
	return exists, nil
}

// ValidateTenant implementa a interface tenant.Validator do middleware
func (r *PostgresTenantRepository) ValidateTenant(tenantID string) (bool, error) {
	return r.Exists(context.Background(), tenantID)
}

func scanTenant(row pgx.Row) (*tenantdomain.Tenant, error) {
	var t tenantdomain.Tenant
	var settingsJSON []byte

	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Email, &t.Phone, &t.Status,
		&settingsJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tenant: %w", err)
	}

	if err := json.Unmarshal(settingsJSON, &t.Settings); err != nil {
		return nil, fmt.Errorf("erro ao converter configurações: %w", err)
	}
	return &t, nil
}
