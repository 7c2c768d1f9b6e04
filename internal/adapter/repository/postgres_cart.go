package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cartdomain "github.com/lojazap/lojazap-backend/internal/domain/cart"
)

// PostgresCartRepository implementa cart.Repository sobre Postgres
type PostgresCartRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCartRepository cria um novo repositório de carrinhos abandonados em Postgres
func NewPostgresCartRepository(db *pgxpool.Pool) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

// Upsert implementa cart.Repository.Upsert: um telefone tem no máximo um
// carrinho abandonado por loja, sempre com o retrato mais recente.
func (r *PostgresCartRepository) Upsert(ctx context.Context, c *cartdomain.AbandonedCart) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO abandoned_carts (id, tenant_id, phone, items, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, phone)
		DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at`,
		c.ID, c.TenantID, c.Phone, items, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar carrinho abandonado: %w", err)
	}
	return nil
}

// FindByPhone implementa cart.Repository.FindByPhone
func (r *PostgresCartRepository) FindByPhone(ctx context.Context, tenantID, phone string) (*cartdomain.AbandonedCart, error) {
	var c cartdomain.AbandonedCart
	var itemsJSON []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, tenant_id, phone, items, updated_at
		FROM abandoned_carts WHERE tenant_id = $1 AND phone = $2`,
		tenantID, phone).Scan(&c.ID, &c.TenantID, &c.Phone, &itemsJSON, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("erro ao buscar carrinho abandonado: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &c.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}
	return &c, nil
}

// List implementa cart.Repository.List
func (r *PostgresCartRepository) List(ctx context.Context, tenantID string) ([]*cartdomain.AbandonedCart, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, phone, items, updated_at
		FROM abandoned_carts WHERE tenant_id = $1
		ORDER BY updated_at DESC`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar carrinhos abandonados: %w", err)
	}
	defer rows.Close()

	carts := make([]*cartdomain.AbandonedCart, 0)
	for rows.Next() {
		var c cartdomain.AbandonedCart
		var itemsJSON []byte

		if err := rows.Scan(&c.ID, &c.TenantID, &c.Phone, &itemsJSON, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao buscar carrinho abandonado: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &c.Items); err != nil {
			return nil, fmt.Errorf("erro ao converter itens: %w", err)
		}
		carts = append(carts, &c)
	}
	return carts, rows.Err()
}

// DeleteByPhone implementa cart.Repository.DeleteByPhone.
// Telefone sem carrinho registrado não é erro.
func (r *PostgresCartRepository) DeleteByPhone(ctx context.Context, tenantID, phone string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM abandoned_carts WHERE tenant_id = $1 AND phone = $2`,
		tenantID, phone)
	if err != nil {
		return fmt.Errorf("erro ao remover carrinho abandonado: %w", err)
	}
	return nil
}
