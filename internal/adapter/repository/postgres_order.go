package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	orderdomain "github.com/lojazap/lojazap-backend/internal/domain/order"
)

// PostgresOrderRepository implementa order.Repository sobre Postgres.
// Itens, entrega, prêmio e parcelas são guardados em jsonb: o pedido é um
// agregado que sempre é lido e escrito inteiro.
type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

// NewPostgresOrderRepository cria um novo repositório de pedidos em Postgres
func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, tenant_id, customer_id, items, total, total_cost, discount_used,
	shipping, payment_method, status, notes, won_prize, installments, created_at, updated_at`

// Create implementa order.Repository.Create
func (r *PostgresOrderRepository) Create(ctx context.Context, o *orderdomain.Order) error {
	items, shipping, prize, installments, err := marshalOrderJSON(o)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO orders (id, tenant_id, customer_id, items, total, total_cost,
			discount_used, shipping, payment_method, status, notes, won_prize,
			installments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.TenantID, nullableID(o.CustomerID), items, o.Total, o.TotalCost,
		o.DiscountUsed, shipping, o.PaymentMethod, o.Status, o.Notes, prize,
		installments, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar pedido: %w", err)
	}
	return nil
}

// FindByID implementa order.Repository.FindByID
func (r *PostgresOrderRepository) FindByID(ctx context.Context, tenantID, id string) (*orderdomain.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	return scanOrder(row)
}

// FindByCustomer implementa order.Repository.FindByCustomer
func (r *PostgresOrderRepository) FindByCustomer(ctx context.Context, tenantID, customerID string) ([]*orderdomain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY created_at DESC`,
		tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos do cliente: %w", err)
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// List implementa order.Repository.List
func (r *PostgresOrderRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*orderdomain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// Update implementa order.Repository.Update
func (r *PostgresOrderRepository) Update(ctx context.Context, o *orderdomain.Order) error {
	items, shipping, prize, installments, err := marshalOrderJSON(o)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET customer_id = $3, items = $4, total = $5, total_cost = $6,
			discount_used = $7, shipping = $8, payment_method = $9, status = $10,
			notes = $11, won_prize = $12, installments = $13, updated_at = $14
		WHERE tenant_id = $1 AND id = $2`,
		o.TenantID, o.ID, nullableID(o.CustomerID), items, o.Total, o.TotalCost,
		o.DiscountUsed, shipping, o.PaymentMethod, o.Status, o.Notes, prize,
		installments, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ListWithOpenInstallments implementa order.Repository.ListWithOpenInstallments.
// A consulta filtra no jsonb as parcelas ainda em aberto.
func (r *PostgresOrderRepository) ListWithOpenInstallments(ctx context.Context, tenantID string) ([]*orderdomain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		WHERE tenant_id = $1
			AND payment_method = $2
			AND EXISTS (
				SELECT 1 FROM jsonb_array_elements(installments) AS inst
				WHERE inst->>'status' IN ('pending', 'partial')
			)
		ORDER BY created_at DESC`,
		tenantID, orderdomain.PaymentFiado)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos com parcelas em aberto: %w", err)
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// CountByTenant implementa order.Repository.CountByTenant
func (r *PostgresOrderRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar pedidos: %w", err)
	}
	return count, nil
}

func marshalOrderJSON(o *orderdomain.Order) (items, shipping, prize, installments []byte, err error) {
	if items, err = json.Marshal(o.Items); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}
	if shipping, err = json.Marshal(o.Shipping); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("erro ao converter entrega para JSON: %w", err)
	}
	if prize, err = json.Marshal(o.WonPrize); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("erro ao converter prêmio para JSON: %w", err)
	}
	if installments, err = json.Marshal(o.Installments); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("erro ao converter parcelas para JSON: %w", err)
	}
	return items, shipping, prize, installments, nil
}

func scanOrder(row pgx.Row) (*orderdomain.Order, error) {
	var o orderdomain.Order
	var customerID *string
	var itemsJSON, shippingJSON, prizeJSON, installmentsJSON []byte

	err := row.Scan(&o.ID, &o.TenantID, &customerID, &itemsJSON, &o.Total,
		&o.TotalCost, &o.DiscountUsed, &shippingJSON, &o.PaymentMethod,
		&o.Status, &o.Notes, &prizeJSON, &installmentsJSON,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pedido: %w", err)
	}

	if customerID != nil {
		o.CustomerID = *customerID
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}
	if err := json.Unmarshal(shippingJSON, &o.Shipping); err != nil {
		return nil, fmt.Errorf("erro ao converter entrega: %w", err)
	}
	if err := json.Unmarshal(prizeJSON, &o.WonPrize); err != nil {
		return nil, fmt.Errorf("erro ao converter prêmio: %w", err)
	}
	if err := json.Unmarshal(installmentsJSON, &o.Installments); err != nil {
		return nil, fmt.Errorf("erro ao converter parcelas: %w", err)
	}
	return &o, nil
}

func scanOrderRows(rows pgx.Rows) ([]*orderdomain.Order, error) {
	orders := make([]*orderdomain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// nullableID converte ID vazio (compra de visitante) para NULL
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
