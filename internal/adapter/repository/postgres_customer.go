package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	customerdomain "github.com/lojazap/lojazap-backend/internal/domain/customer"
)

// PostgresCustomerRepository implementa customer.Repository sobre Postgres.
// Endereço e prêmios pendentes são guardados em jsonb.
type PostgresCustomerRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCustomerRepository cria um novo repositório de clientes em Postgres
func NewPostgresCustomerRepository(db *pgxpool.Pool) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

const customerColumns = `id, tenant_id, name, email, phone, cpf, balance, address, unclaimed_prizes, created_at, updated_at`

// Create implementa customer.Repository.Create
func (r *PostgresCustomerRepository) Create(ctx context.Context, c *customerdomain.Customer) error {
	address, prizes, err := marshalCustomerJSON(c)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO customers (id, tenant_id, name, email, phone, cpf, balance,
			address, unclaimed_prizes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.TenantID, c.Name, c.Email, c.Phone, c.CPF, c.Balance,
		address, prizes, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}
	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *PostgresCustomerRepository) FindByID(ctx context.Context, tenantID, id string) (*customerdomain.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	return scanCustomer(row)
}

// FindByEmail implementa customer.Repository.FindByEmail
func (r *PostgresCustomerRepository) FindByEmail(ctx context.Context, tenantID, email string) (*customerdomain.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = $1 AND email = $2`,
		tenantID, strings.ToLower(strings.TrimSpace(email)))
	return scanCustomer(row)
}

// FindByPhone implementa customer.Repository.FindByPhone
func (r *PostgresCustomerRepository) FindByPhone(ctx context.Context, tenantID, phone string) (*customerdomain.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = $1 AND phone = $2`,
		tenantID, phone)
	return scanCustomer(row)
}

// List implementa customer.Repository.List
func (r *PostgresCustomerRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*customerdomain.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		WHERE tenant_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	customers := make([]*customerdomain.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update implementa customer.Repository.Update
func (r *PostgresCustomerRepository) Update(ctx context.Context, c *customerdomain.Customer) error {
	address, prizes, err := marshalCustomerJSON(c)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE customers SET name = $3, email = $4, phone = $5, cpf = $6,
			balance = $7, address = $8, unclaimed_prizes = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2`,
		c.TenantID, c.ID, c.Name, c.Email, c.Phone, c.CPF, c.Balance,
		address, prizes, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return customerdomain.ErrCustomerNotFound
	}
	return nil
}

// Delete implementa customer.Repository.Delete
func (r *PostgresCustomerRepository) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM customers WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("erro ao remover cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return customerdomain.ErrCustomerNotFound
	}
	return nil
}

func marshalCustomerJSON(c *customerdomain.Customer) ([]byte, []byte, error) {
	address, err := json.Marshal(c.Address)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao converter endereço para JSON: %w", err)
	}
	prizes, err := json.Marshal(c.UnclaimedPrizes)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao converter prêmios para JSON: %w", err)
	}
	return address, prizes, nil
}

func scanCustomer(row pgx.Row) (*customerdomain.Customer, error) {
	var c customerdomain.Customer
	var addressJSON, prizesJSON []byte

	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.CPF,
		&c.Balance, &addressJSON, &prizesJSON, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customerdomain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &c.Address); err != nil {
		return nil, fmt.Errorf("erro ao converter endereço: %w", err)
	}
	if err := json.Unmarshal(prizesJSON, &c.UnclaimedPrizes); err != nil {
		return nil, fmt.Errorf("erro ao converter prêmios: %w", err)
	}
	return &c, nil
}
