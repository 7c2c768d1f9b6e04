package dto

import (
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/customer"
)

// AddressRequest representa a requisição de endereço de entrega.
// A obrigatoriedade depende da forma de entrega, então a validação de
// completude fica no checkout.
type AddressRequest struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// ToAddress converte a requisição para o endereço do domínio
func (r AddressRequest) ToAddress() customer.Address {
	return customer.Address{
		CEP:          r.CEP,
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
	}
}

// CustomerRequest representa a requisição de cliente
type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID              string                    `json:"id"`
	TenantID        string                    `json:"tenant_id"`
	Name            string                    `json:"name"`
	Email           string                    `json:"email"`
	Phone           string                    `json:"phone"`
	CPF             string                    `json:"cpf"`
	Balance         float64                   `json:"balance"`
	Address         *customer.Address         `json:"address,omitempty"`
	UnclaimedPrizes []customer.UnclaimedPrize `json:"unclaimed_prizes"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// CustomerListResponse representa a resposta de lista de clientes
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// CustomerDebtResponse representa o débito de fiado consolidado do cliente.
// O valor é sempre derivado das parcelas em aberto, com multa e juros do dia.
type CustomerDebtResponse struct {
	CustomerID string  `json:"customer_id"`
	Debt       float64 `json:"debt"`
}

// BalanceRequest representa a requisição de crédito manual de saldo
type BalanceRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ToCustomerResponse converte um cliente do domínio para DTO
func ToCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:              c.ID,
		TenantID:        c.TenantID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		CPF:             c.CPF,
		Balance:         c.Balance,
		Address:         c.Address,
		UnclaimedPrizes: c.UnclaimedPrizes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToCustomerListResponse converte uma lista de clientes do domínio para DTO
func ToCustomerListResponse(customers []*customer.Customer, total, page, size int) *CustomerListResponse {
	items := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		items[i] = *ToCustomerResponse(c)
	}

	return &CustomerListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	}
}
