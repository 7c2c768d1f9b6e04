package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lojazap/lojazap-backend/internal/validation"
)

var (
	ErrEmptyName          = errors.New("nome não pode ser vazio")
	ErrEmptyContact       = errors.New("é necessário informar email ou telefone")
	ErrInvalidCPF         = errors.New("CPF inválido")
	ErrInsufficientFunds  = errors.New("saldo insuficiente")
	ErrNegativeAmount     = errors.New("valor não pode ser negativo")
	ErrCustomerNotFound   = errors.New("cliente não encontrado")
	ErrPrizeNotFound      = errors.New("prêmio não encontrado")
	ErrPrizeAlreadyClaims = errors.New("prêmio já foi retirado")
)

// Address representa o endereço de entrega do cliente, reutilizado entre pedidos
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// IsZero informa se o endereço está vazio
func (a Address) IsZero() bool {
	return a.CEP == "" && a.Street == "" && a.City == ""
}

// UnclaimedPrize representa um prêmio físico ganho na roleta e ainda não retirado
type UnclaimedPrize struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	SegmentID string    `json:"segment_id"`
	Label     string    `json:"label"`
	WonAt     time.Time `json:"won_at"`
	Claimed   bool      `json:"claimed"`
	ClaimedAt time.Time `json:"claimed_at,omitempty"`
}

// Customer representa um cliente da loja.
// Balance é crédito da loja e nunca fica negativo. O débito de fiado não é
// armazenado aqui: é sempre derivado das parcelas em aberto dos pedidos.
type Customer struct {
	ID              string           `json:"id"`
	TenantID        string           `json:"tenant_id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	CPF             string           `json:"cpf"`
	Balance         float64          `json:"balance"`
	Address         *Address         `json:"address,omitempty"`
	UnclaimedPrizes []UnclaimedPrize `json:"unclaimed_prizes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NewCustomer cria um novo cliente
func NewCustomer(tenantID, name, email, phone, cpf string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if email == "" && phone == "" {
		return nil, ErrEmptyContact
	}
	if cpf != "" && !validation.IsValidCPF(cpf) {
		return nil, ErrInvalidCPF
	}

	now := time.Now()
	return &Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     phone,
		CPF:       cpf,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasSavedAddress informa se o cliente tem endereço salvo de pedidos anteriores
func (c *Customer) HasSavedAddress() bool {
	return c.Address != nil && !c.Address.IsZero()
}

// SetAddress salva o endereço de entrega do cliente
func (c *Customer) SetAddress(addr Address) {
	c.Address = &addr
	c.UpdatedAt = time.Now()
}

// CreditBalance adiciona crédito ao saldo do cliente
func (c *Customer) CreditBalance(amount float64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	c.Balance += amount
	c.UpdatedAt = time.Now()
	return nil
}

// DebitBalance consome crédito do saldo do cliente
func (c *Customer) DebitBalance(amount float64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount > c.Balance {
		return ErrInsufficientFunds
	}
	c.Balance -= amount
	c.UpdatedAt = time.Now()
	return nil
}

// AddUnclaimedPrize registra um prêmio físico pendente de retirada
func (c *Customer) AddUnclaimedPrize(orderID, segmentID, label string) {
	c.UnclaimedPrizes = append(c.UnclaimedPrizes, UnclaimedPrize{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		SegmentID: segmentID,
		Label:     label,
		WonAt:     time.Now(),
	})
	c.UpdatedAt = time.Now()
}

// ClaimPrize marca um prêmio físico como retirado
func (c *Customer) ClaimPrize(prizeID string) error {
	for i := range c.UnclaimedPrizes {
		if c.UnclaimedPrizes[i].ID != prizeID {
			continue
		}
		if c.UnclaimedPrizes[i].Claimed {
			return ErrPrizeAlreadyClaims
		}
		c.UnclaimedPrizes[i].Claimed = true
		c.UnclaimedPrizes[i].ClaimedAt = time.Now()
		c.UpdatedAt = time.Now()
		return nil
	}
	return ErrPrizeNotFound
}

// Update atualiza os dados cadastrais do cliente
func (c *Customer) Update(name, email, phone, cpf string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if cpf != "" && !validation.IsValidCPF(cpf) {
		return ErrInvalidCPF
	}

	c.Name = name
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Phone = phone
	c.CPF = cpf
	c.UpdatedAt = time.Now()
	return nil
}
