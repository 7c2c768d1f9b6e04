package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("nome não pode ser vazio")
	ErrEmptyEmail    = errors.New("email não pode ser vazio")
	ErrUserNotFound  = errors.New("usuário não encontrado")
	ErrInvalidLogin  = errors.New("email ou senha inválidos")
)

// Role representa o papel do usuário no painel do lojista
type Role string

const (
	RoleAdmin Role = "admin" // Dono da loja
	RoleStaff Role = "staff" // Funcionário
)

// Status representa o status do usuário
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User representa um usuário do painel do lojista
type User struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"` // O hash da senha não é retornado nas respostas JSON
	Role        Role      `json:"role"`
	Status      Status    `json:"status"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário do painel
func NewUser(tenantID, name, email, password string, role Role) (*User, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// RegisterLogin atualiza a data do último login
func (u *User) RegisterLogin() {
	now := time.Now()
	u.LastLoginAt = now
	u.UpdatedAt = now
}
