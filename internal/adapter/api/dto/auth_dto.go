package dto

import (
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/user"
)

// LoginRequest representa a requisição de login do painel do lojista
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa a resposta de login com o token JWT
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserRequest representa a requisição de criação de usuário do painel
type UserRequest struct {
	Name     string    `json:"name" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=6"`
	Role     user.Role `json:"role" binding:"required,oneof=admin staff"`
}

// UserResponse representa a resposta de usuário do painel
type UserResponse struct {
	ID          string      `json:"id"`
	TenantID    string      `json:"tenant_id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        user.Role   `json:"role"`
	Status      user.Status `json:"status"`
	LastLoginAt time.Time   `json:"last_login_at"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ToUserResponse converte um usuário do domínio para DTO
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
