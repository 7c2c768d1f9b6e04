package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken é retornado quando o token é inválido
	ErrInvalidToken = errors.New("token inválido")
	// ErrExpiredToken é retornado quando o token está expirado
	ErrExpiredToken = errors.New("token expirado")
)

// Subject identifica o tipo de sessão representada pelo token
type Subject string

const (
	// SubjectCustomer identifica a sessão de um cliente da loja
	SubjectCustomer Subject = "customer"
	// SubjectMerchant identifica a sessão de um usuário do painel do lojista
	SubjectMerchant Subject = "merchant"
)

// Claims representa as claims do token JWT
type Claims struct {
	Subject   Subject `json:"sub_type"`
	SubjectID string  `json:"sub_id"`
	TenantID  string  `json:"tenant_id"`
	ExpiresAt int64   `json:"exp"`
	IssuedAt  int64   `json:"iat"`
}

// GetExpirationTime implementa jwt.Claims
func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.ExpiresAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

// GetIssuedAt implementa jwt.Claims
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.IssuedAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

// GetNotBefore implementa jwt.Claims
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implementa jwt.Claims
func (c Claims) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject implementa jwt.Claims
func (c Claims) GetSubject() (string, error) {
	return string(c.Subject), nil
}

// GetAudience implementa jwt.Claims
func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

// GenerateToken gera um novo token JWT para o sujeito informado
func GenerateToken(subject Subject, subjectID, tenantID string, expiresIn time.Duration) (string, error) {
	claims := Claims{
		Subject:   subject,
		SubjectID: subjectID,
		TenantID:  tenantID,
		ExpiresAt: time.Now().Add(expiresIn).Unix(),
		IssuedAt:  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken valida um token JWT e retorna as claims
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secretKey(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, ErrExpiredToken
	}

	return claims, nil
}

func secretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "lojazap-dev-secret"
	}
	return []byte(secret)
}
