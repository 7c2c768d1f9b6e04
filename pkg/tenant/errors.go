package tenant

import "errors"

// Erros comuns relacionados a operações de tenant
var (
	// ErrNoActiveTenant ocorre quando uma operação é executada sem tenant resolvido
	ErrNoActiveTenant = errors.New("nenhum tenant ativo no contexto")

	// ErrTenantNotSpecified ocorre quando um ID de tenant não é fornecido
	ErrTenantNotSpecified = errors.New("tenant ID não especificado")

	// ErrTenantNotFound ocorre quando um tenant não é encontrado
	ErrTenantNotFound = errors.New("tenant não encontrado")

	// ErrTenantNotActive ocorre quando um tenant não está com status ativo
	ErrTenantNotActive = errors.New("tenant não está ativo")
)
