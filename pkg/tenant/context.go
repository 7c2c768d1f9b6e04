package tenant

import (
	"context"
)

type contextKey string

const (
	// tenantIDKey é a chave usada para armazenar o tenant ID no contexto
	tenantIDKey contextKey = "tenant_id"
)

// SetTenantIDContext define o tenant ID no contexto
func SetTenantIDContext(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetTenantIDFromContext obtém o tenant ID do contexto
func GetTenantIDFromContext(ctx context.Context) string {
	if tenantID, ok := ctx.Value(tenantIDKey).(string); ok {
		return tenantID
	}
	return ""
}

// RequireTenantID obtém o tenant ID do contexto ou retorna erro quando ausente.
// Toda operação de repositório passa por aqui antes de tocar os dados.
func RequireTenantID(ctx context.Context) (string, error) {
	tenantID := GetTenantIDFromContext(ctx)
	if tenantID == "" {
		return "", ErrNoActiveTenant
	}
	return tenantID, nil
}
