package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
)

// Validator define a interface para validação de tenant
type Validator interface {
	ValidateTenant(tenantID string) (bool, error)
}

// Middleware cria um middleware para validação do tenant.
// O tenant é identificado pelo cabeçalho "tenant-id" e precisa existir e
// estar ativo; depois de validado fica disponível no contexto da requisição.
func Middleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Obter tenant ID do cabeçalho
		tenantID := c.GetHeader("tenant-id")
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				http.StatusBadRequest,
				"Tenant ID não fornecido",
				"O cabeçalho 'tenant-id' é obrigatório",
			))
			return
		}

		// Validar o tenant ID
		valid, err := validator.ValidateTenant(tenantID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro ao validar tenant",
				err.Error(),
			))
			return
		}

		if !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Tenant inválido",
				"O tenant informado não existe ou está inativo",
			))
			return
		}

		// Armazenar o tenant ID no contexto
		c.Set("tenant_id", tenantID)
		c.Request = c.Request.WithContext(SetTenantIDContext(c.Request.Context(), tenantID))

		c.Next()
	}
}
