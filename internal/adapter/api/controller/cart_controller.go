package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
	"github.com/lojazap/lojazap-backend/internal/domain/cart"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// CartController gerencia os carrinhos abandonados da loja
type CartController struct {
	cartRepository cart.Repository
}

// NewCartController cria uma nova instância de CartController
func NewCartController(cartRepository cart.Repository) *CartController {
	return &CartController{
		cartRepository: cartRepository,
	}
}

// List lista os carrinhos abandonados da loja ativa
// @Summary Lista os carrinhos abandonados
// @Description Lista os carrinhos com telefone capturado que não viraram pedido, do mais recente para o mais antigo
// @Tags carts
// @Produce json
// @Success 200 {object} dto.AbandonedCartListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /abandoned-carts [get]
func (c *CartController) List(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	carts, err := c.cartRepository.List(ctx, tenantID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar carrinhos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAbandonedCartListResponse(carts))
}

// Delete descarta um carrinho abandonado
// @Summary Remove um carrinho abandonado
// @Description Descarta o carrinho abandonado de um telefone
// @Tags carts
// @Produce json
// @Param phone path string true "Telefone do carrinho"
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /abandoned-carts/{phone} [delete]
func (c *CartController) Delete(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	if err := c.cartRepository.DeleteByPhone(ctx, tenantID, ctx.Param("phone")); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao remover carrinho", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Carrinho removido com sucesso", nil))
}
