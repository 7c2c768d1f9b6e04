package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/fiado"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// FiadoController gerencia o contas a receber e a baixa de parcelas
type FiadoController struct {
	ledger *fiado.Ledger
}

// NewFiadoController cria uma nova instância de FiadoController
func NewFiadoController(ledger *fiado.Ledger) *FiadoController {
	return &FiadoController{
		ledger: ledger,
	}
}

// Receivables devolve o contas a receber da loja ativa
// @Summary Contas a receber
// @Description Lista as parcelas de fiado em aberto, classificadas por vencimento (overdue, today, week, future)
// @Tags fiado
// @Produce json
// @Param bucket query string false "Filtro de bucket" Enums(overdue, today, week, future)
// @Success 200 {object} dto.ReceivableListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /fiado/receivables [get]
func (c *FiadoController) Receivables(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	receivables, err := c.ledger.Receivables(ctx, tenantID, fiado.Bucket(ctx.Query("bucket")))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao montar contas a receber", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceivableListResponse(receivables))
}

// Pay aplica um pagamento sobre uma parcela de fiado
// @Summary Baixa de parcela
// @Description Aplica um pagamento total ou parcial sobre uma parcela; o parcial move o vencimento do restante
// @Tags fiado
// @Accept json
// @Produce json
// @Param payment body dto.FiadoPaymentRequest true "Dados do pagamento"
// @Success 200 {object} dto.FiadoPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /fiado/payments [post]
func (c *FiadoController) Pay(ctx *gin.Context) {
	var request dto.FiadoPaymentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	result, err := c.ledger.PayInstallment(ctx, tenantID, request.ToPaymentRequest())
	if err != nil {
		switch {
		case errors.Is(err, fiado.ErrInvalidAmount):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Valor inválido", err.Error()))
		case errors.Is(err, order.ErrInstallmentPaid):
			// Parcela quitada é terminal
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Parcela já quitada", err.Error()))
		case errors.Is(err, fiado.ErrNotFiadoOrder), errors.Is(err, fiado.ErrWrongCustomer):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Pagamento não aplicável", err.Error()))
		case errors.Is(err, order.ErrInstallmentNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Parcela não encontrada", err.Error()))
		default:
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Pedido não encontrado", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFiadoPaymentResponse(result))
}
