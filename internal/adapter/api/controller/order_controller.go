package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// OrderController gerencia as requisições relacionadas aos pedidos
type OrderController struct {
	orderRepository order.Repository
}

// NewOrderController cria uma nova instância de OrderController
func NewOrderController(orderRepository order.Repository) *OrderController {
	return &OrderController{
		orderRepository: orderRepository,
	}
}

// Get busca um pedido pelo ID
// @Summary Busca um pedido
// @Description Busca um pedido pelo ID dentro da loja ativa
// @Tags orders
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	o, err := c.orderRepository.FindByID(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Pedido não encontrado", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// List lista os pedidos da loja ativa
// @Summary Lista os pedidos
// @Description Lista os pedidos da loja do mais recente para o mais antigo
// @Tags orders
// @Produce json
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.OrderListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	page, _ := strconv.Atoi(ctx.Query("page"))
	pageSize, _ := strconv.Atoi(ctx.Query("page_size"))
	pagination := dto.GetPagination(page, pageSize)

	orders, err := c.orderRepository.List(ctx, tenantID, pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar pedidos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders, len(orders), pagination.Page, pagination.PageSize))
}

// ListByCustomer lista o histórico de pedidos de um cliente
// @Summary Lista os pedidos de um cliente
// @Description Lista o histórico de pedidos de um cliente, do mais recente para o mais antigo
// @Tags orders
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {array} dto.OrderResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/orders [get]
func (c *OrderController) ListByCustomer(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	orders, err := c.orderRepository.FindByCustomer(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar pedidos", err.Error()))
		return
	}

	out := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = *dto.ToOrderResponse(o)
	}
	ctx.JSON(http.StatusOK, out)
}

// UpdateStatus move o status de um pedido
// @Summary Atualiza o status do pedido
// @Description Move o pedido para o novo status; o avanço é sempre para frente e pedido cancelado não volta
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID do pedido"
// @Param status body dto.OrderStatusRequest true "Novo status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /orders/{id}/status [patch]
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	var request dto.OrderStatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	o, err := c.orderRepository.FindByID(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Pedido não encontrado", err.Error()))
		return
	}

	if err := o.ChangeStatus(request.Status); err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Transição de status inválida", err.Error()))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Status inválido", err.Error()))
		return
	}

	if err := c.orderRepository.Update(ctx, o); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar pedido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}
