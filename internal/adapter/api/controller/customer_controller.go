package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
	"github.com/lojazap/lojazap-backend/internal/domain/customer"
	"github.com/lojazap/lojazap-backend/internal/fiado"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// CustomerController gerencia as requisições relacionadas aos clientes
type CustomerController struct {
	customerRepository customer.Repository
	ledger             *fiado.Ledger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepository customer.Repository, ledger *fiado.Ledger) *CustomerController {
	return &CustomerController{
		customerRepository: customerRepository,
		ledger:             ledger,
	}
}

// Create cria um novo cliente
// @Summary Cria um cliente
// @Description Cria um novo cliente na loja ativa
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var request dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	cust, err := customer.NewCustomer(tenantID, request.Name, request.Email, request.Phone, request.CPF)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados do cliente inválidos", err.Error()))
		return
	}

	if err := c.customerRepository.Create(ctx, cust); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(cust))
}

// Get busca um cliente pelo ID
// @Summary Busca um cliente
// @Description Busca um cliente pelo ID dentro da loja ativa
// @Tags customers
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	cust, err := c.customerRepository.FindByID(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Cliente não encontrado", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// List lista os clientes da loja ativa
// @Summary Lista os clientes
// @Description Lista os clientes da loja ativa com paginação
// @Tags customers
// @Produce json
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	page, _ := strconv.Atoi(ctx.Query("page"))
	pageSize, _ := strconv.Atoi(ctx.Query("page_size"))
	pagination := dto.GetPagination(page, pageSize)

	customers, err := c.customerRepository.List(ctx, tenantID, pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar clientes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(customers, len(customers), pagination.Page, pagination.PageSize))
}

// Update atualiza os dados cadastrais de um cliente
// @Summary Atualiza um cliente
// @Description Atualiza os dados cadastrais de um cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	var request dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	cust, err := c.customerRepository.FindByID(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Cliente não encontrado", err.Error()))
		return
	}

	if err := cust.Update(request.Name, request.Email, request.Phone, request.CPF); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados do cliente inválidos", err.Error()))
		return
	}

	if err := c.customerRepository.Update(ctx, cust); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// GetDebt devolve o débito de fiado consolidado do cliente
// @Summary Consulta o débito do cliente
// @Description Recalcula o débito de fiado do cliente: parcelas em aberto com multa e juros do dia
// @Tags customers
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerDebtResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/debt [get]
func (c *CustomerController) GetDebt(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())
	customerID := ctx.Param("id")

	if _, err := c.customerRepository.FindByID(ctx, tenantID, customerID); err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Cliente não encontrado", err.Error()))
		return
	}

	debt, err := c.ledger.Debt(ctx, tenantID, customerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao calcular débito", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.CustomerDebtResponse{
		CustomerID: customerID,
		Debt:       debt,
	})
}

// CreditBalance credita saldo manualmente na conta do cliente
// @Summary Credita saldo ao cliente
// @Description Adiciona crédito de loja ao saldo do cliente (ajuste manual do lojista)
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "ID do cliente"
// @Param request body dto.BalanceRequest true "Valor do crédito"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/balance [post]
func (c *CustomerController) CreditBalance(ctx *gin.Context) {
	var request dto.BalanceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	cust, err := c.customerRepository.FindByID(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Cliente não encontrado", err.Error()))
		return
	}

	if err := cust.CreditBalance(request.Amount); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Valor inválido", err.Error()))
		return
	}

	if err := c.customerRepository.Update(ctx, cust); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// ClaimPrize marca um prêmio físico como retirado na loja
// @Summary Registra a retirada de um prêmio
// @Description Marca um prêmio físico da roleta como retirado pelo cliente
// @Tags customers
// @Produce json
// @Param id path string true "ID do cliente"
// @Param prizeId path string true "ID do prêmio"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /customers/{id}/prizes/{prizeId}/claim [post]
func (c *CustomerController) ClaimPrize(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	cust, err := c.customerRepository.FindByID(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Cliente não encontrado", err.Error()))
		return
	}

	if err := cust.ClaimPrize(ctx.Param("prizeId")); err != nil {
		if err == customer.ErrPrizeAlreadyClaims {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Prêmio já retirado", err.Error()))
			return
		}
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Prêmio não encontrado", err.Error()))
		return
	}

	if err := c.customerRepository.Update(ctx, cust); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}
