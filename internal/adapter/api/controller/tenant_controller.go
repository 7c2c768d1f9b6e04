package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
	"github.com/lojazap/lojazap-backend/internal/adapter/repository"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// TenantController gerencia as requisições relacionadas às lojas
type TenantController struct {
	tenantRepository tenant.Repository
}

// NewTenantController cria uma nova instância de TenantController
func NewTenantController(tenantRepository tenant.Repository) *TenantController {
	return &TenantController{
		tenantRepository: tenantRepository,
	}
}

// Create cria uma nova loja
// @Summary Cria uma nova loja
// @Description Cria uma nova loja com as configurações padrão de roleta e fiado
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.TenantRequest true "Dados da loja"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tenants [post]
func (c *TenantController) Create(ctx *gin.Context) {
	var request dto.TenantRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	t, err := tenant.NewTenant(request.Name, request.Slug, request.Email, request.Phone)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados da loja inválidos", err.Error()))
		return
	}

	if err := c.tenantRepository.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrTenantDuplicateKey) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Loja já existe", "Uma loja com este slug já está cadastrada"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar loja", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTenantResponse(t))
}

// Get busca uma loja pelo ID
// @Summary Busca uma loja
// @Description Busca uma loja pelo ID
// @Tags tenants
// @Produce json
// @Param id path string true "ID da loja"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tenants/{id} [get]
func (c *TenantController) Get(ctx *gin.Context) {
	t, err := c.tenantRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Loja não encontrada", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTenantResponse(t))
}

// GetBySlug busca uma loja pelo slug (rota pública da vitrine)
// @Summary Busca uma loja pelo slug
// @Description Busca uma loja pelo slug usado na URL da vitrine
// @Tags tenants
// @Produce json
// @Param slug path string true "Slug da loja"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stores/{slug} [get]
func (c *TenantController) GetBySlug(ctx *gin.Context) {
	t, err := c.tenantRepository.FindBySlug(ctx, ctx.Param("slug"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Loja não encontrada", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTenantResponse(t))
}

// List lista as lojas cadastradas
// @Summary Lista as lojas
// @Description Lista as lojas cadastradas com paginação
// @Tags tenants
// @Produce json
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.TenantListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tenants [get]
func (c *TenantController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.Query("page"))
	pageSize, _ := strconv.Atoi(ctx.Query("page_size"))
	pagination := dto.GetPagination(page, pageSize)

	tenants, err := c.tenantRepository.List(ctx, pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar lojas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTenantListResponse(tenants, len(tenants), pagination.Page, pagination.PageSize))
}

// Update atualiza os dados cadastrais da loja ativa
// @Summary Atualiza a loja
// @Description Atualiza os dados cadastrais da loja identificada pelo cabeçalho tenant-id
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.TenantUpdateRequest true "Dados da loja"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tenant [put]
func (c *TenantController) Update(ctx *gin.Context) {
	var request dto.TenantUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	t, err := c.currentTenant(ctx)
	if err != nil {
		return
	}

	if err := t.Update(request.Name, request.Email, request.Phone); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados da loja inválidos", err.Error()))
		return
	}

	if err := c.tenantRepository.Update(ctx, t); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar loja", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTenantResponse(t))
}

// GetSettings devolve as configurações da loja ativa
// @Summary Busca as configurações da loja
// @Description Devolve as configurações de roleta, fiado e taxas da loja ativa
// @Tags tenants
// @Produce json
// @Success 200 {object} tenant.Settings
// @Failure 404 {object} dto.ErrorResponse
// @Router /settings [get]
func (c *TenantController) GetSettings(ctx *gin.Context) {
	t, err := c.currentTenant(ctx)
	if err != nil {
		return
	}

	ctx.JSON(http.StatusOK, t.Settings)
}

// UpdateSettings substitui as configurações da loja ativa
// @Summary Atualiza as configurações da loja
// @Description Substitui as configurações de roleta, fiado e taxas da loja ativa
// @Tags tenants
// @Accept json
// @Produce json
// @Param settings body dto.SettingsRequest true "Configurações da loja"
// @Success 200 {object} tenant.Settings
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /settings [put]
func (c *TenantController) UpdateSettings(ctx *gin.Context) {
	var request dto.SettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	t, err := c.currentTenant(ctx)
	if err != nil {
		return
	}

	if err := t.UpdateSettings(request.ToSettings()); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Configurações inválidas", err.Error()))
		return
	}

	if err := c.tenantRepository.Update(ctx, t); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar configurações", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, t.Settings)
}

// Delete remove uma loja
// @Summary Remove uma loja
// @Description Remove uma loja sem pedidos vinculados
// @Tags tenants
// @Produce json
// @Param id path string true "ID da loja"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tenants/{id} [delete]
func (c *TenantController) Delete(ctx *gin.Context) {
	err := c.tenantRepository.Delete(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTenantHasOrders) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Loja possui pedidos", "Uma loja com pedidos registrados não pode ser removida"))
			return
		}
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Loja não encontrada", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Loja removida com sucesso", nil))
}

// currentTenant carrega a loja identificada pelo middleware de tenant
func (c *TenantController) currentTenant(ctx *gin.Context) (*tenant.Tenant, error) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())
	t, err := c.tenantRepository.FindByID(ctx, tenantID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Loja não encontrada", err.Error()))
		return nil, err
	}
	return t, nil
}
