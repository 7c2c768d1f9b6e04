package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
	"github.com/lojazap/lojazap-backend/internal/domain/catalog"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// CatalogController gerencia produtos, categorias e ofertas de upsell
type CatalogController struct {
	catalogRepository catalog.Repository
}

// NewCatalogController cria uma nova instância de CatalogController
func NewCatalogController(catalogRepository catalog.Repository) *CatalogController {
	return &CatalogController{
		catalogRepository: catalogRepository,
	}
}

// CreateProduct cria um novo produto
// @Summary Cria um produto
// @Description Cria um novo produto no catálogo da loja ativa
// @Tags catalog
// @Accept json
// @Produce json
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /products [post]
func (c *CatalogController) CreateProduct(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	p, err := catalog.NewProduct(tenantID, request.Name, request.CategoryID, request.Subcategory, request.Price, request.CostPrice, request.Stock)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados do produto inválidos", err.Error()))
		return
	}
	p.Sizes = request.Sizes

	if err := c.catalogRepository.CreateProduct(ctx, p); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// GetProduct busca um produto pelo ID
// @Summary Busca um produto
// @Description Busca um produto do catálogo pelo ID
// @Tags catalog
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *CatalogController) GetProduct(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	p, err := c.catalogRepository.FindProductByID(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// ListProducts lista os produtos da loja ativa
// @Summary Lista os produtos
// @Description Lista os produtos do catálogo com paginação
// @Tags catalog
// @Produce json
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *CatalogController) ListProducts(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	page, _ := strconv.Atoi(ctx.Query("page"))
	pageSize, _ := strconv.Atoi(ctx.Query("page_size"))
	pagination := dto.GetPagination(page, pageSize)

	products, err := c.catalogRepository.ListProducts(ctx, tenantID, pagination.Limit(), pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar produtos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products, len(products), pagination.Page, pagination.PageSize))
}

// UpdateProduct atualiza um produto existente
// @Summary Atualiza um produto
// @Description Atualiza os dados de um produto do catálogo
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *CatalogController) UpdateProduct(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	p, err := c.catalogRepository.FindProductByID(ctx, tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", err.Error()))
		return
	}

	p.Name = request.Name
	p.CategoryID = request.CategoryID
	p.Subcategory = request.Subcategory
	p.Price = request.Price
	p.CostPrice = request.CostPrice
	p.Stock = request.Stock
	p.Sizes = request.Sizes

	if err := c.catalogRepository.UpdateProduct(ctx, p); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// DeleteProduct remove um produto
// @Summary Remove um produto
// @Description Remove um produto do catálogo
// @Tags catalog
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *CatalogController) DeleteProduct(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	if err := c.catalogRepository.DeleteProduct(ctx, tenantID, ctx.Param("id")); err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Produto removido com sucesso", nil))
}

// CreateCategory cria uma nova categoria
// @Summary Cria uma categoria
// @Description Cria uma nova categoria de produtos
// @Tags catalog
// @Accept json
// @Produce json
// @Param category body dto.CategoryRequest true "Dados da categoria"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	var request dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	cat, err := catalog.NewCategory(tenantID, request.Name, request.Subcategories)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados da categoria inválidos", err.Error()))
		return
	}

	if err := c.catalogRepository.CreateCategory(ctx, cat); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar categoria", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// ListCategories lista as categorias da loja ativa
// @Summary Lista as categorias
// @Description Lista as categorias de produtos da loja ativa
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	categories, err := c.catalogRepository.ListCategories(ctx, tenantID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar categorias", err.Error()))
		return
	}

	out := make([]dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = *dto.ToCategoryResponse(cat)
	}
	ctx.JSON(http.StatusOK, out)
}

// CreateUpsellOffer cria uma nova oferta de upsell
// @Summary Cria uma oferta de upsell
// @Description Cria uma oferta casada disparada por categoria ou subcategoria do carrinho
// @Tags catalog
// @Accept json
// @Produce json
// @Param offer body dto.UpsellOfferRequest true "Dados da oferta"
// @Success 201 {object} dto.UpsellOfferResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /upsell-offers [post]
func (c *CatalogController) CreateUpsellOffer(ctx *gin.Context) {
	var request dto.UpsellOfferRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	// O produto da oferta precisa existir no catálogo da loja
	if _, err := c.catalogRepository.FindProductByID(ctx, tenantID, request.ProductID); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Produto da oferta não encontrado", err.Error()))
		return
	}

	offer, err := catalog.NewUpsellOffer(tenantID, request.Title, request.ProductID, request.PromoPrice, request.TriggerCategoryIDs, request.TriggerSubcategories)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados da oferta inválidos", err.Error()))
		return
	}

	if err := c.catalogRepository.CreateUpsellOffer(ctx, offer); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar oferta", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUpsellOfferResponse(offer))
}

// ListUpsellOffers lista as ofertas de upsell da loja ativa
// @Summary Lista as ofertas de upsell
// @Description Lista as ofertas de upsell configuradas pela loja
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.UpsellOfferResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /upsell-offers [get]
func (c *CatalogController) ListUpsellOffers(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	offers, err := c.catalogRepository.ListUpsellOffers(ctx, tenantID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar ofertas", err.Error()))
		return
	}

	out := make([]dto.UpsellOfferResponse, len(offers))
	for i, offer := range offers {
		out[i] = *dto.ToUpsellOfferResponse(offer)
	}
	ctx.JSON(http.StatusOK, out)
}
