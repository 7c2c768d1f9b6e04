package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
	"github.com/lojazap/lojazap-backend/internal/cep"
	"github.com/lojazap/lojazap-backend/internal/checkout"
	"github.com/lojazap/lojazap-backend/internal/notification"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// CheckoutController gerencia as sessões de checkout da vitrine
type CheckoutController struct {
	service   *checkout.Service
	cepClient *cep.Client
	notifier  *notification.WhatsAppNotifier
}

// NewCheckoutController cria uma nova instância de CheckoutController
func NewCheckoutController(service *checkout.Service, cepClient *cep.Client, notifier *notification.WhatsAppNotifier) *CheckoutController {
	return &CheckoutController{
		service:   service,
		cepClient: cepClient,
		notifier:  notifier,
	}
}

// CapturePhone registra o telefone do carrinho antes do checkout
// @Summary Captura o telefone do carrinho
// @Description Registra o carrinho para recuperação e tenta o auto-login pelo telefone
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body dto.CapturePhoneRequest true "Telefone e itens do carrinho"
// @Success 200 {object} dto.CapturePhoneResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /checkout/phone [post]
func (c *CheckoutController) CapturePhone(ctx *gin.Context) {
	var request dto.CapturePhoneRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	matched, err := c.service.CapturePhone(ctx, tenantID, request.Phone, dto.ToCartItems(request.Items))
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	response := dto.CapturePhoneResponse{Recognized: matched != nil}
	if matched != nil {
		response.Customer = dto.ToCustomerResponse(matched)
	}
	ctx.JSON(http.StatusOK, response)
}

// StartSession abre uma sessão de checkout
// @Summary Abre uma sessão de checkout
// @Description Abre uma sessão de checkout para o carrinho; com oferta de upsell ativa o fluxo começa na oferta
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body dto.StartCheckoutRequest true "Carrinho e identificação"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /checkout/sessions [post]
func (c *CheckoutController) StartSession(ctx *gin.Context) {
	var request dto.StartCheckoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	session, err := c.service.Start(ctx, tenantID, dto.ToCartItems(request.Items), request.CustomerID, request.Phone)
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// GetSession devolve o estado atual de uma sessão
// @Summary Busca uma sessão de checkout
// @Description Devolve o passo atual, itens e totais da sessão
// @Tags checkout
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /checkout/sessions/{id} [get]
func (c *CheckoutController) GetSession(ctx *gin.Context) {
	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	session, err := c.service.Get(tenantID, ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Sessão não encontrada", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, c.sessionResponse(session))
}

// HandleEvent aplica um evento sobre a sessão de checkout
// @Summary Aplica um evento ao checkout
// @Description Move a máquina de estados do checkout: oferta, entrega, identificação, endereço, pagamento e roleta
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param event body dto.CheckoutEventRequest true "Evento"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /checkout/sessions/{id}/events [post]
func (c *CheckoutController) HandleEvent(ctx *gin.Context) {
	var request dto.CheckoutEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	session, err := c.service.HandleEvent(ctx, tenantID, ctx.Param("id"), request.ToEventRequest())
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, c.sessionResponse(session))
}

// LookupCEP consulta o endereço de um CEP
// @Summary Consulta um CEP
// @Description Consulta o endereço de um CEP no ViaCEP; indisponibilidade do serviço não bloqueia o checkout
// @Tags checkout
// @Produce json
// @Param code path string true "CEP"
// @Success 200 {object} customer.Address
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /cep/{code} [get]
func (c *CheckoutController) LookupCEP(ctx *gin.Context) {
	addr, err := c.cepClient.Lookup(ctx, ctx.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, cep.ErrInvalidCEP):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "CEP inválido", err.Error()))
		case errors.Is(err, cep.ErrCEPNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "CEP não encontrado", err.Error()))
		default:
			// O front cai para preenchimento manual
			ctx.JSON(http.StatusBadGateway, dto.NewErrorResponse(http.StatusBadGateway, "Serviço de CEP indisponível", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, addr)
}

// sessionResponse monta a resposta da sessão, com o link de WhatsApp quando o
// pedido já foi finalizado
func (c *CheckoutController) sessionResponse(session *checkout.Session) *dto.SessionResponse {
	response := dto.ToSessionResponse(session)
	if session.OrderID != "" && c.notifier != nil {
		response.WhatsAppLink = c.notifier.LastLink()
	}
	return response
}

// respondCheckoutError traduz os erros do checkout para HTTP: validação é 422
// (estado preservado), sessão desconhecida é 404, evento fora de ordem é 400
func respondCheckoutError(ctx *gin.Context, err error) {
	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "Validação falhou", vErr.Error()))
	case errors.Is(err, checkout.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Sessão não encontrada", err.Error()))
	case errors.Is(err, checkout.ErrInvalidEvent),
		errors.Is(err, checkout.ErrUnknownShipping),
		errors.Is(err, checkout.ErrUnknownPayment),
		errors.Is(err, checkout.ErrPaymentRequiresPickup):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Evento inválido para o passo atual", err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro no checkout", err.Error()))
	}
}
