package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lojazap/lojazap-backend/internal/domain/cart"
	"github.com/lojazap/lojazap-backend/internal/domain/catalog"
	"github.com/lojazap/lojazap-backend/internal/domain/customer"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/internal/pricing"
	"github.com/lojazap/lojazap-backend/internal/prize"
	"github.com/lojazap/lojazap-backend/internal/validation"
	"github.com/lojazap/lojazap-backend/pkg/logger"
)

var (
	// ErrSessionNotFound ocorre quando a sessão de checkout não existe
	ErrSessionNotFound = errors.New("sessão de checkout não encontrada")
)

// ValidationError é um erro de validação de um campo do checkout.
// É recuperável: a máquina de estados não avança nem perde o que já foi
// preenchido.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s inválido: %s", e.Field, e.Reason)
}

// Details são os dados coletados no passo de identificação/cadastro
type Details struct {
	Name    string           `json:"name"`
	Phone   string           `json:"phone"`
	CPF     string           `json:"cpf"`
	Address customer.Address `json:"address"`
}

// Session é o estado acumulado de um checkout em andamento.
// É transitório e por tenant: vive apenas em memória até a finalização.
type Session struct {
	ID             string              `json:"id"`
	TenantID       string              `json:"tenant_id"`
	Flow           Flow                `json:"flow"`
	Items          []order.CartItem    `json:"items"`
	CustomerID     string              `json:"customer_id,omitempty"`
	Details        Details             `json:"details"`
	Phone          string              `json:"phone,omitempty"`
	ShippingCost   float64             `json:"shipping_cost"`
	PaymentMethod  order.PaymentMethod `json:"payment_method,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	UseBalance     bool                `json:"use_balance"`
	Totals         pricing.Totals      `json:"totals"`
	Prize          *order.WonPrize     `json:"prize,omitempty"`
	OrderID        string              `json:"order_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`

	pendingOffer *catalog.UpsellOffer
	offerProduct *catalog.Product
}

// EventRequest é um evento do checkout vindo da camada HTTP
type EventRequest struct {
	Type           EventType
	ShippingMethod order.ShippingMethod
	ShippingCost   float64
	Email          string
	Details        *Details
	PaymentMethod  order.PaymentMethod
	Notes          string
	UseBalance     bool
}

// Service orquestra as sessões de checkout: aplica os eventos sobre a
// máquina de estados e executa os efeitos de cada passo.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	catalog   catalog.Repository
	customers customer.Repository
	carts     cart.Repository
	tenants   tenant.Repository
	prizes    *prize.Engine
	finalizer *Finalizer
	logger    logger.Logger
}

// NewService cria um novo serviço de checkout
func NewService(
	catalogRepo catalog.Repository,
	customers customer.Repository,
	carts cart.Repository,
	tenants tenant.Repository,
	prizes *prize.Engine,
	finalizer *Finalizer,
	log logger.Logger,
) *Service {
	return &Service{
		sessions:  make(map[string]*Session),
		catalog:   catalogRepo,
		customers: customers,
		carts:     carts,
		tenants:   tenants,
		prizes:    prizes,
		finalizer: finalizer,
		logger:    log,
	}
}

// CapturePhone é o portão de telefone do carrinho: antes do primeiro item de
// um visitante, o telefone é capturado e o carrinho passa a ser rastreado
// para recuperação. Se o telefone já pertence a um cliente, a sessão pode ser
// aberta autenticada (auto-login por telefone).
func (s *Service) CapturePhone(ctx context.Context, tenantID, phone string, items []order.CartItem) (*customer.Customer, error) {
	if phone == "" {
		return nil, &ValidationError{Field: "phone", Reason: "obrigatório"}
	}

	abandoned, err := cart.NewAbandonedCart(tenantID, phone, items)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Upsert(ctx, abandoned); err != nil {
		return nil, fmt.Errorf("erro ao registrar carrinho: %w", err)
	}

	c, err := s.customers.FindByPhone(ctx, tenantID, phone)
	if err != nil {
		// Telefone desconhecido não é erro: só não há auto-login
		return nil, nil
	}
	return c, nil
}

// Start abre uma sessão de checkout para o carrinho informado.
// Quando alguma oferta de upsell ativa casa com um item do carrinho, o fluxo
// começa na oferta; senão começa na entrega.
func (s *Service) Start(ctx context.Context, tenantID string, items []order.CartItem, customerID, phone string) (*Session, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "carrinho vazio"}
	}

	session := &Session{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Items:     items,
		Phone:     phone,
		CreatedAt: time.Now(),
	}

	if customerID != "" {
		c, err := s.customers.FindByID(ctx, tenantID, customerID)
		if err != nil {
			return nil, err
		}
		session.CustomerID = c.ID
		session.Flow.Authenticated = true
		session.Flow.HasSavedAddress = c.HasSavedAddress()
	}

	offer, product := s.matchUpsell(ctx, tenantID, items)
	session.pendingOffer = offer
	session.offerProduct = product
	session.Flow.Step = InitialStep(offer != nil)
	s.refreshTotals(ctx, session)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("sessão de checkout aberta",
		"tenant_id", tenantID,
		"session_id", session.ID,
		"step", session.Flow.Step,
	)
	return session, nil
}

// Get devolve uma sessão de checkout pelo ID
func (s *Service) Get(tenantID, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.TenantID != tenantID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// HandleEvent aplica um evento à sessão: executa os efeitos do passo e move
// a máquina de estados. Erros de validação não movem nem perdem estado.
func (s *Service) HandleEvent(ctx context.Context, tenantID, sessionID string, req EventRequest) (*Session, error) {
	session, err := s.Get(tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev := Event{Type: req.Type}

	switch req.Type {
	case EventAcceptUpsell:
		if session.Flow.Step == StepUpsell && session.pendingOffer != nil {
			session.Items = append(session.Items, order.CartItem{
				ProductID: session.pendingOffer.ProductID,
				Name:      offerItemName(session.pendingOffer, session.offerProduct),
				Price:     session.pendingOffer.PromoPrice,
				CostPrice: offerCostPrice(session.offerProduct),
				Quantity:  1,
			})
		}

	case EventChooseShipping:
		ev.ShippingMethod = req.ShippingMethod
		session.ShippingCost = req.ShippingCost

	case EventIdentify:
		if req.Email == "" {
			return nil, &ValidationError{Field: "email", Reason: "obrigatório"}
		}
		c, findErr := s.customers.FindByEmail(ctx, tenantID, req.Email)
		if findErr == nil {
			// Cliente reconhecido: sessão autenticada
			ev.CustomerMatched = true
			ev.MatchedAddress = c.HasSavedAddress()
			session.CustomerID = c.ID
		}

	case EventUseSavedAddress:
		if session.CustomerID != "" {
			c, findErr := s.customers.FindByID(ctx, tenantID, session.CustomerID)
			if findErr != nil {
				return nil, findErr
			}
			if c.Address != nil {
				session.Details.Address = *c.Address
			}
		}

	case EventSubmitDetails:
		if err := s.applyDetails(session, req.Details); err != nil {
			return nil, err
		}

	case EventChoosePayment:
		if req.PaymentMethod == "" {
			return nil, &ValidationError{Field: "payment_method", Reason: "obrigatório"}
		}
		ev.PaymentMethod = req.PaymentMethod
		session.PaymentMethod = req.PaymentMethod
		session.Notes = req.Notes
		session.UseBalance = req.UseBalance

	case EventSpinRoulette:
		if err := s.spin(ctx, session); err != nil {
			return nil, err
		}
	}

	next, err := Transition(session.Flow, ev)
	if err != nil {
		return nil, err
	}
	session.Flow = next

	if session.Flow.Step == StepFinalized {
		o, err := s.finalizer.Finalize(ctx, session)
		if err != nil {
			return nil, err
		}
		session.OrderID = o.ID
	}

	s.refreshTotals(ctx, session)
	return session, nil
}

// applyDetails valida e grava os dados do passo de cadastro
func (s *Service) applyDetails(session *Session, d *Details) error {
	if d == nil {
		return &ValidationError{Field: "details", Reason: "obrigatório"}
	}
	if d.Name == "" {
		return &ValidationError{Field: "name", Reason: "obrigatório"}
	}
	if d.Phone == "" {
		return &ValidationError{Field: "phone", Reason: "obrigatório"}
	}
	if d.CPF != "" && !validation.IsValidCPF(d.CPF) {
		return &ValidationError{Field: "cpf", Reason: "CPF inválido"}
	}
	if session.Flow.ShippingMethod != order.ShippingPickup {
		if d.Address.CEP == "" || d.Address.Street == "" || d.Address.City == "" {
			return &ValidationError{Field: "address", Reason: "endereço completo é obrigatório para entrega"}
		}
		if !validation.IsValidCEP(d.Address.CEP) {
			return &ValidationError{Field: "cep", Reason: "formato de CEP inválido"}
		}
	}

	session.Details = *d
	if session.Phone == "" {
		session.Phone = d.Phone
	}
	return nil
}

// spin roda a roleta para a sessão. Pedidos abaixo do valor mínimo
// configurado não giram; nesse caso o checkout finaliza sem prêmio.
func (s *Service) spin(ctx context.Context, session *Session) error {
	t, err := s.tenants.FindByID(ctx, session.TenantID)
	if err != nil {
		return err
	}

	subtotal := session.Totals.Subtotal
	if subtotal < t.Settings.RouletteMinOrder {
		return nil
	}

	segment, err := s.prizes.Spin(t.Settings, subtotal)
	if err != nil {
		return err
	}

	session.Prize = &order.WonPrize{
		SegmentID: segment.ID,
		Label:     segment.Label,
		Emoji:     segment.Emoji,
		IsWin:     segment.Type == tenant.SegmentWin,
	}
	return nil
}

// refreshTotals recalcula os totais exibidos, considerando o saldo do cliente
func (s *Service) refreshTotals(ctx context.Context, session *Session) {
	balance := 0.0
	if session.CustomerID != "" {
		if c, err := s.customers.FindByID(ctx, session.TenantID, session.CustomerID); err == nil {
			balance = c.Balance
		}
	}
	session.Totals = pricing.ComputeTotals(session.Items, balance, session.UseBalance)
}

// matchUpsell procura a primeira oferta ativa disparada por algum item do carrinho
func (s *Service) matchUpsell(ctx context.Context, tenantID string, items []order.CartItem) (*catalog.UpsellOffer, *catalog.Product) {
	for _, item := range items {
		if item.IsPrize {
			continue
		}
		p, err := s.catalog.FindProductByID(ctx, tenantID, item.ProductID)
		if err != nil {
			continue
		}
		offers, err := s.catalog.FindUpsellOffers(ctx, tenantID, p.CategoryID, p.Subcategory)
		if err != nil || len(offers) == 0 {
			continue
		}

		offer := offers[0]
		offerProduct, err := s.catalog.FindProductByID(ctx, tenantID, offer.ProductID)
		if err != nil {
			continue
		}
		return offer, offerProduct
	}
	return nil, nil
}

func offerItemName(offer *catalog.UpsellOffer, product *catalog.Product) string {
	if product != nil {
		return product.Name + " (oferta)"
	}
	return offer.Title
}

func offerCostPrice(product *catalog.Product) float64 {
	if product != nil {
		return product.CostPrice
	}
	return 0
}
