package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/cart"
	"github.com/lojazap/lojazap-backend/internal/domain/customer"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/internal/pricing"
	"github.com/lojazap/lojazap-backend/pkg/keylock"
	"github.com/lojazap/lojazap-backend/pkg/logger"
)

var (
	// ErrMissingPayment ocorre ao finalizar sem forma de pagamento escolhida
	ErrMissingPayment = errors.New("forma de pagamento não escolhida")
)

// Notifier recebe o pedido finalizado para disparo externo (link de WhatsApp).
// A formatação da mensagem é colaborador externo deste núcleo.
type Notifier interface {
	OrderFinalized(t *tenant.Tenant, o *order.Order)
}

// Finalizer monta e persiste o agregado do pedido a partir do estado
// acumulado do checkout. Mutações de saldo são serializadas por cliente.
type Finalizer struct {
	orders    order.Repository
	customers customer.Repository
	carts     cart.Repository
	tenants   tenant.Repository
	locks     *keylock.KeyedMutex
	notifier  Notifier
	logger    logger.Logger
	now       func() time.Time
}

// NewFinalizer cria um novo finalizador de pedidos
func NewFinalizer(
	orders order.Repository,
	customers customer.Repository,
	carts cart.Repository,
	tenants tenant.Repository,
	notifier Notifier,
	log logger.Logger,
) *Finalizer {
	return &Finalizer{
		orders:    orders,
		customers: customers,
		carts:     carts,
		tenants:   tenants,
		locks:     keylock.New(),
		notifier:  notifier,
		logger:    log,
		now:       time.Now,
	}
}

// WithClock troca a fonte de tempo do finalizador (usado em testes)
func (f *Finalizer) WithClock(now func() time.Time) *Finalizer {
	f.now = now
	return f
}

// Finalize constrói o pedido com status pendente, gera o plano de parcelas
// quando o pagamento é fiado, aplica os efeitos no cliente (débito de saldo,
// crédito de prêmio, endereço salvo), limpa o carrinho abandonado do telefone
// e emite o pedido para notificação externa.
func (f *Finalizer) Finalize(ctx context.Context, s *Session) (*order.Order, error) {
	if s.PaymentMethod == "" {
		return nil, ErrMissingPayment
	}

	t, err := f.tenants.FindByID(ctx, s.TenantID)
	if err != nil {
		return nil, err
	}

	c, err := f.resolveCustomer(ctx, s)
	if err != nil {
		return nil, err
	}

	if c != nil {
		f.locks.Lock(c.ID)
		defer f.locks.Unlock(c.ID)

		// Releitura dentro do lock para não perder atualizações concorrentes
		c, err = f.customers.FindByID(ctx, s.TenantID, c.ID)
		if err != nil {
			return nil, err
		}
	}

	balance := 0.0
	if c != nil {
		balance = c.Balance
	}
	totals := pricing.ComputeTotals(s.Items, balance, s.UseBalance)

	customerID := ""
	if c != nil {
		customerID = c.ID
	}

	o, err := order.NewOrder(
		s.TenantID,
		customerID,
		s.Items,
		totals.FinalTotal,
		pricing.TotalCost(s.Items),
		totals.BalanceUsed,
		order.Shipping{Method: s.Flow.ShippingMethod, Cost: s.ShippingCost},
		s.PaymentMethod,
		s.Notes,
	)
	if err != nil {
		return nil, err
	}

	if s.Prize != nil {
		o.AttachPrize(*s.Prize)
	}

	if s.PaymentMethod == order.PaymentFiado {
		installments, err := order.BuildInstallments(totals.FinalTotal, t.Settings.FiadoMaxInstallments, f.now())
		if err != nil {
			return nil, err
		}
		o.Installments = installments
	}

	if err := f.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("erro ao persistir pedido: %w", err)
	}

	if c != nil {
		if err := f.applyCustomerEffects(ctx, c, o, t, totals, s.Details.Address); err != nil {
			return nil, err
		}
	}

	// Pedido fechado: o carrinho deixa de estar abandonado
	phone := s.Phone
	if phone == "" && c != nil {
		phone = c.Phone
	}
	if phone != "" {
		if err := f.carts.DeleteByPhone(ctx, s.TenantID, phone); err != nil {
			f.logger.Warn("erro ao limpar carrinho abandonado", "phone", phone, "error", err)
		}
	}

	if f.notifier != nil {
		f.notifier.OrderFinalized(t, o)
	}

	f.logger.Info("pedido finalizado",
		"tenant_id", s.TenantID,
		"order_id", o.ID,
		"total", o.Total,
		"payment", o.PaymentMethod,
	)
	return o, nil
}

// resolveCustomer devolve o cliente da sessão: o autenticado, um já existente
// com o mesmo telefone, ou um novo criado com os dados do passo de cadastro.
// Sessão sem cliente e sem cadastro finaliza como compra de visitante.
func (f *Finalizer) resolveCustomer(ctx context.Context, s *Session) (*customer.Customer, error) {
	if s.CustomerID != "" {
		return f.customers.FindByID(ctx, s.TenantID, s.CustomerID)
	}

	if s.Details.Name == "" {
		return nil, nil
	}

	if s.Details.Phone != "" {
		if existing, err := f.customers.FindByPhone(ctx, s.TenantID, s.Details.Phone); err == nil {
			return existing, nil
		}
	}

	c, err := customer.NewCustomer(s.TenantID, s.Details.Name, "", s.Details.Phone, s.Details.CPF)
	if err != nil {
		return nil, err
	}
	if !s.Details.Address.IsZero() {
		c.SetAddress(s.Details.Address)
	}
	if err := f.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("erro ao cadastrar cliente: %w", err)
	}
	return c, nil
}

// applyCustomerEffects aplica no cliente os efeitos do pedido: débito do
// saldo usado, endereço salvo, histórico e prêmios da roleta
func (f *Finalizer) applyCustomerEffects(ctx context.Context, c *customer.Customer, o *order.Order, t *tenant.Tenant, totals pricing.Totals, addr customer.Address) error {
	if totals.BalanceUsed > 0 {
		if err := c.DebitBalance(totals.BalanceUsed); err != nil {
			return err
		}
	}

	// Endereço informado no checkout fica salvo para os próximos pedidos
	if o.Shipping.Method != order.ShippingPickup && !addr.IsZero() {
		c.SetAddress(addr)
	}

	if o.WonPrize != nil && o.WonPrize.IsWin {
		segment := findSegment(t.Settings.WheelSegments, o.WonPrize.SegmentID)
		if segment != nil {
			switch segment.PrizeKind {
			case tenant.PrizeKindGiftCard:
				// Vale-crédito entra no saldo imediatamente
				if err := c.CreditBalance(segment.PrizeValue); err != nil {
					return err
				}
			case tenant.PrizeKindProduct:
				// Prêmio físico espera retirada na loja
				c.AddUnclaimedPrize(o.ID, segment.ID, segment.Label)
			}
		}
	}

	if err := f.customers.Update(ctx, c); err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	return nil
}

func findSegment(segments []tenant.WheelSegment, id string) *tenant.WheelSegment {
	for i := range segments {
		if segments[i].ID == id {
			return &segments[i]
		}
	}
	return nil
}
