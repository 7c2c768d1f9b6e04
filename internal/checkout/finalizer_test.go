package checkout_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/lojazap/lojazap-backend/internal/checkout"

	"github.com/lojazap/lojazap-backend/internal/adapter/repository"
	"github.com/lojazap/lojazap-backend/internal/domain/customer"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/internal/prize"
	"github.com/lojazap/lojazap-backend/pkg/logger"
)

type stubNotifier struct {
	orders []*order.Order
}

func (n *stubNotifier) OrderFinalized(t *tenant.Tenant, o *order.Order) {
	n.orders = append(n.orders, o)
}

type checkoutEnv struct {
	service   *Service
	notifier  *stubNotifier
	tenants   *repository.MemoryTenantRepository
	customers *repository.MemoryCustomerRepository
	orders    *repository.MemoryOrderRepository
	carts     *repository.MemoryCartRepository
	loja      *tenant.Tenant
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()

	store := repository.NewMemoryStore()
	tenants := repository.NewMemoryTenantRepository(store)
	customers := repository.NewMemoryCustomerRepository(store)
	orders := repository.NewMemoryOrderRepository(store)
	carts := repository.NewMemoryCartRepository(store)
	catalogRepo := repository.NewMemoryCatalogRepository(store)

	loja, err := tenant.NewTenant("Loja da Ana", "loja-da-ana", "ana@example.com", "5511999990000")
	require.NoError(t, err)
	loja.Settings.FiadoMaxInstallments = 3
	require.NoError(t, tenants.Create(context.Background(), loja))

	notifier := &stubNotifier{}
	finalizer := NewFinalizer(orders, customers, carts, tenants, notifier, logger.NewNopLogger())
	engine := prize.NewEngine(rand.New(rand.NewSource(1)))
	service := NewService(catalogRepo, customers, carts, tenants, engine, finalizer, logger.NewNopLogger())

	return &checkoutEnv{
		service:   service,
		notifier:  notifier,
		tenants:   tenants,
		customers: customers,
		orders:    orders,
		carts:     carts,
		loja:      loja,
	}
}

func cartOf300() []order.CartItem {
	return []order.CartItem{
		{ProductID: "p1", Name: "Tênis", Price: 150, CostPrice: 60, Quantity: 2},
	}
}

// Cenário completo: cliente com R$50 de saldo compra R$300 no fiado em 3x.
// O saldo vira desconto e as parcelas fecham exatamente em R$250.
func TestCheckoutFiadoEndToEnd(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	// Roleta desligada neste cenário
	env.loja.Settings.RouletteMinOrder = 1000
	require.NoError(t, env.tenants.Update(ctx, env.loja))

	cliente, err := customer.NewCustomer(env.loja.ID, "João", "joao@example.com", "5511988880000", "")
	require.NoError(t, err)
	cliente.Balance = 50
	require.NoError(t, env.customers.Create(ctx, cliente))

	session, err := env.service.Start(ctx, env.loja.ID, cartOf300(), cliente.ID, "")
	require.NoError(t, err)
	assert.Equal(t, StepShipping, session.Flow.Step)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:           EventChooseShipping,
		ShippingMethod: order.ShippingPickup,
	})
	require.NoError(t, err)
	assert.Equal(t, StepPayment, session.Flow.Step)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:          EventChoosePayment,
		PaymentMethod: order.PaymentFiado,
		UseBalance:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, StepRoulette, session.Flow.Step)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type: EventSpinRoulette,
	})
	require.NoError(t, err)
	assert.Equal(t, StepFinalized, session.Flow.Step)
	require.NotEmpty(t, session.OrderID)

	pedido, err := env.orders.FindByID(ctx, env.loja.ID, session.OrderID)
	require.NoError(t, err)

	assert.Equal(t, 250.0, pedido.Total)
	assert.Equal(t, 50.0, pedido.DiscountUsed)
	assert.Equal(t, 120.0, pedido.TotalCost)
	assert.Equal(t, order.StatusPending, pedido.Status)
	assert.Nil(t, pedido.WonPrize)

	// Plano de parcelas: divisão em centavos fecha exatamente no total
	require.Len(t, pedido.Installments, 3)
	assert.InDelta(t, 83.33, pedido.Installments[0].Value, 0.001)
	assert.InDelta(t, 83.33, pedido.Installments[1].Value, 0.001)
	assert.InDelta(t, 83.34, pedido.Installments[2].Value, 0.001)

	sum := 0.0
	for i, inst := range pedido.Installments {
		sum += inst.Value
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, order.InstallmentPending, inst.Status)
	}
	assert.InDelta(t, 250.0, sum, 0.01)

	// Vencimentos mensais sequenciais a partir de um mês adiante
	for i := 1; i < len(pedido.Installments); i++ {
		assert.True(t, pedido.Installments[i].DueDate.After(pedido.Installments[i-1].DueDate))
	}

	// Saldo do cliente foi debitado
	atualizado, err := env.customers.FindByID(ctx, env.loja.ID, cliente.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, atualizado.Balance)

	// Pedido emitido para notificação externa
	require.Len(t, env.notifier.orders, 1)
	assert.Equal(t, pedido.ID, env.notifier.orders[0].ID)
}

// Visitante: portão de telefone, identificação sem cadastro, detalhes e pix.
// Ao final um cliente novo é criado e o carrinho abandonado some.
func TestCheckoutGuestRegistersCustomer(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	env.loja.Settings.RouletteMinOrder = 1000
	require.NoError(t, env.tenants.Update(ctx, env.loja))

	items := cartOf300()
	matched, err := env.service.CapturePhone(ctx, env.loja.ID, "5511977770000", items)
	require.NoError(t, err)
	assert.Nil(t, matched)

	// Carrinho rastreado para recuperação
	abandoned, err := env.carts.FindByPhone(ctx, env.loja.ID, "5511977770000")
	require.NoError(t, err)
	assert.Len(t, abandoned.Items, 1)

	session, err := env.service.Start(ctx, env.loja.ID, items, "", "5511977770000")
	require.NoError(t, err)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:           EventChooseShipping,
		ShippingMethod: order.ShippingMotoboy,
		ShippingCost:   15,
	})
	require.NoError(t, err)
	assert.Equal(t, StepIdentification, session.Flow.Step)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:  EventIdentify,
		Email: "novo@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, StepDetails, session.Flow.Step)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type: EventSubmitDetails,
		Details: &Details{
			Name:  "Maria",
			Phone: "5511977770000",
			CPF:   "529.982.247-25",
			Address: customer.Address{
				CEP:          "01001-000",
				Street:       "Praça da Sé",
				Neighborhood: "Sé",
				City:         "São Paulo",
				State:        "SP",
				Number:       "100",
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, StepPayment, session.Flow.Step)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:          EventChoosePayment,
		PaymentMethod: order.PaymentPix,
	})
	require.NoError(t, err)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type: EventSpinRoulette,
	})
	require.NoError(t, err)

	pedido, err := env.orders.FindByID(ctx, env.loja.ID, session.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, pedido.Total)

	// Cliente criado no caminho de cadastro, com endereço salvo
	criado, err := env.customers.FindByPhone(ctx, env.loja.ID, "5511977770000")
	require.NoError(t, err)
	assert.Equal(t, "Maria", criado.Name)
	assert.True(t, criado.HasSavedAddress())
	assert.Equal(t, pedido.CustomerID, criado.ID)

	// Carrinho abandonado limpo na finalização
	_, err = env.carts.FindByPhone(ctx, env.loja.ID, "5511977770000")
	assert.ErrorIs(t, err, repository.ErrCartNotFound)
}

// Validação reprovada bloqueia o passo sem perder o estado acumulado
func TestCheckoutValidationKeepsState(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	session, err := env.service.Start(ctx, env.loja.ID, cartOf300(), "", "")
	require.NoError(t, err)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:           EventChooseShipping,
		ShippingMethod: order.ShippingMotoboy,
	})
	require.NoError(t, err)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:  EventIdentify,
		Email: "alguem@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, StepDetails, session.Flow.Step)

	// CPF inválido: erro de validação, passo não avança
	_, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type: EventSubmitDetails,
		Details: &Details{
			Name:  "Maria",
			Phone: "5511977770000",
			CPF:   "111.111.111-11",
		},
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "cpf", vErr.Field)

	current, err := env.service.Get(env.loja.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepDetails, current.Flow.Step)
}

// Prêmio de vale-crédito entra no saldo do cliente na finalização
func TestCheckoutPrizeCreditsBalance(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	// Roleta direcionada para o segmento 3 (R$10 de crédito)
	env.loja.Settings.Rigging = tenant.Rigging{Active: true, MinOrderValue: 100, ForceSegmentID: "3"}
	require.NoError(t, env.tenants.Update(ctx, env.loja))

	cliente, err := customer.NewCustomer(env.loja.ID, "João", "joao@example.com", "5511988880000", "")
	require.NoError(t, err)
	require.NoError(t, env.customers.Create(ctx, cliente))

	session, err := env.service.Start(ctx, env.loja.ID, cartOf300(), cliente.ID, "")
	require.NoError(t, err)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:           EventChooseShipping,
		ShippingMethod: order.ShippingPickup,
	})
	require.NoError(t, err)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type:          EventChoosePayment,
		PaymentMethod: order.PaymentPix,
	})
	require.NoError(t, err)

	session, err = env.service.HandleEvent(ctx, env.loja.ID, session.ID, EventRequest{
		Type: EventSpinRoulette,
	})
	require.NoError(t, err)

	pedido, err := env.orders.FindByID(ctx, env.loja.ID, session.OrderID)
	require.NoError(t, err)
	require.NotNil(t, pedido.WonPrize)
	assert.Equal(t, "3", pedido.WonPrize.SegmentID)
	assert.True(t, pedido.WonPrize.IsWin)

	atualizado, err := env.customers.FindByID(ctx, env.loja.ID, cliente.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, atualizado.Balance)
}
