package fiado_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/lojazap/lojazap-backend/internal/fiado"

	"github.com/lojazap/lojazap-backend/internal/adapter/repository"
	"github.com/lojazap/lojazap-backend/internal/domain/customer"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/pkg/logger"
)

var baseDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func defaultRates() Rates {
	return Rates{FinePercent: 2, DailyInterestPercent: 0.1}
}

func installmentFixture(value float64, due time.Time) order.Installment {
	return order.Installment{
		ID:                "inst-1",
		Number:            1,
		TotalInstallments: 1,
		Value:             value,
		DueDate:           due,
		Status:            order.InstallmentPending,
	}
}

func TestTotalDueNoPenaltyBeforeDueDate(t *testing.T) {
	inst := installmentFixture(100, baseDay)

	assert.Equal(t, 100.0, TotalDue(inst, baseDay.AddDate(0, 0, -5), defaultRates()))
	assert.Equal(t, 100.0, TotalDue(inst, baseDay, defaultRates()))
	// Horário do mesmo dia não conta como atraso
	assert.Equal(t, 100.0, TotalDue(inst, baseDay.Add(23*time.Hour), defaultRates()))
}

func TestTotalDueWithLateFees(t *testing.T) {
	inst := installmentFixture(100, baseDay)

	// 10 dias de atraso: multa 2% + juros 0.1% ao dia
	due := TotalDue(inst, baseDay.AddDate(0, 0, 10), defaultRates())
	assert.InDelta(t, 100+2+1, due, 0.001)
}

func TestTotalDueMonotonic(t *testing.T) {
	inst := installmentFixture(250, baseDay)

	previous := 0.0
	for days := -3; days <= 60; days++ {
		due := TotalDue(inst, baseDay.AddDate(0, 0, days), defaultRates())
		assert.GreaterOrEqual(t, due, previous)
		previous = due
	}
}

func TestClassifyBuckets(t *testing.T) {
	today := baseDay

	assert.Equal(t, BucketOverdue, Classify(today.AddDate(0, 0, -1), today))
	assert.Equal(t, BucketToday, Classify(today, today))
	assert.Equal(t, BucketWeek, Classify(today.AddDate(0, 0, 3), today))
	assert.Equal(t, BucketWeek, Classify(today.AddDate(0, 0, 7), today))
	assert.Equal(t, BucketFuture, Classify(today.AddDate(0, 0, 8), today))
}

// ledgerFixture monta um cenário completo: loja, cliente e pedido no fiado
// com três parcelas de R$100.
func ledgerFixture(t *testing.T) (*Ledger, *tenant.Tenant, *customer.Customer, *order.Order) {
	t.Helper()
	ctx := context.Background()

	store := repository.NewMemoryStore()
	tenants := repository.NewMemoryTenantRepository(store)
	customers := repository.NewMemoryCustomerRepository(store)
	orders := repository.NewMemoryOrderRepository(store)

	loja, err := tenant.NewTenant("Loja da Ana", "loja-da-ana", "ana@example.com", "5511999990000")
	require.NoError(t, err)
	loja.Settings.FinePercent = 2
	loja.Settings.DailyInterestPercent = 0.1
	require.NoError(t, tenants.Create(ctx, loja))

	cliente, err := customer.NewCustomer(loja.ID, "João", "joao@example.com", "5511988880000", "")
	require.NoError(t, err)
	require.NoError(t, customers.Create(ctx, cliente))

	items := []order.CartItem{{ProductID: "p1", Name: "Tênis", Price: 300, Quantity: 1}}
	pedido, err := order.NewOrder(loja.ID, cliente.ID, items, 300, 120, 0,
		order.Shipping{Method: order.ShippingPickup}, order.PaymentFiado, "")
	require.NoError(t, err)

	installments, err := order.BuildInstallments(300, 3, baseDay.AddDate(0, -2, 0))
	require.NoError(t, err)
	pedido.Installments = installments
	require.NoError(t, orders.Create(ctx, pedido))

	ledger := NewLedger(orders, customers, tenants, logger.NewNopLogger()).
		WithClock(func() time.Time { return baseDay })
	return ledger, loja, cliente, pedido
}

func TestPayInstallmentRejectsNonPositiveAmount(t *testing.T) {
	ledger, loja, cliente, pedido := ledgerFixture(t)

	for _, amount := range []float64{0, -10} {
		_, err := ledger.PayInstallment(context.Background(), loja.ID, PaymentRequest{
			CustomerID:    cliente.ID,
			OrderID:       pedido.ID,
			InstallmentID: pedido.Installments[0].ID,
			Amount:        amount,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestPayInstallmentFullPayment(t *testing.T) {
	ledger, loja, cliente, pedido := ledgerFixture(t)

	// Primeira parcela venceu um mês atrás: 100 + 2 de multa + juros
	inst := pedido.Installments[0]
	due := TotalDue(inst, baseDay, defaultRates())

	result, err := ledger.PayInstallment(context.Background(), loja.ID, PaymentRequest{
		CustomerID:    cliente.ID,
		OrderID:       pedido.ID,
		InstallmentID: inst.ID,
		Amount:        due,
	})
	require.NoError(t, err)

	assert.Equal(t, order.InstallmentPaid, result.Installment.Status)
	assert.NotNil(t, result.Installment.PaidDate)
	assert.Equal(t, 0.0, result.Remaining)

	// Parcela quitada é terminal: segundo pagamento é rejeitado
	_, err = ledger.PayInstallment(context.Background(), loja.ID, PaymentRequest{
		CustomerID:    cliente.ID,
		OrderID:       pedido.ID,
		InstallmentID: inst.ID,
		Amount:        10,
	})
	assert.ErrorIs(t, err, order.ErrInstallmentPaid)
}

func TestPayInstallmentPartialReschedules(t *testing.T) {
	ledger, loja, cliente, pedido := ledgerFixture(t)

	inst := pedido.Installments[0]
	nextDue := baseDay.AddDate(0, 0, 15)

	result, err := ledger.PayInstallment(context.Background(), loja.ID, PaymentRequest{
		CustomerID:    cliente.ID,
		OrderID:       pedido.ID,
		InstallmentID: inst.ID,
		Amount:        40,
		NextDueDate:   &nextDue,
	})
	require.NoError(t, err)

	assert.Equal(t, order.InstallmentPartial, result.Installment.Status)
	assert.Equal(t, 40.0, result.Installment.PaidAmount)
	// O principal nunca muda; o restante é derivado
	assert.Equal(t, inst.Value, result.Installment.Value)
	assert.True(t, result.Installment.DueDate.Equal(nextDue))
	assert.Greater(t, result.Remaining, 0.0)
}

func TestPayInstallmentPartialDefaultsNextMonth(t *testing.T) {
	ledger, loja, cliente, pedido := ledgerFixture(t)

	result, err := ledger.PayInstallment(context.Background(), loja.ID, PaymentRequest{
		CustomerID:    cliente.ID,
		OrderID:       pedido.ID,
		InstallmentID: pedido.Installments[0].ID,
		Amount:        10,
	})
	require.NoError(t, err)

	assert.True(t, result.Installment.DueDate.Equal(baseDay.AddDate(0, 1, 0)))
}

func TestDebtSumsOpenInstallments(t *testing.T) {
	ledger, loja, cliente, pedido := ledgerFixture(t)

	debt, err := ledger.Debt(context.Background(), loja.ID, cliente.ID)
	require.NoError(t, err)

	expected := 0.0
	for _, inst := range pedido.Installments {
		expected += TotalDue(inst, baseDay, defaultRates())
	}
	assert.InDelta(t, expected, debt, 0.01)

	// Quitar a primeira parcela reduz o débito
	first := pedido.Installments[0]
	_, err = ledger.PayInstallment(context.Background(), loja.ID, PaymentRequest{
		CustomerID:    cliente.ID,
		OrderID:       pedido.ID,
		InstallmentID: first.ID,
		Amount:        TotalDue(first, baseDay, defaultRates()),
	})
	require.NoError(t, err)

	debtAfter, err := ledger.Debt(context.Background(), loja.ID, cliente.ID)
	require.NoError(t, err)
	assert.Less(t, debtAfter, debt)
}

func TestReceivablesSortedAndBucketed(t *testing.T) {
	ledger, loja, _, _ := ledgerFixture(t)

	all, err := ledger.Receivables(context.Background(), loja.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Ordenadas por vencimento crescente
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Installment.DueDate.Before(all[i-1].Installment.DueDate))
	}
	assert.Equal(t, "João", all[0].CustomerName)

	// Com o plano gerado dois meses atrás: uma parcela vencida, uma vencendo
	// hoje e uma futura
	overdue, err := ledger.Receivables(context.Background(), loja.ID, BucketOverdue)
	require.NoError(t, err)
	assert.Len(t, overdue, 1)

	today, err := ledger.Receivables(context.Background(), loja.ID, BucketToday)
	require.NoError(t, err)
	assert.Len(t, today, 1)

	future, err := ledger.Receivables(context.Background(), loja.ID, BucketFuture)
	require.NoError(t, err)
	assert.Len(t, future, 1)
}
