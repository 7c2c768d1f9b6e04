package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lojazap/lojazap-backend/internal/domain/order"
)

func cartFixture() []order.CartItem {
	return []order.CartItem{
		{ProductID: "p1", Name: "Camiseta", Price: 100, CostPrice: 40, Quantity: 2},
		{ProductID: "p2", Name: "Boné", Price: 100, CostPrice: 30, Quantity: 1},
	}
}

func TestComputeTotalsWithBalance(t *testing.T) {
	totals := ComputeTotals(cartFixture(), 50, true)

	assert.Equal(t, 300.0, totals.Subtotal)
	assert.Equal(t, 50.0, totals.BalanceUsed)
	assert.Equal(t, 250.0, totals.FinalTotal)
}

func TestComputeTotalsWithoutBalance(t *testing.T) {
	totals := ComputeTotals(cartFixture(), 50, false)

	assert.Equal(t, 300.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.BalanceUsed)
	assert.Equal(t, 300.0, totals.FinalTotal)
}

func TestComputeTotalsBalanceLargerThanSubtotal(t *testing.T) {
	items := []order.CartItem{{ProductID: "p1", Price: 30, Quantity: 1}}

	totals := ComputeTotals(items, 1000, true)

	assert.Equal(t, 30.0, totals.Subtotal)
	assert.Equal(t, 30.0, totals.BalanceUsed)
	assert.Equal(t, 0.0, totals.FinalTotal)
}

func TestComputeTotalsPrizeItemsAreFree(t *testing.T) {
	items := append(cartFixture(), order.CartItem{
		ProductID: "brinde", Name: "Brinde", Price: 0, CostPrice: 15, Quantity: 1, IsPrize: true,
	})

	totals := ComputeTotals(items, 0, false)

	assert.Equal(t, 300.0, totals.Subtotal)
	assert.Equal(t, 115.0, TotalCost(items))
}

func TestComputeTotalsIdempotent(t *testing.T) {
	items := cartFixture()

	first := ComputeTotals(items, 75.5, true)
	second := ComputeTotals(items, 75.5, true)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.FinalTotal, 0.0)
	assert.LessOrEqual(t, first.BalanceUsed, first.Subtotal)
}

func TestComputeTotalsNegativeBalanceIgnored(t *testing.T) {
	totals := ComputeTotals(cartFixture(), -10, true)

	assert.Equal(t, 0.0, totals.BalanceUsed)
	assert.Equal(t, 300.0, totals.FinalTotal)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, 50, true)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.BalanceUsed)
	assert.Equal(t, 0.0, totals.FinalTotal)
}
