// Package pricing calcula os totais do carrinho no checkout.
package pricing

import (
	"github.com/lojazap/lojazap-backend/internal/domain/order"
)

// Totals é o resultado do cálculo de preços de um carrinho
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	BalanceUsed float64 `json:"balance_used"`
	FinalTotal  float64 `json:"final_total"`
}

// ComputeTotals calcula subtotal, desconto por saldo e total a pagar.
// Função pura: mesmo carrinho e mesmo saldo produzem sempre o mesmo resultado.
// Itens de prêmio têm preço zero e não contribuem para o subtotal.
func ComputeTotals(items []order.CartItem, customerBalance float64, useBalance bool) Totals {
	subtotal := 0.0
	for _, item := range items {
		if item.IsPrize {
			continue
		}
		subtotal += item.Price * float64(item.Quantity)
	}

	balanceUsed := 0.0
	if useBalance && customerBalance > 0 {
		balanceUsed = customerBalance
		if balanceUsed > subtotal {
			balanceUsed = subtotal
		}
	}

	finalTotal := subtotal - balanceUsed
	if finalTotal < 0 {
		finalTotal = 0
	}

	return Totals{
		Subtotal:    subtotal,
		BalanceUsed: balanceUsed,
		FinalTotal:  finalTotal,
	}
}

// TotalCost soma a base de custo dos itens, usada no relatório de lucro.
// Itens de prêmio ainda custam para a loja, então entram na soma.
func TotalCost(items []order.CartItem) float64 {
	cost := 0.0
	for _, item := range items {
		cost += item.CostPrice * float64(item.Quantity)
	}
	return cost
}
