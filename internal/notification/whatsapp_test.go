package notification

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/pkg/logger"
)

func notificationFixture(t *testing.T) (*tenant.Tenant, *order.Order) {
	t.Helper()

	loja, err := tenant.NewTenant("Loja da Ana", "loja-da-ana", "ana@example.com", "+55 (11) 99999-0000")
	require.NoError(t, err)

	items := []order.CartItem{
		{ProductID: "p1", Name: "Tênis", Price: 150, Quantity: 2},
		{ProductID: "p2", Name: "Par de meias", IsPrize: true, Quantity: 1},
	}
	pedido, err := order.NewOrder(loja.ID, "c1", items, 250, 120, 50,
		order.Shipping{Method: order.ShippingMotoboy, Cost: 15}, order.PaymentFiado, "entregar à tarde")
	require.NoError(t, err)

	installments, err := order.BuildInstallments(250, 3, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	pedido.Installments = installments
	return loja, pedido
}

func TestBuildMessage(t *testing.T) {
	loja, pedido := notificationFixture(t)

	msg := BuildMessage(loja, pedido)

	assert.Contains(t, msg, "Loja da Ana")
	assert.Contains(t, msg, "2x Tênis — R$ 300.00")
	assert.Contains(t, msg, "Par de meias (prêmio da roleta)")
	assert.Contains(t, msg, "Saldo usado: R$ 50.00")
	assert.Contains(t, msg, "Total: R$ 250.00")
	assert.Contains(t, msg, "motoboy (R$ 15.00)")
	assert.Contains(t, msg, "fiado em 3x")
	assert.Contains(t, msg, "1ª parcela: R$ 83.33 em 10/04/2025")
	assert.Contains(t, msg, "Observações: entregar à tarde")
	assert.Contains(t, msg, pedido.ID)
}

func TestBuildLinkTargetsStorePhone(t *testing.T) {
	loja, pedido := notificationFixture(t)

	link := BuildLink(loja, pedido)

	// Telefone da loja entra só com dígitos
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999990000?text="), link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("text"), "Loja da Ana")
}

func TestNotifierKeepsLastLink(t *testing.T) {
	loja, pedido := notificationFixture(t)

	n := NewWhatsAppNotifier(logger.NewNopLogger())
	assert.Empty(t, n.LastLink())

	n.OrderFinalized(loja, pedido)
	assert.Equal(t, BuildLink(loja, pedido), n.LastLink())
}
