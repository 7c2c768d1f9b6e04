package notification

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/pkg/logger"
)

// WhatsAppNotifier monta o link de WhatsApp do pedido finalizado para o
// número da loja. Não há integração com API oficial: a notificação é um
// deep link wa.me que o front abre com a mensagem pronta.
type WhatsAppNotifier struct {
	logger logger.Logger

	mu       sync.Mutex
	lastLink string
}

// NewWhatsAppNotifier cria um novo notificador de pedidos via WhatsApp
func NewWhatsAppNotifier(log logger.Logger) *WhatsAppNotifier {
	return &WhatsAppNotifier{logger: log}
}

// OrderFinalized implementa o colaborador de notificação do checkout
func (n *WhatsAppNotifier) OrderFinalized(t *tenant.Tenant, o *order.Order) {
	link := BuildLink(t, o)

	n.mu.Lock()
	n.lastLink = link
	n.mu.Unlock()

	n.logger.Info("notificação de pedido gerada",
		"tenant_id", o.TenantID,
		"order_id", o.ID,
		"link", link,
	)
}

// LastLink devolve o último link gerado (consultado pela camada HTTP)
func (n *WhatsAppNotifier) LastLink() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastLink
}

// BuildLink monta o deep link wa.me com o resumo do pedido para o WhatsApp
// da loja
func BuildLink(t *tenant.Tenant, o *order.Order) string {
	phone := onlyDigits(t.Phone)
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(BuildMessage(t, o)))
}

// BuildMessage monta o texto do resumo do pedido enviado à loja
func BuildMessage(t *tenant.Tenant, o *order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Novo pedido — %s*\n\n", t.Name)
	for _, item := range o.Items {
		if item.IsPrize {
			fmt.Fprintf(&b, "🎁 %s (prêmio da roleta)\n", item.Name)
			continue
		}
		fmt.Fprintf(&b, "• %dx %s — R$ %.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}

	if o.DiscountUsed > 0 {
		fmt.Fprintf(&b, "\nSaldo usado: R$ %.2f", o.DiscountUsed)
	}
	fmt.Fprintf(&b, "\n*Total: R$ %.2f*\n", o.Total)

	fmt.Fprintf(&b, "\nEntrega: %s", shippingLabel(o.Shipping.Method))
	if o.Shipping.Cost > 0 {
		fmt.Fprintf(&b, " (R$ %.2f)", o.Shipping.Cost)
	}
	fmt.Fprintf(&b, "\nPagamento: %s", paymentLabel(o.PaymentMethod))

	if len(o.Installments) > 0 {
		fmt.Fprintf(&b, " em %dx", len(o.Installments))
		fmt.Fprintf(&b, "\n1ª parcela: R$ %.2f em %s",
			o.Installments[0].Value,
			o.Installments[0].DueDate.Format("02/01/2006"),
		)
	}

	if o.WonPrize != nil && o.WonPrize.IsWin {
		fmt.Fprintf(&b, "\n\n%s Prêmio da roleta: %s", o.WonPrize.Emoji, o.WonPrize.Label)
	}

	if o.Notes != "" {
		fmt.Fprintf(&b, "\n\nObservações: %s", o.Notes)
	}

	fmt.Fprintf(&b, "\n\nPedido: %s", o.ID)
	return b.String()
}

func shippingLabel(m order.ShippingMethod) string {
	switch m {
	case order.ShippingPickup:
		return "retirada na loja"
	case order.ShippingMotoboy:
		return "motoboy"
	case order.ShippingCarrier:
		return "transportadora"
	}
	return string(m)
}

func paymentLabel(m order.PaymentMethod) string {
	switch m {
	case order.PaymentPix:
		return "Pix"
	case order.PaymentCredit:
		return "cartão de crédito"
	case order.PaymentDebit:
		return "cartão de débito"
	case order.PaymentCash:
		return "dinheiro"
	case order.PaymentFiado:
		return "fiado"
	case order.PaymentOnPickup:
		return "na retirada"
	}
	return string(m)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
