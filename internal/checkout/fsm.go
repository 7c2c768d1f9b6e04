// Package checkout implementa a máquina de estados do checkout e a
// finalização de pedidos.
package checkout

import (
	"errors"

	"github.com/lojazap/lojazap-backend/internal/domain/order"
)

var (
	// ErrInvalidEvent ocorre quando o evento não é aceito no passo atual
	ErrInvalidEvent = errors.New("evento não permitido neste passo do checkout")

	// ErrUnknownShipping ocorre quando a forma de entrega não é reconhecida
	ErrUnknownShipping = errors.New("forma de entrega desconhecida")

	// ErrUnknownPayment ocorre quando a forma de pagamento não é aceita no checkout
	ErrUnknownPayment = errors.New("forma de pagamento não aceita")

	// ErrPaymentRequiresPickup ocorre quando "pagar na retirada" é escolhido sem retirada
	ErrPaymentRequiresPickup = errors.New("pagamento na retirada exige entrega por retirada")
)

// Step representa um passo do fluxo de checkout
type Step string

const (
	StepUpsell           Step = "upsell"
	StepShipping         Step = "shipping"
	StepIdentification   Step = "identification"
	StepAddressSelection Step = "address_selection"
	StepDetails          Step = "details"
	StepPayment          Step = "payment"
	StepRoulette         Step = "roulette"
	StepFinalized        Step = "finalized"
	StepCancelled        Step = "cancelled"
)

// EventType identifica os eventos que movem o checkout
type EventType string

const (
	EventAcceptUpsell    EventType = "accept_upsell"
	EventDeclineUpsell   EventType = "decline_upsell"
	EventChooseShipping  EventType = "choose_shipping"
	EventIdentify        EventType = "identify"
	EventUseSavedAddress EventType = "use_saved_address"
	EventNewAddress      EventType = "new_address"
	EventSubmitDetails   EventType = "submit_details"
	EventChoosePayment   EventType = "choose_payment"
	EventSpinRoulette    EventType = "spin_roulette"
	EventBack            EventType = "back"
	EventCancel          EventType = "cancel"
)

// Flow é o retrato dos fatos que condicionam as transições do checkout.
// A função de transição é pura: decide apenas com o que está aqui e com o
// evento; consultas (cliente por email, endereço salvo) acontecem antes e
// entram como fatos já resolvidos.
type Flow struct {
	Step            Step
	Authenticated   bool
	HasSavedAddress bool
	ShippingMethod  order.ShippingMethod
}

// Event carrega o tipo do evento e os fatos resolvidos que ele traz
type Event struct {
	Type EventType

	// ChooseShipping
	ShippingMethod order.ShippingMethod

	// Identify: resultado da busca por email, já resolvido pelo serviço
	CustomerMatched bool
	MatchedAddress  bool

	// ChoosePayment
	PaymentMethod order.PaymentMethod
}

// InitialStep decide onde o checkout começa: na oferta de upsell quando
// alguma regra ativa casa com o carrinho, senão direto na entrega.
func InitialStep(hasUpsellOffer bool) Step {
	if hasUpsellOffer {
		return StepUpsell
	}
	return StepShipping
}

// Transition aplica um evento ao fluxo e devolve o fluxo resultante.
// Eventos inválidos para o passo atual não alteram nada e retornam erro;
// validação reprovada nunca reinicia o checkout.
func Transition(f Flow, ev Event) (Flow, error) {
	switch ev.Type {
	case EventAcceptUpsell, EventDeclineUpsell:
		if f.Step != StepUpsell {
			return f, ErrInvalidEvent
		}
		f.Step = StepShipping
		return f, nil

	case EventChooseShipping:
		if f.Step != StepShipping {
			return f, ErrInvalidEvent
		}
		switch ev.ShippingMethod {
		case order.ShippingPickup, order.ShippingMotoboy, order.ShippingCarrier:
		default:
			return f, ErrUnknownShipping
		}
		f.ShippingMethod = ev.ShippingMethod
		f.Step = routeAfterShipping(f)
		return f, nil

	case EventIdentify:
		if f.Step != StepIdentification {
			return f, ErrInvalidEvent
		}
		if !ev.CustomerMatched {
			// Email desconhecido segue como cadastro de cliente novo
			f.Step = StepDetails
			return f, nil
		}
		f.Authenticated = true
		f.HasSavedAddress = ev.MatchedAddress
		f.Step = routeAfterShipping(f)
		return f, nil

	case EventUseSavedAddress:
		if f.Step != StepAddressSelection {
			return f, ErrInvalidEvent
		}
		f.Step = StepPayment
		return f, nil

	case EventNewAddress:
		if f.Step != StepAddressSelection {
			return f, ErrInvalidEvent
		}
		f.Step = StepDetails
		return f, nil

	case EventSubmitDetails:
		if f.Step != StepDetails {
			return f, ErrInvalidEvent
		}
		f.Step = StepPayment
		return f, nil

	case EventChoosePayment:
		if f.Step != StepPayment {
			return f, ErrInvalidEvent
		}
		switch ev.PaymentMethod {
		case order.PaymentPix, order.PaymentCredit:
		case order.PaymentOnPickup:
			if f.ShippingMethod != order.ShippingPickup {
				return f, ErrPaymentRequiresPickup
			}
		case order.PaymentFiado:
		default:
			return f, ErrUnknownPayment
		}
		f.Step = StepRoulette
		return f, nil

	case EventSpinRoulette:
		if f.Step != StepRoulette {
			return f, ErrInvalidEvent
		}
		f.Step = StepFinalized
		return f, nil

	case EventBack:
		return back(f)

	case EventCancel:
		if f.Step != StepShipping {
			return f, ErrInvalidEvent
		}
		f.Step = StepCancelled
		return f, nil
	}

	return f, ErrInvalidEvent
}

// routeAfterShipping decide o próximo passo depois da escolha de entrega,
// considerando autenticação e endereço salvo
func routeAfterShipping(f Flow) Step {
	if !f.Authenticated {
		return StepIdentification
	}
	if f.ShippingMethod == order.ShippingPickup {
		return StepPayment
	}
	if f.HasSavedAddress {
		return StepAddressSelection
	}
	return StepDetails
}

// back implementa a navegação reversa do checkout
func back(f Flow) (Flow, error) {
	switch f.Step {
	case StepDetails:
		if f.Authenticated {
			f.Step = StepAddressSelection
		} else {
			f.Step = StepIdentification
		}
		return f, nil
	case StepPayment:
		f.Step = StepDetails
		return f, nil
	case StepIdentification, StepAddressSelection:
		f.Step = StepShipping
		return f, nil
	default:
		return f, ErrInvalidEvent
	}
}
