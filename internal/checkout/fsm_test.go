package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojazap/lojazap-backend/internal/domain/order"
)

func TestInitialStep(t *testing.T) {
	assert.Equal(t, StepUpsell, InitialStep(true))
	assert.Equal(t, StepShipping, InitialStep(false))
}

func TestUpsellAlwaysLeadsToShipping(t *testing.T) {
	for _, ev := range []EventType{EventAcceptUpsell, EventDeclineUpsell} {
		f, err := Transition(Flow{Step: StepUpsell}, Event{Type: ev})
		require.NoError(t, err)
		assert.Equal(t, StepShipping, f.Step)
	}
}

func TestShippingRoutesAuthenticatedPickupToPayment(t *testing.T) {
	f := Flow{Step: StepShipping, Authenticated: true, HasSavedAddress: true}

	f, err := Transition(f, Event{Type: EventChooseShipping, ShippingMethod: order.ShippingPickup})
	require.NoError(t, err)
	assert.Equal(t, StepPayment, f.Step)
}

func TestShippingRoutesAuthenticatedWithAddressToSelection(t *testing.T) {
	f := Flow{Step: StepShipping, Authenticated: true, HasSavedAddress: true}

	f, err := Transition(f, Event{Type: EventChooseShipping, ShippingMethod: order.ShippingMotoboy})
	require.NoError(t, err)
	// Cliente autenticado com endereço salvo nunca cai direto no cadastro
	assert.Equal(t, StepAddressSelection, f.Step)
}

func TestShippingRoutesAuthenticatedWithoutAddressToDetails(t *testing.T) {
	f := Flow{Step: StepShipping, Authenticated: true}

	f, err := Transition(f, Event{Type: EventChooseShipping, ShippingMethod: order.ShippingCarrier})
	require.NoError(t, err)
	assert.Equal(t, StepDetails, f.Step)
}

func TestGuestAlwaysPassesThroughIdentification(t *testing.T) {
	for _, method := range []order.ShippingMethod{order.ShippingPickup, order.ShippingMotoboy, order.ShippingCarrier} {
		f := Flow{Step: StepShipping}
		f, err := Transition(f, Event{Type: EventChooseShipping, ShippingMethod: method})
		require.NoError(t, err)
		assert.Equal(t, StepIdentification, f.Step)
	}
}

func TestIdentifyMatchRoutesLikeAuthenticated(t *testing.T) {
	f := Flow{Step: StepShipping}
	f, err := Transition(f, Event{Type: EventChooseShipping, ShippingMethod: order.ShippingMotoboy})
	require.NoError(t, err)

	f, err = Transition(f, Event{Type: EventIdentify, CustomerMatched: true, MatchedAddress: true})
	require.NoError(t, err)

	assert.True(t, f.Authenticated)
	assert.Equal(t, StepAddressSelection, f.Step)
}

func TestIdentifyMatchPickupGoesStraightToPayment(t *testing.T) {
	f := Flow{Step: StepShipping}
	f, _ = Transition(f, Event{Type: EventChooseShipping, ShippingMethod: order.ShippingPickup})

	f, err := Transition(f, Event{Type: EventIdentify, CustomerMatched: true})
	require.NoError(t, err)
	assert.Equal(t, StepPayment, f.Step)
}

func TestIdentifyNoMatchIsRegistrationPath(t *testing.T) {
	f := Flow{Step: StepIdentification, ShippingMethod: order.ShippingMotoboy}

	f, err := Transition(f, Event{Type: EventIdentify, CustomerMatched: false})
	require.NoError(t, err)
	assert.False(t, f.Authenticated)
	assert.Equal(t, StepDetails, f.Step)
}

func TestAddressSelection(t *testing.T) {
	f := Flow{Step: StepAddressSelection, Authenticated: true}

	saved, err := Transition(f, Event{Type: EventUseSavedAddress})
	require.NoError(t, err)
	assert.Equal(t, StepPayment, saved.Step)

	fresh, err := Transition(f, Event{Type: EventNewAddress})
	require.NoError(t, err)
	assert.Equal(t, StepDetails, fresh.Step)
}

func TestPaymentOnPickupRequiresPickupShipping(t *testing.T) {
	f := Flow{Step: StepPayment, ShippingMethod: order.ShippingMotoboy}

	_, err := Transition(f, Event{Type: EventChoosePayment, PaymentMethod: order.PaymentOnPickup})
	assert.ErrorIs(t, err, ErrPaymentRequiresPickup)

	f.ShippingMethod = order.ShippingPickup
	f, err = Transition(f, Event{Type: EventChoosePayment, PaymentMethod: order.PaymentOnPickup})
	require.NoError(t, err)
	assert.Equal(t, StepRoulette, f.Step)
}

func TestRouletteLeadsToFinalized(t *testing.T) {
	f := Flow{Step: StepRoulette}

	f, err := Transition(f, Event{Type: EventSpinRoulette})
	require.NoError(t, err)
	assert.Equal(t, StepFinalized, f.Step)
}

func TestBackNavigation(t *testing.T) {
	tests := []struct {
		name string
		from Flow
		want Step
	}{
		{"details autenticado volta para seleção de endereço", Flow{Step: StepDetails, Authenticated: true}, StepAddressSelection},
		{"details visitante volta para identificação", Flow{Step: StepDetails}, StepIdentification},
		{"payment volta para details", Flow{Step: StepPayment}, StepDetails},
		{"identification volta para entrega", Flow{Step: StepIdentification}, StepShipping},
		{"address selection volta para entrega", Flow{Step: StepAddressSelection}, StepShipping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Transition(tt.from, Event{Type: EventBack})
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Step)
		})
	}
}

func TestCancelOnlyFromShipping(t *testing.T) {
	f, err := Transition(Flow{Step: StepShipping}, Event{Type: EventCancel})
	require.NoError(t, err)
	assert.Equal(t, StepCancelled, f.Step)

	_, err = Transition(Flow{Step: StepPayment}, Event{Type: EventCancel})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestInvalidEventDoesNotAdvance(t *testing.T) {
	f := Flow{Step: StepShipping}

	next, err := Transition(f, Event{Type: EventChoosePayment, PaymentMethod: order.PaymentPix})
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.Equal(t, f, next)
}

func TestUnknownShippingRejected(t *testing.T) {
	_, err := Transition(Flow{Step: StepShipping}, Event{Type: EventChooseShipping, ShippingMethod: "drone"})
	assert.ErrorIs(t, err, ErrUnknownShipping)
}
