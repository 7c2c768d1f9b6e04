// Package prize implementa o sorteio da roleta de prêmios do checkout.
package prize

import (
	"errors"
	"math/rand"

	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
)

var (
	// ErrInvalidWheel ocorre quando a roleta não tem o número esperado de segmentos
	ErrInvalidWheel = errors.New("configuração de roleta inválida")

	// ErrSegmentNotFound ocorre quando o segmento forçado não existe na roleta
	ErrSegmentNotFound = errors.New("segmento configurado não existe na roleta")
)

// Engine sorteia segmentos da roleta. A fonte de aleatoriedade é injetada
// para que o resultado seja reproduzível em teste; a camada de apresentação
// apenas anima o resultado, nunca o influencia.
type Engine struct {
	rng *rand.Rand
}

// NewEngine cria um novo sorteador com a fonte de aleatoriedade informada
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Spin escolhe o segmento da roleta para um pedido.
// Com o direcionamento ativo e subtotal maior ou igual ao valor mínimo, o
// segmento configurado é escolhido de forma determinística; caso contrário o
// sorteio é uniforme entre os 8 segmentos.
func (e *Engine) Spin(settings tenant.Settings, orderSubtotal float64) (tenant.WheelSegment, error) {
	segments := settings.WheelSegments
	if len(segments) != tenant.WheelSegmentCount {
		return tenant.WheelSegment{}, ErrInvalidWheel
	}

	rigging := settings.Rigging
	if rigging.Active && orderSubtotal >= rigging.MinOrderValue {
		for _, s := range segments {
			if s.ID == rigging.ForceSegmentID {
				return s, nil
			}
		}
		return tenant.WheelSegment{}, ErrSegmentNotFound
	}

	return segments[e.rng.Intn(len(segments))], nil
}
