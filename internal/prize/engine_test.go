package prize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
)

func settingsFixture(rigging tenant.Rigging) tenant.Settings {
	s := tenant.DefaultSettings()
	s.Rigging = rigging
	return s
}

func TestSpinRiggedAboveThreshold(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(1)))
	settings := settingsFixture(tenant.Rigging{
		Active:         true,
		MinOrderValue:  150,
		ForceSegmentID: "3",
	})

	for i := 0; i < 50; i++ {
		segment, err := engine.Spin(settings, 200)
		require.NoError(t, err)
		assert.Equal(t, "3", segment.ID)
	}
}

func TestSpinRiggingInactiveBelowThreshold(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(42)))
	settings := settingsFixture(tenant.Rigging{
		Active:         true,
		MinOrderValue:  150,
		ForceSegmentID: "3",
	})

	// Abaixo do valor mínimo o sorteio volta a ser uniforme
	counts := make(map[string]int)
	const draws = 10000
	for i := 0; i < draws; i++ {
		segment, err := engine.Spin(settings, 100)
		require.NoError(t, err)
		counts[segment.ID]++
	}

	assert.Len(t, counts, tenant.WheelSegmentCount)

	// Qui-quadrado contra a uniforme; valor crítico para 7 graus de
	// liberdade a 0.1% de significância
	expected := float64(draws) / float64(tenant.WheelSegmentCount)
	chiSquare := 0.0
	for _, c := range counts {
		diff := float64(c) - expected
		chiSquare += diff * diff / expected
	}
	assert.Less(t, chiSquare, 24.32)
}

func TestSpinDeterministicWithSeed(t *testing.T) {
	settings := settingsFixture(tenant.Rigging{})

	first := NewEngine(rand.New(rand.NewSource(7)))
	second := NewEngine(rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		a, err := first.Spin(settings, 50)
		require.NoError(t, err)
		b, err := second.Spin(settings, 50)
		require.NoError(t, err)
		assert.Equal(t, a.ID, b.ID)
	}
}

func TestSpinForceSegmentMissing(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(1)))
	settings := settingsFixture(tenant.Rigging{
		Active:         true,
		MinOrderValue:  0,
		ForceSegmentID: "99",
	})

	_, err := engine.Spin(settings, 10)
	assert.ErrorIs(t, err, ErrSegmentNotFound)
}

func TestSpinInvalidWheel(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(1)))
	settings := settingsFixture(tenant.Rigging{})
	settings.WheelSegments = settings.WheelSegments[:5]

	_, err := engine.Spin(settings, 10)
	assert.ErrorIs(t, err, ErrInvalidWheel)
}
