package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type lamp string

const (
	lampOff    lamp = "off"
	lampOn     lamp = "on"
	lampBroken lamp = "broken"
)

var lampTransitions = TransitionTable[lamp]{
	lampOff: {lampOn, lampBroken},
	lampOn:  {lampOff, lampBroken},
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, lampTransitions.Allows(lampOff, lampOn))
	assert.False(t, lampTransitions.Allows(lampBroken, lampOn))
	assert.True(t, lampTransitions.IsTerminal(lampBroken))
	assert.False(t, lampTransitions.IsTerminal(lampOn))

	assert.NoError(t, lampTransitions.Check("lamp", "1", lampOn, lampOff))

	err := lampTransitions.Check("lamp", "1", lampBroken, lampOn)
	assert.True(t, IsInvalidTransition(err))
	assert.Equal(t, "cannot transition lamp 1 from broken to on", err.Error())
}

func TestIsNotFound(t *testing.T) {
	err := NewNotFoundError("factory", "abc")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "factory not found: abc", err.Error())
	assert.False(t, IsNotFound(NewDomainError("boom")))
}

func TestRandomFactory_SeededSequenceIsReproducible(t *testing.T) {
	a := NewRandomFactory(7)
	b := NewRandomFactory(7)

	for i := 0; i < 3; i++ {
		ra, rb := a(), b()
		assert.Equal(t, ra.Float64(), rb.Float64())
		assert.Equal(t, ra.IntN(1000), rb.IntN(1000))
	}
}

func TestUniformBounds(t *testing.T) {
	src := NewSeededRandom(1)
	for i := 0; i < 1000; i++ {
		v := Uniform(src, 0.8, 1.2)
		assert.GreaterOrEqual(t, v, 0.8)
		assert.Less(t, v, 1.2)
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	clock.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), clock.Now())

	clock.Sleep(10 * time.Second)
	assert.Equal(t, start.Add(100*time.Second), clock.Now())
}
