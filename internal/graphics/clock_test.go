package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	var c Clock
	assert.Zero(t, c.Tick(10))
	assert.InDelta(t, 0.016, c.Tick(10.016), 1e-6)
	assert.Zero(t, c.Tick(10.0))
	assert.InDelta(t, 0.1, c.Tick(10.1), 1e-6)
	assert.Equal(t, float32(maxFrameDelta), c.Tick(99))
}
