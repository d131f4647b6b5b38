package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLightUniformsDeclared(t *testing.T) {
	r := NewRegistry()
	r.SetView([3]float32{0, 0, 6}, [3]float32{0, 1, 0})

	vecs := r.lightVectors()
	assert.Equal(t, [3]float32{0, 0, 6}, vecs["eyePos"])
	assert.Equal(t, [3]float32{0, 1, 0}, vecs["keyDir"])
	for name := range vecs {
		assert.Contains(t, litFS, "uniform vec3 "+name+";")
	}
	assert.Contains(t, litFS, "uniform float rimStrength;")
	assert.Contains(t, litVS, "uniform mat4 mvp;")
}

func TestKnownMeshes(t *testing.T) {
	for _, m := range []string{"cube", "sphere", "cylinder", "cone"} {
		assert.True(t, Known(m), m)
	}
	assert.False(t, Known("torus"))
}
