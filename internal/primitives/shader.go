package primitives

import rl "github.com/gen2brain/raylib-go/raylib"

// Turntable lighting: a sky/ground hemisphere for ambient, one key light, and a rim term
// that outlines objects against the dark background.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 worldPos;
out vec3 worldNormal;
void main() {
  worldPos = (matModel * vec4(vertexPosition, 1.0)).xyz;
  worldNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 worldPos;
in vec3 worldNormal;
uniform vec4 colDiffuse;
uniform vec3 eyePos;
uniform vec3 keyDir;
uniform vec3 keyColor;
uniform vec3 skyColor;
uniform vec3 groundColor;
uniform float rimStrength;
out vec4 finalColor;
void main() {
  vec3 n = normalize(worldNormal);
  vec3 toEye = normalize(eyePos - worldPos);
  vec3 hemi = mix(groundColor, skyColor, n.y * 0.5 + 0.5);
  float key = max(dot(n, normalize(keyDir)), 0.0);
  float rim = pow(1.0 - max(dot(n, toEye), 0.0), 3.0) * rimStrength;
  vec3 lit = colDiffuse.rgb * (hemi + keyColor * key) + vec3(rim);
  finalColor = vec4(lit, colDiffuse.a);
}
`
)

var (
	skyColor    = [3]float32{0.42, 0.44, 0.5}
	groundColor = [3]float32{0.16, 0.14, 0.13}
	keyColor    = [3]float32{0.7, 0.68, 0.64}
)

const rimStrength = float32(0.18)

// setLightUniforms uploads the frame's eye position and key light. Values are copied
// into local arrays before crossing into C.
func (r *Registry) setLightUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	for name, v := range r.lightVectors() {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			val := v
			rl.SetShaderValue(shader, loc, val[:], rl.ShaderUniformVec3)
		}
	}
	if loc := rl.GetShaderLocation(shader, "rimStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{rimStrength}, rl.ShaderUniformFloat)
	}
}

// lightVectors maps each vec3 lighting uniform to its value for this frame.
func (r *Registry) lightVectors() map[string][3]float32 {
	return map[string][3]float32{
		"eyePos":      r.eyePos,
		"keyDir":      r.keyDir,
		"keyColor":    keyColor,
		"skyColor":    skyColor,
		"groundColor": groundColor,
	}
}
