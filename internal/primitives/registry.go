package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds the mesh for a primitive and the model-space offset that centers it.
type cached struct {
	mesh   rl.Mesh
	offset rl.Matrix
}

// Registry maps primitive mesh names to GPU meshes sharing one lit material. Meshes are
// created on first use so that GPU resources are allocated after the window/OpenGL
// context exists. Implements scene.Drawer.
type Registry struct {
	cache    map[string]cached
	mtl      rl.Material
	mtlReady bool
	eyePos   [3]float32
	keyDir   [3]float32
}

// NewRegistry returns a registry with no meshes loaded.
func NewRegistry() *Registry {
	return &Registry{
		cache:  make(map[string]cached),
		keyDir: [3]float32{0.5, 1, 0.8},
	}
}

// Known reports whether mesh is a primitive name the registry can draw.
func Known(mesh string) bool {
	_, ok := generators[mesh]
	return ok
}

// generators build unit-sized meshes. Cylinder and cone have their base at Y=0 in raylib,
// so their offset moves them down half a unit to center them like the cube and sphere.
var generators = map[string]func() (rl.Mesh, rl.Vector3){
	"cube": func() (rl.Mesh, rl.Vector3) {
		return rl.GenMeshCube(1, 1, 1), rl.Vector3{}
	},
	"sphere": func() (rl.Mesh, rl.Vector3) {
		return rl.GenMeshSphere(0.5, sphereRings, sphereSlices), rl.Vector3{}
	},
	"cylinder": func() (rl.Mesh, rl.Vector3) {
		return rl.GenMeshCylinder(0.5, 1, roundSlices), rl.NewVector3(0, -0.5, 0)
	},
	"cone": func() (rl.Mesh, rl.Vector3) {
		return rl.GenMeshCone(0.5, 1, roundSlices), rl.NewVector3(0, -0.5, 0)
	},
}

const (
	sphereRings  = 16
	sphereSlices = 16
	roundSlices  = 24
)

// SetView sets the camera position and the direction toward the key light for this
// frame.
func (r *Registry) SetView(eye, keyDir [3]float32) {
	r.eyePos = eye
	r.keyDir = keyDir
}

func (r *Registry) ensure(mesh string) (cached, bool) {
	if c, ok := r.cache[mesh]; ok {
		return c, true
	}
	gen, ok := generators[mesh]
	if !ok {
		return cached{}, false
	}
	if !r.mtlReady {
		r.mtl = rl.LoadMaterialDefault()
		if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
			r.mtl.Shader = shader
		}
		r.mtlReady = true
	}
	m, off := gen()
	c := cached{mesh: m, offset: rl.MatrixTranslate(off.X, off.Y, off.Z)}
	r.cache[mesh] = c
	return c, true
}

// DrawPart draws one unit primitive with the given world transform and tint.
// Must be called between BeginMode3D and EndMode3D. Unknown meshes are skipped.
func (r *Registry) DrawPart(mesh string, color rl.Color, transform rl.Matrix) {
	c, ok := r.ensure(mesh)
	if !ok {
		return
	}
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	r.setLightUniforms(r.mtl.Shader)
	rl.DrawMesh(c.mesh, r.mtl, rl.MatrixMultiply(c.offset, transform))
}

// Unload releases every mesh and the shared material. Call before CloseWindow.
func (r *Registry) Unload() {
	for key, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, key)
	}
	if r.mtlReady {
		rl.UnloadMaterial(r.mtl)
		r.mtlReady = false
	}
}
