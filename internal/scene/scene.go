package scene

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 10
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 40
	gridMajorAlpha = 90
)

// Drawer draws one unit primitive with the given world transform. Implemented by
// primitives.Registry; kept as an interface so scene stays free of GPU resources.
type Drawer interface {
	DrawPart(mesh string, color rl.Color, transform rl.Matrix)
}

// Scene holds the viewer camera and the root nodes drawn each frame.
// Roots with a RenderOrder above zero form the overlay layer: they are drawn last,
// against a depth buffer of their own, so dragged clones stay in front of the primary
// object while their parts still occlude each other.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	roots       []*Node
	overlay     rl.RenderTexture2D
}

// New returns a scene with a perspective camera on +Z looking at the origin from distance.
func New(distance float32) *Scene {
	s := &Scene{GridVisible: true}
	s.Camera.Position = rl.NewVector3(0, 0, distance)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Add inserts a root node. Adding a node twice is a no-op.
func (s *Scene) Add(n *Node) {
	for _, r := range s.roots {
		if r == n {
			return
		}
	}
	s.roots = append(s.roots, n)
}

// Remove deletes a root node. Returns false if n was not in the scene.
func (s *Scene) Remove(n *Node) bool {
	for i, r := range s.roots {
		if r == n {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			return true
		}
	}
	return false
}

// Roots returns a copy of the root list in insertion order.
func (s *Scene) Roots() []*Node {
	out := make([]*Node, len(s.roots))
	copy(out, s.roots)
	return out
}

// Find returns the first root whose Name matches.
func (s *Scene) Find(name string) *Node {
	for _, r := range s.roots {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Draw renders the grid and every visible node. Call between BeginDrawing and EndDrawing.
func (s *Scene) Draw(d Drawer) {
	base, overlay := layers(s.roots)
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawFloorGrid()
	}
	for _, r := range base {
		drawNode(d, r, rl.MatrixIdentity())
	}
	rl.EndMode3D()
	if len(overlay) == 0 {
		return
	}

	target := s.overlayTarget(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Blank)
	rl.BeginMode3D(s.Camera)
	for _, r := range overlay {
		drawNode(d, r, rl.MatrixIdentity())
	}
	rl.EndMode3D()
	rl.EndTextureMode()

	// Render textures are stored bottom-up.
	w, h := float32(target.Texture.Width), float32(target.Texture.Height)
	rl.DrawTextureRec(target.Texture, rl.NewRectangle(0, 0, w, -h), rl.Vector2{}, rl.White)
}

// overlayTarget returns a render texture of the given size, reallocating it after a
// resize.
func (s *Scene) overlayTarget(w, h int32) rl.RenderTexture2D {
	if s.overlay.ID != 0 && s.overlay.Texture.Width == w && s.overlay.Texture.Height == h {
		return s.overlay
	}
	if s.overlay.ID != 0 {
		rl.UnloadRenderTexture(s.overlay)
	}
	s.overlay = rl.LoadRenderTexture(w, h)
	return s.overlay
}

// Unload frees the overlay render texture. Call before CloseWindow.
func (s *Scene) Unload() {
	if s.overlay.ID != 0 {
		rl.UnloadRenderTexture(s.overlay)
		s.overlay = rl.RenderTexture2D{}
	}
}

// layers splits roots into the depth-tested base layer and the overlay layer, each in
// draw order.
func layers(roots []*Node) (base, overlay []*Node) {
	for _, r := range drawOrder(roots) {
		if r.RenderOrder > 0 {
			overlay = append(overlay, r)
		} else {
			base = append(base, r)
		}
	}
	return base, overlay
}

// drawOrder sorts roots by RenderOrder, keeping insertion order for ties.
func drawOrder(roots []*Node) []*Node {
	out := make([]*Node, len(roots))
	copy(out, roots)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RenderOrder < out[j].RenderOrder })
	return out
}

func drawNode(d Drawer, n *Node, parent rl.Matrix) {
	if !n.Visible {
		return
	}
	world := rl.MatrixMultiply(n.LocalMatrix(), parent)
	if n.Part != nil {
		d.DrawPart(n.Part.Mesh, n.Part.Color, world)
	}
	for _, c := range n.Children {
		drawNode(d, c, world)
	}
}

// drawFloorGrid draws a grid on the XZ plane below the turntable.
func drawFloorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	const y = -1.5

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), y, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(i), y, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = float32(-gridExtent), y, float32(i)
		end.X, end.Y, end.Z = float32(gridExtent), y, float32(i)
		rl.DrawLine3D(start, end, c)
	}
}
