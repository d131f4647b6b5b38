// Package placement drags accessory clones from the tray into the scene.
package placement

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/anchor"
)

const (
	// planeEpsilon pushes the placement plane out from the anchor sphere, as a fraction
	// of its radius.
	planeEpsilon = 0.02
	// defaultPlaneDistance places the plane in front of the camera when there is no anchor.
	defaultPlaneDistance = 1
	// fallbackDistance is used along the ray when it misses the plane.
	fallbackDistance = 0.5
	parallelEpsilon  = 1e-6
)

// Viewport is the render surface in window pixels.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// Plane is a plane through Point with unit Normal.
type Plane struct {
	Point  rl.Vector3
	Normal rl.Vector3
}

// IntersectRay returns where ray meets the plane. ok is false when the ray is parallel
// to the plane or the plane is behind the ray origin.
func (p Plane) IntersectRay(ray rl.Ray) (hit rl.Vector3, ok bool) {
	denom := rl.Vector3DotProduct(p.Normal, ray.Direction)
	if math32.Abs(denom) < parallelEpsilon {
		return rl.Vector3{}, false
	}
	t := rl.Vector3DotProduct(p.Normal, rl.Vector3Subtract(p.Point, ray.Position)) / denom
	if t < 0 || math32.IsNaN(t) || math32.IsInf(t, 0) {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t)), true
}

// ViewDirection is the unit vector from the camera toward its target.
func ViewDirection(camera rl.Camera3D) rl.Vector3 {
	dir := rl.Vector3Subtract(camera.Target, camera.Position)
	if rl.Vector3Length(dir) == 0 {
		return rl.NewVector3(0, 0, -1)
	}
	return rl.Vector3Normalize(dir)
}

// ScreenRay casts a ray from a perspective camera through a window pixel.
func ScreenRay(camera rl.Camera3D, pos rl.Vector2, vp Viewport) rl.Ray {
	w, h := vp.Width, vp.Height
	if w <= 0 || h <= 0 {
		return rl.Ray{Position: camera.Position, Direction: ViewDirection(camera)}
	}
	ndcX := 2*(pos.X-vp.X)/w - 1
	ndcY := 1 - 2*(pos.Y-vp.Y)/h

	forward := ViewDirection(camera)
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, camera.Up))
	up := rl.Vector3CrossProduct(right, forward)

	tanHalf := math32.Tan(camera.Fovy * rl.Deg2rad / 2)
	dir := rl.Vector3Add(forward, rl.Vector3Scale(right, ndcX*tanHalf*w/h))
	dir = rl.Vector3Add(dir, rl.Vector3Scale(up, ndcY*tanHalf))
	return rl.Ray{Position: camera.Position, Direction: rl.Vector3Normalize(dir)}
}

// PlacementPlane faces the camera and sits just in front of the anchor sphere's
// surface. Without an anchor it sits one unit in front of the camera.
func PlacementPlane(camera rl.Camera3D, a *anchor.Sphere) Plane {
	dir := ViewDirection(camera)
	point := rl.Vector3Add(camera.Position, rl.Vector3Scale(dir, defaultPlaneDistance))
	if a != nil && a.Radius > 0 && !math32.IsInf(a.Radius, 0) {
		point = rl.Vector3Subtract(a.Center, rl.Vector3Scale(dir, a.Radius*(1+planeEpsilon)))
	}
	return Plane{Point: point, Normal: dir}
}

// ProjectPointer maps a window pixel onto the plane. When the ray misses, the point a
// short distance along the ray is used instead.
func ProjectPointer(camera rl.Camera3D, pos rl.Vector2, vp Viewport, plane Plane) rl.Vector3 {
	ray := ScreenRay(camera, pos, vp)
	if hit, ok := plane.IntersectRay(ray); ok {
		return hit
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, fallbackDistance))
}
