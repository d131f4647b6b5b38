// Package anchor computes relative scale factors between independently authored assets
// and the bounding-sphere anchor used to place dragged accessories.
package anchor

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/scene"
)

// Kind classifies a catalog entry.
type Kind int

const (
	Base Kind = iota
	Accessory
)

// ParseKind maps the catalog strings "base" and "accessory". Anything else is Base,
// which never receives a scale override.
func ParseKind(s string) Kind {
	if s == "accessory" {
		return Accessory
	}
	return Base
}

// Entry is the part of a catalog entry the resolver needs. Size is the declared
// relative size unit; nil means undeclared.
type Entry struct {
	ID   string
	Kind Kind
	Size *float32
}

// Sphere is a bounding sphere in world space.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// AccessoryMeta is the per-asset snapshot taken once when an asset finishes loading.
type AccessoryMeta struct {
	Name           string
	Size           *float32
	BoundingRadius float32
}

func positiveFinite(v float32) bool {
	return v > 0 && !math32.IsInf(v, 0) && !math32.IsNaN(v)
}

// RelativeScale returns the uniform scale to apply to an accessory so its declared size
// relates to the base the same way in the scene. The declared ratio size/baseSize is
// corrected by baseRadius/accessoryRadius for assets modelled in different units; that
// correction is 1 when either radius is unusable.
//
// ok is false when no override applies: the entry is not an accessory, its size is
// missing or not finite positive, or the result is not finite positive. Callers leave
// the transform untouched in that case.
func RelativeScale(e Entry, baseSize, baseRadius, accessoryRadius float32) (scale float32, ok bool) {
	if e.Kind != Accessory || e.Size == nil || !positiveFinite(*e.Size) {
		return 0, false
	}
	geometry := float32(1)
	if positiveFinite(baseRadius) && positiveFinite(accessoryRadius) {
		geometry = baseRadius / accessoryRadius
	}
	scale = *e.Size / baseSize * geometry
	if !positiveFinite(scale) {
		return 0, false
	}
	return scale, true
}

// ComputeBaseAnchor returns the bounding sphere of the node's whole subtree, or nil when
// the subtree has no geometry.
func ComputeBaseAnchor(node *scene.Node) *Sphere {
	if node == nil {
		return nil
	}
	box, ok := node.WorldBounds()
	if !ok {
		return nil
	}
	return FromBox(box)
}

// FromBox returns the sphere through the corners of box.
func FromBox(box rl.BoundingBox) *Sphere {
	center := rl.Vector3Lerp(box.Min, box.Max, 0.5)
	return &Sphere{
		Center: center,
		Radius: rl.Vector3Distance(box.Min, box.Max) * 0.5,
	}
}

// MetaFor snapshots an asset's declared size and geometric radius. A node without
// geometry gets radius 0, which RelativeScale treats as unknown.
func MetaFor(name string, size *float32, node *scene.Node) AccessoryMeta {
	m := AccessoryMeta{Name: name}
	if size != nil {
		v := *size
		m.Size = &v
	}
	if s := ComputeBaseAnchor(node); s != nil {
		m.BoundingRadius = s.Radius
	}
	return m
}
