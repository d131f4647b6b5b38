package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"
)

// Part is the drawable geometry attached to a node: one unit-sized primitive mesh
// (cube, sphere, cylinder, cone) centered on the node origin, tinted with Color.
// Local bounds are the unit box [-0.5, 0.5] on every axis before the node transform.
type Part struct {
	Mesh  string
	Color rl.Color
}

// Node is one element of an object's node graph. Rotation is Euler XYZ in radians
// (X = pitch, Y = yaw). Nodes without a Part are groups or markers (e.g. sockets).
type Node struct {
	Name        string
	Position    rl.Vector3
	Rotation    rl.Vector3
	Scale       rl.Vector3
	Visible     bool
	RenderOrder int
	Part        *Part
	Children    []*Node

	parent *Node
}

// NewNode returns a visible node with unit scale at the origin.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   rl.Vector3One(),
		Visible: true,
	}
}

// Add appends child under n and returns child for chaining.
func (n *Node) Add(child *Node) *Node {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

// RemoveChild detaches child from n. Returns false if child was not a direct child.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the node's parent or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Traverse calls fn for n and every descendant, depth first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// LocalMatrix is scale, then rotation, then translation (raylib multiply order).
func (n *Node) LocalMatrix() rl.Matrix {
	sx, sy, sz := n.Scale.X, n.Scale.Y, n.Scale.Z
	scaleM := rl.MatrixScale(sx, sy, sz)
	rotM := rl.MatrixRotateXYZ(n.Rotation)
	transM := rl.MatrixTranslate(n.Position.X, n.Position.Y, n.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM)
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() rl.Matrix {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = rl.MatrixMultiply(m, p.LocalMatrix())
	}
	return m
}

// WorldPosition is the node origin in world space.
func (n *Node) WorldPosition() rl.Vector3 {
	return rl.Vector3Transform(rl.Vector3Zero(), n.WorldMatrix())
}

// WorldBounds returns the axis-aligned box enclosing every Part in the subtree, in world
// space. ok is false when the subtree has no geometry.
func (n *Node) WorldBounds() (box rl.BoundingBox, ok bool) {
	n.walkWorld(n.parentWorld(), func(node *Node, world rl.Matrix) {
		if node.Part == nil {
			return
		}
		for _, corner := range unitCorners {
			p := rl.Vector3Transform(corner, world)
			if !ok {
				box = rl.NewBoundingBox(p, p)
				ok = true
				continue
			}
			box.Min = rl.Vector3Min(box.Min, p)
			box.Max = rl.Vector3Max(box.Max, p)
		}
	})
	return box, ok
}

// Clone returns a deep copy of the subtree. The copy has no parent and shares no
// transforms, parts or children with n.
func (n *Node) Clone() (*Node, error) {
	out := &Node{}
	if err := copier.CopyWithOption(out, n, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone %q: %w", n.Name, err)
	}
	out.relink(nil)
	return out, nil
}

// relink restores parent back-references, which copier skips as unexported.
func (n *Node) relink(parent *Node) {
	n.parent = parent
	for _, c := range n.Children {
		c.relink(n)
	}
}

func (n *Node) parentWorld() rl.Matrix {
	if n.parent == nil {
		return rl.MatrixIdentity()
	}
	return n.parent.WorldMatrix()
}

// walkWorld visits the subtree with each node's accumulated world matrix.
func (n *Node) walkWorld(parent rl.Matrix, fn func(*Node, rl.Matrix)) {
	world := rl.MatrixMultiply(n.LocalMatrix(), parent)
	fn(n, world)
	for _, c := range n.Children {
		c.walkWorld(world, fn)
	}
}

var unitCorners = [8]rl.Vector3{
	{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
	{X: -0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5},
}
