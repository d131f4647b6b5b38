// Package assets builds catalog entries into scene nodes and loads them off the main
// thread.
package assets

import (
	"fmt"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/anchor"
	"turntable/internal/config"
	"turntable/internal/primitives"
	"turntable/internal/scene"
)

// Asset is a loaded catalog entry.
type Asset struct {
	ID    string
	Name  string
	Entry anchor.Entry
	Node  *scene.Node
	Meta  anchor.AccessoryMeta
}

// Build turns a catalog entry into a node graph: one child per part and one empty
// child per marker. Part rotations are given in degrees; a zero scale component
// means 1.
func Build(e config.CatalogEntry) (*scene.Node, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("assets: entry without id")
	}
	root := scene.NewNode(e.ID)
	for i, p := range e.Parts {
		if !primitives.Known(p.Mesh) {
			return nil, fmt.Errorf("assets: %s part %d: unknown mesh %q", e.ID, i, p.Mesh)
		}
		color := rl.LightGray
		if p.Color != "" {
			c, err := ParseColor(p.Color)
			if err != nil {
				return nil, fmt.Errorf("assets: %s part %d: %w", e.ID, i, err)
			}
			color = c
		}
		n := scene.NewNode(fmt.Sprintf("%s_part%d", e.ID, i))
		n.Position = vec(p.Position)
		n.Rotation = rl.Vector3Scale(vec(p.Rotation), rl.Deg2rad)
		n.Scale = scaleVec(p.Scale)
		n.Part = &scene.Part{Mesh: p.Mesh, Color: color}
		root.Add(n)
	}
	for _, m := range e.Markers {
		n := scene.NewNode(m.Name)
		n.Position = vec(m.Position)
		root.Add(n)
	}
	return root, nil
}

// NewAsset builds an entry and snapshots its metadata.
func NewAsset(e config.CatalogEntry) (*Asset, error) {
	node, err := Build(e)
	if err != nil {
		return nil, err
	}
	entry := anchor.Entry{ID: e.ID, Kind: anchor.ParseKind(e.Kind), Size: e.Size}
	return &Asset{
		ID:    e.ID,
		Name:  e.Name,
		Entry: entry,
		Node:  node,
		Meta:  anchor.MetaFor(e.Name, e.Size, node),
	}, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (rl.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return rl.Color{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func vec(a [3]float32) rl.Vector3 {
	return rl.NewVector3(a[0], a[1], a[2])
}

func scaleVec(a [3]float32) rl.Vector3 {
	for i := range a {
		if a[i] == 0 {
			a[i] = 1
		}
	}
	return vec(a)
}
