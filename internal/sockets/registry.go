// Package sockets indexes the attachment nodes ("sockets") found inside loaded objects.
package sockets

import (
	"strings"

	"turntable/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Prefix marks a node name as a socket.
const Prefix = "socket_"

// Record is one discovered socket. Node points into the owning object's graph and
// lives as long as that object, not as long as the record.
type Record struct {
	ObjectID string
	SocketID string
	Node     *scene.Node
}

// Registry holds the sockets of every registered object in registration order.
type Registry struct {
	records []Record
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// IsSocket reports whether a node name qualifies as a socket.
func IsSocket(name string) bool {
	return name != "" && strings.HasPrefix(name, Prefix)
}

// Collect registers the sockets under root for objectID, replacing any records the
// object had before. Returns the number of sockets found.
func (r *Registry) Collect(root *scene.Node, objectID string) int {
	r.Remove(objectID)
	n := 0
	root.Traverse(func(node *scene.Node) {
		if !IsSocket(node.Name) {
			return
		}
		r.records = append(r.records, Record{ObjectID: objectID, SocketID: node.Name, Node: node})
		n++
	})
	return n
}

// Remove drops every record of objectID and returns how many were removed.
func (r *Registry) Remove(objectID string) int {
	kept := r.records[:0]
	removed := 0
	for _, rec := range r.records {
		if rec.ObjectID == objectID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	for i := len(kept); i < len(r.records); i++ {
		r.records[i] = Record{}
	}
	r.records = kept
	return removed
}

// All returns a copy of every record.
func (r *Registry) All() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// ForObject returns the records of one object.
func (r *Registry) ForObject(objectID string) []Record {
	var out []Record
	for _, rec := range r.records {
		if rec.ObjectID == objectID {
			out = append(out, rec)
		}
	}
	return out
}

// Nearest returns the socket whose world position is closest to point, skipping
// sockets of the exclude object. ok is false when no candidate exists.
func (r *Registry) Nearest(point rl.Vector3, exclude string) (rec Record, dist float32, ok bool) {
	for _, c := range r.records {
		if c.ObjectID == exclude || c.Node == nil {
			continue
		}
		d := rl.Vector3Distance(point, c.Node.WorldPosition())
		if !ok || d < dist {
			rec, dist, ok = c, d, true
		}
	}
	return rec, dist, ok
}
