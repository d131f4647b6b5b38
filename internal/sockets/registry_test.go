package sockets

import (
	"testing"

	"turntable/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func object(names ...string) *scene.Node {
	root := scene.NewNode("root")
	for _, n := range names {
		root.Add(scene.NewNode(n))
	}
	return root
}

func socketIDs(recs []Record) []string {
	var out []string
	for _, r := range recs {
		out = append(out, r.SocketID)
	}
	return out
}

func TestIsSocket(t *testing.T) {
	assert.True(t, IsSocket("socket_top"))
	assert.True(t, IsSocket("socket_"))
	assert.False(t, IsSocket(""))
	assert.False(t, IsSocket("Socket_top"))
	assert.False(t, IsSocket("top_socket_"))
}

func TestCollectFindsNestedSockets(t *testing.T) {
	root := object("socket_a", "leg")
	root.Children[1].Add(scene.NewNode("socket_foot"))

	r := New()
	assert.Equal(t, 2, r.Collect(root, "table"))
	recs := r.All()
	assert.Equal(t, []string{"socket_a", "socket_foot"}, socketIDs(recs))
	assert.Same(t, root.Children[0], recs[0].Node)
	assert.Equal(t, "table", recs[1].ObjectID)
}

func TestCollectReplacesPriorRecords(t *testing.T) {
	r := New()
	r.Collect(object("socket_x"), "lamp")
	r.Collect(object("socket_a", "socket_b", "socket_c"), "table")
	r.Collect(object("socket_d", "socket_e"), "table")

	assert.Equal(t, []string{"socket_d", "socket_e"}, socketIDs(r.ForObject("table")))
	assert.Equal(t, []string{"socket_x", "socket_d", "socket_e"}, socketIDs(r.All()))
	assert.Len(t, r.All(), 3)
}

func TestCollectEmptyClearsObject(t *testing.T) {
	r := New()
	r.Collect(object("socket_a"), "vase")
	assert.Equal(t, 0, r.Collect(object("body"), "vase"))
	assert.Empty(t, r.All())
}

func TestAllReturnsCopy(t *testing.T) {
	r := New()
	r.Collect(object("socket_a"), "vase")
	recs := r.All()
	recs[0].SocketID = "changed"
	assert.Equal(t, "socket_a", r.All()[0].SocketID)
}

func TestRemove(t *testing.T) {
	r := New()
	r.Collect(object("socket_a", "socket_b"), "one")
	r.Collect(object("socket_c"), "two")
	assert.Equal(t, 2, r.Remove("one"))
	assert.Equal(t, 0, r.Remove("one"))
	assert.Equal(t, []string{"socket_c"}, socketIDs(r.All()))
}

func TestNearest(t *testing.T) {
	table := object("socket_left", "socket_right")
	table.Children[0].Position = rl.NewVector3(-1, 0, 0)
	table.Children[1].Position = rl.NewVector3(1, 0, 0)
	lamp := object("socket_base")

	r := New()
	r.Collect(table, "table")
	r.Collect(lamp, "lamp")

	rec, dist, ok := r.Nearest(rl.NewVector3(0.8, 0.1, 0), "lamp")
	require.True(t, ok)
	assert.Equal(t, "socket_right", rec.SocketID)
	assert.InDelta(t, 0.2236, dist, 1e-3)

	_, _, ok = New().Nearest(rl.Vector3{}, "")
	assert.False(t, ok)
}
