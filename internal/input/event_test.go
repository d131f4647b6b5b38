package input

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	a := Pointer{ID: 1, Pos: rl.NewVector2(10, 10)}
	aMoved := Pointer{ID: 1, Pos: rl.NewVector2(20, 10)}
	b := Pointer{ID: 2, Pos: rl.NewVector2(50, 50)}

	tests := []struct {
		name string
		prev []Pointer
		cur  []Pointer
		want []Event
	}{
		{"idle", nil, nil, nil},
		{"press", nil, []Pointer{a}, []Event{{Kind: PointerDown, ID: 1, Pos: a.Pos, Time: 2}}},
		{"hold still", []Pointer{a}, []Pointer{a}, nil},
		{"move", []Pointer{a}, []Pointer{aMoved}, []Event{{Kind: PointerMove, ID: 1, Pos: aMoved.Pos, Time: 2}}},
		{"release", []Pointer{a}, nil, []Event{{Kind: PointerUp, ID: 1, Pos: a.Pos, Time: 2}}},
		{"second finger", []Pointer{a}, []Pointer{aMoved, b}, []Event{
			{Kind: PointerMove, ID: 1, Pos: aMoved.Pos, Time: 2},
			{Kind: PointerDown, ID: 2, Pos: b.Pos, Time: 2},
		}},
		{"swap fingers", []Pointer{a}, []Pointer{b}, []Event{
			{Kind: PointerUp, ID: 1, Pos: a.Pos, Time: 2},
			{Kind: PointerDown, ID: 2, Pos: b.Pos, Time: 2},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.prev, tt.cur, 2))
		})
	}
}

func TestCancel(t *testing.T) {
	evs := Cancel([]Pointer{{ID: 3}, {ID: 4}}, 1.5)
	assert.Len(t, evs, 2)
	for _, e := range evs {
		assert.Equal(t, PointerCancel, e.Kind)
		assert.Equal(t, 1.5, e.Time)
	}
	assert.Equal(t, "cancel", PointerCancel.String())
}
