package focus

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func button(id string, top, left float64) Element {
	return Element{ID: id, Tag: "button", Rect: Rect{Top: top, Left: left, Width: 80, Height: 80}}
}

func intPtr(v int) *int { return &v }

func TestIndex_GridScenario(t *testing.T) {
	scope := Rect{Top: 50, Left: 20}
	ix := NewIndex(scope, []Element{
		button("a", 50, 20),  // row 0, col 0
		button("b", 60, 130), // row 0, col 1
		button("c", 160, 25), // row 1, col 0
	})

	next, ok := ix.Next("a", Right)
	require.True(t, ok)
	assert.Equal(t, "b", next)

	next, ok = ix.Next("b", Down)
	require.True(t, ok)
	assert.Equal(t, "c", next)
}

func TestIndex_Snapping(t *testing.T) {
	ix := NewIndex(Rect{Top: 100, Left: 100}, []Element{
		button("x", 199, 299),
		button("y", 200, 300),
	})

	assert.Equal(t, []Cell{{ID: "x", Row: 0, Col: 1}, {ID: "y", Row: 1, Col: 2}}, ix.cells)
}

func TestIndex_Directions(t *testing.T) {
	// Row 0: a b c
	// Row 1: d   e
	// Row 2:   f
	ix := NewIndex(Rect{}, []Element{
		button("a", 0, 0),
		button("b", 0, 100),
		button("c", 0, 200),
		button("d", 100, 0),
		button("e", 100, 200),
		button("f", 200, 100),
	})

	tests := []struct {
		from string
		dir  Direction
		want string
		ok   bool
	}{
		{"a", Up, "", false},
		{"a", Left, "", false},
		{"c", Right, "e", true}, // wraps to next row, nearest is e
		{"d", Left, "a", true},  // wraps to previous row
		{"d", Right, "e", true},
		{"e", Down, "f", true},
		{"f", Up, "b", true}, // b, d and e tie at distance 2, b enumerates first
		{"f", Right, "", false},
		{"b", Down, "d", true}, // d, e tie at distance 2
		{"e", Left, "d", true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"-"+string(tt.dir), func(t *testing.T) {
			got, ok := ix.Next(tt.from, tt.dir)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndex_NothingFocusedPicksFirst(t *testing.T) {
	ix := NewIndex(Rect{}, []Element{button("first", 300, 300), button("second", 0, 0)})

	got, ok := ix.Next("", Down)
	require.True(t, ok)
	assert.Equal(t, "first", got)

	_, ok = NewIndex(Rect{}, nil).Next("", Down)
	assert.False(t, ok)
}

func TestElement_Focusable(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want bool
	}{
		{"button", Element{Tag: "button"}, true},
		{"input", Element{Tag: "INPUT"}, true},
		{"select", Element{Tag: "select"}, true},
		{"textarea", Element{Tag: "textarea"}, true},
		{"link", Element{Tag: "a", Href: "/hub"}, true},
		{"anchor without href", Element{Tag: "a"}, false},
		{"role button", Element{Tag: "div", Role: "button"}, true},
		{"tabindex 0", Element{Tag: "div", TabIndex: intPtr(0)}, true},
		{"tabindex -1", Element{Tag: "div", TabIndex: intPtr(-1)}, false},
		{"button tabindex -1", Element{Tag: "button", TabIndex: intPtr(-1)}, false},
		{"plain div", Element{Tag: "div"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.el.Focusable())
		})
	}
}

func TestIndex_GeneratedIDs(t *testing.T) {
	ix := NewIndex(Rect{}, []Element{
		{Tag: "div"},
		{Tag: "button"},
	})
	id, ok := ix.First()
	require.True(t, ok)
	assert.Equal(t, "focusable-1", id)
}

func TestKeyDirection(t *testing.T) {
	d, ok := KeyDirection("ArrowLeft")
	assert.True(t, ok)
	assert.Equal(t, Left, d)

	for _, key := range []string{"Enter", " ", "Tab", "a"} {
		_, ok := KeyDirection(key)
		assert.False(t, ok, key)
	}
}

func TestNavigator(t *testing.T) {
	n := NewNavigator(zerolog.Nop())
	scope := []Element{button("a", 0, 0), button("b", 0, 100), button("c", 100, 0)}

	focused, handled := n.Handle(Rect{}, scope, "", "ArrowRight")
	assert.False(t, handled, "disabled navigator consumed key")
	assert.Equal(t, "", focused)

	n.SetEnabled(true)

	focused, handled = n.Handle(Rect{}, scope, "", "ArrowDown")
	assert.True(t, handled)
	assert.Equal(t, "a", focused)

	focused, _ = n.Handle(Rect{}, scope, "a", "ArrowRight")
	assert.Equal(t, "b", focused)

	focused, _ = n.Handle(Rect{}, scope, "b", "ArrowDown")
	assert.Equal(t, "c", focused)

	focused, handled = n.Handle(Rect{}, scope, "c", "Enter")
	assert.False(t, handled)
	assert.Equal(t, "c", focused)

	// No candidate leaves focus where it is.
	focused, handled = n.Handle(Rect{}, scope, "c", "ArrowDown")
	assert.True(t, handled)
	assert.Equal(t, "c", focused)
	assert.Equal(t, "c", n.Focused())
}

func TestNavigator_CallerFocusWins(t *testing.T) {
	n := NewNavigator(zerolog.Nop())
	n.SetEnabled(true)
	scope := []Element{button("a", 0, 0), button("b", 0, 100)}

	focused, _ := n.Handle(Rect{}, scope, "a", "ArrowRight")
	require.Equal(t, "b", focused)

	// Nothing focused on the caller's side starts again at the first element.
	focused, handled := n.Handle(Rect{}, scope, "", "ArrowRight")
	assert.True(t, handled)
	assert.Equal(t, "a", focused)

	// A focused id that left the layout counts as nothing focused.
	focused, _ = n.Handle(Rect{}, scope, "gone", "ArrowLeft")
	assert.Equal(t, "a", focused)

	focused, handled = n.Handle(Rect{}, nil, "b", "ArrowDown")
	assert.True(t, handled)
	assert.Equal(t, "", focused)
}
