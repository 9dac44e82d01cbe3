// Package focus implements directional (D-pad) navigation over an
// arbitrary layout of interactive elements.
//
// Elements are snapped to a coarse grid of CellSize units relative to the
// scope origin, so controls that are roughly aligned on screen share a row
// or column. Moves pick the nearest candidate by Manhattan distance on that
// grid, breaking ties by enumeration order.
package focus

import (
	"fmt"
	"math"
	"strings"
)

// CellSize is the grid snap in layout units.
const CellSize = 100

// Direction is a navigation direction.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// ParseDirection accepts "up", "down", "left" or "right".
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(s)); d {
	case Up, Down, Left, Right:
		return d, nil
	default:
		return "", fmt.Errorf("focus: unknown direction %q", s)
	}
}

// KeyDirection maps arrow key names to directions. Activation keys such as
// Enter and Space are not navigation keys and report false.
func KeyDirection(key string) (Direction, bool) {
	switch key {
	case "ArrowUp":
		return Up, true
	case "ArrowDown":
		return Down, true
	case "ArrowLeft":
		return Left, true
	case "ArrowRight":
		return Right, true
	default:
		return "", false
	}
}

// Rect is an element's rendered box.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Element is an on-screen control as reported by the UI.
type Element struct {
	ID       string `json:"id"`
	Tag      string `json:"tag"`
	Role     string `json:"role,omitempty"`
	Href     string `json:"href,omitempty"`
	TabIndex *int   `json:"tabIndex,omitempty"`
	Rect     Rect   `json:"rect"`
}

// Focusable reports whether e can take directional focus: buttons, links
// with a target, form controls and anything with a tab index, unless the
// tab index is -1.
func (e Element) Focusable() bool {
	if e.TabIndex != nil && *e.TabIndex == -1 {
		return false
	}
	switch strings.ToLower(e.Tag) {
	case "button", "input", "select", "textarea":
		return true
	case "a":
		if e.Href != "" {
			return true
		}
	}
	return e.Role == "button" || e.TabIndex != nil
}

// Cell is an element's grid position.
type Cell struct {
	ID  string `json:"id"`
	Row int    `json:"row"`
	Col int    `json:"col"`
}

// Index is the grid snapshot of one scope.
type Index struct {
	cells []Cell
	byID  map[string]int
}

// NewIndex snaps the focusable elements to the grid of scope. Elements
// without an id are named focusable-<n> after their enumeration position.
func NewIndex(scope Rect, elements []Element) *Index {
	ix := &Index{byID: make(map[string]int)}
	for n, e := range elements {
		if !e.Focusable() {
			continue
		}
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("focusable-%d", n)
		}
		if _, dup := ix.byID[id]; dup {
			continue
		}
		ix.byID[id] = len(ix.cells)
		ix.cells = append(ix.cells, Cell{
			ID:  id,
			Row: snap(e.Rect.Top - scope.Top),
			Col: snap(e.Rect.Left - scope.Left),
		})
	}
	return ix
}

// Len returns the number of focusable elements.
func (ix *Index) Len() int {
	return len(ix.cells)
}

// First returns the first focusable element.
func (ix *Index) First() (string, bool) {
	if len(ix.cells) == 0 {
		return "", false
	}
	return ix.cells[0].ID, true
}

// Next returns the element focus should move to from current. When current
// is not in the index the first element is returned. It reports false when
// there is nowhere to go.
func (ix *Index) Next(current string, dir Direction) (string, bool) {
	pos, ok := ix.byID[current]
	if !ok {
		return ix.First()
	}
	from := ix.cells[pos]

	var candidates []Cell
	switch dir {
	case Up:
		candidates = ix.filter(func(c Cell) bool { return c.Row < from.Row })
	case Down:
		candidates = ix.filter(func(c Cell) bool { return c.Row > from.Row })
	case Left:
		candidates = ix.filter(func(c Cell) bool { return c.Row == from.Row && c.Col < from.Col })
		if len(candidates) == 0 {
			candidates = ix.filter(func(c Cell) bool { return c.Row < from.Row })
		}
	case Right:
		candidates = ix.filter(func(c Cell) bool { return c.Row == from.Row && c.Col > from.Col })
		if len(candidates) == 0 {
			candidates = ix.filter(func(c Cell) bool { return c.Row > from.Row })
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	best, bestDist := candidates[0], distance(from, candidates[0])
	for _, c := range candidates[1:] {
		if d := distance(from, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best.ID, true
}

func (ix *Index) filter(keep func(Cell) bool) []Cell {
	var out []Cell
	for _, c := range ix.cells {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func snap(offset float64) int {
	return int(math.Floor(offset / CellSize))
}

func distance(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
