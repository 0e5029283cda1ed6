/*
Package maze models a rectangular walled maze with a single entrance and a single exit.

A Grid is built once from a parsed Layout and is read-only afterwards. Searches and chromosome
decoders never write to it: they take a private Overlay copy and mark visited or path cells there.

The package also reads and writes the three-column maze file format, renders grids and overlays
as text, and generates random mazes for tests and tooling.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedMaze is the sentinel wrapped by every MalformedMazeError
var ErrMalformedMaze = errors.New("malformed maze")

// MalformedMazeError reports a layout that cannot produce a Grid
type MalformedMazeError struct {
	Reason string
	// Line is the 1-based source line, 0 when not tied to a line
	Line int
}

func (e *MalformedMazeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed maze: line %d: %s", e.Line, e.Reason)
	}
	return "malformed maze: " + e.Reason
}

func (e *MalformedMazeError) Unwrap() error {
	return ErrMalformedMaze
}

func malformed(line int, format string, args ...any) error {
	return &MalformedMazeError{Reason: fmt.Sprintf(format, args...), Line: line}
}

// Grid is the immutable maze model shared by solvers and fitness strategies
type Grid struct {
	width, height int
	cells         [][]Cell
	start, exit   Point
	heuristic     [][]int
	blanks        []Point
	walls         int
	extraGaps     []Point
}

// Build validates a layout, locates the entrance and exit, and precomputes
// the heuristic table and the blank list.
//
// The border is scanned top edge, then both sides row by row (left before right),
// then bottom edge. The first open border cell is the entrance and the second the
// exit; any further gaps are kept in ExtraGaps and otherwise ignored.
func Build(layout Layout) (*Grid, error) {
	height := len(layout)
	if height == 0 {
		return nil, malformed(0, "layout has no rows")
	}
	width := len(layout[0])
	if width == 0 {
		return nil, malformed(1, "layout has no columns")
	}
	for y, row := range layout {
		if len(row) != width {
			return nil, malformed(y+1, "row has %d cells, expected %d", len(row), width)
		}
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([][]Cell, height),
	}
	for y, row := range layout {
		g.cells[y] = make([]Cell, width)
		for x, isWall := range row {
			if isWall {
				g.cells[y][x] = Wall
				g.walls++
			}
		}
	}

	if err := g.markEntrances(); err != nil {
		return nil, err
	}
	g.precomputeHeuristic()
	g.precomputeBlanks()

	return g, nil
}

// borderScan returns border coordinates in scan order, each at most once
func (g *Grid) borderScan() []Point {
	seen := make(map[Point]struct{}, 2*(g.width+g.height))
	order := make([]Point, 0, 2*(g.width+g.height))
	add := func(p Point) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		order = append(order, p)
	}

	for x := 0; x < g.width; x++ {
		add(Point{x, 0})
	}
	for y := 0; y < g.height; y++ {
		add(Point{0, y})
		add(Point{g.width - 1, y})
	}
	for x := 0; x < g.width; x++ {
		add(Point{x, g.height - 1})
	}
	return order
}

func (g *Grid) markEntrances() error {
	var gaps []Point
	for _, p := range g.borderScan() {
		if g.cells[p.Y][p.X] == Empty {
			gaps = append(gaps, p)
		}
	}

	switch len(gaps) {
	case 0:
		return malformed(0, "no entrance found on the border")
	case 1:
		return malformed(0, "no exit found on the border")
	}

	g.start, g.exit = gaps[0], gaps[1]
	g.extraGaps = gaps[2:]
	g.cells[g.start.Y][g.start.X] = Start
	g.cells[g.exit.Y][g.exit.X] = Exit
	return nil
}

func (g *Grid) precomputeHeuristic() {
	g.heuristic = make([][]int, g.height)
	for y := 0; y < g.height; y++ {
		g.heuristic[y] = make([]int, g.width)
		dy := g.exit.Y - y
		for x := 0; x < g.width; x++ {
			dx := g.exit.X - x
			g.heuristic[y][x] = dx*dx + dy*dy
		}
	}
}

// precomputeBlanks records Empty cells in row-major order; this order is the
// gene-to-cell mapping of the occupancy encoding.
func (g *Grid) precomputeBlanks() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] == Empty {
				g.blanks = append(g.blanks, Point{x, y})
			}
		}
	}
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Start() Point { return g.start }
func (g *Grid) Exit() Point { return g.exit }

// WallCount is the number of Wall cells
func (g *Grid) WallCount() int { return g.walls }

// BlankCount is the length of the blank list
func (g *Grid) BlankCount() int { return len(g.blanks) }

// Blanks returns a copy of the blank list
func (g *Grid) Blanks() []Point {
	out := make([]Point, len(g.blanks))
	copy(out, g.blanks)
	return out
}

// Blank returns the i-th blank cell without copying the list
func (g *Grid) Blank(i int) Point { return g.blanks[i] }

// ExtraGaps returns border gaps beyond the entrance and exit
func (g *Grid) ExtraGaps() []Point {
	out := make([]Point, len(g.extraGaps))
	copy(out, g.extraGaps)
	return out
}

// InBounds reports whether p lies inside the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// At returns the state at p; p must be in bounds
func (g *Grid) At(p Point) Cell { return g.cells[p.Y][p.X] }

// Passable reports whether p is in bounds and not a wall
func (g *Grid) Passable(p Point) bool {
	return g.InBounds(p) && g.cells[p.Y][p.X] != Wall
}

// Heuristic is the squared Euclidean distance from p to the exit
func (g *Grid) Heuristic(p Point) int { return g.heuristic[p.Y][p.X] }

// Overlay returns a deep copy of the cell states for marking
func (g *Grid) Overlay() *Overlay {
	cells := make([][]Cell, g.height)
	for y := range g.cells {
		cells[y] = make([]Cell, g.width)
		copy(cells[y], g.cells[y])
	}
	return &Overlay{width: g.width, height: g.height, cells: cells}
}

func (g *Grid) String() string {
	var b strings.Builder
	writeCells(&b, g.cells)
	return b.String()
}
