// Package solver finds shortest entrance-to-exit paths with breadth-first search and A*.
package solver

import (
	"errors"

	"github.com/lixenwraith/mazega/maze"
)

// Unreachable is the PathLength reported when the exit cannot be reached
const Unreachable = -1

// Algorithm names as reported in Result
const (
	AlgorithmBFS   = "bfs"
	AlgorithmAStar = "astar"
)

// ErrUnreachableExit accompanies a Result whose PathLength is Unreachable.
// The Result is still valid: its overlay shows every cell the search visited.
var ErrUnreachableExit = errors.New("exit unreachable from entrance")

// Result is the outcome of one search
type Result struct {
	Algorithm string
	// Overlay marks expanded cells Visited and the reconstructed path OnPath,
	// Start and Exit included
	Overlay    *maze.Overlay
	PathLength int
	Visited    int
	// Path runs from Start to Exit, nil when unreachable
	Path []maze.Point
}

// Reachable reports whether a path was found
func (r Result) Reachable() bool {
	return r.PathLength != Unreachable
}

// Solve dispatches by algorithm name
func Solve(algorithm string, g *maze.Grid) (Result, error) {
	switch algorithm {
	case AlgorithmBFS:
		return BFS(g)
	case AlgorithmAStar:
		return AStar(g)
	default:
		return Result{}, &UnknownAlgorithmError{Name: algorithm}
	}
}

// UnknownAlgorithmError reports a name Solve does not recognise
type UnknownAlgorithmError struct {
	Name string
}

func (e *UnknownAlgorithmError) Error() string {
	return "unknown algorithm: " + e.Name
}

// Algorithms lists the names accepted by Solve
func Algorithms() []string {
	return []string{AlgorithmBFS, AlgorithmAStar}
}

// costTable is a per-cell integer table initialised to Unreachable
type costTable [][]int

func newCostTable(w, h int) costTable {
	t := make(costTable, h)
	for y := range t {
		t[y] = make([]int, w)
		for x := range t[y] {
			t[y][x] = Unreachable
		}
	}
	return t
}

func (t costTable) at(p maze.Point) int { return t[p.Y][p.X] }
func (t costTable) set(p maze.Point, v int) { t[p.Y][p.X] = v }

// reconstruct walks back from the exit, each step taking the first neighbour in
// fixed order that was expanded and has a strictly smaller cost. Cells are marked
// OnPath and the path is returned in Start to Exit order.
func reconstruct(g *maze.Grid, overlay *maze.Overlay, cost costTable) []maze.Point {
	start := g.Start()
	cur := g.Exit()
	path := []maze.Point{cur}

	for cur != start {
		next, ok := cur, false
		for _, d := range maze.Neighborhood {
			n := cur.Add(d)
			if !overlay.InBounds(n) || overlay.At(n) != maze.Visited {
				continue
			}
			if c := cost.at(n); c != Unreachable && c < cost.at(cur) {
				next, ok = n, true
				break
			}
		}
		if !ok {
			// Cannot happen on a consistent cost table
			break
		}
		overlay.Set(cur, maze.OnPath)
		cur = next
		path = append(path, cur)
	}
	overlay.Set(cur, maze.OnPath)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
