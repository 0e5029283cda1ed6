package solver

import "github.com/lixenwraith/mazega/maze"

// A* cell states
const (
	unseen uint8 = iota
	open
	closed
)

// AStar searches from the entrance with F = G + H, H being the grid's squared
// Euclidean heuristic. The search stops as soon as the exit is popped. Closed
// cells are never reopened, so on braided mazes the path may be longer than
// the BFS optimum.
func AStar(g *maze.Grid) (Result, error) {
	overlay := g.Overlay()
	cost := newCostTable(g.Width(), g.Height())
	state := make([][]uint8, g.Height())
	for y := range state {
		state[y] = make([]uint8, g.Width())
	}
	res := Result{Algorithm: AlgorithmAStar, Overlay: overlay, PathLength: Unreachable}

	start, exit := g.Start(), g.Exit()
	queue := newOpenSet(g.Width(), g.Height())
	queue.push(node{p: start, g: 0, h: g.Heuristic(start)})
	state[start.Y][start.X] = open

	found := false
	for queue.Len() > 0 {
		cur := queue.pop()
		state[cur.p.Y][cur.p.X] = closed
		cost.set(cur.p, cur.g)
		overlay.Set(cur.p, maze.Visited)
		res.Visited++

		if cur.p == exit {
			found = true
			break
		}

		for _, d := range maze.Neighborhood {
			n := cur.p.Add(d)
			if !g.Passable(n) {
				continue
			}
			ng := cur.g + 1
			switch state[n.Y][n.X] {
			case unseen:
				queue.push(node{p: n, g: ng, h: g.Heuristic(n)})
				state[n.Y][n.X] = open
			case open:
				if ng < queue.gOf(n) {
					queue.decrease(n, ng)
				}
			}
		}
	}

	if !found {
		return res, ErrUnreachableExit
	}

	res.PathLength = cost.at(exit)
	res.Path = reconstruct(g, overlay, cost)
	return res, nil
}
