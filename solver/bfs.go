package solver

import "github.com/lixenwraith/mazega/maze"

// BFS runs breadth-first search from the entrance over the whole reachable
// component. Visited counts dequeued cells.
func BFS(g *maze.Grid) (Result, error) {
	overlay := g.Overlay()
	depth := newCostTable(g.Width(), g.Height())
	res := Result{Algorithm: AlgorithmBFS, Overlay: overlay, PathLength: Unreachable}

	start := g.Start()
	depth.set(start, 0)
	queue := []maze.Point{start}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		overlay.Set(cur, maze.Visited)
		res.Visited++

		for _, d := range maze.Neighborhood {
			n := cur.Add(d)
			if !g.Passable(n) || depth.at(n) != Unreachable {
				continue
			}
			depth.set(n, depth.at(cur)+1)
			queue = append(queue, n)
		}
	}

	exit := g.Exit()
	if depth.at(exit) == Unreachable {
		return res, ErrUnreachableExit
	}

	res.PathLength = depth.at(exit)
	res.Path = reconstruct(g, overlay, depth)
	return res, nil
}
