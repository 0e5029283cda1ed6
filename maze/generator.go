package maze

import (
	"math/rand/v2"
	"time"
)

// GeneratorConfig controls random maze generation
type GeneratorConfig struct {
	Width, Height int

	// Braiding is the chance in [0,1] that a dead end is joined to a neighbour room.
	// 0 yields a perfect maze, higher values add cycles. No 2x2 open areas or
	// isolated wall pillars are ever created.
	Braiding float64

	Seed uint64 // 0 picks a time-based seed
}

// Generate carves a maze with a recursive backtracker over odd-coordinate rooms.
// Dimensions are rounded down to odd, minimum 3. The result has exactly two
// border gaps: above the top-left room (the entrance) and below the bottom-right
// room (the exit).
func Generate(cfg GeneratorConfig) Layout {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	layout := make(Layout, rows)
	for y := range layout {
		layout[y] = make([]bool, cols)
		for x := range layout[y] {
			layout[y][x] = WallCell
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	entry := Point{1, 1}
	goal := Point{cols - 2, rows - 2}

	carve(layout, entry, rng)
	if cfg.Braiding > 0 {
		braid(layout, cfg.Braiding, rng)
	}

	layout[0][entry.X] = PassageCell
	layout[rows-1][goal.X] = PassageCell
	return layout
}

// roomSteps move between rooms; the wall between sits at half the offset
var roomSteps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

func carve(layout Layout, start Point, rng *rand.Rand) {
	rows, cols := len(layout), len(layout[0])

	stack := []Point{start}
	layout[start.Y][start.X] = PassageCell

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]Point, 0, 4)

		for _, d := range roomSteps {
			n := curr.Add(d)
			if n.X > 0 && n.X < cols-1 && n.Y > 0 && n.Y < rows-1 && layout[n.Y][n.X] == WallCell {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.IntN(len(candidates))]
		next := curr.Add(d)
		layout[curr.Y+d.Y/2][curr.X+d.X/2] = PassageCell
		layout[next.Y][next.X] = PassageCell
		stack = append(stack, next)
	}
}

func braid(layout Layout, probability float64, rng *rand.Rand) {
	rows, cols := len(layout), len(layout[0])

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if layout[y][x] == WallCell {
				continue
			}

			// Dead end: exactly one open side
			open := 0
			for _, d := range Neighborhood {
				if layout[y+d.Y][x+d.X] == PassageCell {
					open++
				}
			}
			if open != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]Point, 0, 4)
			for _, d := range roomSteps {
				nx, ny := x+d.X, y+d.Y
				wx, wy := x+d.X/2, y+d.Y/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if layout[ny][nx] == PassageCell && layout[wy][wx] == WallCell && canRemoveWall(layout, wx, wy) {
					candidates = append(candidates, Point{wx, wy})
				}
			}

			if len(candidates) > 0 {
				c := candidates[rng.IntN(len(candidates))]
				layout[c.Y][c.X] = PassageCell
			}
		}
	}
}

// canRemoveWall reports whether opening (x,y) keeps the maze free of 2x2
// open plazas and of wall pillars with no wall neighbour.
func canRemoveWall(layout Layout, x, y int) bool {
	rows, cols := len(layout), len(layout[0])

	open := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return layout[ty][tx] == PassageCell
	}

	// Plazas, one check per quadrant around (x,y)
	if open(x-1, y-1) && open(x, y-1) && open(x-1, y) {
		return false
	}
	if open(x, y-1) && open(x+1, y-1) && open(x+1, y) {
		return false
	}
	if open(x-1, y) && open(x-1, y+1) && open(x, y+1) {
		return false
	}
	if open(x+1, y) && open(x, y+1) && open(x+1, y+1) {
		return false
	}

	// Pillars: every adjacent wall must keep another wall neighbour
	for _, d := range Neighborhood {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || layout[ny][nx] != WallCell {
			continue
		}

		links := 0
		for _, d2 := range Neighborhood {
			mx, my := nx+d2.X, ny+d2.Y
			if mx == x && my == y {
				continue
			}
			if mx >= 0 && mx < cols && my >= 0 && my < rows && layout[my][mx] == WallCell {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}

	return true
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
