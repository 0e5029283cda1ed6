package strategy

import (
	"github.com/lixenwraith/mazega/genetic/tracking"
	"github.com/lixenwraith/mazega/maze"
	"github.com/lixenwraith/mazega/parameter"
)

// Occupancy selects a set of blank cells, one gene per entry of the grid's
// blank list, and measures how close the selected region connected to the
// entrance gets to the exit.
type Occupancy struct {
	base
	optimal int
}

// OccupancyWeights is the default fitness: -1000*distance - excess
func OccupancyWeights() map[string]float64 {
	return map[string]float64{
		tracking.MetricDistance: parameter.OccupancyWeightDistance,
		tracking.MetricExcess:   parameter.OccupancyWeightExcess,
	}
}

// NewOccupancy creates the strategy. optimal is the BFS path length used to
// count excess selected cells; a negative value counts as 0.
func NewOccupancy(g *maze.Grid, optimal int, overrides map[string]float64) *Occupancy {
	return &Occupancy{
		base:    newBase(g, NameOccupancy, OccupancyWeights(), overrides),
		optimal: max(optimal, 0),
	}
}

func (o *Occupancy) Encoding() Encoding { return EncodingOccupancy }

func (o *Occupancy) Template() Chromosome { return make(Chromosome, o.grid.BlankCount()) }

// Optimal returns the reference path length
func (o *Occupancy) Optimal() int { return o.optimal }

// Score floods from the entrance through selected cells, Start and Exit always
// selected, and reports the minimum heuristic over the flooded region. Each
// cell is consumed when queued so it is expanded once. Genes beyond the blank
// list are ignored, missing genes read as 0.
func (o *Occupancy) Score(c Chromosome) Score {
	g := o.grid
	selected := make([][]bool, g.Height())
	for y := range selected {
		selected[y] = make([]bool, g.Width())
	}

	start, exit := g.Start(), g.Exit()
	selected[exit.Y][exit.X] = true

	count := 0
	n := min(len(c), g.BlankCount())
	for i := 0; i < n; i++ {
		if c[i] != 0 {
			p := g.Blank(i)
			selected[p.Y][p.X] = true
			count++
		}
	}

	best := g.Heuristic(start)
	queue := []maze.Point{start}
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		best = min(best, g.Heuristic(p))
		for _, d := range maze.Neighborhood {
			q := p.Add(d)
			if !g.InBounds(q) || !selected[q.Y][q.X] {
				continue
			}
			selected[q.Y][q.X] = false
			queue = append(queue, q)
		}
	}

	return Score{
		Distance:  best,
		Excess:    max(0, count-o.optimal),
		ExitFound: best == 0,
	}
}

func (o *Occupancy) Reconstruct(c Chromosome) *maze.Overlay {
	overlay := o.grid.Overlay()
	n := min(len(c), o.grid.BlankCount())
	for i := 0; i < n; i++ {
		if c[i] != 0 {
			overlay.Set(o.grid.Blank(i), maze.OnPath)
		}
	}
	return overlay
}

func (o *Occupancy) Crossover() CrossoverFunc { return CrossOccupancy }
