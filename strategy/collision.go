package strategy

import (
	"github.com/lixenwraith/mazega/genetic/tracking"
	"github.com/lixenwraith/mazega/maze"
	"github.com/lixenwraith/mazega/parameter"
)

// Policy decides what a blocked move does to a step walk
type Policy uint8

const (
	// PolicyEnds stops the walk at the first blocked move
	PolicyEnds Policy = iota
	// PolicyStuns absorbs a blocked move: the walker stays and the gene pair is consumed
	PolicyStuns
	// PolicySmart absorbs like PolicyStuns and also counts steps onto already visited cells
	PolicySmart
)

// Collision walks a step-encoded chromosome from the entrance. A move is
// blocked when it leaves the grid or enters a wall. Reaching the exit ends the
// walk under every policy. A trailing unpaired gene is ignored.
type Collision struct {
	base
	policy Policy
	steps  int
}

// EndsWeights is the default collision-ends fitness: -distance
func EndsWeights() map[string]float64 {
	return map[string]float64{
		tracking.MetricDistance: parameter.CollisionWeightDistance,
	}
}

// StunsWeights is the default collision-stuns fitness: -distance - collisions
func StunsWeights() map[string]float64 {
	return map[string]float64{
		tracking.MetricDistance:   parameter.CollisionWeightDistance,
		tracking.MetricCollisions: parameter.CollisionWeightCollisions,
	}
}

// SmartWeights is the default collision-smart fitness. The exit bonus dominates.
func SmartWeights() map[string]float64 {
	return map[string]float64{
		tracking.MetricPathLength:  parameter.SmartWeightPathLength,
		tracking.MetricCollisions:  parameter.SmartWeightCollisions,
		tracking.MetricRepetitions: parameter.SmartWeightRepetitions,
		tracking.MetricDistance:    parameter.SmartWeightDistance,
		tracking.MetricExitFound:   parameter.SmartWeightExitFound,
	}
}

// DefaultSteps is the step budget for a grid:
// StepMultiplier * (blank cells + entrance + exit)
func DefaultSteps(g *maze.Grid) int {
	return parameter.StepMultiplier * (g.BlankCount() + 2)
}

// NewCollision creates a step strategy. steps <= 0 selects DefaultSteps.
func NewCollision(g *maze.Grid, policy Policy, steps int, overrides map[string]float64) *Collision {
	if steps <= 0 {
		steps = DefaultSteps(g)
	}

	var name string
	var weights map[string]float64
	switch policy {
	case PolicyEnds:
		name, weights = NameCollisionEnds, EndsWeights()
	case PolicyStuns:
		name, weights = NameCollisionStuns, StunsWeights()
	default:
		policy = PolicySmart
		name, weights = NameCollisionSmart, SmartWeights()
	}

	return &Collision{
		base:   newBase(g, name, weights, overrides),
		policy: policy,
		steps:  steps,
	}
}

func (s *Collision) Encoding() Encoding { return EncodingSteps }

func (s *Collision) Template() Chromosome {
	return make(Chromosome, parameter.GenesPerStep*s.steps)
}

// Policy returns the collision policy
func (s *Collision) Policy() Policy { return s.policy }

// Steps returns the number of moves a template encodes
func (s *Collision) Steps() int { return s.steps }

func (s *Collision) Score(c Chromosome) Score {
	return s.walk(c, nil)
}

// Reconstruct marks every cell the walker enters OnPath, the exit included
// when reached. The entrance keeps its Start state.
func (s *Collision) Reconstruct(c Chromosome) *maze.Overlay {
	overlay := s.grid.Overlay()
	start := s.grid.Start()
	s.walk(c, func(p maze.Point) {
		if p != start {
			overlay.Set(p, maze.OnPath)
		}
	})
	return overlay
}

func (s *Collision) Crossover() CrossoverFunc { return CrossSteps }

// walk decodes c, calling enter for each cell the walker moves into
func (s *Collision) walk(c Chromosome, enter func(maze.Point)) Score {
	g := s.grid
	exit := g.Exit()
	p := g.Start()

	var seen [][]bool
	if s.policy == PolicySmart {
		seen = make([][]bool, g.Height())
		for y := range seen {
			seen[y] = make([]bool, g.Width())
		}
	}

	var sc Score
	for i := 0; i+1 < len(c); i += 2 {
		if seen != nil {
			seen[p.Y][p.X] = true
		}

		next := p.Add(Move(c[i], c[i+1]))
		if next == exit {
			p = next
			sc.PathLength++
			sc.ExitFound = true
			if enter != nil {
				enter(p)
			}
			break
		}

		if !g.Passable(next) {
			sc.Collisions++
			if s.policy == PolicyEnds {
				break
			}
			continue
		}

		p = next
		sc.PathLength++
		if seen != nil && seen[p.Y][p.X] {
			sc.Repetitions++
		}
		if enter != nil {
			enter(p)
		}
	}

	sc.Distance = g.Heuristic(p)
	return sc
}
