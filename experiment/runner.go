// Package experiment runs solvers and GA strategies against one maze and
// collects comparable reports: convergence summaries, YAML export, text
// summaries and HTML convergence charts.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/lixenwraith/mazega/genetic"
	"github.com/lixenwraith/mazega/genetic/fitness"
	"github.com/lixenwraith/mazega/genetic/tracking"
	"github.com/lixenwraith/mazega/maze"
	"github.com/lixenwraith/mazega/solver"
	"github.com/lixenwraith/mazega/strategy"
)

// SolverReport is the outcome of one deterministic search
type SolverReport struct {
	ID         string        `json:"id"`
	Algorithm  string        `json:"algorithm"`
	PathLength int           `json:"path_length"`
	Visited    int           `json:"visited"`
	Reachable  bool          `json:"reachable"`
	Duration   time.Duration `json:"duration_ns"`
	Render     []string      `json:"render"`

	Overlay *maze.Overlay `json:"-"`
}

// StrategyReport is the outcome of one GA run
type StrategyReport struct {
	ID          string                       `json:"id"`
	Strategy    string                       `json:"strategy"`
	Encoding    string                       `json:"encoding"`
	Best        string                       `json:"best"`
	Fitness     float64                      `json:"fitness"`
	Score       strategy.Score               `json:"score"`
	Terms       []fitness.Term               `json:"terms"`
	History     []tracking.Record            `json:"history"`
	Pools       []genetic.PoolStats[float64] `json:"pools"`
	Summary     Convergence                  `json:"summary"`
	Evaluations int                          `json:"evaluations"`
	Duration    time.Duration                `json:"duration_ns"`
	Render      []string                     `json:"render"`

	Overlay *maze.Overlay `json:"-"`
}

// MazeInfo describes the maze a comparison ran on
type MazeInfo struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Start  maze.Point `json:"start"`
	Exit   maze.Point `json:"exit"`
	Blanks int        `json:"blanks"`
	Walls  int        `json:"walls"`
}

// Comparison gathers every report of one Compare call
type Comparison struct {
	ID         string               `json:"id"`
	CreatedAt  time.Time            `json:"created_at"`
	Maze       MazeInfo             `json:"maze"`
	Config     genetic.EngineConfig `json:"config"`
	Solvers    []SolverReport       `json:"solvers"`
	Strategies []StrategyReport     `json:"strategies"`
}

// Runner evaluates algorithms on one shared grid.
// Runs are sequential and share one tracker; a Runner is not safe for concurrent use.
type Runner struct {
	Grid     *maze.Grid
	Config   genetic.EngineConfig
	Registry *strategy.Registry
	Options  strategy.Options

	tracker *tracking.Tracker
}

// NewRunner uses the default strategy registry when reg is nil
func NewRunner(g *maze.Grid, cfg genetic.EngineConfig, reg *strategy.Registry, opts strategy.Options) *Runner {
	if reg == nil {
		reg = strategy.DefaultRegistry()
	}
	return &Runner{
		Grid:     g,
		Config:   cfg,
		Registry: reg,
		Options:  opts,
		tracker:  tracking.NewTracker(cfg.PoolSize),
	}
}

// Solve runs the named search; an unreachable exit is reported, not returned
func (r *Runner) Solve(ctx context.Context, algorithm string) (SolverReport, error) {
	started := time.Now()
	res, err := solver.Solve(algorithm, r.Grid)
	if err != nil && !errors.Is(err, solver.ErrUnreachableExit) {
		return SolverReport{}, err
	}

	report := SolverReport{
		ID:         uuid.NewString(),
		Algorithm:  res.Algorithm,
		PathLength: res.PathLength,
		Visited:    res.Visited,
		Reachable:  res.Reachable(),
		Duration:   time.Since(started),
		Render:     res.Overlay.Rows(),
		Overlay:    res.Overlay,
	}
	klog.FromContext(ctx).V(2).Info("search finished",
		"algorithm", report.Algorithm,
		"pathLength", report.PathLength,
		"visited", report.Visited,
	)
	return report, nil
}

// SolveBFS runs breadth-first search
func (r *Runner) SolveBFS(ctx context.Context) (SolverReport, error) {
	return r.Solve(ctx, solver.AlgorithmBFS)
}

// SolveAStar runs A*
func (r *Runner) SolveAStar(ctx context.Context) (SolverReport, error) {
	return r.Solve(ctx, solver.AlgorithmAStar)
}

// Evolve runs the GA with the named strategy and reconstructs its best chromosome
func (r *Runner) Evolve(ctx context.Context, name string) (StrategyReport, error) {
	if err := r.Config.Validate(); err != nil {
		return StrategyReport{}, fmt.Errorf("engine config: %w", err)
	}
	s, err := r.Registry.New(name, r.Grid, r.Options)
	if err != nil {
		return StrategyReport{}, err
	}

	logger := klog.FromContext(ctx).WithValues("strategy", name)
	ctx = klog.NewContext(ctx, logger)

	r.tracker.SetPopulationSize(r.Config.PoolSize)
	length := len(s.Template())

	engine := genetic.NewEngine[strategy.Chromosome, uint8, float64](
		strategy.Tracked(s, r.tracker),
		genetic.RandomGenes[strategy.Chromosome](length, strategy.Alphabet),
		nil,
		&genetic.FuncCombiner[strategy.Chromosome, float64]{Crossover: s.Crossover()},
		&genetic.GeneFlipPerturbator[strategy.Chromosome, uint8]{Alphabet: strategy.Alphabet},
		r.Config,
	)

	logger.V(2).Info("evolution started", "genes", length, "encoding", s.Encoding())
	started := time.Now()
	if _, err := engine.Run(ctx); err != nil {
		return StrategyReport{}, fmt.Errorf("evolve %s: %w", name, err)
	}
	elapsed := time.Since(started)

	best, err := engine.Best()
	if err != nil {
		return StrategyReport{}, err
	}
	score := s.Score(best.Data)
	overlay := s.Reconstruct(best.Data)
	history := r.tracker.History()

	report := StrategyReport{
		ID:          uuid.NewString(),
		Strategy:    name,
		Encoding:    s.Encoding().String(),
		Best:        best.Data.String(),
		Fitness:     best.Score,
		Score:       score,
		Terms:       s.Aggregator().Terms(score.Metrics()),
		History:     history,
		Pools:       engine.History(),
		Summary:     Summarize(history),
		Evaluations: engine.Evaluations(),
		Duration:    elapsed,
		Render:      overlay.Rows(),
		Overlay:     overlay,
	}
	logger.V(2).Info("evolution reported",
		"fitness", report.Fitness,
		"distance", score.Distance,
		"exitFound", score.ExitFound,
		"duration", elapsed,
	)
	return report, nil
}

// Replay decodes a 0/1 chromosome string with the named strategy, scores it
// and reconstructs its walk without running the GA
func (r *Runner) Replay(ctx context.Context, name, genes string) (StrategyReport, error) {
	s, err := r.Registry.New(name, r.Grid, r.Options)
	if err != nil {
		return StrategyReport{}, err
	}
	c, err := strategy.ParseChromosome(genes)
	if err != nil {
		return StrategyReport{}, err
	}
	if want := len(s.Template()); len(c) != want {
		return StrategyReport{}, &strategy.LengthMismatchError{Left: len(c), Right: want}
	}

	started := time.Now()
	score := s.Score(c)
	overlay := s.Reconstruct(c)
	report := StrategyReport{
		ID:          uuid.NewString(),
		Strategy:    name,
		Encoding:    s.Encoding().String(),
		Best:        c.String(),
		Fitness:     s.Fitness(score),
		Score:       score,
		Terms:       s.Aggregator().Terms(score.Metrics()),
		Summary:     Summarize(nil),
		Evaluations: 1,
		Duration:    time.Since(started),
		Render:      overlay.Rows(),
		Overlay:     overlay,
	}
	klog.FromContext(ctx).V(2).Info("chromosome replayed",
		"strategy", name, "genes", len(c), "fitness", report.Fitness, "exitFound", score.ExitFound)
	return report, nil
}

// Compare runs BFS, A* and every registered strategy in turn
func (r *Runner) Compare(ctx context.Context) (*Comparison, error) {
	c := &Comparison{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Maze: MazeInfo{
			Width:  r.Grid.Width(),
			Height: r.Grid.Height(),
			Start:  r.Grid.Start(),
			Exit:   r.Grid.Exit(),
			Blanks: r.Grid.BlankCount(),
			Walls:  r.Grid.WallCount(),
		},
		Config: r.Config,
	}

	for _, algorithm := range solver.Algorithms() {
		rep, err := r.Solve(ctx, algorithm)
		if err != nil {
			return c, err
		}
		c.Solvers = append(c.Solvers, rep)
	}

	for _, name := range r.Registry.Names() {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		rep, err := r.Evolve(ctx, name)
		if err != nil {
			return c, err
		}
		c.Strategies = append(c.Strategies, rep)
	}

	return c, nil
}
