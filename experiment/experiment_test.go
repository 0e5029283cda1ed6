package experiment

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/lixenwraith/mazega/genetic"
	"github.com/lixenwraith/mazega/genetic/tracking"
	"github.com/lixenwraith/mazega/maze"
	"github.com/lixenwraith/mazega/strategy"
)

func testGrid(t *testing.T) *maze.Grid {
	t.Helper()
	g, err := maze.Build(maze.Generate(maze.GeneratorConfig{Width: 11, Height: 11, Seed: 42}))
	require.NoError(t, err)
	return g
}

func testConfig() genetic.EngineConfig {
	return genetic.EngineConfig{
		PoolSize:         10,
		Generations:      5,
		EliteCount:       1,
		PerturbationRate: 0.95,
		CrossoverRate:    0.8,
		TournamentSize:   2,
		Seed:             1,
	}
}

func TestRunner_Solvers(t *testing.T) {
	g := testGrid(t)
	r := NewRunner(g, testConfig(), nil, strategy.Options{})

	bfs, err := r.SolveBFS(context.Background())
	require.NoError(t, err)
	astar, err := r.SolveAStar(context.Background())
	require.NoError(t, err)

	assert.True(t, bfs.Reachable)
	assert.Equal(t, bfs.PathLength, astar.PathLength)
	assert.LessOrEqual(t, astar.Visited, bfs.Visited)
	assert.Len(t, bfs.Render, g.Height())
	assert.NotEmpty(t, bfs.ID)
	assert.NotEqual(t, bfs.ID, astar.ID)
	assert.Equal(t, bfs.PathLength+1, bfs.Overlay.Count(maze.OnPath))
}

func TestRunner_SolveUnknownAlgorithm(t *testing.T) {
	r := NewRunner(testGrid(t), testConfig(), nil, strategy.Options{})
	_, err := r.Solve(context.Background(), "dijkstra")
	assert.Error(t, err)
}

func TestRunner_Evolve(t *testing.T) {
	g := testGrid(t)
	cfg := testConfig()
	r := NewRunner(g, cfg, nil, strategy.Options{})

	for _, name := range strategy.DefaultRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			rep, err := r.Evolve(context.Background(), name)
			require.NoError(t, err)

			assert.Equal(t, name, rep.Strategy)
			assert.Len(t, rep.History, cfg.Generations)
			assert.Len(t, rep.Pools, cfg.Generations)
			assert.Equal(t, cfg.PoolSize*cfg.Generations, rep.Evaluations)

			// Every evaluation reaches the tracker, so the tracked best matches the engine best
			assert.Equal(t, rep.Fitness, rep.Summary.Best)

			s, err := strategy.DefaultRegistry().New(name, g, strategy.Options{})
			require.NoError(t, err)
			best, err := strategy.ParseChromosome(rep.Best)
			require.NoError(t, err)
			assert.Equal(t, rep.Score, s.Score(best))
			assert.Equal(t, rep.Fitness, s.Fitness(rep.Score))
			assert.Len(t, rep.Render, g.Height())

			var sum float64
			for _, term := range rep.Terms {
				sum += term.Contribution()
			}
			assert.InDelta(t, rep.Fitness, sum, 1e-9)
		})
	}
}

func TestRunner_Replay(t *testing.T) {
	g := testGrid(t)
	r := NewRunner(g, testConfig(), nil, strategy.Options{})

	for _, name := range strategy.DefaultRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			evolved, err := r.Evolve(context.Background(), name)
			require.NoError(t, err)

			replayed, err := r.Replay(context.Background(), name, evolved.Best)
			require.NoError(t, err)
			assert.Equal(t, evolved.Best, replayed.Best)
			assert.Equal(t, evolved.Fitness, replayed.Fitness)
			assert.Equal(t, evolved.Score, replayed.Score)
			assert.Equal(t, evolved.Terms, replayed.Terms)
			assert.Equal(t, evolved.Render, replayed.Render)
			assert.Equal(t, 1, replayed.Evaluations)
		})
	}
}

func TestRunner_ReplayErrors(t *testing.T) {
	r := NewRunner(testGrid(t), testConfig(), nil, strategy.Options{})

	_, err := r.Replay(context.Background(), "teleport", "0101")
	assert.ErrorIs(t, err, strategy.ErrUnknownStrategy)

	_, err = r.Replay(context.Background(), strategy.NameCollisionEnds, "01x1")
	assert.ErrorIs(t, err, strategy.ErrInvalidGene)

	_, err = r.Replay(context.Background(), strategy.NameCollisionEnds, "0101")
	assert.ErrorIs(t, err, strategy.ErrLengthMismatch)
}

func TestRunner_EvolveDeterministic(t *testing.T) {
	g := testGrid(t)
	a, err := NewRunner(g, testConfig(), nil, strategy.Options{}).Evolve(context.Background(), strategy.NameCollisionSmart)
	require.NoError(t, err)
	b, err := NewRunner(g, testConfig(), nil, strategy.Options{}).Evolve(context.Background(), strategy.NameCollisionSmart)
	require.NoError(t, err)

	assert.Equal(t, a.Best, b.Best)
	assert.Equal(t, a.History, b.History)
}

func TestRunner_EvolveErrors(t *testing.T) {
	g := testGrid(t)

	r := NewRunner(g, testConfig(), nil, strategy.Options{})
	_, err := r.Evolve(context.Background(), "teleport")
	assert.ErrorIs(t, err, strategy.ErrUnknownStrategy)

	bad := testConfig()
	bad.PoolSize = 1
	_, err = NewRunner(g, bad, nil, strategy.Options{}).Evolve(context.Background(), strategy.NameOccupancy)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Evolve(ctx, strategy.NameOccupancy)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunner_Compare(t *testing.T) {
	r := NewRunner(testGrid(t), testConfig(), nil, strategy.Options{})

	c, err := r.Compare(context.Background())
	require.NoError(t, err)

	require.Len(t, c.Solvers, 2)
	assert.Equal(t, "bfs", c.Solvers[0].Algorithm)
	assert.Equal(t, "astar", c.Solvers[1].Algorithm)

	names := make([]string, len(c.Strategies))
	for i, s := range c.Strategies {
		names[i] = s.Strategy
	}
	assert.Equal(t, strategy.DefaultRegistry().Names(), names)
	assert.Equal(t, 11, c.Maze.Width)
	assert.Equal(t, maze.Point{X: 1, Y: 0}, c.Maze.Start)
}

func TestSummarize(t *testing.T) {
	history := []tracking.Record{{Fitness: 1}, {Fitness: 3}, {Fitness: 3}, {Fitness: 2}}

	c := Summarize(history)
	assert.Equal(t, 4, c.Generations)
	assert.Equal(t, 3.0, c.Best)
	assert.Equal(t, 1, c.FirstBestGeneration)
	assert.InDelta(t, 2.25, c.Mean, 1e-9)
	assert.InDelta(t, 0.9574, c.StdDev, 1e-4)

	assert.Equal(t, -1, Summarize(nil).FirstBestGeneration)

	one := Summarize([]tracking.Record{{Fitness: -7}})
	assert.Equal(t, -7.0, one.Mean)
	assert.Zero(t, one.StdDev)
}

func TestWriteYAML(t *testing.T) {
	c, err := NewRunner(testGrid(t), testConfig(), nil, strategy.Options{}).Compare(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, c))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, c.ID, doc["id"])
	assert.Len(t, doc["solvers"], 2)
	assert.Len(t, doc["strategies"], 4)
	assert.Contains(t, buf.String(), "algorithm: bfs")
}

func TestWriteText(t *testing.T) {
	c, err := NewRunner(testGrid(t), testConfig(), nil, strategy.Options{}).Compare(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, c))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Maze 11x11"))
	for _, name := range strategy.DefaultRegistry().Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "astar")

	buf.Reset()
	require.NoError(t, WriteReport(&buf, c.Strategies[0]))
	assert.Contains(t, buf.String(), c.Strategies[0].Render[0])
	assert.Contains(t, buf.String(), c.Strategies[0].Terms[0].Metric)
}

func TestPlotConvergence(t *testing.T) {
	reports := []StrategyReport{
		{Strategy: "collision-ends", History: []tracking.Record{{Fitness: -40}, {Fitness: -20}}},
		{Strategy: "occupancy", History: []tracking.Record{{Fitness: -9000}}},
	}

	var buf bytes.Buffer
	require.NoError(t, PlotConvergence(&buf, "convergence", reports))
	assert.Contains(t, buf.String(), "<html")
	assert.Contains(t, buf.String(), "collision-ends")

	assert.ErrorIs(t, PlotConvergence(&buf, "empty", nil), ErrNothingToPlot)
}
