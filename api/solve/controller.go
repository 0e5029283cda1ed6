// Package solve exposes maze searches and GA runs as JSON endpoints.
package solve

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/lixenwraith/mazega/config"
	"github.com/lixenwraith/mazega/experiment"
	"github.com/lixenwraith/mazega/logging"
	"github.com/lixenwraith/mazega/maze"
	"github.com/lixenwraith/mazega/parameter"
	"github.com/lixenwraith/mazega/solver"
	"github.com/lixenwraith/mazega/strategy"
)

// MazeServer handles HTTP requests for searches and GA runs
type MazeServer struct {
	defaults config.Config
	registry *strategy.Registry
	grids    *GridCache
}

// NewMazeServer creates a server; a nil registry selects the built-in strategies
func NewMazeServer(defaults config.Config, registry *strategy.Registry, grids *GridCache) *MazeServer {
	if registry == nil {
		registry = strategy.DefaultRegistry()
	}
	if grids == nil {
		grids = NewGridCache(defaults.CacheTTL, parameter.GridCacheCleanup)
	}
	return &MazeServer{defaults: defaults, registry: registry, grids: grids}
}

// Register registers the routes
func (s *MazeServer) Register(route *gin.RouterGroup) {
	route.GET("/strategies", s.strategies)
	route.POST("/solve", s.solve)
	route.POST("/evolve", s.evolve)
	route.POST("/replay", s.replay)
}

func (s *MazeServer) strategies(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, &StrategiesResponse{
		Strategies: s.registry.Names(),
		Algorithms: solver.Algorithms(),
	})
}

// solve handles a single BFS or A* search
func (s *MazeServer) solve(ctx *gin.Context) {
	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Algorithm == "" {
		request.Algorithm = solver.AlgorithmBFS
	}

	grid, ok := s.grid(ctx, request.MazeRequest)
	if !ok {
		return
	}

	res, err := solver.Solve(request.Algorithm, grid)
	if err != nil && !errors.Is(err, solver.ErrUnreachableExit) {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &SolveResponse{
		Algorithm:  res.Algorithm,
		PathLength: res.PathLength,
		Visited:    res.Visited,
		Reachable:  res.Reachable(),
		Render:     res.Overlay.Rows(),
	})
}

// evolve handles one GA run; the run stops if the client goes away
func (s *MazeServer) evolve(ctx *gin.Context) {
	var request EvolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !s.registry.Has(request.Strategy) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown strategy: " + request.Strategy})
		return
	}

	cfg := s.defaults
	if request.Generations > 0 {
		cfg.Generations = min(request.Generations, parameter.MaxEvolveGenerations)
	}
	if request.Population > 0 {
		cfg.Population = min(request.Population, parameter.MaxEvolvePopulation)
	}
	if request.Seed != 0 {
		cfg.Seed = request.Seed
	}
	if request.Steps > 0 {
		// Oversized budgets are left for Validate to reject
		cfg.Steps = request.Steps
	}
	if err := cfg.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grid, ok := s.grid(ctx, request.MazeRequest)
	if !ok {
		return
	}

	runner := experiment.NewRunner(grid, cfg.EngineConfig(), s.registry, strategy.Options{Steps: cfg.Steps})
	report, err := runner.Evolve(ctx.Request.Context(), request.Strategy)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &EvolveResponse{
		ID:          report.ID,
		Strategy:    report.Strategy,
		Chromosome:  report.Best,
		Fitness:     report.Fitness,
		Distance:    report.Score.Distance,
		ExitFound:   report.Score.ExitFound,
		Evaluations: report.Evaluations,
		History:     experiment.Fitnesses(report.History),
		Render:      report.Render,
	})
}

// replay decodes a chromosome without running the GA
func (s *MazeServer) replay(ctx *gin.Context) {
	var request ReplayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := s.defaults
	if request.Steps > 0 {
		cfg.Steps = request.Steps
	}
	if err := cfg.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grid, ok := s.grid(ctx, request.MazeRequest)
	if !ok {
		return
	}

	runner := experiment.NewRunner(grid, cfg.EngineConfig(), s.registry, strategy.Options{Steps: cfg.Steps})
	report, err := runner.Replay(ctx.Request.Context(), request.Strategy, request.Chromosome)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &ReplayResponse{
		Strategy: report.Strategy,
		Fitness:  report.Fitness,
		Score:    report.Score,
		Terms:    report.Terms,
		Render:   report.Render,
	})
}

// grid resolves the maze through the cache; on failure the response is written
func (s *MazeServer) grid(ctx *gin.Context, req MazeRequest) (*maze.Grid, bool) {
	grid, hit, err := s.grids.Get(req)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return nil, false
	}
	klog.FromContext(ctx.Request.Context()).V(logging.LevelDetail).Info("grid resolved",
		"cacheHit", hit, "width", grid.Width(), "height", grid.Height())
	return grid, true
}

func statusOf(err error) int {
	var unknown *solver.UnknownAlgorithmError
	switch {
	case errors.Is(err, maze.ErrMalformedMaze),
		errors.Is(err, strategy.ErrInvalidGene),
		errors.Is(err, strategy.ErrLengthMismatch):
		return http.StatusBadRequest
	case errors.Is(err, strategy.ErrUnknownStrategy), errors.As(err, &unknown):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
