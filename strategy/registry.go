package strategy

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/lixenwraith/mazega/maze"
	"github.com/lixenwraith/mazega/solver"
)

// Registered strategy names
const (
	NameOccupancy      = "occupancy"
	NameCollisionEnds  = "collision-ends"
	NameCollisionStuns = "collision-stuns"
	NameCollisionSmart = "collision-smart"
)

// ErrUnknownStrategy is returned for names missing from a registry
var ErrUnknownStrategy = errors.New("unknown strategy")

// Options tune a strategy built through a registry
type Options struct {
	// Steps overrides the step budget of step strategies, 0 for the default
	Steps int
	// Weights overrides individual fitness weights by metric name
	Weights map[string]float64
}

// Factory builds a strategy for a grid
type Factory func(g *maze.Grid, opts Options) (Strategy, error)

// Registry maps strategy names to factories
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry holds the four built-in strategies
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(NameOccupancy, newOccupancyFromBFS)
	for name, policy := range map[string]Policy{
		NameCollisionEnds:  PolicyEnds,
		NameCollisionStuns: PolicyStuns,
		NameCollisionSmart: PolicySmart,
	} {
		_ = r.Register(name, collisionFactory(policy))
	}
	return r
}

// Register adds a factory; names are unique
func (r *Registry) Register(name string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" || f == nil {
		return fmt.Errorf("register strategy %q: empty name or nil factory", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("strategy %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// New builds the named strategy for g
func (r *Registry) New(name string, g *maze.Grid, opts Options) (Strategy, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return f(g, opts)
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// newOccupancyFromBFS uses the BFS optimum as the excess reference
func newOccupancyFromBFS(g *maze.Grid, opts Options) (Strategy, error) {
	res, err := solver.BFS(g)
	if err != nil && !errors.Is(err, solver.ErrUnreachableExit) {
		return nil, err
	}
	return NewOccupancy(g, res.PathLength, opts.Weights), nil
}

func collisionFactory(policy Policy) Factory {
	return func(g *maze.Grid, opts Options) (Strategy, error) {
		if opts.Steps < 0 {
			return nil, fmt.Errorf("steps %d: must not be negative", opts.Steps)
		}
		return NewCollision(g, policy, opts.Steps, opts.Weights), nil
	}
}
