package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"k8s.io/klog/v2"

	"github.com/lixenwraith/mazega/api"
	"github.com/lixenwraith/mazega/api/i"
	"github.com/lixenwraith/mazega/api/solve"
	"github.com/lixenwraith/mazega/config"
	"github.com/lixenwraith/mazega/experiment"
	"github.com/lixenwraith/mazega/maze"
	"github.com/lixenwraith/mazega/solver"
	"github.com/lixenwraith/mazega/strategy"
	"github.com/lixenwraith/mazega/view"
)

var errNoMaze = errors.New("--maze is required")

func loadGrid(cfg config.Config) (*maze.Grid, error) {
	if cfg.MazePath == "" {
		return nil, errNoMaze
	}
	layout, err := maze.Load(cfg.MazePath, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return maze.Build(layout)
}

func newRunner(cfg config.Config) (*experiment.Runner, error) {
	g, err := loadGrid(cfg)
	if err != nil {
		return nil, err
	}
	return experiment.NewRunner(g, cfg.EngineConfig(), nil, strategy.Options{Steps: cfg.Steps}), nil
}

func runSolve(ctx context.Context, cfg config.Config, opts options, out io.Writer) error {
	var algorithms []string
	switch opts.algorithm {
	case "both", "":
		algorithms = solver.Algorithms()
	default:
		algorithms = []string{opts.algorithm}
	}

	r, err := newRunner(cfg)
	if err != nil {
		return err
	}

	for _, algorithm := range algorithms {
		rep, err := r.Solve(ctx, algorithm)
		if err != nil {
			return err
		}
		if rep.Reachable {
			fmt.Fprintf(out, "%s: path length %d, %d cells visited\n", rep.Algorithm, rep.PathLength, rep.Visited)
		} else {
			fmt.Fprintf(out, "%s: exit unreachable, %d cells visited\n", rep.Algorithm, rep.Visited)
		}
		if err := rep.Overlay.Render(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runEvolve(ctx context.Context, cfg config.Config, opts options, out io.Writer) error {
	if opts.strategy == "" {
		return fmt.Errorf("--strategy is required, one of %v", strategy.DefaultRegistry().Names())
	}
	r, err := newRunner(cfg)
	if err != nil {
		return err
	}

	rep, err := r.Evolve(ctx, opts.strategy)
	if err != nil {
		return err
	}
	if err := experiment.WriteReport(out, rep); err != nil {
		return err
	}

	if opts.plot != "" {
		return writeFile(opts.plot, func(w io.Writer) error {
			return experiment.PlotConvergence(w, "Convergence of "+rep.Strategy, []experiment.StrategyReport{rep})
		})
	}
	return nil
}

func runCompare(ctx context.Context, cfg config.Config, opts options, out io.Writer) error {
	r, err := newRunner(cfg)
	if err != nil {
		return err
	}

	c, err := r.Compare(ctx)
	if err != nil {
		return err
	}
	if err := experiment.WriteText(out, c); err != nil {
		return err
	}

	if opts.report != "" {
		if err := writeFile(opts.report, func(w io.Writer) error { return experiment.WriteYAML(w, c) }); err != nil {
			return err
		}
	}
	if opts.plot != "" {
		return writeFile(opts.plot, func(w io.Writer) error {
			return experiment.PlotConvergence(w, "Strategy convergence", c.Strategies)
		})
	}
	return nil
}

func runServe(ctx context.Context, cfg config.Config, _ options, _ io.Writer) error {
	router := api.NewRouter(api.Config{
		Addr:        cfg.Listen,
		Mode:        cfg.GinMode,
		Controllers: []i.Controller{solve.NewMazeServer(cfg, nil, nil)},
		Logger:      klog.FromContext(ctx),
	})
	return router.Run(ctx)
}

func runView(ctx context.Context, cfg config.Config, _ options, _ io.Writer) error {
	r, err := newRunner(cfg)
	if err != nil {
		return err
	}
	c, err := r.Compare(ctx)
	if err != nil {
		return err
	}

	frames := make([]view.Frame, 0, len(c.Solvers)+len(c.Strategies))
	for _, s := range c.Solvers {
		frames = append(frames, view.Frame{
			Title:   fmt.Sprintf("%s  path %d  visited %d", s.Algorithm, s.PathLength, s.Visited),
			Overlay: s.Overlay,
		})
	}
	for _, s := range c.Strategies {
		frames = append(frames, view.Frame{
			Title:   fmt.Sprintf("%s  fitness %.2f  distance %d", s.Strategy, s.Fitness, s.Score.Distance),
			Overlay: s.Overlay,
		})
	}

	screen, err := view.Open()
	if err != nil {
		return err
	}
	defer screen.Fini()
	return view.Run(screen, frames)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
