package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/mazega/maze"
	"github.com/lixenwraith/mazega/solver"
)

type options struct {
	width, height int
	braid         float64
	seed          uint64
	out           string
	preview       bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{width: 35, height: 19, braid: 0.2}

	fs := pflag.NewFlagSet("maze-generator", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVarP(&opts.width, "width", "W", opts.width, "width in cells, rounded down to odd")
	fs.IntVarP(&opts.height, "height", "H", opts.height, "height in cells, rounded down to odd")
	fs.Float64VarP(&opts.braid, "braid", "b", opts.braid, "chance a dead end is joined to a neighbour [0.0 - 1.0]")
	fs.Uint64Var(&opts.seed, "seed", opts.seed, "random seed (0 for time-based)")
	fs.StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	fs.BoolVar(&opts.preview, "preview", false, "print the solved maze to stderr")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	// Clamp
	opts.braid = min(max(opts.braid, 0), 1)
	return opts, nil
}

// generate writes the maze in the three-column format and reports on stderr
func generate(opts options, stdout, stderr io.Writer) error {
	startT := time.Now()
	layout := maze.Generate(maze.GeneratorConfig{
		Width:    opts.width,
		Height:   opts.height,
		Braiding: opts.braid,
		Seed:     opts.seed,
	})
	dur := time.Since(startT)

	g, err := maze.Build(layout)
	if err != nil {
		return err
	}
	res, err := solver.BFS(g)
	if err != nil && !errors.Is(err, solver.ErrUnreachableExit) {
		return err
	}

	fmt.Fprintf(stderr, "Generated %dx%d in %v\n", layout.Width(), layout.Height(), dur)
	if res.Reachable() {
		fmt.Fprintf(stderr, "Solution path length: %d steps\n", res.PathLength)
	} else {
		fmt.Fprintln(stderr, "Status: unsolvable")
	}
	if opts.preview {
		if err := res.Overlay.Render(stderr); err != nil {
			return err
		}
	}

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return maze.Encode(w, layout)
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := generate(opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "maze-generator: %v\n", err)
		os.Exit(1)
	}
}
