package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/lixenwraith/mazega/config"
	"github.com/lixenwraith/mazega/logging"
)

// command runs one subcommand with parsed settings
type command struct {
	summary string
	flags   func(fs *pflag.FlagSet, cfg *config.Config, opts *options)
	run     func(ctx context.Context, cfg config.Config, opts options, out io.Writer) error
}

// options are subcommand flags that are not part of config.Config
type options struct {
	algorithm string
	strategy  string
	report    string
	plot      string
}

var commands = map[string]command{
	"solve": {
		summary: "shortest path with BFS and/or A*",
		flags: func(fs *pflag.FlagSet, cfg *config.Config, opts *options) {
			config.BindMazeFlags(fs, cfg)
			fs.StringVarP(&opts.algorithm, "algorithm", "a", "both", "bfs, astar or both")
		},
		run: runSolve,
	},
	"evolve": {
		summary: "evolve one strategy with the genetic algorithm",
		flags: func(fs *pflag.FlagSet, cfg *config.Config, opts *options) {
			config.BindMazeFlags(fs, cfg)
			config.BindGAFlags(fs, cfg)
			fs.StringVarP(&opts.strategy, "strategy", "s", "", "strategy name (see the compare output)")
			fs.StringVar(&opts.plot, "plot", "", "write an HTML convergence chart")
		},
		run: runEvolve,
	},
	"compare": {
		summary: "run both searches and every strategy on one maze",
		flags: func(fs *pflag.FlagSet, cfg *config.Config, opts *options) {
			config.BindMazeFlags(fs, cfg)
			config.BindGAFlags(fs, cfg)
			fs.StringVar(&opts.report, "report", "", "write a YAML report")
			fs.StringVar(&opts.plot, "plot", "", "write an HTML convergence chart")
		},
		run: runCompare,
	},
	"serve": {
		summary: "serve the HTTP API",
		flags: func(fs *pflag.FlagSet, cfg *config.Config, _ *options) {
			config.BindGAFlags(fs, cfg)
			config.BindServeFlags(fs, cfg)
		},
		run: runServe,
	},
	"view": {
		summary: "compare, then browse the overlays in the terminal",
		flags: func(fs *pflag.FlagSet, cfg *config.Config, _ *options) {
			config.BindMazeFlags(fs, cfg)
			config.BindGAFlags(fs, cfg)
		},
		run: runView,
	},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: mazega <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}
}

// run parses args for the named command and executes it
func run(ctx context.Context, name string, args []string, out io.Writer) error {
	cmd, ok := commands[name]
	if !ok {
		usage(out)
		return fmt.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts options
	fs := pflag.NewFlagSet("mazega "+name, pflag.ContinueOnError)
	fs.SetOutput(out)
	cmd.flags(fs, &cfg, &opts)
	config.BindLogFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.Setup(cfg.Logging())
	if err != nil {
		return err
	}
	defer closer.Close()
	klog.SetLogger(logger)

	ctx = logging.NewContext(ctx, logger.WithValues("command", name))
	return cmd.run(ctx, cfg, opts, out)
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mazega %s: %v\n", os.Args[1], err)
		stop()
		os.Exit(1)
	}
}
