// Package config resolves run settings from compiled defaults, an optional
// .env file, MAZEGA_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/mazega/genetic"
	"github.com/lixenwraith/mazega/logging"
	"github.com/lixenwraith/mazega/parameter"
)

// Environment keys
const (
	EnvMaze        = "MAZEGA_MAZE"
	EnvWidth       = "MAZEGA_WIDTH"
	EnvHeight      = "MAZEGA_HEIGHT"
	EnvPopulation  = "MAZEGA_POPULATION"
	EnvGenerations = "MAZEGA_GENERATIONS"
	EnvElite       = "MAZEGA_ELITE"
	EnvTournament  = "MAZEGA_TOURNAMENT"
	EnvMutation    = "MAZEGA_MUTATION"
	EnvCrossover   = "MAZEGA_CROSSOVER"
	EnvSeed        = "MAZEGA_SEED"
	EnvSteps       = "MAZEGA_STEPS"
	EnvListen      = "MAZEGA_LISTEN"
	EnvGinMode     = "MAZEGA_GIN_MODE"
	EnvDebug       = "MAZEGA_DEBUG"
	EnvLogFile     = "MAZEGA_LOG_FILE"
	EnvVerbosity   = "MAZEGA_VERBOSITY"
	EnvCacheTTL    = "MAZEGA_CACHE_TTL"
)

// Config holds every tunable of the CLI and the API server
type Config struct {
	MazePath string // Maze file in the three-column format
	Width    int    // Maze width in cells, 0 to infer
	Height   int    // Maze height in cells, 0 to infer

	Population     int     // GA pool size
	Generations    int     // Evaluated generations, the random first one included
	EliteCount     int     // Members carried over unchanged
	TournamentSize int     // 0 derives a tenth of the population
	MutationRate   float64 // Probability a child gets one gene flipped
	CrossoverRate  float64 // Probability a selected pair is recombined
	Seed           uint64  // 0 picks a random seed
	Steps          int     // Step budget of collision strategies, 0 for the default

	Listen   string        // API bind address
	GinMode  string        // debug, release or test
	CacheTTL time.Duration // Lifetime of cached grids

	Debug     bool   // Enables the rotating debug log
	LogFile   string // Debug log path, empty for logs/mazega.log
	Verbosity int    // klog verbosity of the debug log
}

// Default returns the compiled defaults
func Default() Config {
	return Config{
		Population:     parameter.GAPoolSize,
		Generations:    parameter.GAGenerations,
		EliteCount:     parameter.GAEliteCount,
		TournamentSize: parameter.GATournamentSize,
		MutationRate:   parameter.GAPerturbationRate,
		CrossoverRate:  parameter.GACrossoverRate,
		Listen:         parameter.ListenAddress,
		GinMode:        parameter.GinMode,
		CacheTTL:       parameter.GridCacheTTL,
		Verbosity:      parameter.LogVerbosity,
	}
}

// Load applies env files and MAZEGA_* variables over the defaults.
// With no arguments a missing .env in the working directory is not an error.
// Variables already present in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}

	cfg := Default()
	p := &envParser{}

	cfg.MazePath = getEnvWithDefault(EnvMaze, cfg.MazePath)
	cfg.Width = p.getInt(EnvWidth, cfg.Width)
	cfg.Height = p.getInt(EnvHeight, cfg.Height)
	cfg.Population = p.getInt(EnvPopulation, cfg.Population)
	cfg.Generations = p.getInt(EnvGenerations, cfg.Generations)
	cfg.EliteCount = p.getInt(EnvElite, cfg.EliteCount)
	cfg.TournamentSize = p.getInt(EnvTournament, cfg.TournamentSize)
	cfg.MutationRate = p.getFloat(EnvMutation, cfg.MutationRate)
	cfg.CrossoverRate = p.getFloat(EnvCrossover, cfg.CrossoverRate)
	cfg.Seed = p.getUint(EnvSeed, cfg.Seed)
	cfg.Steps = p.getInt(EnvSteps, cfg.Steps)
	cfg.Listen = getEnvWithDefault(EnvListen, cfg.Listen)
	cfg.GinMode = getEnvWithDefault(EnvGinMode, cfg.GinMode)
	cfg.CacheTTL = p.getDuration(EnvCacheTTL, cfg.CacheTTL)
	cfg.Debug = p.getBool(EnvDebug, cfg.Debug)
	cfg.LogFile = getEnvWithDefault(EnvLogFile, cfg.LogFile)
	cfg.Verbosity = p.getInt(EnvVerbosity, cfg.Verbosity)

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// envParser collects conversion errors so every bad variable is reported at once
type envParser struct {
	errs []error
}

func (p *envParser) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return v, ok && v != ""
}

func (p *envParser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (p *envParser) getInt(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *envParser) getUint(key string, def uint64) uint64 {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *envParser) getFloat(key string, def float64) float64 {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *envParser) getBool(key string, def bool) bool {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *envParser) getDuration(key string, def time.Duration) time.Duration {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

// BindMazeFlags registers the maze source flags
func BindMazeFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.StringVarP(&cfg.MazePath, "maze", "m", cfg.MazePath, "maze file in the three-column format")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "maze width in cells (0 infers from the file)")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "maze height in cells (0 infers from the file)")
}

// BindGAFlags registers the genetic algorithm flags
func BindGAFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.IntVarP(&cfg.Population, "population", "p", cfg.Population, "candidates per generation")
	flags.IntVarP(&cfg.Generations, "generations", "g", cfg.Generations, "generations to evaluate")
	flags.IntVar(&cfg.EliteCount, "elite", cfg.EliteCount, "best members carried over unchanged")
	flags.IntVar(&cfg.TournamentSize, "tournament", cfg.TournamentSize, "tournament size (0 derives population/10)")
	flags.Float64Var(&cfg.MutationRate, "mutation", cfg.MutationRate, "probability a child gets one gene flipped")
	flags.Float64Var(&cfg.CrossoverRate, "crossover", cfg.CrossoverRate, "probability parents are recombined")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 for a random run)")
	flags.IntVar(&cfg.Steps, "steps", cfg.Steps, "step budget of collision strategies (0 for the default)")
}

// BindServeFlags registers the API server flags
func BindServeFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.StringVar(&cfg.Listen, "listen", cfg.Listen, "API bind address")
	flags.StringVar(&cfg.GinMode, "gin-mode", cfg.GinMode, "gin mode: debug, release or test")
	flags.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "lifetime of cached grids")
}

// BindLogFlags registers the debug log flags
func BindLogFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.BoolVarP(&cfg.Debug, "debug", "d", cfg.Debug, "write a rotating debug log")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "debug log path (default logs/mazega.log)")
	flags.IntVarP(&cfg.Verbosity, "verbosity", "v", cfg.Verbosity, "debug log verbosity")
}

// BindFlags registers every flag; values already in cfg become the defaults
func BindFlags(flags *pflag.FlagSet, cfg *Config) {
	BindMazeFlags(flags, cfg)
	BindGAFlags(flags, cfg)
	BindServeFlags(flags, cfg)
	BindLogFlags(flags, cfg)
}

// Validate rejects settings no run can use; all problems are reported together
func (c Config) Validate() error {
	var errs []error
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("maze dimensions %dx%d: must not be negative", c.Width, c.Height))
	}
	if c.Population < 2 {
		errs = append(errs, fmt.Errorf("population %d: need at least 2", c.Population))
	}
	if c.Generations < 1 {
		errs = append(errs, fmt.Errorf("generations %d: need at least 1", c.Generations))
	}
	if c.EliteCount < 0 || c.EliteCount >= max(c.Population, 1) {
		errs = append(errs, fmt.Errorf("elite count %d: must be in [0,%d)", c.EliteCount, c.Population))
	}
	if c.TournamentSize < 0 {
		errs = append(errs, fmt.Errorf("tournament size %d: must not be negative", c.TournamentSize))
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		errs = append(errs, fmt.Errorf("mutation rate %v: must be in [0,1]", c.MutationRate))
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		errs = append(errs, fmt.Errorf("crossover rate %v: must be in [0,1]", c.CrossoverRate))
	}
	if c.Steps < 0 || c.Steps > parameter.MaxEvolveSteps {
		errs = append(errs, fmt.Errorf("steps %d: must be in [0,%d]", c.Steps, parameter.MaxEvolveSteps))
	}
	if c.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("verbosity %d: must not be negative", c.Verbosity))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache ttl %v: must not be negative", c.CacheTTL))
	}
	return errors.Join(errs...)
}

// EngineConfig maps the GA settings onto the engine
func (c Config) EngineConfig() genetic.EngineConfig {
	tournament := c.TournamentSize
	if tournament == 0 {
		tournament = max(c.Population/10, 2)
	}
	return genetic.EngineConfig{
		PoolSize:         c.Population,
		Generations:      c.Generations,
		EliteCount:       c.EliteCount,
		PerturbationRate: c.MutationRate,
		CrossoverRate:    c.CrossoverRate,
		TournamentSize:   tournament,
		Seed:             c.Seed,
	}
}

// Logging maps the debug settings onto the logging package
func (c Config) Logging() logging.Config {
	return logging.Config{Debug: c.Debug, Path: c.LogFile, Verbosity: c.Verbosity}
}
