package parameter

import "time"

// HTTP Service
const (
	// ListenAddress is the default bind address of the API server
	ListenAddress = ":8080"

	// GinMode is the default gin mode outside tests
	GinMode = "release"

	// GridCacheTTL is how long a built grid stays cached by layout digest
	GridCacheTTL = 10 * time.Minute

	// GridCacheCleanup is the purge interval of expired grids
	GridCacheCleanup = 15 * time.Minute

	// MaxEvolveGenerations caps per-request GA work
	MaxEvolveGenerations = 1000

	// MaxEvolvePopulation caps per-request pool size
	MaxEvolvePopulation = 500

	// MaxEvolveSteps bounds an explicit step budget; chromosomes hold
	// GenesPerStep genes per step for every pool member
	MaxEvolveSteps = 1 << 16
)

// Logging
const (
	// LogVerbosity is the default klog verbosity when debug logging is enabled
	LogVerbosity = 2
)
