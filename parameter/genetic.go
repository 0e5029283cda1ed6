package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPoolSize is the number of candidates in each population
	GAPoolSize = 50

	// GAGenerations is the number of evaluated populations per run, the random first one included
	GAGenerations = 100

	// GAEliteCount is preserved best performers per generation
	GAEliteCount = 1

	// GAPerturbationRate is probability that a child gets one gene flipped (0.0-1.0)
	GAPerturbationRate = 0.95

	// GACrossoverRate is probability that selected parents are recombined rather than copied
	GACrossoverRate = 0.8

	// GATournamentSize for selection pressure, a tenth of the default pool
	GATournamentSize = GAPoolSize / 10
)

// Chromosome shape
const (
	// StepMultiplier scales the step budget of step-encoded chromosomes:
	// steps = StepMultiplier * (blank cells + entrance + exit)
	StepMultiplier = 2

	// GenesPerStep is the gene-pair width of one move
	GenesPerStep = 2
)

// Fitness Weights - Occupancy
const (
	// OccupancyWeightDistance makes proximity to the exit dominate
	OccupancyWeightDistance = -1000.0

	// OccupancyWeightExcess penalises selected cells beyond the optimal path length
	OccupancyWeightExcess = -1.0
)

// Fitness Weights - Collision Strategies
const (
	CollisionWeightDistance   = -1.0
	CollisionWeightCollisions = -1.0
)

// Fitness Weights - Collision Smart
// The exit bonus dominates the path length term only while
// SmartWeightPathLength*steps < SmartWeightExitFound, i.e. below 2000 steps.
// The default budget of StepMultiplier*(blanks+2) crosses that at about 1000
// open cells, beyond which a long walk without the exit can outscore one that
// reaches it.
const (
	SmartWeightPathLength  = 5.0
	SmartWeightCollisions  = -2.0
	SmartWeightRepetitions = -5.0
	SmartWeightDistance    = -50.0
	SmartWeightExitFound   = 10000.0
)
