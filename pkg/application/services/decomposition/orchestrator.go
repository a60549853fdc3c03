package decomposition

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/application/dto"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/errors"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/repositories"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/backend"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/events"
)

// Config holds the constructor-level configuration of the solver
type Config struct {
	// MaxIterations caps the refinement loop; exhausting it is a normal
	// outcome (MAX_ITERATIONS), not an error
	MaxIterations int

	// ConvergenceTolerance is the max-norm relative-change threshold
	ConvergenceTolerance float64

	// MajorRouteDistanceKM is the distance above which a route is major
	MajorRouteDistanceKM float64

	// MinRouteFlowThreshold is accepted for forward compatibility and is
	// formally reserved: no extraction or derivation path consults it
	MinRouteFlowThreshold float64

	// EnableWarmStart seeds each iteration's LP from the previous full
	// solution
	EnableWarmStart bool

	// SlackPenalty prices a unit of unmet demand in the objective
	SlackPenalty float64

	// BalanceFactor is the inbound/outbound material-balance fraction
	BalanceFactor float64
}

// DefaultConfig returns the standard solver configuration
func DefaultConfig() Config {
	return Config{
		MaxIterations:        8,
		ConvergenceTolerance: 0.01,
		MajorRouteDistanceKM: 1000,
		EnableWarmStart:      true,
		SlackPenalty:         10000,
		BalanceFactor:        0.9,
	}
}

// Option customizes a Solver
type Option func(*Solver)

// WithLogger injects a logger; the default is a nop logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Solver) { s.logger = logger }
}

// WithBackend injects the LP backend; the default is the gonum simplex
func WithBackend(solver backend.Solver) Option {
	return func(s *Solver) { s.backend = solver }
}

// WithStrategy injects the derivation strategy; the default assigns zero
// flow to minor routes and picks the first matching supplier
func WithStrategy(strategy DerivationStrategy) Option {
	return func(s *Solver) { s.strategy = strategy }
}

// WithEventStore records solve lifecycle events into the given store
func WithEventStore(store events.Store) Option {
	return func(s *Solver) { s.events = store }
}

// WithBaseline supplies a reference solution for the validator's
// accuracy check
func WithBaseline(baseline entities.Solution) Option {
	return func(s *Solver) { s.baseline = baseline }
}

// Solver is the decomposition orchestrator. One instance may be reused
// across sequential solves but is not safe for concurrent calls: each
// Solve owns a private session over the model it is handed, and concurrent
// optimizations require separate instances over separate base models.
type Solver struct {
	config   Config
	backend  backend.Solver
	logger   *zap.Logger
	strategy DerivationStrategy
	events   events.Store
	baseline entities.Solution

	solveCounter int
}

// NewSolver creates a solver with the default configuration
func NewSolver(opts ...Option) (*Solver, error) {
	return NewSolverWithConfig(DefaultConfig(), opts...)
}

// NewSolverWithConfig creates a solver with a custom configuration
func NewSolverWithConfig(config Config, opts ...Option) (*Solver, error) {
	if config.MaxIterations <= 0 {
		return nil, errors.Configurationf("max iterations must be positive, got %d", config.MaxIterations)
	}
	if config.ConvergenceTolerance <= 0 {
		return nil, errors.Configurationf("convergence tolerance must be positive, got %g", config.ConvergenceTolerance)
	}
	if config.MajorRouteDistanceKM < 0 {
		return nil, errors.Configurationf("major route distance cannot be negative, got %g", config.MajorRouteDistanceKM)
	}
	if config.MinRouteFlowThreshold < 0 {
		return nil, errors.Configurationf("min route flow threshold cannot be negative, got %g", config.MinRouteFlowThreshold)
	}
	if config.SlackPenalty <= 0 {
		return nil, errors.Configurationf("slack penalty must be positive, got %g", config.SlackPenalty)
	}
	if config.BalanceFactor <= 0 || config.BalanceFactor > 1 {
		return nil, errors.Configurationf("balance factor must be in (0,1], got %g", config.BalanceFactor)
	}

	s := &Solver{
		config:   config,
		backend:  backend.NewSimplexSolver(backend.Options{}),
		logger:   zap.NewNop(),
		strategy: NewDefaultStrategy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// session is the refinement state scoped to exactly one Solve call,
// preventing accidental sharing across invocations.
type session struct {
	stream string

	core    *entities.CoreVariableSet
	reduced *ReducedModel

	previous entities.Solution
	current  entities.Solution

	changes   []float64
	durations []time.Duration
	status    entities.ConvergenceStatus
}

// Solve runs the decomposition: extract core variables and build the
// reduced model once, then iterate solve → derive → convergence-check
// until stable or the iteration cap. Validation afterwards is advisory
// and log-only; its outcome never fails the solve.
func (s *Solver) Solve(ctx context.Context, model repositories.BaseModel) (*dto.SolveResult, error) {
	start := time.Now()
	s.solveCounter++
	sess := &session{
		stream: fmt.Sprintf("solve-%d", s.solveCounter),
		status: entities.StatusMaxIterations,
	}

	extractor := NewCoreVariableExtractor(s.config.MajorRouteDistanceKM)
	core, err := extractor.Extract(model)
	if err != nil {
		return nil, err
	}
	sess.core = core

	builder := NewReducedModelBuilder(s.config.SlackPenalty, s.config.BalanceFactor)
	reduced, err := builder.Build(model, core)
	if err != nil {
		return nil, err
	}
	sess.reduced = reduced

	fullVariables := len(model.LegalAllocations()) + len(core.Utilization)
	reduction := 1 - float64(core.Size())/float64(fullVariables)

	s.record(sess, events.TypeSolveStarted, map[string]interface{}{
		"core_variables": core.Size(),
		"full_variables": fullVariables,
	})
	s.logger.Info("starting decomposition solve",
		zap.String("stream", sess.stream),
		zap.Int("core_variables", core.Size()),
		zap.Int("full_variables", fullVariables),
		zap.Float64("reduction_ratio", reduction))

	if err := s.iterate(ctx, model, sess); err != nil {
		return nil, err
	}

	validator := NewSolutionValidator(s.config.ConvergenceTolerance, s.logger)
	report := validator.Validate(model, sess.current, s.baseline)
	s.record(sess, events.TypeValidationCompleted, map[string]interface{}{
		"passed":     report.Passed,
		"violations": len(report.Violations),
	})

	result := s.buildResult(model, sess, report)
	result.Metrics.CoreVariables = core.Size()
	result.Metrics.FullVariables = fullVariables
	result.Metrics.ReductionRatio = reduction
	result.Metrics.TotalSolveTime = time.Since(start)

	s.logger.Info("decomposition solve finished",
		zap.String("stream", sess.stream),
		zap.String("status", result.Metrics.Status.String()),
		zap.Int("iterations", result.Metrics.Iterations),
		zap.Duration("elapsed", result.Metrics.TotalSolveTime),
		zap.Bool("validation_passed", report.Passed))

	return result, nil
}

// iterate runs the refinement loop, leaving the last solution and the
// termination status in the session. A backend failure is fatal with no
// retry.
func (s *Solver) iterate(ctx context.Context, model repositories.BaseModel, sess *session) error {
	reducedSolver := NewReducedSolver(s.backend, model.FlowEpsilon())
	derived := NewDerivedFlowComputer(s.config.MajorRouteDistanceKM, s.strategy)
	checker := NewConvergenceChecker(s.config.ConvergenceTolerance)

	for iteration := 1; iteration <= s.config.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return errors.Internal("solve cancelled between iterations", err)
		}
		iterStart := time.Now()

		var warmStart entities.Solution
		if s.config.EnableWarmStart && sess.previous != nil {
			warmStart = sess.previous
		}

		coreSolution, err := reducedSolver.Solve(ctx, sess.reduced, warmStart)
		if err != nil {
			return err
		}

		sess.current = derived.Compute(model, coreSolution)
		sess.durations = append(sess.durations, time.Since(iterStart))

		if sess.previous == nil {
			s.logIteration(sess, iteration, -1)
			sess.previous = sess.current
			continue
		}

		change := checker.MaxRelativeChange(sess.previous, sess.current)
		sess.changes = append(sess.changes, change)
		s.logIteration(sess, iteration, change)

		if change <= s.config.ConvergenceTolerance {
			sess.status = entities.StatusConverged
			s.record(sess, events.TypeConverged, map[string]interface{}{"iteration": iteration})
			return nil
		}
		if diverging(sess.changes) {
			sess.status = entities.StatusDiverging
			s.record(sess, events.TypeDiverged, map[string]interface{}{"iteration": iteration})
			s.logger.Warn("refinement diverging, stopping early",
				zap.String("stream", sess.stream),
				zap.Float64("max_relative_change", change))
			return nil
		}

		sess.previous = sess.current
	}

	sess.status = entities.StatusMaxIterations
	s.record(sess, events.TypeIterationLimit, map[string]interface{}{"iterations": s.config.MaxIterations})
	return nil
}

// diverging reports whether the max relative change has risen strictly
// across the last three checks and left the plausible-noise range.
func diverging(changes []float64) bool {
	n := len(changes)
	if n < 3 {
		return false
	}
	return changes[n-1] > changes[n-2] &&
		changes[n-2] > changes[n-3] &&
		changes[n-1] > 1.0
}

// buildResult resolves the edge-keyed solution into caller-facing
// allocations and assembles the metrics.
func (s *Solver) buildResult(model repositories.BaseModel, sess *session, report ValidationReport) *dto.SolveResult {
	result := &dto.SolveResult{
		ValidationPassed: report.Passed,
		Metrics: entities.DecompositionMetrics{
			Iterations:         len(sess.durations),
			Status:             sess.status,
			IterationDurations: sess.durations,
			ViolationCount:     len(report.Violations),
			TotalCost:          decimal.Zero,
		},
	}
	if s.baseline != nil {
		deviation := report.MaxDeviation
		result.Metrics.AccuracyVsBaseline = &deviation
	}

	for _, edge := range sess.current.SortedKeys() {
		flow := sess.current.Flow(edge)
		from, _ := model.Center(edge.From)
		to, _ := model.Center(edge.To)
		unitCost := model.Cost(edge)
		cost := decimal.NewFromFloat(unitCost).Mul(decimal.NewFromFloat(flow))

		result.Allocations = append(result.Allocations, dto.Allocation{
			From:      from,
			To:        to,
			Commodity: edge.Commodity,
			Flow:      flow,
			UnitCost:  unitCost,
			Cost:      cost,
		})
		result.Metrics.TotalCost = result.Metrics.TotalCost.Add(cost)
	}
	return result
}

func (s *Solver) logIteration(sess *session, iteration int, change float64) {
	fields := []zap.Field{
		zap.String("stream", sess.stream),
		zap.Int("iteration", iteration),
		zap.Int("full_solution_size", len(sess.current)),
	}
	if change >= 0 {
		fields = append(fields, zap.Float64("max_relative_change", change))
	}
	s.logger.Debug("iteration completed", fields...)
	s.record(sess, events.TypeIterationCompleted, map[string]interface{}{
		"iteration": iteration,
	})
}

func (s *Solver) record(sess *session, eventType events.Type, fields map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.Append(events.New(eventType, sess.stream, fields))
}
