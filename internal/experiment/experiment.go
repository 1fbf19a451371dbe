package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/mcint/internal/analysis"
	"github.com/san-kum/mcint/internal/logger"
	"github.com/san-kum/mcint/internal/problems"
	"github.com/san-kum/mcint/internal/sampling"
)

type Config struct {
	Problem   string
	Generator string
	Seed      uint64
	Samples   int
	Counts    []int
}

type Result struct {
	Problem  string        `json:"problem"`
	Samples  int           `json:"samples"`
	Seed     uint64        `json:"seed"`
	Estimate float64       `json:"estimate"`
	Exact    float64       `json:"exact,omitempty"`
	HasExact bool          `json:"has_exact"`
	AbsErr   float64       `json:"absolute_error,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Experiment binds one problem to one seeded source. Successive calls draw
// from the same advancing stream.
type Experiment struct {
	cfg     Config
	problem problems.Problem
	src     sampling.Source
}

func New(cfg Config, registry *problems.Registry) (*Experiment, error) {
	p, err := registry.Get(cfg.Problem)
	if err != nil {
		return nil, err
	}
	src, err := sampling.NewSource(cfg.Generator, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, problem: p, src: src}, nil
}

func (e *Experiment) Problem() problems.Problem { return e.problem }
func (e *Experiment) Config() Config            { return e.cfg }

// Estimate runs the problem once with cfg.Samples points.
func (e *Experiment) Estimate(ctx context.Context) (*Result, error) {
	ctx = logger.WithFields(ctx, zap.String("problem", e.problem.Name), zap.Uint64("seed", e.cfg.Seed))
	logger.Debug(ctx, "estimating", zap.Int("samples", e.cfg.Samples), zap.Int("dim", e.problem.Dimension()))

	start := time.Now()
	v, err := e.problem.Estimator().Estimate(e.src, e.cfg.Samples)
	if err != nil {
		logger.Error(ctx, "estimate failed", zap.Error(err))
		return nil, err
	}

	res := &Result{
		Problem:  e.problem.Name,
		Samples:  e.cfg.Samples,
		Seed:     e.cfg.Seed,
		Estimate: v,
		Exact:    e.problem.Exact,
		HasExact: e.problem.HasExact,
		Elapsed:  time.Since(start),
	}
	if res.HasExact {
		res.AbsErr = math.Abs(res.Exact - v)
	}

	logger.Info(ctx, "estimate complete",
		zap.Float64("estimate", v),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Converge sweeps cfg.Counts and returns the relative-error record. onPoint,
// when non-nil, sees each entry as soon as it is measured. The context is
// checked between sample counts.
func (e *Experiment) Converge(ctx context.Context, onPoint func(analysis.Point)) (analysis.Record, error) {
	if !e.problem.Convergent() {
		return nil, fmt.Errorf("problem %s: %w", e.problem.Name, analysis.ErrInvalidReference)
	}
	if err := analysis.Validate(e.problem.Exact, e.cfg.Counts); err != nil {
		return nil, err
	}

	ctx = logger.WithFields(ctx, zap.String("problem", e.problem.Name), zap.Uint64("seed", e.cfg.Seed))
	logger.Debug(ctx, "starting sweep", zap.Ints("counts", e.cfg.Counts))

	rec := make(analysis.Record, 0, len(e.cfg.Counts))
	for _, n := range e.cfg.Counts {
		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		default:
		}

		p, err := e.Measure(n)
		if err != nil {
			logger.Error(ctx, "sweep failed", zap.Int("samples", n), zap.Error(err))
			return rec, err
		}
		logger.Debug(ctx, "sweep point", zap.Int("samples", n), zap.Float64("relative_error", p.RelErr))

		rec = append(rec, p)
		if onPoint != nil {
			onPoint(p)
		}
	}

	if slope, err := analysis.FitSlope(rec); err == nil {
		logger.Info(ctx, "sweep complete", zap.Int("points", len(rec)), zap.Float64("slope", slope))
	} else {
		logger.Warn(ctx, "sweep complete without slope", zap.Error(err))
	}
	return rec, nil
}

// Measure produces one convergence entry for n samples.
func (e *Experiment) Measure(n int) (analysis.Point, error) {
	if !e.problem.Convergent() {
		return analysis.Point{}, fmt.Errorf("problem %s: %w", e.problem.Name, analysis.ErrInvalidReference)
	}
	return analysis.Measure(e.src, e.problem.Estimator(), e.problem.Exact, n)
}
