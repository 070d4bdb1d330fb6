package spline

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/splines/curve"
	"github.com/npillmayer/splines/polyn"
)

// Options are the numeric knobs of a spline.
type Options struct {
	RootTolerance     float64          // root isolation interval width
	NewtonTolerance   float64          // bracket width of Newton refinement
	NewtonIterations  int              // iteration cap of Newton refinement
	ClosestCandidates int              // segments inspected by closest point queries
	Quadrature        curve.Quadrature // Gauss–Legendre order for arc length
	Resolution        int              // default forward differencing steps per segment
}

// DefaultOptions returns the options used if nothing else is configured.
func DefaultOptions() Options {
	return Options{
		RootTolerance:     polyn.DefaultTolerance,
		NewtonTolerance:   polyn.DefaultNewtonTolerance,
		NewtonIterations:  polyn.DefaultMaxIterations,
		ClosestCandidates: 3,
		Quadrature:        curve.Legendre5,
		Resolution:        30,
	}
}

// Option is a functional option for New.
type Option func(*Options)

// WithOptions replaces all options at once.
func WithOptions(o Options) Option {
	return func(opts *Options) {
		*opts = o
	}
}

// WithQuadrature selects the Gauss–Legendre order for arc length.
func WithQuadrature(q curve.Quadrature) Option {
	return func(opts *Options) {
		opts.Quadrature = q
	}
}

// WithClosestCandidates sets the number of segments (nearest by bounding
// box) which are searched by closest point queries.
func WithClosestCandidates(n int) Option {
	return func(opts *Options) {
		opts.ClosestCandidates = n
	}
}

// WithSolver sets the tolerances of root finding.
func WithSolver(rootTol, newtonTol float64, iterations int) Option {
	return func(opts *Options) {
		opts.RootTolerance = rootTol
		opts.NewtonTolerance = newtonTol
		opts.NewtonIterations = iterations
	}
}

// WithResolution sets the default sampling resolution per segment.
func WithResolution(res int) Option {
	return func(opts *Options) {
		opts.Resolution = res
	}
}

// Validate checks the options for usable values.
func (o Options) Validate() error {
	switch {
	case o.RootTolerance <= 0:
		return fmt.Errorf("%w: root tolerance %g", ErrInvalidOption, o.RootTolerance)
	case o.NewtonTolerance <= 0:
		return fmt.Errorf("%w: Newton tolerance %g", ErrInvalidOption, o.NewtonTolerance)
	case o.NewtonIterations < 1:
		return fmt.Errorf("%w: Newton iterations %d", ErrInvalidOption, o.NewtonIterations)
	case o.ClosestCandidates < 1:
		return fmt.Errorf("%w: closest candidates %d", ErrInvalidOption, o.ClosestCandidates)
	case o.Quadrature < 1:
		return fmt.Errorf("%w: quadrature order %d", ErrInvalidOption, o.Quadrature)
	case o.Resolution < 1:
		return fmt.Errorf("%w: resolution %d", ErrInvalidOption, o.Resolution)
	}
	return nil
}

// Settings derives the curve settings from o.
func (o Options) Settings() curve.Settings {
	return curve.Settings{
		Solver: polyn.Solver{
			Tolerance:       o.RootTolerance,
			NewtonTolerance: o.NewtonTolerance,
			MaxIterations:   o.NewtonIterations,
		},
		Quadrature: o.Quadrature,
	}
}

// Configuration keys read by OptionsFromConfig.
const (
	KeyRootTolerance     = "spline.root-tolerance"
	KeyNewtonTolerance   = "spline.newton-tolerance"
	KeyNewtonIterations  = "spline.newton-iterations"
	KeyClosestCandidates = "spline.closest-candidates"
	KeyQuadrature        = "spline.quadrature"
	KeyResolution        = "spline.resolution"
)

// OptionsFromConfig reads options from a configuration. Keys which are not
// set keep their defaults. Values are read as strings, so that malformed
// numbers are reported instead of read as 0. Values which cannot be parsed,
// or are out of range, result in an error wrapping ErrInvalidOption.
func OptionsFromConfig(conf schuko.Configuration) (Options, error) {
	o := DefaultOptions()
	if conf == nil {
		return o, nil
	}
	floats := []struct {
		key string
		v   *float64
	}{
		{KeyRootTolerance, &o.RootTolerance},
		{KeyNewtonTolerance, &o.NewtonTolerance},
	}
	for _, f := range floats {
		if !conf.IsSet(f.key) {
			continue
		}
		s := conf.GetString(f.key)
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return o, fmt.Errorf("%w: %s = %q", ErrInvalidOption, f.key, s)
		}
		*f.v = x
	}
	quad := int(o.Quadrature)
	ints := []struct {
		key string
		v   *int
	}{
		{KeyNewtonIterations, &o.NewtonIterations},
		{KeyClosestCandidates, &o.ClosestCandidates},
		{KeyQuadrature, &quad},
		{KeyResolution, &o.Resolution},
	}
	for _, i := range ints {
		if !conf.IsSet(i.key) {
			continue
		}
		s := conf.GetString(i.key)
		x, err := strconv.Atoi(s)
		if err != nil {
			return o, fmt.Errorf("%w: %s = %q", ErrInvalidOption, i.key, s)
		}
		*i.v = x
	}
	o.Quadrature = curve.Quadrature(quad)
	if err := o.Validate(); err != nil {
		return o, err
	}
	tracer().Debugf("spline options from configuration: %+v", o)
	return o, nil
}
