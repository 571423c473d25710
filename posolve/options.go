package posolve

// config holds the engine's tuning parameters.
type config struct {
	zeroRounding           float64
	normalizationThreshold float64
	maxReductionStepNum    int
	maxOptimizationSteps   int
	maxRepeatExchanges     int
	observer               Observer
}

func defaultConfig() config {
	return config{
		zeroRounding:           1e-9,
		normalizationThreshold: 1000,
		maxReductionStepNum:    5000,
		maxOptimizationSteps:   5000,
		maxRepeatExchanges:     10,
		observer:               noopObserver{},
	}
}

// Option configures an Engine at construction.
type Option func(*config)

// WithZeroRounding sets the ratio threshold below which a value, or the
// ratio of a value's update to its previous magnitude, is snapped to
// zero.
func WithZeroRounding(r float64) Option {
	if r <= 0 {
		panic("posolve: zeroRounding must be positive")
	}
	return func(c *config) { c.zeroRounding = r }
}

// WithNormalizationThreshold sets the coefficient-scale threshold beyond
// which a combination row is normalized.
func WithNormalizationThreshold(t float64) Option {
	if t <= 0 {
		panic("posolve: normalizationThreshold must be positive")
	}
	return func(c *config) { c.normalizationThreshold = t }
}

// WithMaxReductionStepNum bounds the feasibility phase's error-reduction
// loop.
func WithMaxReductionStepNum(n int) Option {
	if n <= 0 {
		panic("posolve: maxReductionStepNum must be positive")
	}
	return func(c *config) { c.maxReductionStepNum = n }
}

// WithMaxOptimizationSteps bounds the optimization phase's outer loop.
func WithMaxOptimizationSteps(n int) Option {
	if n <= 0 {
		panic("posolve: maxOptimizationSteps must be positive")
	}
	return func(c *config) { c.maxOptimizationSteps = n }
}

// WithMaxRepeatExchanges bounds how many times the resistance-reduction
// loop may repeat the same (free, bound) exchange while tracing a
// potential cycle.
func WithMaxRepeatExchanges(n int) Option {
	if n <= 0 {
		panic("posolve: maxRepeatExchanges must be positive")
	}
	return func(c *config) { c.maxRepeatExchanges = n }
}

// WithObserver attaches an Observer that is notified of internal events —
// pivots, exchanges, suspensions — for tracing and tests. The default is
// a no-op.
func WithObserver(o Observer) Option {
	if o == nil {
		panic("posolve: observer must not be nil")
	}
	return func(c *config) { c.observer = o }
}
