package srs

// Params defines all configurable parameters for the review scheduling
// algorithm. The defaults implement the fixed-step SM-2 variant: successful
// recall nudges the ease factor up by a constant, a lapse pulls it down by a
// larger constant and halves the interval.
type Params struct {
	// Core limits for the ease factor multiplier.
	MinEaseFactor float64
	MaxEaseFactor float64

	// SuccessEaseBonus is added to the ease factor on successful recall.
	// The bonus is a fixed step, not proportional to the quality grade.
	SuccessEaseBonus float64

	// FailureEasePenalty is subtracted from the ease factor on a lapse.
	// Deliberately larger than the bonus: forgetting is penalized faster
	// than mastery accrues.
	FailureEasePenalty float64

	// FailureIntervalFactor scales the interval after a lapse.
	FailureIntervalFactor float64

	// RelearnIntervalDays is the fixed short interval scheduled after a
	// lapse, regardless of the computed interval.
	RelearnIntervalDays int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the corresponding default.
type ParamsConfig struct {
	MinEaseFactor float64
	MaxEaseFactor float64

	SuccessEaseBonus   float64
	FailureEasePenalty float64

	FailureIntervalFactor float64
	RelearnIntervalDays   int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 2.5,

		SuccessEaseBonus:   0.1,
		FailureEasePenalty: 0.2,

		FailureIntervalFactor: 0.5,
		RelearnIntervalDays:   1,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}

	if config.SuccessEaseBonus > 0 {
		params.SuccessEaseBonus = config.SuccessEaseBonus
	}
	if config.FailureEasePenalty > 0 {
		params.FailureEasePenalty = config.FailureEasePenalty
	}

	if config.FailureIntervalFactor > 0 {
		params.FailureIntervalFactor = config.FailureIntervalFactor
	}
	if config.RelearnIntervalDays > 0 {
		params.RelearnIntervalDays = config.RelearnIntervalDays
	}

	return params
}
