// Package bkt implements Bayesian Knowledge Tracing: a four-parameter
// model that updates the estimated probability a learner has mastered a
// skill after each graded attempt.
package bkt

import "fmt"

// Params holds the four BKT probabilities. All must be in [0, 1].
type Params struct {
	// PInit is the prior probability the learner already knows a skill
	// before any instruction.
	PInit float64

	// PTransit is the probability a learner who did not know the skill
	// learns it from one practice attempt.
	PTransit float64

	// PSlip is the probability a learner who knows the skill answers
	// incorrectly anyway.
	PSlip float64

	// PGuess is the probability a learner who does not know the skill
	// answers correctly anyway.
	PGuess float64
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		PInit:    0.0,
		PTransit: 0.2,
		PSlip:    0.1,
		PGuess:   0.2,
	}
}

// Model is an immutable BKT model. It holds no per-learner state and may
// be shared across all skills and learners without synchronization.
type Model struct {
	params Params
}

// New creates a Model, validating that every parameter is a probability.
func New(p Params) (*Model, error) {
	checks := []struct {
		name  string
		value float64
	}{
		{"p_init", p.PInit},
		{"p_transit", p.PTransit},
		{"p_slip", p.PSlip},
		{"p_guess", p.PGuess},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > 1 {
			return nil, fmt.Errorf("bkt: %s must be in [0, 1], got %v", c.name, c.value)
		}
	}
	return &Model{params: p}, nil
}

// Params returns a copy of the model's parameters.
func (m *Model) Params() Params {
	return m.params
}

// Update computes the posterior mastery probability after one graded
// attempt. pMastery is the prior estimate; correct is the attempt outcome.
//
// The update is Bayes' rule over the two hidden states (knows /
// does-not-know), followed by a learning-transition step: even a learner
// assessed as not-yet-mastered may have learned from attempting the
// problem.
//
// Degenerate parameter combinations can drive the Bayes denominator to
// zero (e.g. prior 0, PGuess 0, correct answer). In that case Update
// returns the prior unchanged rather than dividing by zero. A prior
// outside [0, 1] is clamped before use.
func (m *Model) Update(pMastery float64, correct bool) float64 {
	prior := clamp01(pMastery)

	var numerator, denominator float64
	if correct {
		numerator = prior * (1 - m.params.PSlip)
		denominator = numerator + (1-prior)*m.params.PGuess
	} else {
		numerator = prior * m.params.PSlip
		denominator = numerator + (1-prior)*(1-m.params.PGuess)
	}

	if denominator == 0 {
		return prior
	}

	posterior := numerator / denominator
	return posterior + (1-posterior)*m.params.PTransit
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
