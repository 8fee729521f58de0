package bkt

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func mustModel(t *testing.T, p Params) *Model {
	t.Helper()
	m, err := New(p)
	if err != nil {
		t.Fatalf("New(%+v): %v", p, err)
	}
	return m
}

func TestNew_RejectsOutOfRangeParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"negative p_init", Params{PInit: -0.1, PTransit: 0.2, PSlip: 0.1, PGuess: 0.2}},
		{"p_transit above one", Params{PTransit: 1.5, PSlip: 0.1, PGuess: 0.2}},
		{"negative p_slip", Params{PTransit: 0.2, PSlip: -0.01, PGuess: 0.2}},
		{"p_guess above one", Params{PTransit: 0.2, PSlip: 0.1, PGuess: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.params); err == nil {
				t.Errorf("New(%+v): expected error, got nil", tt.params)
			}
		})
	}
}

func TestNew_AcceptsBoundaryParams(t *testing.T) {
	if _, err := New(Params{PInit: 0, PTransit: 1, PSlip: 0, PGuess: 1}); err != nil {
		t.Errorf("boundary params rejected: %v", err)
	}
}

// TestUpdate_CorrectAnswerExactValue pins the full derivation with default
// parameters and a 0.5 prior:
//
//	numerator   = 0.5 * (1 - 0.1)      = 0.45
//	denominator = 0.45 + 0.5 * 0.2     = 0.55
//	posterior   = 0.45 / 0.55          = 9/11
//	final       = 9/11 + (2/11) * 0.2  = 9.4/11
func TestUpdate_CorrectAnswerExactValue(t *testing.T) {
	m := mustModel(t, DefaultParams())

	got := m.Update(0.5, true)

	posterior := 0.45 / 0.55
	want := posterior + (1-posterior)*0.2
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("Update(0.5, true) = %v, want %v", got, want)
	}
	// Sanity: the literal value, not the 0.875 folk approximation.
	if math.Abs(got-9.4/11.0) > 1e-12 {
		t.Errorf("Update(0.5, true) = %v, want 9.4/11 ≈ %v", got, 9.4/11.0)
	}
}

func TestUpdate_IncorrectAnswerExactValue(t *testing.T) {
	m := mustModel(t, DefaultParams())

	got := m.Update(0.5, false)

	// numerator = 0.5*0.1 = 0.05; denominator = 0.05 + 0.5*0.8 = 0.45
	posterior := 0.05 / 0.45
	want := posterior + (1-posterior)*0.2
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("Update(0.5, false) = %v, want %v", got, want)
	}
}

func TestUpdate_ZeroDenominatorReturnsPrior(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		prior   float64
		correct bool
	}{
		// Prior 0, guess impossible, correct answer: both hypotheses
		// assign the observation probability zero.
		{"zero prior, zero guess, correct", Params{PTransit: 0.2, PSlip: 0.1, PGuess: 0}, 0, true},
		// Prior 1, slip impossible, incorrect answer.
		{"one prior, zero slip, incorrect", Params{PTransit: 0.2, PSlip: 0, PGuess: 0.2}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustModel(t, tt.params)
			got := m.Update(tt.prior, tt.correct)
			if got != tt.prior {
				t.Errorf("Update(%v, %t) = %v, want prior %v unchanged", tt.prior, tt.correct, got, tt.prior)
			}
		})
	}
}

func TestUpdate_ClampsPriorOutsideUnitInterval(t *testing.T) {
	m := mustModel(t, DefaultParams())

	if got, want := m.Update(-0.5, true), m.Update(0, true); got != want {
		t.Errorf("Update(-0.5, true) = %v, want same as Update(0, true) = %v", got, want)
	}
	if got, want := m.Update(1.5, false), m.Update(1, false); got != want {
		t.Errorf("Update(1.5, false) = %v, want same as Update(1, false) = %v", got, want)
	}
}

func TestUpdate_Stateless(t *testing.T) {
	m := mustModel(t, DefaultParams())

	first := m.Update(0.3, true)
	m.Update(0.9, false)
	m.Update(0.1, true)
	if again := m.Update(0.3, true); again != first {
		t.Errorf("Update(0.3, true) changed across calls: %v then %v", first, again)
	}
}

// TestUpdate_Properties checks the model invariants for arbitrary
// priors and several parameter sets: the result stays in [0, 1], and the
// transition step never lowers the Bayes posterior.
func TestUpdate_Properties(t *testing.T) {
	paramSets := []Params{
		DefaultParams(),
		{PInit: 0.1, PTransit: 0.05, PSlip: 0.25, PGuess: 0.25},
		{PInit: 0.0, PTransit: 0.9, PSlip: 0.01, PGuess: 0.5},
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("result is a probability", prop.ForAll(
		func(prior float64, correct bool) bool {
			for _, ps := range paramSets {
				m, err := New(ps)
				if err != nil {
					return false
				}
				got := m.Update(prior, correct)
				if got < 0 || got > 1 || math.IsNaN(got) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 1),
		gen.Bool(),
	))

	properties.Property("transition step never lowers the posterior", prop.ForAll(
		func(prior float64, correct bool) bool {
			for _, ps := range paramSets {
				m, err := New(ps)
				if err != nil {
					return false
				}
				final := m.Update(prior, correct)

				var num, den float64
				if correct {
					num = prior * (1 - ps.PSlip)
					den = num + (1-prior)*ps.PGuess
				} else {
					num = prior * ps.PSlip
					den = num + (1-prior)*(1-ps.PGuess)
				}
				if den == 0 {
					continue
				}
				if final < num/den-1e-12 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 1),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
