// Package sequencer decides which skill a learner should practice next.
// It owns one learner's per-skill mastery estimates for the lifetime of a
// learning session, updating them through a BKT model and scanning the
// knowledge graph for the first unmastered skill whose prerequisites are
// all mastered.
package sequencer

import (
	"errors"
	"fmt"

	"github.com/abhisek/pal/internal/bkt"
	"github.com/abhisek/pal/internal/knowledge"
)

// DefaultMasteryThreshold is the mastery probability at or above which a
// skill is considered mastered and never re-selected.
const DefaultMasteryThreshold = 0.95

// ErrUnknownSkill is returned by RecordAnswer for a skill ID not present
// in the graph the Sequencer was built with.
var ErrUnknownSkill = errors.New("skill not in knowledge graph")

// Sequencer tracks one learner's mastery across a curriculum.
// It is not safe for concurrent use; give each learner their own instance.
// The BKT model is stateless and may be shared between sequencers.
type Sequencer struct {
	graph     *knowledge.Graph
	model     *bkt.Model
	threshold float64
	mastery   map[string]float64
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithMasteryThreshold overrides the default mastery threshold.
func WithMasteryThreshold(t float64) Option {
	return func(s *Sequencer) {
		s.threshold = t
	}
}

// New creates a Sequencer for the given graph and model, seeding every
// skill's mastery estimate to the model's PInit.
func New(graph *knowledge.Graph, model *bkt.Model, opts ...Option) (*Sequencer, error) {
	if graph == nil || graph.Len() == 0 {
		return nil, fmt.Errorf("sequencer: knowledge graph is empty")
	}
	if model == nil {
		return nil, fmt.Errorf("sequencer: bkt model is required")
	}

	s := &Sequencer{
		graph:     graph,
		model:     model,
		threshold: DefaultMasteryThreshold,
		mastery:   make(map[string]float64, graph.Len()),
	}
	for _, id := range graph.IDs() {
		s.mastery[id] = model.Params().PInit
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.threshold <= 0 || s.threshold > 1 {
		return nil, fmt.Errorf("sequencer: mastery threshold must be in (0, 1], got %v", s.threshold)
	}
	return s, nil
}

// NextSkill returns the ID of the next skill to present: the first skill
// in graph insertion order that is below the mastery threshold and whose
// prerequisites are all at or above it. A skill with no prerequisites is
// always eligible.
//
// The second return is false when no skill qualifies — either everything
// is mastered or the unmastered remainder is blocked by unmet (possibly
// cyclic) prerequisites. Use IsFullyMastered to tell the two apart.
func (s *Sequencer) NextSkill() (string, bool) {
	for _, skill := range s.graph.Skills() {
		if s.mastery[skill.ID] >= s.threshold {
			continue
		}

		eligible := true
		for _, prereqID := range skill.Prerequisites {
			if s.mastery[prereqID] < s.threshold {
				eligible = false
				break
			}
		}
		if eligible {
			return skill.ID, true
		}
	}
	return "", false
}

// RecordAnswer updates the mastery estimate for skillID from one graded
// attempt. Calling it with a skill outside the graph is caller misuse and
// returns ErrUnknownSkill. No other skill's estimate is touched.
func (s *Sequencer) RecordAnswer(skillID string, correct bool) error {
	prior, ok := s.mastery[skillID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, skillID)
	}
	s.mastery[skillID] = s.model.Update(prior, correct)
	return nil
}

// Mastery returns the current mastery estimate for skillID.
func (s *Sequencer) Mastery(skillID string) (float64, bool) {
	p, ok := s.mastery[skillID]
	return p, ok
}

// Knowledge returns a copy of the full mastery table for reporting.
// Mutating the copy has no effect on the sequencer.
func (s *Sequencer) Knowledge() map[string]float64 {
	out := make(map[string]float64, len(s.mastery))
	for id, p := range s.mastery {
		out[id] = p
	}
	return out
}

// MasteryThreshold returns the configured threshold.
func (s *Sequencer) MasteryThreshold() float64 {
	return s.threshold
}

// Graph returns the knowledge graph the sequencer was built with.
func (s *Sequencer) Graph() *knowledge.Graph {
	return s.graph
}

// IsFullyMastered reports whether every skill in the graph is at or above
// the mastery threshold. It distinguishes "all done" from "blocked" when
// NextSkill returns no skill.
func (s *Sequencer) IsFullyMastered() bool {
	for _, id := range s.graph.IDs() {
		if s.mastery[id] < s.threshold {
			return false
		}
	}
	return true
}
