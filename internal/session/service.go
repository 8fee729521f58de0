// Package session orchestrates one learning session: it asks the
// sequencer which skill to practice, asks the content provider for a
// problem, grades answers, feeds the results back into the mastery
// model, and records every attempt as an event.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/abhisek/pal/internal/bkt"
	"github.com/abhisek/pal/internal/content"
	"github.com/abhisek/pal/internal/knowledge"
	"github.com/abhisek/pal/internal/sequencer"
	"github.com/abhisek/pal/internal/store"
)

// ErrAllMastered signals that every skill in the curriculum is at or
// above the mastery threshold. The session is complete.
var ErrAllMastered = errors.New("all skills mastered")

// ErrBlocked signals that unmastered skills remain but none is eligible,
// which can only happen when the curriculum's prerequisites contain a
// cycle the learner cannot enter.
var ErrBlocked = errors.New("remaining skills are blocked by unmet prerequisites")

// ErrNoMoreHints signals that all hints for the current problem have
// already been revealed.
var ErrNoMoreHints = errors.New("no more hints for this problem")

// ErrNoActiveProblem signals a Hint or Submit call with no problem pending.
var ErrNoActiveProblem = errors.New("no active problem")

// ErrNoCurriculum signals a curriculum operation on a practice-only
// session.
var ErrNoCurriculum = errors.New("session has no curriculum")

// Problem is one question presented to the learner.
type Problem struct {
	// SkillID is empty in practice mode, where attempts do not feed the
	// mastery model.
	SkillID   string
	SkillName string
	Text      string
}

// Result is the outcome of one graded attempt.
type Result struct {
	Correct bool

	// Mastery is the learner's mastery estimate for the problem's skill
	// after the update. Zero in practice mode.
	Mastery float64

	// SkillMastered reports whether this attempt pushed the skill to or
	// above the mastery threshold.
	SkillMastered bool

	// Solution is a worked solution, generated only for wrong answers.
	Solution string
}

// SkillMastery is one row of a mastery snapshot, in curriculum order.
type SkillMastery struct {
	ID      string
	Name    string
	Mastery float64
}

// Service drives a single learner's session. Not safe for concurrent use.
type Service struct {
	seq       *sequencer.Sequencer
	content   content.Provider
	events    store.EventRepo
	sessionID string

	current    *Problem
	hints      []string
	hintsShown int
}

// New creates a session over the given sequencer and content provider.
// events may be nil; event persistence is then skipped.
func New(seq *sequencer.Sequencer, provider content.Provider, events store.EventRepo) *Service {
	return &Service{
		seq:       seq,
		content:   provider,
		events:    events,
		sessionID: store.NewSessionID(),
	}
}

// Factory assembles sessions for freshly generated curricula, carrying
// the model parameters and dependencies the screens should not care
// about.
type Factory struct {
	Params    bkt.Params
	Threshold float64
	Content   content.Provider
	Events    store.EventRepo
}

// NewPracticeSession builds a session for standalone practice. There is
// no curriculum: NextProblem returns ErrNoCurriculum and graded attempts
// never touch a mastery model.
func (f Factory) NewPracticeSession() *Service {
	return New(nil, f.Content, f.Events)
}

// NewSession builds a session over graph using the factory's model
// parameters and mastery threshold.
func (f Factory) NewSession(graph *knowledge.Graph) (*Service, error) {
	model, err := bkt.New(f.Params)
	if err != nil {
		return nil, err
	}
	opts := []sequencer.Option{}
	if f.Threshold != 0 {
		opts = append(opts, sequencer.WithMasteryThreshold(f.Threshold))
	}
	seq, err := sequencer.New(graph, model, opts...)
	if err != nil {
		return nil, err
	}
	return New(seq, f.Content, f.Events), nil
}

// SessionID returns the identifier tagging this session's answer events.
func (s *Service) SessionID() string {
	return s.sessionID
}

// Sequencer exposes the underlying sequencer for mastery queries.
func (s *Service) Sequencer() *sequencer.Sequencer {
	return s.seq
}

// NextProblem selects the next eligible skill and generates a problem
// for it. Returns ErrAllMastered when the curriculum is complete and
// ErrBlocked when the remaining skills are locked behind a prerequisite
// cycle.
func (s *Service) NextProblem(ctx context.Context) (*Problem, error) {
	if s.seq == nil {
		return nil, ErrNoCurriculum
	}
	skillID, ok := s.seq.NextSkill()
	if !ok {
		if s.seq.IsFullyMastered() {
			return nil, ErrAllMastered
		}
		return nil, ErrBlocked
	}

	skill, _ := s.seq.Graph().Skill(skillID)
	q, err := s.content.GenerateQuestion(ctx, content.QuestionRequest{
		SkillName: skill.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("generate problem for %q: %w", skill.Name, err)
	}

	s.setProblem(&Problem{SkillID: skill.ID, SkillName: skill.Name, Text: q.Text})
	return s.current, nil
}

// Practice generates a standalone problem outside the curriculum.
// Attempts on practice problems are graded but never update mastery.
func (s *Service) Practice(ctx context.Context, skillName, subTopic, sampleQuestion string) (*Problem, error) {
	q, err := s.content.GenerateQuestion(ctx, content.QuestionRequest{
		SkillName:      skillName,
		SubTopic:       subTopic,
		SampleQuestion: sampleQuestion,
	})
	if err != nil {
		return nil, fmt.Errorf("generate practice problem for %q: %w", skillName, err)
	}

	s.setProblem(&Problem{SkillName: skillName, Text: q.Text})
	return s.current, nil
}

// Current returns the active problem, or nil.
func (s *Service) Current() *Problem {
	return s.current
}

// HintsShown returns how many hints have been revealed for the active
// problem.
func (s *Service) HintsShown() int {
	return s.hintsShown
}

// Hint reveals the next hint for the active problem. Hints are generated
// lazily on the first call and revealed one at a time up to
// content.HintCount.
func (s *Service) Hint(ctx context.Context) (string, error) {
	if s.current == nil {
		return "", ErrNoActiveProblem
	}
	if s.hints == nil {
		hints, err := s.content.GenerateHints(ctx, s.current.Text)
		if err != nil {
			return "", fmt.Errorf("generate hints: %w", err)
		}
		s.hints = hints
	}
	if s.hintsShown >= len(s.hints) {
		return "", ErrNoMoreHints
	}
	hint := s.hints[s.hintsShown]
	s.hintsShown++
	return hint, nil
}

// Submit grades the learner's answer to the active problem. For
// curriculum problems the verdict updates the skill's mastery estimate
// and is appended to the event store. Wrong answers come back with a
// worked solution. The active problem is cleared either way.
func (s *Service) Submit(ctx context.Context, answer string) (*Result, error) {
	if s.current == nil {
		return nil, ErrNoActiveProblem
	}
	problem := s.current

	correct, err := s.content.CheckAnswer(ctx, problem.Text, answer)
	if err != nil {
		return nil, fmt.Errorf("grade answer: %w", err)
	}

	result := &Result{Correct: correct}

	if problem.SkillID != "" {
		if err := s.seq.RecordAnswer(problem.SkillID, correct); err != nil {
			return nil, err
		}
		mastery, _ := s.seq.Mastery(problem.SkillID)
		result.Mastery = mastery
		result.SkillMastered = mastery >= s.seq.MasteryThreshold()

		if s.events != nil {
			ev := store.AnswerEvent{
				SessionID:    s.sessionID,
				SkillID:      problem.SkillID,
				SkillName:    problem.SkillName,
				Correct:      correct,
				MasteryAfter: mastery,
			}
			if err := s.events.AppendAnswer(ctx, ev); err != nil {
				log.Printf("session: record answer event: %v", err)
			}
		}
	}

	if !correct {
		solution, err := s.content.GenerateSolution(ctx, problem.Text)
		if err != nil {
			log.Printf("session: generate solution: %v", err)
		} else {
			result.Solution = solution
		}
	}

	s.clearProblem()
	return result, nil
}

// MasterySnapshot reports every skill's mastery estimate in curriculum
// order. Nil for practice-only sessions.
func (s *Service) MasterySnapshot() []SkillMastery {
	if s.seq == nil {
		return nil
	}
	knowledgeMap := s.seq.Knowledge()
	skills := s.seq.Graph().Skills()

	out := make([]SkillMastery, 0, len(skills))
	for _, sk := range skills {
		out = append(out, SkillMastery{
			ID:      sk.ID,
			Name:    sk.Name,
			Mastery: knowledgeMap[sk.ID],
		})
	}
	return out
}

// Graph returns the session's knowledge graph, nil for practice-only
// sessions.
func (s *Service) Graph() *knowledge.Graph {
	if s.seq == nil {
		return nil
	}
	return s.seq.Graph()
}

func (s *Service) setProblem(p *Problem) {
	s.current = p
	s.hints = nil
	s.hintsShown = 0
}

func (s *Service) clearProblem() {
	s.current = nil
	s.hints = nil
	s.hintsShown = 0
}
