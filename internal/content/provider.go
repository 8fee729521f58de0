// Package content turns an LLM into the tutor's content provider:
// curriculum design, question generation, hints, grading, and worked
// solutions. The mastery/sequencing core never imports this package; the
// session layer injects it where content is needed.
package content

import (
	"context"

	"github.com/abhisek/pal/internal/knowledge"
)

// HintCount is the number of progressive hints generated per problem.
const HintCount = 3

// QuestionRequest describes the problem to generate.
type QuestionRequest struct {
	// SkillName is the human-readable skill to practice.
	SkillName string

	// SubTopic optionally narrows the skill to a specific focus
	// (practice mode only).
	SubTopic string

	// SampleQuestion optionally gives a style example the generated
	// problem should match (practice mode only).
	SampleQuestion string
}

// Question is one generated practice problem.
type Question struct {
	Text string
}

// Provider is the capability the tutor needs from a content source.
type Provider interface {
	// GenerateCurriculum designs a knowledge graph for a free-form topic.
	GenerateCurriculum(ctx context.Context, topic string) (*knowledge.Graph, error)

	// GenerateQuestion produces one practice problem for a skill.
	GenerateQuestion(ctx context.Context, req QuestionRequest) (*Question, error)

	// GenerateHints produces exactly HintCount progressive hints for a problem.
	GenerateHints(ctx context.Context, problem string) ([]string, error)

	// CheckAnswer grades a learner's answer against the problem.
	CheckAnswer(ctx context.Context, problem, answer string) (bool, error)

	// GenerateSolution produces a step-by-step solution for a problem.
	GenerateSolution(ctx context.Context, problem string) (string, error)
}

// Config holds content generation settings.
type Config struct {
	QuestionMaxTokens   int
	HintsMaxTokens      int
	GradeMaxTokens      int
	SolutionMaxTokens   int
	CurriculumMaxTokens int
	Temperature         float64
}

// DefaultConfig returns sensible defaults for content generation.
func DefaultConfig() Config {
	return Config{
		QuestionMaxTokens:   512,
		HintsMaxTokens:      512,
		GradeMaxTokens:      64,
		SolutionMaxTokens:   1024,
		CurriculumMaxTokens: 1024,
		Temperature:         0.5,
	}
}
