package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/pal/internal/knowledge"
	"github.com/abhisek/pal/internal/llm"
)

// Service implements Provider on top of an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

var _ Provider = (*Service)(nil)

// NewService creates an LLM-backed content provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type curriculumOutput struct {
	Skills []struct {
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		Prerequisites []string `json:"prerequisites"`
	} `json:"skills"`
}

// GenerateCurriculum designs a knowledge graph for the topic. The LLM's
// skill order is preserved as the graph's insertion order. Structural
// problems in the generated graph (duplicate ids, dangling prerequisites)
// surface as errors here, before a sequencer is ever built on it.
func (s *Service) GenerateCurriculum(ctx context.Context, topic string) (*knowledge.Graph, error) {
	ctx = llm.WithPurpose(ctx, "curriculum")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: curriculumSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCurriculumUserMessage(topic)},
		},
		Schema:      CurriculumSchema,
		MaxTokens:   s.cfg.CurriculumMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("curriculum generation: %w", err)
	}

	var out curriculumOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse curriculum response: %w", err)
	}

	skills := make([]knowledge.Skill, 0, len(out.Skills))
	for _, sk := range out.Skills {
		skills = append(skills, knowledge.Skill{
			ID:            sk.ID,
			Name:          sk.Name,
			Prerequisites: sk.Prerequisites,
		})
	}

	graph, err := knowledge.NewGraph(skills)
	if err != nil {
		return nil, fmt.Errorf("generated curriculum is invalid: %w", err)
	}
	return graph, nil
}

type questionOutput struct {
	QuestionText string `json:"question_text"`
}

// GenerateQuestion produces one practice problem for a skill.
func (s *Service) GenerateQuestion(ctx context.Context, req QuestionRequest) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question")

	kind := pickQuestionKind(req)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionUserMessage(req, kind)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   s.cfg.QuestionMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	var out questionOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse question response: %w", err)
	}

	text := strings.TrimSpace(out.QuestionText)
	if text == "" {
		return nil, fmt.Errorf("question generation: empty question text")
	}
	return &Question{Text: text}, nil
}

type hintsOutput struct {
	Hints []string `json:"hints"`
}

// GenerateHints produces exactly HintCount progressive hints.
func (s *Service) GenerateHints(ctx context.Context, problem string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "hints")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: hintsSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHintsUserMessage(problem)},
		},
		Schema:      HintsSchema,
		MaxTokens:   s.cfg.HintsMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	var out hintsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse hints response: %w", err)
	}
	if len(out.Hints) != HintCount {
		return nil, fmt.Errorf("hint generation: got %d hints, want %d", len(out.Hints), HintCount)
	}
	return out.Hints, nil
}

type gradeOutput struct {
	Status string `json:"status"`
}

// CheckAnswer grades the learner's answer.
func (s *Service) CheckAnswer(ctx context.Context, problem, answer string) (bool, error) {
	ctx = llm.WithPurpose(ctx, "grade")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: gradeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGradeUserMessage(problem, answer)},
		},
		Schema:    GradeSchema,
		MaxTokens: s.cfg.GradeMaxTokens,
	})
	if err != nil {
		return false, fmt.Errorf("answer grading: %w", err)
	}

	var out gradeOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return false, fmt.Errorf("parse grade response: %w", err)
	}
	return out.Status == "correct", nil
}

// GenerateSolution produces a step-by-step solution as plain text.
func (s *Service) GenerateSolution(ctx context.Context, problem string) (string, error) {
	ctx = llm.WithPurpose(ctx, "solution")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: solutionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSolutionUserMessage(problem)},
		},
		MaxTokens:   s.cfg.SolutionMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("solution generation: %w", err)
	}

	solution := strings.TrimSpace(string(resp.Content))
	if solution == "" {
		return "", fmt.Errorf("solution generation: empty response")
	}
	return solution, nil
}
