package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewSessionID returns a fresh identifier to tag one learning session's
// answer events.
func NewSessionID() string {
	return uuid.NewString()
}

// AnswerEvent records one graded attempt.
type AnswerEvent struct {
	SessionID    string
	SkillID      string
	SkillName    string
	Correct      bool
	MasteryAfter float64
}

// LLMRequestEvent records one LLM API call.
type LLMRequestEvent struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// SkillStats aggregates answer history for one skill.
type SkillStats struct {
	SkillID   string
	SkillName string
	Attempts  int
	Correct   int
}

// Accuracy returns the historical accuracy ratio for the skill.
func (s SkillStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// LLMStats aggregates LLM usage.
type LLMStats struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and aggregate access to domain events.
type EventRepo interface {
	// AppendAnswer records a graded attempt.
	AppendAnswer(ctx context.Context, ev AnswerEvent) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, ev LLMRequestEvent) error

	// AllSkillStats returns per-skill answer aggregates across all sessions,
	// ordered by skill ID.
	AllSkillStats(ctx context.Context) ([]SkillStats, error)

	// TotalLLMStats returns LLM usage aggregates across all sessions.
	TotalLLMStats(ctx context.Context) (LLMStats, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendAnswer(ctx context.Context, ev AnswerEvent) error {
	const q = `INSERT INTO answer_events
		(session_id, skill_id, skill_name, correct, mastery_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		ev.SessionID, ev.SkillID, ev.SkillName, boolToInt(ev.Correct),
		ev.MasteryAfter, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, ev LLMRequestEvent) error {
	const q = `INSERT INTO llm_request_events
		(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		ev.Provider, ev.Model, ev.Purpose, ev.InputTokens, ev.OutputTokens,
		ev.LatencyMs, boolToInt(ev.Success), ev.ErrorMessage,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append llm request event: %w", err)
	}
	return nil
}

func (r *eventRepo) AllSkillStats(ctx context.Context) ([]SkillStats, error) {
	const q = `SELECT skill_id, skill_name, COUNT(*), COALESCE(SUM(correct), 0)
		FROM answer_events
		GROUP BY skill_id, skill_name
		ORDER BY skill_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query skill stats: %w", err)
	}
	defer rows.Close()

	var out []SkillStats
	for rows.Next() {
		var s SkillStats
		if err := rows.Scan(&s.SkillID, &s.SkillName, &s.Attempts, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan skill stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) TotalLLMStats(ctx context.Context) (LLMStats, error) {
	const q = `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(input_tokens), 0),
		COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events`
	var s LLMStats
	err := r.db.QueryRowContext(ctx, q).Scan(&s.Requests, &s.Failures, &s.InputTokens, &s.OutputTokens)
	if err != nil {
		return LLMStats{}, fmt.Errorf("query llm stats: %w", err)
	}
	return s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
