package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/pal/internal/bkt"
	"github.com/abhisek/pal/internal/content"
	"github.com/abhisek/pal/internal/knowledge"
	"github.com/abhisek/pal/internal/sequencer"
)

// fakeContent is a scripted content.Provider for session tests.
type fakeContent struct {
	questionText string
	questionErr  error
	hints        []string
	hintsErr     error
	verdict      bool
	gradeErr     error
	solution     string
	solutionErr  error

	questionReqs []content.QuestionRequest
	gradedPairs  [][2]string
}

func (f *fakeContent) GenerateCurriculum(context.Context, string) (*knowledge.Graph, error) {
	return nil, errors.New("not used in session tests")
}

func (f *fakeContent) GenerateQuestion(_ context.Context, req content.QuestionRequest) (*content.Question, error) {
	f.questionReqs = append(f.questionReqs, req)
	if f.questionErr != nil {
		return nil, f.questionErr
	}
	return &content.Question{Text: f.questionText}, nil
}

func (f *fakeContent) GenerateHints(context.Context, string) ([]string, error) {
	if f.hintsErr != nil {
		return nil, f.hintsErr
	}
	return f.hints, nil
}

func (f *fakeContent) CheckAnswer(_ context.Context, problem, answer string) (bool, error) {
	f.gradedPairs = append(f.gradedPairs, [2]string{problem, answer})
	if f.gradeErr != nil {
		return false, f.gradeErr
	}
	return f.verdict, nil
}

func (f *fakeContent) GenerateSolution(context.Context, string) (string, error) {
	if f.solutionErr != nil {
		return "", f.solutionErr
	}
	return f.solution, nil
}

func newTestSequencer(t *testing.T, skills []knowledge.Skill, opts ...sequencer.Option) *sequencer.Sequencer {
	t.Helper()
	graph, err := knowledge.NewGraph(skills)
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}
	model, err := bkt.New(bkt.DefaultParams())
	if err != nil {
		t.Fatalf("bkt.New() error = %v", err)
	}
	seq, err := sequencer.New(graph, model, opts...)
	if err != nil {
		t.Fatalf("sequencer.New() error = %v", err)
	}
	return seq
}

func linearSkills() []knowledge.Skill {
	return []knowledge.Skill{
		{ID: "a", Name: "Skill A"},
		{ID: "b", Name: "Skill B", Prerequisites: []string{"a"}},
	}
}

func TestNextProblem_UsesEligibleSkill(t *testing.T) {
	fc := &fakeContent{questionText: "What is 2 + 2?"}
	svc := New(newTestSequencer(t, linearSkills()), fc, nil)

	p, err := svc.NextProblem(context.Background())
	if err != nil {
		t.Fatalf("NextProblem() error = %v", err)
	}
	if p.SkillID != "a" {
		t.Errorf("SkillID = %q, want %q", p.SkillID, "a")
	}
	if p.Text != "What is 2 + 2?" {
		t.Errorf("Text = %q", p.Text)
	}
	if len(fc.questionReqs) != 1 || fc.questionReqs[0].SkillName != "Skill A" {
		t.Errorf("question requests = %+v, want one for Skill A", fc.questionReqs)
	}
}

func TestNextProblem_AllMastered(t *testing.T) {
	fc := &fakeContent{questionText: "q", verdict: true}
	// One correct answer from PInit 0 lands at PTransit (0.2), so a 0.15
	// threshold masters each skill in a single attempt.
	seq := newTestSequencer(t, linearSkills(), sequencer.WithMasteryThreshold(0.15))
	svc := New(seq, fc, nil)

	for range linearSkills() {
		if _, err := svc.NextProblem(context.Background()); err != nil {
			t.Fatalf("NextProblem() error = %v", err)
		}
		if _, err := svc.Submit(context.Background(), "right"); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	_, err := svc.NextProblem(context.Background())
	if !errors.Is(err, ErrAllMastered) {
		t.Fatalf("NextProblem() error = %v, want ErrAllMastered", err)
	}
}

func TestNextProblem_BlockedByCycle(t *testing.T) {
	skills := []knowledge.Skill{
		{ID: "x", Name: "X", Prerequisites: []string{"y"}},
		{ID: "y", Name: "Y", Prerequisites: []string{"x"}},
	}
	fc := &fakeContent{}
	svc := New(newTestSequencer(t, skills), fc, nil)

	_, err := svc.NextProblem(context.Background())
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("NextProblem() error = %v, want ErrBlocked", err)
	}
	if len(fc.questionReqs) != 0 {
		t.Error("no question should be generated when every skill is blocked")
	}
}

func TestSubmit_CorrectUpdatesMastery(t *testing.T) {
	fc := &fakeContent{questionText: "q", verdict: true}
	svc := New(newTestSequencer(t, linearSkills()), fc, nil)

	if _, err := svc.NextProblem(context.Background()); err != nil {
		t.Fatalf("NextProblem() error = %v", err)
	}
	res, err := svc.Submit(context.Background(), "an answer")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !res.Correct {
		t.Error("Correct = false, want true")
	}
	if res.Mastery <= bkt.DefaultParams().PInit {
		t.Errorf("Mastery = %v, want > PInit after a correct answer", res.Mastery)
	}
	if res.Solution != "" {
		t.Errorf("Solution = %q, want empty for correct answer", res.Solution)
	}
	if svc.Current() != nil {
		t.Error("Current() != nil after Submit")
	}
}

func TestSubmit_WrongIncludesSolution(t *testing.T) {
	fc := &fakeContent{questionText: "q", verdict: false, solution: "Step 1: think."}
	svc := New(newTestSequencer(t, linearSkills()), fc, nil)

	if _, err := svc.NextProblem(context.Background()); err != nil {
		t.Fatalf("NextProblem() error = %v", err)
	}
	res, err := svc.Submit(context.Background(), "wrong")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if res.Correct {
		t.Error("Correct = true, want false")
	}
	if res.Solution != "Step 1: think." {
		t.Errorf("Solution = %q", res.Solution)
	}
}

func TestSubmit_NoActiveProblem(t *testing.T) {
	svc := New(newTestSequencer(t, linearSkills()), &fakeContent{}, nil)

	_, err := svc.Submit(context.Background(), "answer")
	if !errors.Is(err, ErrNoActiveProblem) {
		t.Fatalf("Submit() error = %v, want ErrNoActiveProblem", err)
	}
}

func TestPractice_DoesNotTouchMastery(t *testing.T) {
	fc := &fakeContent{questionText: "practice q", verdict: true}
	seq := newTestSequencer(t, linearSkills())
	svc := New(seq, fc, nil)

	p, err := svc.Practice(context.Background(), "Python Loops", "while loops", "")
	if err != nil {
		t.Fatalf("Practice() error = %v", err)
	}
	if p.SkillID != "" {
		t.Errorf("SkillID = %q, want empty in practice mode", p.SkillID)
	}

	res, err := svc.Submit(context.Background(), "answer")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !res.Correct {
		t.Error("Correct = false, want true")
	}
	if res.Mastery != 0 || res.SkillMastered {
		t.Errorf("practice result carries mastery: %+v", res)
	}

	before := bkt.DefaultParams().PInit
	for id, m := range seq.Knowledge() {
		if m != before {
			t.Errorf("mastery[%q] = %v, want untouched %v", id, m, before)
		}
	}

	req := fc.questionReqs[0]
	if req.SubTopic != "while loops" {
		t.Errorf("SubTopic = %q", req.SubTopic)
	}
}

func TestHint_ProgressiveReveal(t *testing.T) {
	fc := &fakeContent{
		questionText: "q",
		hints:        []string{"first", "second", "third"},
	}
	svc := New(newTestSequencer(t, linearSkills()), fc, nil)

	if _, err := svc.NextProblem(context.Background()); err != nil {
		t.Fatalf("NextProblem() error = %v", err)
	}

	for i, want := range fc.hints {
		got, err := svc.Hint(context.Background())
		if err != nil {
			t.Fatalf("Hint() #%d error = %v", i+1, err)
		}
		if got != want {
			t.Errorf("Hint() #%d = %q, want %q", i+1, got, want)
		}
	}

	_, err := svc.Hint(context.Background())
	if !errors.Is(err, ErrNoMoreHints) {
		t.Fatalf("Hint() #4 error = %v, want ErrNoMoreHints", err)
	}
}

func TestHint_NoActiveProblem(t *testing.T) {
	svc := New(newTestSequencer(t, linearSkills()), &fakeContent{}, nil)

	_, err := svc.Hint(context.Background())
	if !errors.Is(err, ErrNoActiveProblem) {
		t.Fatalf("Hint() error = %v, want ErrNoActiveProblem", err)
	}
}

func TestHint_ResetBetweenProblems(t *testing.T) {
	fc := &fakeContent{
		questionText: "q",
		hints:        []string{"first", "second", "third"},
		verdict:      true,
	}
	svc := New(newTestSequencer(t, linearSkills()), fc, nil)

	if _, err := svc.NextProblem(context.Background()); err != nil {
		t.Fatalf("NextProblem() error = %v", err)
	}
	if _, err := svc.Hint(context.Background()); err != nil {
		t.Fatalf("Hint() error = %v", err)
	}
	if _, err := svc.Submit(context.Background(), "answer"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if _, err := svc.NextProblem(context.Background()); err != nil {
		t.Fatalf("NextProblem() error = %v", err)
	}

	got, err := svc.Hint(context.Background())
	if err != nil {
		t.Fatalf("Hint() error = %v", err)
	}
	if got != "first" {
		t.Errorf("Hint() after new problem = %q, want %q", got, "first")
	}
}

func TestMasterySnapshot_CurriculumOrder(t *testing.T) {
	skills := []knowledge.Skill{
		{ID: "z_last_alphabetically", Name: "Z"},
		{ID: "a_first_alphabetically", Name: "A", Prerequisites: []string{"z_last_alphabetically"}},
	}
	svc := New(newTestSequencer(t, skills), &fakeContent{}, nil)

	snap := svc.MasterySnapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d rows, want 2", len(snap))
	}
	if snap[0].ID != "z_last_alphabetically" || snap[1].ID != "a_first_alphabetically" {
		t.Errorf("snapshot order = [%s, %s], want curriculum order", snap[0].ID, snap[1].ID)
	}
	for _, row := range snap {
		if row.Mastery != bkt.DefaultParams().PInit {
			t.Errorf("Mastery[%s] = %v, want PInit", row.ID, row.Mastery)
		}
	}
}

func TestSubmit_AdvancesThroughCurriculum(t *testing.T) {
	fc := &fakeContent{questionText: "q", verdict: true}
	seq := newTestSequencer(t, linearSkills(), sequencer.WithMasteryThreshold(0.9))
	svc := New(seq, fc, nil)

	// Answer correctly until skill a is mastered, then the next problem
	// must come from skill b.
	for i := 0; i < 50; i++ {
		p, err := svc.NextProblem(context.Background())
		if err != nil {
			t.Fatalf("NextProblem() error = %v", err)
		}
		if p.SkillID == "b" {
			return
		}
		if p.SkillID != "a" {
			t.Fatalf("unexpected skill %q", p.SkillID)
		}
		if _, err := svc.Submit(context.Background(), fmt.Sprintf("answer %d", i)); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	t.Fatal("skill b never became eligible after 50 correct answers on a")
}
