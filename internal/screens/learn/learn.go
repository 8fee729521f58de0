// Package learn implements the main tutoring loop: present a problem,
// take an answer, grade it, show feedback, repeat until the curriculum
// is mastered.
package learn

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/content"
	"github.com/abhisek/pal/internal/router"
	"github.com/abhisek/pal/internal/screen"
	"github.com/abhisek/pal/internal/screens/skillmap"
	"github.com/abhisek/pal/internal/session"
	"github.com/abhisek/pal/internal/ui/components"
	"github.com/abhisek/pal/internal/ui/layout"
	"github.com/abhisek/pal/internal/ui/theme"
)

// phase is the learn screen's display state.
type phase int

const (
	phaseLoading  phase = iota // waiting on problem generation
	phaseAnswer                // problem shown, input focused
	phaseGrading               // waiting on the grade
	phaseFeedback              // verdict (and solution) shown
	phaseDone                  // curriculum complete
	phaseBlocked               // remaining skills locked by a prerequisite cycle
	phaseError                 // unrecoverable error
)

// llmTimeout bounds each content generation call.
const llmTimeout = 2 * time.Minute

type problemReadyMsg struct {
	Problem *session.Problem
	Err     error
}

type hintMsg struct {
	Hint string
	Err  error
}

type resultMsg struct {
	Result *session.Result
	Err    error
}

// practiceSpec is set when the screen runs in standalone practice mode.
type practiceSpec struct {
	SkillName      string
	SubTopic       string
	SampleQuestion string
}

// LearnScreen drives one learning or practice session.
type LearnScreen struct {
	svc      *session.Service
	practice *practiceSpec

	phase  phase
	errMsg string

	problem    *session.Problem
	hints      []string
	hintErr    string
	lastResult *session.Result

	answered int
	correct  int

	input components.TextInput
	spin  spinner.Model
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

func newScreen(svc *session.Service, practice *practiceSpec) *LearnScreen {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return &LearnScreen{
		svc:      svc,
		practice: practice,
		input:    components.NewTextInput("Type your answer...", 500),
		spin:     spin,
	}
}

// New creates a learn screen over a curriculum session.
func New(svc *session.Service) *LearnScreen {
	return newScreen(svc, nil)
}

// NewPractice creates a learn screen that serves standalone practice
// problems for one skill instead of walking a curriculum.
func NewPractice(svc *session.Service, skillName, subTopic, sampleQuestion string) *LearnScreen {
	return newScreen(svc, &practiceSpec{
		SkillName:      skillName,
		SubTopic:       subTopic,
		SampleQuestion: sampleQuestion,
	})
}

func (l *LearnScreen) Init() tea.Cmd {
	return tea.Batch(l.spin.Tick, l.input.Init(), l.loadNextProblem())
}

func (l *LearnScreen) Title() string {
	if l.practice != nil {
		return "Practice"
	}
	return "Learn"
}

func (l *LearnScreen) KeyHints() []layout.KeyHint {
	switch l.phase {
	case phaseAnswer:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
		}
		if len(l.hints) < content.HintCount {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Hint"})
		}
		hints = append(hints,
			layout.KeyHint{Key: "Ctrl+P", Description: "Progress"},
			layout.KeyHint{Key: "Esc", Description: "Quit session"},
		)
		return hints
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next problem"},
			{Key: "Ctrl+P", Description: "Progress"},
			{Key: "Esc", Description: "Quit session"},
		}
	case phaseDone, phaseBlocked, phaseError:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quit session"},
		}
	}
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemReadyMsg:
		return l.handleProblemReady(msg)

	case hintMsg:
		if msg.Err != nil {
			l.hintErr = msg.Err.Error()
			return l, nil
		}
		l.hints = append(l.hints, msg.Hint)
		return l, nil

	case resultMsg:
		return l.handleResult(msg)

	case spinner.TickMsg:
		if l.phase != phaseLoading && l.phase != phaseGrading {
			return l, nil
		}
		var cmd tea.Cmd
		l.spin, cmd = l.spin.Update(msg)
		return l, cmd

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	if l.phase == phaseAnswer {
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LearnScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "ctrl+p" && l.svc.MasterySnapshot() != nil {
		snap := l.svc.MasterySnapshot()
		threshold := l.svc.Sequencer().MasteryThreshold()
		return l, func() tea.Msg {
			return router.PushScreenMsg{Screen: skillmap.New(snap, threshold)}
		}
	}

	switch l.phase {
	case phaseAnswer:
		switch msg.String() {
		case "enter":
			answer := strings.TrimSpace(l.input.Value())
			if answer == "" {
				return l, nil
			}
			l.phase = phaseGrading
			return l, tea.Batch(l.spin.Tick, l.submit(answer))
		case "tab":
			if len(l.hints) < content.HintCount && l.hintErr == "" {
				return l, l.requestHint()
			}
			return l, nil
		default:
			var cmd tea.Cmd
			l.input, cmd = l.input.Update(msg)
			return l, cmd
		}

	case phaseFeedback:
		if msg.String() == "enter" {
			l.phase = phaseLoading
			return l, tea.Batch(l.spin.Tick, l.loadNextProblem())
		}
	}

	return l, nil
}

func (l *LearnScreen) handleProblemReady(msg problemReadyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, session.ErrAllMastered):
		l.phase = phaseDone
		return l, nil
	case errors.Is(msg.Err, session.ErrBlocked):
		l.phase = phaseBlocked
		return l, nil
	case msg.Err != nil:
		l.phase = phaseError
		l.errMsg = msg.Err.Error()
		return l, nil
	}

	l.problem = msg.Problem
	l.hints = nil
	l.hintErr = ""
	l.lastResult = nil
	l.input.Reset()
	l.phase = phaseAnswer
	return l, l.input.Init()
}

func (l *LearnScreen) handleResult(msg resultMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		l.phase = phaseError
		l.errMsg = msg.Err.Error()
		return l, nil
	}

	l.lastResult = msg.Result
	l.answered++
	if msg.Result.Correct {
		l.correct++
	}
	l.input.Submit(msg.Result.Correct)
	l.phase = phaseFeedback
	return l, nil
}

func (l *LearnScreen) loadNextProblem() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
		defer cancel()

		var (
			p   *session.Problem
			err error
		)
		if l.practice != nil {
			p, err = l.svc.Practice(ctx, l.practice.SkillName, l.practice.SubTopic, l.practice.SampleQuestion)
		} else {
			p, err = l.svc.NextProblem(ctx)
		}
		return problemReadyMsg{Problem: p, Err: err}
	}
}

func (l *LearnScreen) requestHint() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
		defer cancel()

		hint, err := l.svc.Hint(ctx)
		return hintMsg{Hint: hint, Err: err}
	}
}

func (l *LearnScreen) submit(answer string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
		defer cancel()

		res, err := l.svc.Submit(ctx, answer)
		return resultMsg{Result: res, Err: err}
	}
}
