package content

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const curriculumSystemPrompt = `You are an expert curriculum designer AI.
Create a knowledge graph for the topic the user names.

Rules:
- The graph must contain 5 to 7 fundamental skills.
- For each skill, create a unique snake_case id, a descriptive name, and a list of prerequisite ids.
- The first skill must have an empty prerequisites list.
- Every prerequisite id must refer to a skill that appears earlier in the list.
- Order the skills from foundational to advanced.`

const questionSystemPrompt = `You are a helpful tutor generating practice problems.
Provide only the problem itself, with no extra conversational text, explanation, or the answer.
The problem should be simple, clear, and suitable for a beginner.`

const hintsSystemPrompt = `You are a helpful tutor. Provide exactly three hints for the given problem,
ordered from a gentle nudge to a near-giveaway. Never state the full answer.`

const gradeSystemPrompt = `You are a precise grading AI. Decide whether the student's answer solves the problem.
Accept equivalent formulations; reject wrong or empty answers.`

const solutionSystemPrompt = `You are an expert teacher. Provide a clear, encouraging, step-by-step solution for the given problem.`

// codingKeywords flag skills where varied question types (write code,
// find the bug, predict the output) keep practice interesting.
var codingKeywords = []string{"python", "javascript", "java", "c++", "go", "sql", "html", "css"}

type questionKind int

const (
	kindPlain questionKind = iota
	kindWriteCode
	kindFindBug
	kindPredictOutput
)

func isCodingTopic(skillName string) bool {
	lower := strings.ToLower(skillName)
	for _, kw := range codingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// pickQuestionKind chooses a question variant for the request.
// Sample-question requests are always style imitations; coding topics
// rotate randomly between the three coding variants.
func pickQuestionKind(req QuestionRequest) questionKind {
	if req.SampleQuestion != "" || !isCodingTopic(req.SkillName) {
		return kindPlain
	}
	return questionKind(1 + rand.IntN(3))
}

// buildQuestionUserMessage constructs the user message for question
// generation.
func buildQuestionUserMessage(req QuestionRequest, kind questionKind) string {
	if s := strings.TrimSpace(req.SampleQuestion); s != "" {
		return fmt.Sprintf(
			"Generate a new, different problem that matches the style, format, and difficulty of this example: %q. The main topic is %q.",
			s, req.SkillName)
	}

	focus := fmt.Sprintf("on the topic of %q", req.SkillName)
	if st := strings.TrimSpace(req.SubTopic); st != "" {
		focus += fmt.Sprintf(" with a specific focus on %q", st)
	}

	switch kind {
	case kindWriteCode:
		return fmt.Sprintf("Ask the user to write a simple piece of code %s.", focus)
	case kindFindBug:
		return fmt.Sprintf(
			"Create a short code snippet %s that contains a single, common bug. Then ask the user to find and fix the bug.",
			focus)
	case kindPredictOutput:
		return fmt.Sprintf(
			"Create a short, non-trivial code snippet %s. Then ask the user to predict the final output of the code when it is run.",
			focus)
	default:
		return fmt.Sprintf("Generate one simple, clear problem suitable for a beginner %s.", focus)
	}
}

func buildHintsUserMessage(problem string) string {
	return fmt.Sprintf("The problem is: %q", problem)
}

func buildGradeUserMessage(problem, answer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem: %s\n\n", problem)
	fmt.Fprintf(&b, "Student's answer: %s\n", answer)
	return b.String()
}

func buildSolutionUserMessage(problem string) string {
	return fmt.Sprintf("The problem is: %s", problem)
}

func buildCurriculumUserMessage(topic string) string {
	return fmt.Sprintf("Topic: %s", topic)
}
