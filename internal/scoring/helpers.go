package scoring

import (
	"github.com/dotcommander/tmmi/internal/types"
)

// ScoreAnswer converts an answer value to its numeric score.
// Unknown values score 0 rather than being rejected.
func ScoreAnswer(value types.AnswerValue) float64 {
	switch value {
	case types.AnswerYes:
		return 1.0
	case types.AnswerPartial:
		return 0.5
	default:
		return 0.0
	}
}

// KnownAnswers returns the answers whose question exists in the catalog.
// Answers for unknown questions are dropped. When a question is answered more
// than once the last answer wins, kept at the position of the first.
func KnownAnswers(questions []types.Question, answers []types.Answer) []types.Answer {
	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}

	out := make([]types.Answer, 0, len(answers))
	position := make(map[string]int, len(answers))
	for _, a := range answers {
		if _, ok := known[a.QuestionID]; !ok {
			continue
		}
		if i, seen := position[a.QuestionID]; seen {
			out[i] = a
			continue
		}
		position[a.QuestionID] = len(out)
		out = append(out, a)
	}
	return out
}

// OrphanAnswers returns the question ids of answers that reference no catalog question.
func OrphanAnswers(questions []types.Question, answers []types.Answer) []string {
	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}

	var orphans []string
	for _, a := range answers {
		if _, ok := known[a.QuestionID]; !ok {
			orphans = append(orphans, a.QuestionID)
		}
	}
	return orphans
}

func indexAnswers(questions []types.Question, answers []types.Answer) map[string]types.Answer {
	lookup := make(map[string]types.Answer, len(answers))
	for _, a := range KnownAnswers(questions, answers) {
		lookup[a.QuestionID] = a
	}
	return lookup
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
