package scoring

import (
	"github.com/dotcommander/tmmi/internal/types"
)

// Coverage is the share of answers carrying supporting evidence.
type Coverage struct {
	Percentage   float64 `json:"percentage"`
	WithEvidence int     `json:"with_evidence"`
	Total        int     `json:"total_answers"`
}

// EvidenceCoverage counts answers whose evidence is non-blank. Empty input yields the zero record.
func EvidenceCoverage(answers []types.Answer) Coverage {
	if len(answers) == 0 {
		return Coverage{}
	}

	var with int
	for _, a := range answers {
		if a.HasEvidence() {
			with++
		}
	}
	return Coverage{
		Percentage:   float64(with) / float64(len(answers)) * 100,
		WithEvidence: with,
		Total:        len(answers),
	}
}

// EvidenceCoverageBy computes coverage per group by filtering the answers to each group's
// questions. Groups without any answers are omitted.
func EvidenceCoverageBy[K comparable](questions []types.Question, answers []types.Answer, key func(types.Question) (K, bool)) map[K]Coverage {
	groupOf := make(map[string]K, len(questions))
	for _, q := range questions {
		if k, ok := key(q); ok {
			groupOf[q.ID] = k
		}
	}

	grouped := make(map[K][]types.Answer)
	for _, a := range KnownAnswers(questions, answers) {
		if k, ok := groupOf[a.QuestionID]; ok {
			grouped[k] = append(grouped[k], a)
		}
	}

	out := make(map[K]Coverage, len(grouped))
	for k, group := range grouped {
		out[k] = EvidenceCoverage(group)
	}
	return out
}
