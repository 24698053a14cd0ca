package scoring

import (
	"fmt"
	"sort"

	"github.com/dotcommander/tmmi/internal/types"
)

// Gap is an unmet or under-met requirement with the action that would close it.
type Gap struct {
	QuestionID          string            `json:"question_id"`
	Level               types.Level       `json:"level"`
	ProcessArea         types.ProcessArea `json:"process_area"`
	SpecificGoal        types.GoalID      `json:"specific_goal,omitempty"`
	SpecificPractice    types.PracticeID  `json:"specific_practice,omitempty"`
	Question            string            `json:"question"`
	CurrentAnswer       types.AnswerValue `json:"current_answer"`
	Priority            types.Priority    `json:"importance"`
	RecommendedActivity string            `json:"recommended_activity"`
	ReferenceURL        string            `json:"reference_url,omitempty"`
	EvidenceURL         string            `json:"evidence_url,omitempty"`
	Comment             string            `json:"comment,omitempty"`
	PracticeAttainment  float64           `json:"sp_attainment"`
	PracticeBand        types.Band        `json:"sp_band"`
	GoalAttainment      float64           `json:"sg_attainment"`
	GoalBand            types.Band        `json:"sg_band"`
	Action              string            `json:"action_to_close"`
}

// ActionToClose picks the remediation action for a question from its current answer,
// priority and the attainment of its owning practice.
func ActionToClose(q types.Question, current types.AnswerValue, practicePct float64) string {
	switch {
	case current == types.AnswerNotAnswered:
		return fmt.Sprintf("Complete assessment for %s - %s", q.ProcessArea, q.Text)
	case current == types.AnswerNo && q.Priority == types.PriorityHigh:
		return fmt.Sprintf("Implement %s - Critical for level %d", q.RecommendedActivity, q.Level)
	case current == types.AnswerNo:
		return fmt.Sprintf("Establish %s", q.RecommendedActivity)
	case current == types.AnswerPartial && practicePct < LargelyAchievedMin:
		return fmt.Sprintf("Strengthen implementation of %s", q.RecommendedActivity)
	case current == types.AnswerPartial:
		return fmt.Sprintf("Complete implementation of %s", q.RecommendedActivity)
	default:
		return "Review and validate current implementation"
	}
}

// ExtractGaps lists every question answered No or Partial, or not answered at all,
// ordered by priority then level.
func ExtractGaps(questions []types.Question, answers []types.Answer) []Gap {
	gaps := collectGaps(questions, answers, func(q types.Question, ans types.Answer, _ float64) bool {
		return ans.Value == types.AnswerNo || ans.Value == types.AnswerPartial
	})
	sort.SliceStable(gaps, func(i, j int) bool {
		return gapLess(gaps[i], gaps[j], false)
	})
	return gaps
}

// ExtractGapsEnhanced also lists answered questions whose specific practice is still below
// FullyAchievedMin, so a Yes can surface when its sibling questions are not met. Ordered by
// priority, level, then practice attainment ascending.
func ExtractGapsEnhanced(questions []types.Question, answers []types.Answer) []Gap {
	gaps := collectGaps(questions, answers, func(q types.Question, ans types.Answer, practicePct float64) bool {
		if ans.Value == types.AnswerNo || ans.Value == types.AnswerPartial {
			return true
		}
		return q.SpecificPractice != "" && practicePct < FullyAchievedMin
	})
	sort.SliceStable(gaps, func(i, j int) bool {
		return gapLess(gaps[i], gaps[j], true)
	})
	return gaps
}

// GapsByPriority buckets gaps by priority, keeping their order.
func GapsByPriority(gaps []Gap) map[types.Priority][]Gap {
	out := make(map[types.Priority][]Gap)
	for _, g := range gaps {
		out[g.Priority] = append(out[g.Priority], g)
	}
	return out
}

type gapFilter func(q types.Question, ans types.Answer, practicePct float64) bool

// collectGaps always includes unanswered questions; answered ones go through include.
func collectGaps(questions []types.Question, answers []types.Answer, include gapFilter) []Gap {
	lookup := indexAnswers(questions, answers)
	practices := PracticeAttainment(questions, answers)
	goals := make(map[types.GoalID]GoalRollup)
	for _, g := range rollupGoals(questions, practices) {
		goals[g.Goal] = g
	}

	gaps := []Gap{}
	for _, q := range questions {
		var practicePct float64
		practiceBand := types.BandNotAchieved
		if att, ok := practices.Get(q.SpecificPractice); ok {
			practicePct, practiceBand = att.Percentage, att.Band
		}

		ans, answered := lookup[q.ID]
		if answered && !include(q, ans, practicePct) {
			continue
		}

		gap := Gap{
			QuestionID:          q.ID,
			Level:               q.Level,
			ProcessArea:         q.ProcessArea,
			SpecificGoal:        q.SpecificGoal,
			SpecificPractice:    q.SpecificPractice,
			Question:            q.Text,
			CurrentAnswer:       types.AnswerNotAnswered,
			Priority:            q.Priority,
			RecommendedActivity: q.RecommendedActivity,
			ReferenceURL:        q.ReferenceURL,
			PracticeAttainment:  practicePct,
			PracticeBand:        practiceBand,
		}
		if g, ok := goals[q.SpecificGoal]; ok {
			gap.GoalAttainment, gap.GoalBand = g.Percentage, g.Band
		}
		if answered {
			gap.CurrentAnswer = ans.Value
			gap.EvidenceURL = ans.EvidenceURL
			gap.Comment = ans.Comment
		}
		gap.Action = ActionToClose(q, gap.CurrentAnswer, practicePct)
		gaps = append(gaps, gap)
	}
	return gaps
}

func gapLess(a, b Gap, byPractice bool) bool {
	if a.Priority.Rank() != b.Priority.Rank() {
		return a.Priority.Rank() < b.Priority.Rank()
	}
	if a.Level != b.Level {
		return a.Level < b.Level
	}
	if byPractice {
		return a.PracticeAttainment < b.PracticeAttainment
	}
	return false
}
