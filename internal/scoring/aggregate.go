package scoring

import (
	"github.com/dotcommander/tmmi/internal/types"
)

// ByLevel groups questions by maturity level.
func ByLevel(q types.Question) (types.Level, bool) {
	return q.Level, true
}

// ByProcessArea groups questions by process area.
func ByProcessArea(q types.Question) (types.ProcessArea, bool) {
	return q.ProcessArea, q.ProcessArea != ""
}

// BySpecificPractice groups tagged questions by specific practice.
func BySpecificPractice(q types.Question) (types.PracticeID, bool) {
	return q.SpecificPractice, q.SpecificPractice != ""
}

// BySpecificGoal groups tagged questions by specific goal.
func BySpecificGoal(q types.Question) (types.GoalID, bool) {
	return q.SpecificGoal, q.SpecificGoal != ""
}

// ByGenericGoal groups tagged questions by their generic goal reference.
func ByGenericGoal(q types.Question) (types.GenericGoalRef, bool) {
	return q.GenericGoal, q.GenericGoal != ""
}

// AggregateBy sums answer scores per group. key maps a question to its group; ok=false
// leaves the question out of every group. The group size is the number of catalog
// questions in the group, answered or not, so unanswered questions lower the percentage.
func AggregateBy[K comparable](questions []types.Question, answers []types.Answer, key func(types.Question) (K, bool)) Grouped[K] {
	lookup := indexAnswers(questions, answers)
	g := Grouped[K]{byKey: make(map[K]Attainment)}

	for _, q := range questions {
		k, ok := key(q)
		if !ok {
			continue
		}
		att, seen := g.byKey[k]
		if !seen {
			g.keys = append(g.keys, k)
		}
		att.QuestionCount++
		if ans, answered := lookup[q.ID]; answered {
			att.record(ans)
		}
		g.byKey[k] = att
	}

	for _, k := range g.keys {
		att := g.byKey[k]
		if att.QuestionCount > 0 {
			att.Percentage = att.TotalScore / float64(att.QuestionCount) * 100
		}
		att.Band = BandFor(att.Percentage)
		g.byKey[k] = att
	}

	return g
}

// record adds one answer. Anything other than Yes or Partial counts as No.
func (a *Attainment) record(ans types.Answer) {
	a.TotalScore += ScoreAnswer(ans.Value)
	a.AnsweredCount++
	switch ans.Value {
	case types.AnswerYes:
		a.YesCount++
	case types.AnswerPartial:
		a.PartialCount++
	default:
		a.NoCount++
	}
	if ans.HasEvidence() {
		a.EvidenceCount++
	}
}

// PracticeAttainment is the leaf-level attainment of every specific practice.
func PracticeAttainment(questions []types.Question, answers []types.Answer) Grouped[types.PracticeID] {
	return AggregateBy(questions, answers, BySpecificPractice)
}

// GoalAttainment rolls practices up into specific goals. A goal's attainment is the
// unweighted mean of its distinct practices' percentages, however many questions back
// each practice. A goal whose questions carry no practice rolls up to 0%.
func GoalAttainment(questions []types.Question, answers []types.Answer) []GoalRollup {
	return rollupGoals(questions, PracticeAttainment(questions, answers))
}

func rollupGoals(questions []types.Question, practices Grouped[types.PracticeID]) []GoalRollup {
	var goals []GoalRollup
	index := make(map[types.GoalID]int)
	members := make(map[types.GoalID]map[types.PracticeID]struct{})

	for _, q := range questions {
		if q.SpecificGoal == "" {
			continue
		}
		i, seen := index[q.SpecificGoal]
		if !seen {
			i = len(goals)
			index[q.SpecificGoal] = i
			goals = append(goals, GoalRollup{Goal: q.SpecificGoal})
			members[q.SpecificGoal] = make(map[types.PracticeID]struct{})
		}
		if _, ok := practices.Get(q.SpecificPractice); !ok {
			continue
		}
		if _, dup := members[q.SpecificGoal][q.SpecificPractice]; dup {
			continue
		}
		members[q.SpecificGoal][q.SpecificPractice] = struct{}{}
		goals[i].Practices = append(goals[i].Practices, q.SpecificPractice)
	}

	for i := range goals {
		pcts := make([]float64, 0, len(goals[i].Practices))
		for _, sp := range goals[i].Practices {
			att, _ := practices.Get(sp)
			pcts = append(pcts, att.Percentage)
		}
		goals[i].Percentage = mean(pcts)
		goals[i].Band = BandFor(goals[i].Percentage)
	}
	return goals
}

// ProcessAreaAttainment rolls goals up into process areas: the unweighted mean of the
// area's distinct goals. Each area takes the level of its first catalog question.
// An area whose questions carry no goal rolls up to 0%.
func ProcessAreaAttainment(questions []types.Question, answers []types.Answer) []ProcessAreaRollup {
	return rollupProcessAreas(questions, GoalAttainment(questions, answers))
}

func rollupProcessAreas(questions []types.Question, goals []GoalRollup) []ProcessAreaRollup {
	goalPct := make(map[types.GoalID]float64, len(goals))
	for _, g := range goals {
		goalPct[g.Goal] = g.Percentage
	}

	var areas []ProcessAreaRollup
	index := make(map[types.ProcessArea]int)
	members := make(map[types.ProcessArea]map[types.GoalID]struct{})

	for _, q := range questions {
		if q.ProcessArea == "" {
			continue
		}
		i, seen := index[q.ProcessArea]
		if !seen {
			i = len(areas)
			index[q.ProcessArea] = i
			areas = append(areas, ProcessAreaRollup{ProcessArea: q.ProcessArea, Level: q.Level})
			members[q.ProcessArea] = make(map[types.GoalID]struct{})
		}
		if _, ok := goalPct[q.SpecificGoal]; !ok {
			continue
		}
		if _, dup := members[q.ProcessArea][q.SpecificGoal]; dup {
			continue
		}
		members[q.ProcessArea][q.SpecificGoal] = struct{}{}
		areas[i].Goals = append(areas[i].Goals, q.SpecificGoal)
	}

	for i := range areas {
		pcts := make([]float64, 0, len(areas[i].Goals))
		for _, sg := range areas[i].Goals {
			pcts = append(pcts, goalPct[sg])
		}
		areas[i].Percentage = mean(pcts)
		areas[i].Band = BandFor(areas[i].Percentage)
	}
	return areas
}
