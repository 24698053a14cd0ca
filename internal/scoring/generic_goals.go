package scoring

import (
	"github.com/dotcommander/tmmi/internal/types"
)

// GoalStatus reports whether a generic goal is met.
type GoalStatus string

// Goal status constants.
const (
	GoalMet    GoalStatus = "Met"
	GoalNotMet GoalStatus = "Not Met"
)

// GenericGoal is level-wide compliance over the questions tagged with a generic goal.
type GenericGoal struct {
	Name             string      `json:"name"`
	Level            types.Level `json:"level"`
	Percentage       float64     `json:"attainment_percentage"`
	Band             types.Band  `json:"band"`
	QuestionCount    int         `json:"question_count"`
	AnsweredCount    int         `json:"answered_count"`
	EvidenceCount    int         `json:"evidence_count"`
	EvidenceCoverage float64     `json:"evidence_coverage"`
	Status           GoalStatus  `json:"status"`
}

var genericGoalNames = map[types.Level]string{
	types.LevelManaged:   "GG2 - Managed",
	types.LevelDefined:   "GG3 - Defined",
	types.LevelMeasured:  "GG4 - Quantitatively Managed",
	types.LevelOptimized: "GG5 - Optimizing",
}

func byGenericGoalLevel(q types.Question) (types.Level, bool) {
	if q.GenericGoal == "" {
		return 0, false
	}
	_, ok := genericGoalNames[q.Level]
	return q.Level, ok
}

// GenericGoalCompliance scores each level's generic-goal-tagged questions. Levels with
// no tagged questions are omitted rather than reported as 0%.
func GenericGoalCompliance(questions []types.Question, answers []types.Answer) map[string]GenericGoal {
	tagged := AggregateBy(questions, answers, byGenericGoalLevel)

	out := make(map[string]GenericGoal, tagged.Len())
	for _, level := range tagged.Keys() {
		att, _ := tagged.Get(level)
		gg := GenericGoal{
			Name:          genericGoalNames[level],
			Level:         level,
			Percentage:    att.Percentage,
			Band:          att.Band,
			QuestionCount: att.QuestionCount,
			AnsweredCount: att.AnsweredCount,
			EvidenceCount: att.EvidenceCount,
			Status:        GoalNotMet,
		}
		if att.AnsweredCount > 0 {
			gg.EvidenceCoverage = float64(att.EvidenceCount) / float64(att.AnsweredCount) * 100
		}
		if att.Percentage >= FullyAchievedMin {
			gg.Status = GoalMet
		}
		out[gg.Name] = gg
	}
	return out
}
