package scoring

import (
	"time"

	"github.com/dotcommander/tmmi/internal/types"
)

// HighRiskEvidenceMax is the evidence coverage below which a fully achieved
// process area is flagged as a high-risk assertion.
const HighRiskEvidenceMax = 50.0

// Summary is everything presentation code needs about one assessment.
type Summary struct {
	AssessmentID     string      `json:"assessment_id,omitempty"`
	Timestamp        time.Time   `json:"timestamp"`
	ReviewerName     string      `json:"reviewer_name"`
	Organization     string      `json:"organization"`
	CurrentLevel     types.Level `json:"current_level"`
	LevelExplanation string      `json:"level_explanation"`

	OverallPercentage float64 `json:"overall_percentage"`
	TotalQuestions    int     `json:"total_questions"`
	AnsweredQuestions int     `json:"answered_questions"`
	YesAnswers        int     `json:"yes_answers"`
	PartialAnswers    int     `json:"partial_answers"`
	NoAnswers         int     `json:"no_answers"`

	LevelAttainment       Grouped[types.Level]       `json:"level_compliance"`
	ProcessAreaAttainment Grouped[types.ProcessArea] `json:"process_area_compliance"`
	ProcessAreaRollups    []ProcessAreaRollup        `json:"process_areas"`
	Readiness             Readiness                  `json:"readiness"`

	Gaps           []Gap                  `json:"gaps"`
	EnhancedGaps   []Gap                  `json:"enhanced_gaps"`
	GapsByPriority map[types.Priority]int `json:"gaps_by_priority"`

	GenericGoals          map[string]GenericGoal         `json:"generic_goals"`
	EvidenceCoverage      Coverage                       `json:"evidence_coverage"`
	EvidenceByProcessArea map[types.ProcessArea]Coverage `json:"evidence_coverage_by_pa"`
	HighRiskAssertions    []types.ProcessArea            `json:"high_risk_assertions"`
}

// HighPriorityGaps returns the basic gaps of High priority.
func (s Summary) HighPriorityGaps() []Gap {
	return GapsByPriority(s.Gaps)[types.PriorityHigh]
}

// SummarizeAssessment runs the whole engine over one assessment.
func SummarizeAssessment(questions []types.Question, assessment types.Assessment, opts ...Option) Summary {
	o := newOptions(opts)
	answers := KnownAnswers(questions, assessment.Answers)

	levels := LevelAttainment(questions, answers)
	current, explanation := DetermineLevel(levels, o.levelThreshold)
	rollups := ProcessAreaAttainment(questions, answers)
	gaps := ExtractGaps(questions, answers)

	s := Summary{
		AssessmentID:          assessment.ID,
		Timestamp:             assessment.Timestamp,
		ReviewerName:          assessment.ReviewerName,
		Organization:          assessment.Organization,
		CurrentLevel:          current,
		LevelExplanation:      explanation,
		TotalQuestions:        len(questions),
		AnsweredQuestions:     len(answers),
		LevelAttainment:       levels,
		ProcessAreaAttainment: AggregateBy(questions, answers, ByProcessArea),
		ProcessAreaRollups:    rollups,
		Readiness:             readinessFor(current, rollups),
		Gaps:                  gaps,
		EnhancedGaps:          ExtractGapsEnhanced(questions, answers),
		GapsByPriority:        make(map[types.Priority]int),
		GenericGoals:          GenericGoalCompliance(questions, answers),
		EvidenceCoverage:      EvidenceCoverage(answers),
		EvidenceByProcessArea: EvidenceCoverageBy(questions, answers, ByProcessArea),
	}

	var total float64
	for _, a := range answers {
		total += ScoreAnswer(a.Value)
		switch a.Value {
		case types.AnswerYes:
			s.YesAnswers++
		case types.AnswerPartial:
			s.PartialAnswers++
		case types.AnswerNo:
			s.NoAnswers++
		}
	}
	if len(questions) > 0 {
		s.OverallPercentage = total / float64(len(questions)) * 100
	}

	for p, bucket := range GapsByPriority(gaps) {
		s.GapsByPriority[p] = len(bucket)
	}

	s.HighRiskAssertions = highRiskAssertions(rollups, s.EvidenceByProcessArea)
	return s
}

// highRiskAssertions flags areas claimed as fully achieved with thin evidence.
func highRiskAssertions(areas []ProcessAreaRollup, coverage map[types.ProcessArea]Coverage) []types.ProcessArea {
	out := []types.ProcessArea{}
	for _, pa := range areas {
		if pa.Band != types.BandFully {
			continue
		}
		if coverage[pa.ProcessArea].Percentage < HighRiskEvidenceMax {
			out = append(out, pa.ProcessArea)
		}
	}
	return out
}
