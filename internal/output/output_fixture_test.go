package output

import (
	"time"

	"github.com/dotcommander/tmmi/internal/scoring"
	"github.com/dotcommander/tmmi/internal/types"
)

func fixtureQuestions() []types.Question {
	q := func(id string, level types.Level, pa, sp, sg string, p types.Priority) types.Question {
		return types.Question{
			ID:                  id,
			Level:               level,
			ProcessArea:         types.ProcessArea(pa),
			Text:                "Question " + id,
			Priority:            p,
			RecommendedActivity: "activity " + id,
			ReferenceURL:        "https://tmmi.example/" + id,
			SpecificPractice:    types.PracticeID(sp),
			SpecificGoal:        types.GoalID(sg),
		}
	}
	return []types.Question{
		q("L2_TP_001", 2, "Test Planning", "SP2.1.1", "SG2.1", types.PriorityHigh),
		q("L2_TP_002", 2, "Test Planning", "SP2.1.2", "SG2.1", types.PriorityMedium),
		q("L3_TO_001", 3, "Test Organization", "SP3.1.1", "SG3.1", types.PriorityHigh),
		q("L3_TO_002", 3, "Test Organization", "SP3.1.1", "SG3.1", types.PriorityLow),
	}
}

func fixtureSummary() scoring.Summary {
	assessment := types.Assessment{
		ID:           "a-1",
		Timestamp:    time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		ReviewerName: "Sam",
		Organization: "Acme",
		Answers: []types.Answer{
			{QuestionID: "L2_TP_001", Value: types.AnswerYes, EvidenceURL: "https://wiki/plan"},
			{QuestionID: "L2_TP_002", Value: types.AnswerYes},
			{QuestionID: "L3_TO_001", Value: types.AnswerPartial},
		},
	}
	return scoring.SummarizeAssessment(fixtureQuestions(), assessment)
}
