package scoring

import (
	"testing"
	"time"

	"github.com/dotcommander/tmmi/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryFixture() ([]types.Question, types.Assessment) {
	questions := []types.Question{
		question("Q1", 2, "PA1", types.PriorityHigh),
		question("Q2", 2, "PA2", types.PriorityMedium),
		question("Q3", 3, "PA1", types.PriorityHigh),
		question("Q4", 3, "PA2", types.PriorityLow),
	}
	assessment := types.Assessment{
		ID:           "a-1",
		Timestamp:    time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC),
		ReviewerName: "Reviewer",
		Organization: "Acme",
		Answers: []types.Answer{
			answerWithEvidence("Q1", types.AnswerYes, "https://evidence/1"),
			answer("Q2", types.AnswerPartial),
			answerWithEvidence("Q3", types.AnswerNo, "https://evidence/3"),
			answer("ORPHAN", types.AnswerYes),
		},
	}
	return questions, assessment
}

func TestSummarizeAssessment(t *testing.T) {
	questions, assessment := summaryFixture()

	s := SummarizeAssessment(questions, assessment)

	assert.Equal(t, "a-1", s.AssessmentID)
	assert.Equal(t, "Acme", s.Organization)
	assert.Equal(t, assessment.Timestamp, s.Timestamp)

	assert.Equal(t, 4, s.TotalQuestions)
	assert.Equal(t, 3, s.AnsweredQuestions, "orphans are not counted")
	assert.Equal(t, 1, s.YesAnswers)
	assert.Equal(t, 1, s.PartialAnswers)
	assert.Equal(t, 1, s.NoAnswers)
	assert.InDelta(t, 37.5, s.OverallPercentage, 1e-9)

	l2, ok := s.LevelAttainment.Get(2)
	require.True(t, ok)
	assert.InDelta(t, 75.0, l2.Percentage, 1e-9)
	l3, _ := s.LevelAttainment.Get(3)
	assert.Equal(t, 0.0, l3.Percentage)

	assert.Equal(t, types.LevelInitial, s.CurrentLevel)
	assert.Equal(t, "Level 1 (Initial) - Ad-hoc testing processes", s.LevelExplanation)

	pa1, _ := s.ProcessAreaAttainment.Get("PA1")
	assert.InDelta(t, 50.0, pa1.Percentage, 1e-9)

	assert.InDelta(t, 200.0/3, s.EvidenceCoverage.Percentage, 1e-9)
	assert.Equal(t, 2, s.EvidenceCoverage.WithEvidence)
	assert.Equal(t, 3, s.EvidenceCoverage.Total)
	assert.InDelta(t, 100.0, s.EvidenceByProcessArea["PA1"].Percentage, 1e-9)

	// No practice tags, so every area rolls up to 0% and the gate fails on the first one.
	assert.Equal(t, types.LevelManaged, s.Readiness.TargetLevel)
	assert.Equal(t, GatingNotEligible, s.Readiness.GatingStatus)
	assert.Equal(t, "Process Area 'PA1' below 50% (currently 0.0%)", s.Readiness.GatingReason)
	assert.InDelta(t, 5.0, s.Readiness.ConservativeReadiness, 1e-9)

	assert.Equal(t, []string{"Q3", "Q2", "Q4"}, gapIDs(s.Gaps))
	assert.Equal(t, 1, s.GapsByPriority[types.PriorityHigh])
	assert.Equal(t, 1, s.GapsByPriority[types.PriorityMedium])
	assert.Equal(t, 1, s.GapsByPriority[types.PriorityLow])
	assert.Equal(t, []string{"Q3"}, gapIDs(s.HighPriorityGaps()))

	assert.Empty(t, s.GenericGoals)
	assert.Empty(t, s.HighRiskAssertions)
}

func TestSummarizeAssessment_Idempotent(t *testing.T) {
	questions, assessment := summaryFixture()
	assert.Equal(t, SummarizeAssessment(questions, assessment), SummarizeAssessment(questions, assessment))
}

func TestSummarizeAssessment_EmptyCatalog(t *testing.T) {
	s := SummarizeAssessment(nil, types.Assessment{Answers: []types.Answer{answer("Q1", types.AnswerYes)}})
	assert.Equal(t, 0, s.TotalQuestions)
	assert.Equal(t, 0, s.AnsweredQuestions)
	assert.Equal(t, 0.0, s.OverallPercentage)
	assert.Equal(t, types.LevelInitial, s.CurrentLevel)
	assert.Empty(t, s.Gaps)
}

func TestSummarizeAssessment_HighRiskAssertions(t *testing.T) {
	questions := []types.Question{
		tagged(question("Q1", 2, "Claimed", types.PriorityHigh), "SP1", "SG1"),
		tagged(question("Q2", 2, "Claimed", types.PriorityHigh), "SP1", "SG1"),
		tagged(question("Q3", 2, "Evidenced", types.PriorityHigh), "SP2", "SG2"),
	}
	assessment := types.Assessment{Answers: []types.Answer{
		answer("Q1", types.AnswerYes),
		answerWithEvidence("Q2", types.AnswerYes, "https://evidence/2"),
		answerWithEvidence("Q3", types.AnswerYes, "https://evidence/3"),
	}}

	s := SummarizeAssessment(questions, assessment)
	assert.Empty(t, s.HighRiskAssertions, "50% evidence is not below the limit")

	assessment.Answers[1].EvidenceURL = ""
	s = SummarizeAssessment(questions, assessment)
	assert.Equal(t, []types.ProcessArea{"Claimed"}, s.HighRiskAssertions)
}

func TestSnapshotOf(t *testing.T) {
	questions, assessment := summaryFixture()
	snap := SnapshotOf(SummarizeAssessment(questions, assessment))

	assert.Equal(t, "a-1", snap.AssessmentID)
	assert.Equal(t, types.LevelInitial, snap.Level)
	assert.InDelta(t, 37.5, snap.Compliance, 1e-9)
	assert.Equal(t, 3, snap.AnsweredCount)
}
