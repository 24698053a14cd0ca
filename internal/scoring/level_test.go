package scoring

import (
	"testing"

	"github.com/dotcommander/tmmi/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDetermineLevel(t *testing.T) {
	tests := []struct {
		name            string
		questions       []types.Question
		answers         []types.Answer
		wantLevel       types.Level
		wantExplanation string
	}{
		{
			name:            "empty catalog stays initial",
			wantLevel:       types.LevelInitial,
			wantExplanation: "Level 1 (Initial) - Ad-hoc testing processes",
		},
		{
			name: "failed lower level blocks a met higher level",
			questions: []types.Question{
				question("Q1", 2, "PA2", types.PriorityHigh),
				question("Q2", 3, "PA3", types.PriorityHigh),
			},
			answers: []types.Answer{
				answer("Q1", types.AnswerNo),
				answer("Q2", types.AnswerYes),
			},
			wantLevel:       types.LevelInitial,
			wantExplanation: "Level 1 (Initial) - Ad-hoc testing processes",
		},
		{
			name: "level two met",
			questions: []types.Question{
				question("Q1", 2, "PA2", types.PriorityHigh),
				question("Q2", 2, "PA2", types.PriorityHigh),
				question("Q3", 3, "PA3", types.PriorityHigh),
			},
			answers: []types.Answer{
				answer("Q1", types.AnswerYes),
				answer("Q2", types.AnswerYes),
				answer("Q3", types.AnswerPartial),
			},
			wantLevel:       types.LevelManaged,
			wantExplanation: "Level 2 (Managed) - 100.0% compliance",
		},
		{
			name: "missing level does not block the level above",
			questions: []types.Question{
				question("Q1", 2, "PA2", types.PriorityHigh),
				question("Q2", 4, "PA4", types.PriorityHigh),
			},
			answers: []types.Answer{
				answer("Q1", types.AnswerYes),
				answer("Q2", types.AnswerYes),
			},
			wantLevel:       types.LevelMeasured,
			wantExplanation: "Level 4 (Measured) - 100.0% compliance",
		},
		{
			name: "exact threshold is met",
			questions: []types.Question{
				question("Q1", 2, "PA2", types.PriorityHigh),
				question("Q2", 2, "PA2", types.PriorityHigh),
				question("Q3", 2, "PA2", types.PriorityHigh),
				question("Q4", 2, "PA2", types.PriorityHigh),
				question("Q5", 2, "PA2", types.PriorityHigh),
			},
			answers: []types.Answer{
				answer("Q1", types.AnswerYes),
				answer("Q2", types.AnswerYes),
				answer("Q3", types.AnswerYes),
				answer("Q4", types.AnswerYes),
				answer("Q5", types.AnswerNo),
			},
			wantLevel:       types.LevelManaged,
			wantExplanation: "Level 2 (Managed) - 80.0% compliance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, explanation := DetermineLevel(LevelAttainment(tt.questions, tt.answers), DefaultLevelThreshold)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantExplanation, explanation)
		})
	}
}

func TestDetermineLevel_CustomThreshold(t *testing.T) {
	questions := []types.Question{
		question("Q1", 2, "PA2", types.PriorityHigh),
		question("Q2", 2, "PA2", types.PriorityHigh),
		question("Q3", 2, "PA2", types.PriorityHigh),
		question("Q4", 2, "PA2", types.PriorityHigh),
	}
	answers := []types.Answer{
		answer("Q1", types.AnswerYes),
		answer("Q2", types.AnswerYes),
		answer("Q3", types.AnswerYes),
	}
	levels := LevelAttainment(questions, answers)

	level, _ := DetermineLevel(levels, DefaultLevelThreshold)
	assert.Equal(t, types.LevelInitial, level)

	level, _ = DetermineLevel(levels, 70)
	assert.Equal(t, types.LevelManaged, level)

	r := NextLevelReadiness(questions, answers, WithLevelThreshold(70))
	assert.Equal(t, types.LevelManaged, r.CurrentLevel)
}
