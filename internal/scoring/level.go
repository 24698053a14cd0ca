package scoring

import (
	"fmt"

	"github.com/dotcommander/tmmi/internal/types"
)

// LevelAttainment is the leaf-level attainment of every maturity level in the catalog.
func LevelAttainment(questions []types.Question, answers []types.Answer) Grouped[types.Level] {
	return AggregateBy(questions, answers, ByLevel)
}

// DetermineLevel returns the highest level whose attainment, and that of every lower
// assessed level, is at or above threshold. Level 1 needs nothing. Levels missing from
// the catalog are never promoted to but do not block the levels above them.
func DetermineLevel(levels Grouped[types.Level], threshold float64) (types.Level, string) {
	current := types.LevelInitial
	explanation := "Level 1 (Initial) - Ad-hoc testing processes"

	for level := types.MinAssessedLevel; level <= types.MaxLevel; level++ {
		att, ok := levels.Get(level)
		if !ok || att.Percentage < threshold {
			continue
		}
		if !lowerLevelsMeet(levels, level, threshold) {
			continue
		}
		current = level
		explanation = fmt.Sprintf("Level %d (%s) - %.1f%% compliance", level, level.Label(), att.Percentage)
	}

	return current, explanation
}

func lowerLevelsMeet(levels Grouped[types.Level], level types.Level, threshold float64) bool {
	for lower := types.MinAssessedLevel; lower < level; lower++ {
		if att, ok := levels.Get(lower); ok && att.Percentage < threshold {
			return false
		}
	}
	return true
}
