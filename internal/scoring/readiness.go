package scoring

import (
	"fmt"

	"github.com/dotcommander/tmmi/internal/types"
)

// GatingStatus is the hard eligibility decision for advancing to the next level.
type GatingStatus string

// Gating status constants.
const (
	GatingEligible    GatingStatus = "Eligible"
	GatingNotEligible GatingStatus = "Not Eligible"
)

// Gate is the eligibility decision over a set of target-level process areas.
type Gate struct {
	Status       GatingStatus `json:"gating_status"`
	Reason       string       `json:"gating_reason,omitempty"`
	Readiness    float64      `json:"target_level_readiness"`
	Conservative float64      `json:"conservative_readiness"`
}

// Readiness describes how close an organization is to the level above its current one.
type Readiness struct {
	CurrentLevel          types.Level         `json:"current_level"`
	TargetLevel           types.Level         `json:"target_level"`
	TargetLevelReadiness  float64             `json:"target_level_readiness"`
	ConservativeReadiness float64             `json:"conservative_readiness"`
	GatingStatus          GatingStatus        `json:"gating_status"`
	GatingReason          string              `json:"gating_reason,omitempty"`
	TargetProcessAreas    []ProcessAreaRollup `json:"target_process_areas"`
	ProcessAreas          []ProcessAreaRollup `json:"process_areas"`
}

// EvaluateGate decides eligibility over areas. Every area must reach GatingThreshold;
// the reason names the first failing area in order. When not eligible the headline
// readiness is replaced by the lowest area's attainment plus ConservativeBuffer.
func EvaluateGate(areas []ProcessAreaRollup) Gate {
	pcts := make([]float64, 0, len(areas))
	for _, pa := range areas {
		pcts = append(pcts, pa.Percentage)
	}

	gate := Gate{Status: GatingEligible, Readiness: mean(pcts)}
	for _, pa := range areas {
		if pa.Percentage < GatingThreshold {
			gate.Status = GatingNotEligible
			gate.Reason = fmt.Sprintf("Process Area '%s' below %.0f%% (currently %.1f%%)",
				pa.ProcessArea, GatingThreshold, pa.Percentage)
			break
		}
	}

	if gate.Status == GatingNotEligible {
		lowest := pcts[0]
		for _, p := range pcts[1:] {
			if p < lowest {
				lowest = p
			}
		}
		gate.Conservative = lowest + ConservativeBuffer
	} else {
		gate.Conservative = gate.Readiness
	}
	return gate
}

// NextLevelReadiness computes the gating decision and readiness for current level + 1,
// capped at level 5.
func NextLevelReadiness(questions []types.Question, answers []types.Answer, opts ...Option) Readiness {
	o := newOptions(opts)
	current, _ := DetermineLevel(LevelAttainment(questions, answers), o.levelThreshold)
	return readinessFor(current, ProcessAreaAttainment(questions, answers))
}

func readinessFor(current types.Level, areas []ProcessAreaRollup) Readiness {
	target := current + 1
	if target > types.MaxLevel {
		target = types.MaxLevel
	}

	if areas == nil {
		areas = []ProcessAreaRollup{}
	}
	targetAreas := []ProcessAreaRollup{}
	for _, pa := range areas {
		if pa.Level == target {
			targetAreas = append(targetAreas, pa)
		}
	}

	gate := EvaluateGate(targetAreas)
	return Readiness{
		CurrentLevel:          current,
		TargetLevel:           target,
		TargetLevelReadiness:  gate.Readiness,
		ConservativeReadiness: gate.Conservative,
		GatingStatus:          gate.Status,
		GatingReason:          gate.Reason,
		TargetProcessAreas:    targetAreas,
		ProcessAreas:          areas,
	}
}
