package scoring

import (
	"encoding/json"

	"github.com/dotcommander/tmmi/internal/types"
)

// Thresholds used by the engine. Each serves a different decision and they must stay distinct.
const (
	DefaultLevelThreshold = 80.0 // level promotion
	FullyAchievedMin      = 85.0 // band F, practice compliance, generic goal Met
	LargelyAchievedMin    = 50.0 // band L, readiness gating
	PartiallyAchievedMin  = 15.0 // band P
	GatingThreshold       = LargelyAchievedMin
	ConservativeBuffer    = 5.0
)

// BandFor classifies an attainment percentage. Lower bounds are inclusive.
func BandFor(percentage float64) types.Band {
	switch {
	case percentage >= FullyAchievedMin:
		return types.BandFully
	case percentage >= LargelyAchievedMin:
		return types.BandLargely
	case percentage >= PartiallyAchievedMin:
		return types.BandPartially
	default:
		return types.BandNotAchieved
	}
}

// Attainment is the leaf-level result for one group of catalog questions.
type Attainment struct {
	TotalScore    float64    `json:"total_score"`
	QuestionCount int        `json:"total_questions"`
	AnsweredCount int        `json:"answered_questions"`
	YesCount      int        `json:"yes_count"`
	PartialCount  int        `json:"partial_count"`
	NoCount       int        `json:"no_count"`
	EvidenceCount int        `json:"evidence_count"`
	Percentage    float64    `json:"attainment_percentage"`
	Band          types.Band `json:"band"`
}

// EvidencePercentage is the share of the group's questions that carry evidence.
func (a Attainment) EvidencePercentage() float64 {
	if a.QuestionCount == 0 {
		return 0
	}
	return float64(a.EvidenceCount) / float64(a.QuestionCount) * 100
}

// Grouped holds attainment per group key in catalog (first appearance) order.
type Grouped[K comparable] struct {
	keys  []K
	byKey map[K]Attainment
}

// Keys returns the group keys in catalog order.
func (g Grouped[K]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the attainment for key k.
func (g Grouped[K]) Get(k K) (Attainment, bool) {
	a, ok := g.byKey[k]
	return a, ok
}

// Len returns the number of groups.
func (g Grouped[K]) Len() int {
	return len(g.keys)
}

// MarshalJSON encodes the groups as an object keyed by group key.
func (g Grouped[K]) MarshalJSON() ([]byte, error) {
	if g.byKey == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(g.byKey)
}

// GoalRollup is a specific goal's attainment, the mean of its distinct practices.
type GoalRollup struct {
	Goal       types.GoalID       `json:"specific_goal"`
	Practices  []types.PracticeID `json:"specific_practices"`
	Percentage float64            `json:"attainment_percentage"`
	Band       types.Band         `json:"band"`
}

// ProcessAreaRollup is a process area's attainment, the mean of its distinct goals.
type ProcessAreaRollup struct {
	ProcessArea types.ProcessArea `json:"process_area"`
	Level       types.Level       `json:"level"`
	Goals       []types.GoalID    `json:"specific_goals"`
	Percentage  float64           `json:"attainment_percentage"`
	Band        types.Band        `json:"band"`
}

// Option configures a scoring call.
type Option func(*options)

type options struct {
	levelThreshold float64
}

// WithLevelThreshold overrides DefaultLevelThreshold for level determination.
// Non-positive values are ignored.
func WithLevelThreshold(threshold float64) Option {
	return func(o *options) {
		if threshold > 0 {
			o.levelThreshold = threshold
		}
	}
}

func newOptions(opts []Option) options {
	o := options{levelThreshold: DefaultLevelThreshold}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
