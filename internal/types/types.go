// Package types provides the assessment data model shared across the tmmi codebase.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Level is a maturity level. Level 1 is the implicit baseline with no questions.
type Level int

// Maturity level constants.
const (
	LevelInitial   Level = 1
	LevelManaged   Level = 2
	LevelDefined   Level = 3
	LevelMeasured  Level = 4
	LevelOptimized Level = 5
)

// MinAssessedLevel and MaxLevel bound the levels that carry questions.
const (
	MinAssessedLevel = LevelManaged
	MaxLevel         = LevelOptimized
)

// Label returns the level's display name.
func (l Level) Label() string {
	switch l {
	case LevelInitial:
		return "Initial"
	case LevelManaged:
		return "Managed"
	case LevelDefined:
		return "Defined"
	case LevelMeasured:
		return "Measured"
	case LevelOptimized:
		return "Optimized"
	default:
		return "Unknown"
	}
}

// Group key types. Each aggregation is keyed by one of these rather than a bare string.
type (
	ProcessArea    string
	PracticeID     string
	GoalID         string
	GenericGoalRef string
)

// Priority is the importance of a question. It orders gaps.
type Priority int

// Priority constants. The zero value is PriorityUnknown, so a question without an
// importance sorts last.
const (
	PriorityUnknown Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

// ParsePriority maps catalog text to a Priority. Unrecognised text is PriorityUnknown.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return PriorityUnknown
	}
}

// Rank is the sort rank: High=0, Medium=1, Low=2, unknown=3.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	*p = ParsePriority(string(text))
	return nil
}

// AnswerValue is the respondent's answer to a question.
type AnswerValue string

// Answer value constants. NotAnswered only appears in gap records.
const (
	AnswerYes         AnswerValue = "Yes"
	AnswerPartial     AnswerValue = "Partial"
	AnswerNo          AnswerValue = "No"
	AnswerNotAnswered AnswerValue = "Not Answered"
)

// Band is the qualitative achievement classification of an attainment percentage.
type Band int

// Band constants, lowest first.
const (
	BandNotAchieved Band = iota
	BandPartially
	BandLargely
	BandFully
)

// String returns the single-letter band code.
func (b Band) String() string {
	switch b {
	case BandFully:
		return "F"
	case BandLargely:
		return "L"
	case BandPartially:
		return "P"
	default:
		return "N"
	}
}

// Label returns the band's long name.
func (b Band) Label() string {
	switch b {
	case BandFully:
		return "Fully Achieved"
	case BandLargely:
		return "Largely Achieved"
	case BandPartially:
		return "Partially Achieved"
	default:
		return "Not Achieved"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Band) UnmarshalText(text []byte) error {
	switch string(text) {
	case "F":
		*b = BandFully
	case "L":
		*b = BandLargely
	case "P":
		*b = BandPartially
	case "N":
		*b = BandNotAchieved
	default:
		return fmt.Errorf("unknown band %q", string(text))
	}
	return nil
}

// Question is an immutable catalog entry.
type Question struct {
	ID                  string         `json:"id" yaml:"id"`
	Level               Level          `json:"level" yaml:"level"`
	ProcessArea         ProcessArea    `json:"process_area" yaml:"process_area"`
	Text                string         `json:"question" yaml:"question"`
	Priority            Priority       `json:"importance" yaml:"importance"`
	RecommendedActivity string         `json:"recommended_activity" yaml:"recommended_activity"`
	ReferenceURL        string         `json:"reference_url,omitempty" yaml:"reference_url,omitempty"`
	SpecificPractice    PracticeID     `json:"specific_practice,omitempty" yaml:"specific_practice,omitempty"`
	SpecificGoal        GoalID         `json:"specific_goal,omitempty" yaml:"specific_goal,omitempty"`
	GenericGoal         GenericGoalRef `json:"generic_goal,omitempty" yaml:"generic_goal,omitempty"`
}

// Answer is one respondent's answer to one question.
type Answer struct {
	QuestionID  string      `json:"question_id" yaml:"question_id"`
	Value       AnswerValue `json:"answer" yaml:"answer"`
	EvidenceURL string      `json:"evidence_url,omitempty" yaml:"evidence_url,omitempty"`
	Comment     string      `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// HasEvidence reports whether the evidence URL is non-empty after trimming whitespace.
func (a Answer) HasEvidence() bool {
	return strings.TrimSpace(a.EvidenceURL) != ""
}

// Assessment is an ordered, immutable collection of answers plus metadata.
type Assessment struct {
	ID           string    `json:"id,omitempty" yaml:"id,omitempty"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	ReviewerName string    `json:"reviewer_name" yaml:"reviewer_name"`
	Organization string    `json:"organization" yaml:"organization"`
	Answers      []Answer  `json:"answers" yaml:"answers"`
}
