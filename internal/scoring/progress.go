package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dotcommander/tmmi/internal/types"
)

// Snapshot is the part of a summary that is tracked across assessments.
type Snapshot struct {
	AssessmentID  string      `json:"assessment_id,omitempty"`
	Organization  string      `json:"organization"`
	Timestamp     time.Time   `json:"timestamp"`
	Level         types.Level `json:"maturity_level"`
	Compliance    float64     `json:"compliance_percentage"`
	YesCount      int         `json:"yes_count"`
	PartialCount  int         `json:"partial_count"`
	NoCount       int         `json:"no_count"`
	AnsweredCount int         `json:"total_answers"`
}

// SnapshotOf extracts the tracked fields from a summary.
func SnapshotOf(s Summary) Snapshot {
	return Snapshot{
		AssessmentID:  s.AssessmentID,
		Organization:  s.Organization,
		Timestamp:     s.Timestamp,
		Level:         s.CurrentLevel,
		Compliance:    s.OverallPercentage,
		YesCount:      s.YesAnswers,
		PartialCount:  s.PartialAnswers,
		NoCount:       s.NoAnswers,
		AnsweredCount: s.AnsweredQuestions,
	}
}

// Progress compares the first and latest of a series of assessments.
type Progress struct {
	Count            int        `json:"count"`
	First            Snapshot   `json:"first"`
	Latest           Snapshot   `json:"latest"`
	LevelChange      int        `json:"level_change"`
	ComplianceChange float64    `json:"compliance_change"`
	SpanDays         int        `json:"span_days"`
	Trend            float64    `json:"trend"`
	Interpretation   string     `json:"interpretation,omitempty"`
	Timeline         []Snapshot `json:"timeline"`
}

// AnalyzeProgress orders snapshots by time and describes the change between the first and
// the latest. With fewer than two snapshots only Count, Latest and Timeline are set.
func AnalyzeProgress(snapshots []Snapshot) Progress {
	timeline := make([]Snapshot, len(snapshots))
	copy(timeline, snapshots)
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.Before(timeline[j].Timestamp)
	})

	p := Progress{Count: len(timeline), Timeline: timeline}
	if len(timeline) == 0 {
		return p
	}
	p.Latest = timeline[len(timeline)-1]
	if len(timeline) < 2 {
		return p
	}

	p.First = timeline[0]
	p.LevelChange = int(p.Latest.Level - p.First.Level)
	p.ComplianceChange = p.Latest.Compliance - p.First.Compliance
	p.SpanDays = int(p.Latest.Timestamp.Sub(p.First.Timestamp).Hours() / 24)
	p.Trend = p.Latest.Compliance - timeline[len(timeline)-2].Compliance
	p.Interpretation = interpretProgress(p)
	return p
}

func interpretProgress(p Progress) string {
	months := int(math.Round(float64(p.SpanDays) / 30))
	if months < 1 {
		months = 1
	}

	var parts []string
	switch {
	case p.LevelChange >= 2:
		parts = append(parts, fmt.Sprintf("Significant maturity advancement from Level %d to Level %d over %d months.",
			p.First.Level, p.Latest.Level, months))
	case p.LevelChange > 0:
		parts = append(parts, fmt.Sprintf("Steady progression from Level %d to Level %d over %d months.",
			p.First.Level, p.Latest.Level, months))
	case p.LevelChange < 0:
		parts = append(parts, fmt.Sprintf("Maturity level decreased from %d to %d, indicating potential process regression.",
			p.First.Level, p.Latest.Level))
	default:
		parts = append(parts, fmt.Sprintf("Consistent Level %d maturity maintained across assessments.", p.Latest.Level))
	}

	switch {
	case p.ComplianceChange > 10:
		parts = append(parts, fmt.Sprintf("Strong improvement in compliance (+%.1f%%), showing effective process implementation.",
			p.ComplianceChange))
	case p.ComplianceChange > 0:
		parts = append(parts, fmt.Sprintf("Gradual compliance improvement (+%.1f%%).", p.ComplianceChange))
	case p.ComplianceChange < -10:
		parts = append(parts, fmt.Sprintf("Significant compliance decline (-%.1f%%), requiring attention.",
			math.Abs(p.ComplianceChange)))
	}

	if p.Count >= 3 {
		parts = append(parts, fmt.Sprintf("Regular assessment cadence with %d evaluations demonstrates commitment to continuous improvement.",
			p.Count))
	}

	return strings.Join(parts, " ")
}
