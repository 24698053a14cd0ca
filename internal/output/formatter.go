// Package output renders engine results for people (console) and machines (JSON).
package output

import (
	"github.com/dotcommander/tmmi/internal/catalog"
	"github.com/dotcommander/tmmi/internal/scoring"
)

// Tool identity written into JSON report headers.
const (
	ToolName = "tmmi"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// Formatter renders each kind of report the CLI produces.
type Formatter interface {
	FormatSummary(s scoring.Summary) error
	FormatReadiness(r scoring.Readiness) error
	FormatGaps(r GapReport) error
	FormatProgress(p scoring.Progress) error
	FormatIssues(issues []catalog.Issue) error
}

// GapReport is a gap list after baseline filtering.
type GapReport struct {
	Enhanced bool          `json:"enhanced"`
	Ignored  int           `json:"baseline_ignored"`
	Gaps     []scoring.Gap `json:"gaps"`
}
