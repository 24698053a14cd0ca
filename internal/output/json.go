package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/tmmi/internal/catalog"
	"github.com/dotcommander/tmmi/internal/scoring"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	w          io.Writer
	indent     bool
	outputFile string
	now        func() time.Time
}

// NewJSONFormatter creates a new JSONFormatter. A non-empty outputFile takes precedence over w.
func NewJSONFormatter(w io.Writer, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		w:          w,
		indent:     indent,
		outputFile: outputFile,
		now:        time.Now,
	}
}

// JSONReport represents the complete JSON report structure. Exactly one payload is set.
type JSONReport struct {
	Header    JSONHeader         `json:"header"`
	Summary   *scoring.Summary   `json:"summary,omitempty"`
	Readiness *scoring.Readiness `json:"readiness,omitempty"`
	Gaps      *GapReport         `json:"gaps,omitempty"`
	Progress  *scoring.Progress  `json:"progress,omitempty"`
}

// JSONIssuesReport is the validate command's report.
type JSONIssuesReport struct {
	Header JSONHeader      `json:"header"`
	Passed bool            `json:"passed"`
	Issues []catalog.Issue `json:"issues"`
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

func (f *JSONFormatter) FormatSummary(s scoring.Summary) error {
	return f.write(JSONReport{Summary: &s})
}

func (f *JSONFormatter) FormatReadiness(r scoring.Readiness) error {
	return f.write(JSONReport{Readiness: &r})
}

func (f *JSONFormatter) FormatGaps(r GapReport) error {
	return f.write(JSONReport{Gaps: &r})
}

func (f *JSONFormatter) FormatProgress(p scoring.Progress) error {
	return f.write(JSONReport{Progress: &p})
}

func (f *JSONFormatter) FormatIssues(issues []catalog.Issue) error {
	if issues == nil {
		issues = []catalog.Issue{}
	}
	return f.encode(JSONIssuesReport{
		Header: f.header(),
		Passed: !catalog.HasErrors(issues),
		Issues: issues,
	})
}

func (f *JSONFormatter) header() JSONHeader {
	return JSONHeader{
		Tool:      ToolName,
		Version:   Version,
		Timestamp: f.now().Format(time.RFC3339),
	}
}

func (f *JSONFormatter) write(report JSONReport) error {
	report.Header = f.header()
	return f.encode(report)
}

func (f *JSONFormatter) encode(v any) error {
	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(v, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}

	if _, err := fmt.Fprintln(f.w, string(jsonBytes)); err != nil {
		return fmt.Errorf("error writing JSON: %w", err)
	}
	return nil
}
