package outputters

import (
	"fmt"
	"io"

	"github.com/dotcommander/tmmi/internal/catalog"
	"github.com/dotcommander/tmmi/internal/config"
	"github.com/dotcommander/tmmi/internal/output"
	"github.com/dotcommander/tmmi/internal/scoring"
)

// FormatterFactory creates the formatter for a format name.
type FormatterFactory interface {
	CreateFormatter(format string) (output.Formatter, error)
}

// DefaultFormatterFactory builds the console and JSON formatters from configuration.
type DefaultFormatterFactory struct {
	config *config.Config
	w      io.Writer
}

// CreateFormatter implements FormatterFactory.
func (d *DefaultFormatterFactory) CreateFormatter(format string) (output.Formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(d.w, d.config.Quiet, d.config.Verbose, d.config.Gaps.Limit), nil
	case "json":
		return output.NewJSONFormatter(d.w, true, d.config.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	format  string
	factory FormatterFactory
}

// NewOutputter creates an Outputter writing to w in the configured format.
func NewOutputter(config *config.Config, w io.Writer) *Outputter {
	return NewOutputterWithFactory(config.Format, &DefaultFormatterFactory{config: config, w: w})
}

// NewOutputterWithFactory creates an Outputter with a custom factory.
func NewOutputterWithFactory(format string, factory FormatterFactory) *Outputter {
	return &Outputter{format: format, factory: factory}
}

func (o *Outputter) formatter() (output.Formatter, error) {
	f, err := o.factory.CreateFormatter(o.format)
	if err != nil {
		return nil, fmt.Errorf("error creating formatter: %w", err)
	}
	return f, nil
}

// Summary writes a full assessment summary.
func (o *Outputter) Summary(s scoring.Summary) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatSummary(s)
}

// Readiness writes a next-level readiness report.
func (o *Outputter) Readiness(r scoring.Readiness) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatReadiness(r)
}

// Gaps writes a gap list.
func (o *Outputter) Gaps(r output.GapReport) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatGaps(r)
}

// Progress writes a progress analysis.
func (o *Outputter) Progress(p scoring.Progress) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatProgress(p)
}

// Issues writes validation issues.
func (o *Outputter) Issues(issues []catalog.Issue) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatIssues(issues)
}
