package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/tmmi/internal/catalog"
	"github.com/dotcommander/tmmi/internal/scoring"
	"github.com/dotcommander/tmmi/internal/types"
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	w        io.Writer
	r        *lipgloss.Renderer
	quiet    bool
	verbose  bool
	gapLimit int
}

// NewConsoleFormatter creates a new ConsoleFormatter. gapLimit caps the gaps listed
// in a summary; 0 lists all of them.
func NewConsoleFormatter(w io.Writer, quiet, verbose bool, gapLimit int) *ConsoleFormatter {
	return &ConsoleFormatter{
		w:        w,
		r:        lipgloss.NewRenderer(w),
		quiet:    quiet,
		verbose:  verbose,
		gapLimit: gapLimit,
	}
}

func (f *ConsoleFormatter) printf(format string, args ...any) {
	fmt.Fprintf(f.w, format, args...)
}

func (f *ConsoleFormatter) bold(s string) string {
	return f.r.NewStyle().Bold(true).Render(s)
}

func (f *ConsoleFormatter) band(b types.Band) string {
	return f.r.NewStyle().Foreground(bandColor(b)).Bold(true).Render(b.String())
}

func (f *ConsoleFormatter) bandBar(pct float64) string {
	return f.r.NewStyle().Foreground(bandColor(scoring.BandFor(pct))).Render(bar(pct))
}

// FormatSummary prints the level, readiness, attainment tables and top gaps.
func (f *ConsoleFormatter) FormatSummary(s scoring.Summary) error {
	if f.quiet {
		f.printf("%s\n", s.LevelExplanation)
		return nil
	}

	title := "TMMi Assessment"
	if s.Organization != "" {
		title += " - " + s.Organization
	}
	f.printf("%s\n", f.bold(title))
	if !s.Timestamp.IsZero() {
		f.printf("%s", s.Timestamp.Format("2006-01-02"))
		if s.ReviewerName != "" {
			f.printf(" by %s", s.ReviewerName)
		}
		f.printf("\n")
	}
	f.printf("\n%s\n", f.bold(s.LevelExplanation))
	f.printf("Overall %.1f%%  answered %d/%d  (yes %d, partial %d, no %d)\n",
		s.OverallPercentage, s.AnsweredQuestions, s.TotalQuestions,
		s.YesAnswers, s.PartialAnswers, s.NoAnswers)
	f.printf("Evidence %.1f%% (%d/%d answers)\n",
		s.EvidenceCoverage.Percentage, s.EvidenceCoverage.WithEvidence, s.EvidenceCoverage.Total)

	f.printf("\n%s\n", f.bold("Levels"))
	for _, level := range s.LevelAttainment.Keys() {
		att, _ := s.LevelAttainment.Get(level)
		f.printf("  %d %-10s %s %5.1f%% %s\n", level, level.Label(), f.bandBar(att.Percentage), att.Percentage, f.band(att.Band))
	}

	f.printf("\n%s\n", f.bold("Process areas"))
	for _, pa := range s.ProcessAreaRollups {
		leaf, _ := s.ProcessAreaAttainment.Get(pa.ProcessArea)
		f.printf("  L%d %-36s %s %5.1f%% %s", pa.Level, pa.ProcessArea, f.bandBar(pa.Percentage), pa.Percentage, f.band(pa.Band))
		if f.verbose {
			f.printf("  (questions %.1f%%, evidence %.1f%%, goals %d)", leaf.Percentage, leaf.EvidencePercentage(), len(pa.Goals))
		}
		f.printf("\n")
	}

	if len(s.GenericGoals) > 0 {
		f.printf("\n%s\n", f.bold("Generic goals"))
		names := make([]string, 0, len(s.GenericGoals))
		for name := range s.GenericGoals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			gg := s.GenericGoals[name]
			f.printf("  %-30s %5.1f%% %s %s\n", gg.Name, gg.Percentage, f.band(gg.Band), gg.Status)
		}
	}

	f.printf("\n")
	f.printReadiness(s.Readiness)

	if len(s.HighRiskAssertions) > 0 {
		warn := f.r.NewStyle().Foreground(lipgloss.Color("11"))
		f.printf("\n%s\n", warn.Render("⚠ Fully achieved with little evidence:"))
		for _, pa := range s.HighRiskAssertions {
			f.printf("    %s (%.1f%% evidence)\n", pa, s.EvidenceByProcessArea[pa].Percentage)
		}
	}

	if len(s.Gaps) > 0 {
		f.printf("\n%s  high %d, medium %d, low %d\n", f.bold(fmt.Sprintf("Gaps (%d)", len(s.Gaps))),
			len(s.HighPriorityGaps()), s.GapsByPriority[types.PriorityMedium], s.GapsByPriority[types.PriorityLow])
		f.printGapList(s.Gaps, f.gapLimit)
	}
	return nil
}

// FormatReadiness prints the gating decision and the target-level process areas.
func (f *ConsoleFormatter) FormatReadiness(r scoring.Readiness) error {
	if f.quiet {
		f.printf("%s\n", r.GatingStatus)
		return nil
	}
	f.printReadiness(r)
	return nil
}

func (f *ConsoleFormatter) printReadiness(r scoring.Readiness) {
	if r.CurrentLevel == r.TargetLevel {
		f.printf("%s\n", f.bold(fmt.Sprintf("Level %d (%s) is the highest level", r.CurrentLevel, r.CurrentLevel.Label())))
	} else {
		f.printf("%s\n", f.bold(fmt.Sprintf("Readiness for Level %d (%s)", r.TargetLevel, r.TargetLevel.Label())))
	}

	status := f.r.NewStyle().Foreground(lipgloss.Color("10")).Render("✓ " + string(r.GatingStatus))
	if r.GatingStatus == scoring.GatingNotEligible {
		status = f.r.NewStyle().Foreground(lipgloss.Color("9")).Render("✗ " + string(r.GatingStatus))
	}
	f.printf("  %s  readiness %.1f%%  conservative %.1f%%\n", status, r.TargetLevelReadiness, r.ConservativeReadiness)
	if r.GatingReason != "" {
		f.printf("  %s\n", r.GatingReason)
	}
	for _, pa := range r.TargetProcessAreas {
		f.printf("    %-36s %s %5.1f%% %s\n", pa.ProcessArea, f.bandBar(pa.Percentage), pa.Percentage, f.band(pa.Band))
	}
}

// FormatGaps prints every gap in the report.
func (f *ConsoleFormatter) FormatGaps(r GapReport) error {
	if f.quiet {
		f.printf("%d gaps\n", len(r.Gaps))
		return nil
	}

	kind := "Gaps"
	if r.Enhanced {
		kind = "Gaps (practice level)"
	}
	f.printf("%s: %d\n", f.bold(kind), len(r.Gaps))
	if r.Ignored > 0 {
		f.printf("  %d accepted in baseline\n", r.Ignored)
	}
	if len(r.Gaps) == 0 {
		f.printf("%s\n", f.r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render("✓ No gaps"))
		return nil
	}
	f.printGapList(r.Gaps, 0)
	return nil
}

func (f *ConsoleFormatter) printGapList(gaps []scoring.Gap, limit int) {
	shown := gaps
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, g := range shown {
		priority := f.r.NewStyle().Foreground(priorityColor(g.Priority)).Render(fmt.Sprintf("%-6s", g.Priority))
		f.printf("  %s L%d %s [%s]\n", priority, g.Level, g.QuestionID, g.CurrentAnswer)
		f.printf("         %s\n", g.Action)
		if f.verbose {
			f.printf("         %s: %s\n", g.ProcessArea, g.Question)
			if g.SpecificPractice != "" {
				f.printf("         %s %.1f%% %s, %s %.1f%% %s\n",
					g.SpecificPractice, g.PracticeAttainment, g.PracticeBand,
					g.SpecificGoal, g.GoalAttainment, g.GoalBand)
			}
			if g.ReferenceURL != "" {
				f.printf("         %s\n", g.ReferenceURL)
			}
		}
	}
	if len(shown) < len(gaps) {
		f.printf("  ... %d more\n", len(gaps)-len(shown))
	}
}

// FormatProgress prints the timeline and the interpretation.
func (f *ConsoleFormatter) FormatProgress(p scoring.Progress) error {
	if f.quiet {
		f.printf("%s\n", p.Interpretation)
		return nil
	}

	f.printf("%s\n", f.bold(fmt.Sprintf("Assessments: %d", p.Count)))
	for _, s := range p.Timeline {
		f.printf("  %s  L%d  %s %5.1f%%  %s\n", s.Timestamp.Format("2006-01-02"), s.Level, f.bandBar(s.Compliance), s.Compliance, s.Organization)
	}
	if p.Count < 2 {
		f.printf("\nAt least two assessments are needed to show progress.\n")
		return nil
	}

	f.printf("\nLevel %+d, compliance %+.1f%% over %d days (last change %+.1f%%)\n",
		p.LevelChange, p.ComplianceChange, p.SpanDays, p.Trend)
	f.printf("%s\n", p.Interpretation)
	return nil
}

// FormatIssues prints validation issues, or a pass line when there are none.
func (f *ConsoleFormatter) FormatIssues(issues []catalog.Issue) error {
	for _, issue := range issues {
		style := f.r.NewStyle().Foreground(lipgloss.Color("3"))
		prefix := "⚠"
		if issue.Severity == catalog.SeverityError {
			style = f.r.NewStyle().Foreground(lipgloss.Color("9"))
			prefix = "✘"
		}
		f.printf("  %s %s: %s\n", prefix, style.Render(issue.File), issue.Message)
	}
	if len(issues) == 0 && !f.quiet {
		f.printf("%s\n", f.r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render("✓ All passed"))
	}
	return nil
}
