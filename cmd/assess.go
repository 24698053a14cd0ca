package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/tmmi/internal/scoring"
)

var assessCmd = &cobra.Command{
	Use:   "assess <assessment>",
	Short: "Score an assessment and show the full summary",
	Long: `The assess command scores one assessment file (JSON or YAML) against the catalog.

The summary covers:
- Achieved maturity level and attainment per level
- Process area attainment rolled up from practices and goals
- Readiness for the next level
- Gaps, generic goal compliance and evidence coverage`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAssess(args[0]); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
}

func runAssess(path string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	a, err := s.loadAssessment(path)
	if err != nil {
		return err
	}

	summary := scoring.SummarizeAssessment(s.questions, a, s.options()...)
	s.log.Debug("assessment scored",
		"assessment_id", summary.AssessmentID,
		"level", int(summary.CurrentLevel),
		"gaps", len(summary.Gaps),
	)
	return s.outputter().Summary(summary)
}
