package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/tmmi/internal/scoring"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness <assessment>",
	Short: "Show readiness for the next maturity level",
	Long: `The readiness command evaluates the process areas of the level above the one
currently achieved. Any area below 50% blocks progression; otherwise readiness
is the mean area attainment.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReadiness(args[0]); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(readinessCmd)
}

func runReadiness(path string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	a, err := s.loadAssessment(path)
	if err != nil {
		return err
	}

	answers := scoring.KnownAnswers(s.questions, a.Answers)
	return s.outputter().Readiness(scoring.NextLevelReadiness(s.questions, answers, s.options()...))
}
