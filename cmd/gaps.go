package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/tmmi/internal/baseline"
	"github.com/dotcommander/tmmi/internal/output"
	"github.com/dotcommander/tmmi/internal/scoring"
)

var (
	gapsEnhanced       bool
	gapsLimit          int
	gapsBaseline       string
	gapsCreateBaseline bool
)

var gapsCmd = &cobra.Command{
	Use:   "gaps <assessment>",
	Short: "List the gaps that keep the assessment from full compliance",
	Long: `The gaps command lists every question answered No or Partial, or left
unanswered, ordered by priority and then level.

With --enhanced, questions answered Yes are also listed while their specific
practice is still below Fully Achieved (85%).

A baseline records accepted gaps:
  tmmi gaps assessment.json --create-baseline --baseline .tmmi-baseline.json
  tmmi gaps assessment.json --baseline .tmmi-baseline.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGaps(args[0]); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(gapsCmd)

	gapsCmd.Flags().BoolVar(&gapsEnhanced, "enhanced", false, "Include answered questions whose practice is not yet Fully Achieved")
	gapsCmd.Flags().IntVar(&gapsLimit, "limit", 10, "Maximum gaps shown in console output (0 for all)")
	gapsCmd.Flags().StringVar(&gapsBaseline, "baseline", "", "Baseline file of accepted gaps")
	gapsCmd.Flags().BoolVar(&gapsCreateBaseline, "create-baseline", false, "Write the current gaps to the baseline file")

	viper.BindPFlag("gaps.enhanced", gapsCmd.Flags().Lookup("enhanced"))
	viper.BindPFlag("gaps.limit", gapsCmd.Flags().Lookup("limit"))
	viper.BindPFlag("gaps.baseline", gapsCmd.Flags().Lookup("baseline"))
}

func runGaps(path string) error {
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
	var gaps []scoring.Gap
	if s.cfg.Gaps.Enhanced {
		gaps = scoring.ExtractGapsEnhanced(s.questions, answers)
	} else {
		gaps = scoring.ExtractGaps(s.questions, answers)
	}

	baselinePath := s.cfg.Gaps.Baseline
	if gapsCreateBaseline {
		if baselinePath == "" {
			return fmt.Errorf("--create-baseline requires --baseline")
		}
		if err := baseline.CreateBaseline(gaps).SaveBaseline(baselinePath); err != nil {
			return err
		}
		if !s.cfg.Quiet {
			fmt.Fprintf(os.Stderr, "Baseline written to %s (%d gaps)\n", baselinePath, len(gaps))
		}
		return nil
	}

	report := output.GapReport{Enhanced: s.cfg.Gaps.Enhanced, Gaps: gaps}
	if baselinePath != "" {
		b, err := baseline.LoadBaseline(baselinePath)
		if err != nil {
			return err
		}
		report.Gaps, report.Ignored = b.Filter(gaps)
		s.log.Debug("baseline applied", "path", baselinePath, "ignored", report.Ignored)
	}

	return s.outputter().Gaps(report)
}
