package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/tmmi/internal/discovery"
	"github.com/dotcommander/tmmi/internal/scoring"
)

var (
	historyExclude        []string
	historyFollowSymlinks bool
)

var historyCmd = &cobra.Command{
	Use:   "history <dir>",
	Short: "Show maturity progress across a directory of assessments",
	Long: `The history command discovers assessment files under a directory
(**/*.json, **/*.yaml, **/*.yml), scores each one, and compares the
earliest with the latest.

Files that are not assessments (catalogs, baselines, config) are skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHistory(args[0]); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringSliceVar(&historyExclude, "exclude", nil, "Glob patterns to skip, relative to the directory")
	historyCmd.Flags().BoolVar(&historyFollowSymlinks, "follow-symlinks", false, "Follow symlinked files")

	viper.BindPFlag("exclude", historyCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("followSymlinks", historyCmd.Flags().Lookup("follow-symlinks"))
}

func runHistory(dir string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	fd := discovery.NewFileDiscovery(dir, s.cfg.FollowSymlinks, s.cfg.Exclude...)
	files, err := fd.DiscoverAssessments()
	if err != nil {
		return fmt.Errorf("error discovering assessments: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no assessments found in %s", dir)
	}

	snapshots := make([]scoring.Snapshot, 0, len(files))
	for _, f := range files {
		a, err := s.loadAssessment(f.Path)
		if err != nil {
			s.log.Warn("skipping assessment", "file", f.RelPath, "error", err)
			continue
		}
		summary := scoring.SummarizeAssessment(s.questions, a, s.options()...)
		snapshots = append(snapshots, scoring.SnapshotOf(summary))
	}
	s.log.Debug("assessments scored", "dir", dir, "found", len(files), "scored", len(snapshots))

	return s.outputter().Progress(scoring.AnalyzeProgress(snapshots))
}
