package cmd

import (
	"fmt"
	"io"

	"github.com/dotcommander/tmmi/internal/catalog"
	"github.com/dotcommander/tmmi/internal/config"
	"github.com/dotcommander/tmmi/internal/discovery"
	"github.com/dotcommander/tmmi/internal/logger"
	"github.com/dotcommander/tmmi/internal/outputters"
	"github.com/dotcommander/tmmi/internal/scoring"
	"github.com/dotcommander/tmmi/internal/types"
)

// session is what every scoring command needs: configuration, a logger and the catalog.
type session struct {
	cfg       *config.Config
	log       *logger.Logger
	questions []types.Question
	out       io.Writer
}

func newSession() (*session, error) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	questions, err := catalog.LoadQuestions(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	log.Debug("catalog loaded", "path", cfg.Catalog, "questions", len(questions))

	return &session{cfg: cfg, log: log, questions: questions, out: rootCmd.OutOrStdout()}, nil
}

func (s *session) close() {
	s.log.Sync()
}

func (s *session) options() []scoring.Option {
	return []scoring.Option{scoring.WithLevelThreshold(s.cfg.LevelThreshold)}
}

func (s *session) outputter() *outputters.Outputter {
	return outputters.NewOutputter(s.cfg, s.out)
}

// loadAssessment reads one assessment file and warns about answers the catalog
// does not know. Those answers are ignored by scoring.
func (s *session) loadAssessment(path string) (types.Assessment, error) {
	absPath, err := discovery.ValidateFilePath(path)
	if err != nil {
		return types.Assessment{}, err
	}

	a, err := catalog.LoadAssessment(absPath)
	if err != nil {
		return types.Assessment{}, err
	}

	if orphans := scoring.OrphanAnswers(s.questions, a.Answers); len(orphans) > 0 {
		s.log.Warn("ignoring answers for unknown questions",
			"file", path,
			"assessment_id", a.ID,
			"question_ids", orphans,
		)
	}
	return a, nil
}
