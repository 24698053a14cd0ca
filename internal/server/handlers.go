package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/dotcommander/tmmi/internal/logger"
	"github.com/dotcommander/tmmi/internal/scoring"
	"github.com/dotcommander/tmmi/internal/types"
)

// maxBodyBytes caps request bodies. A full catalog of answers is well under this.
const maxBodyBytes = 1 << 20

// Handler ties HTTP routes to the scoring engine over a fixed catalog.
type Handler struct {
	questions []types.Question
	opts      []scoring.Option
	log       *logger.Logger
}

// NewHandler creates a new Handler
func NewHandler(questions []types.Question, log *logger.Logger, opts ...scoring.Option) *Handler {
	return &Handler{
		questions: questions,
		opts:      opts,
		log:       log,
	}
}

// CoverageResponse is evidence coverage overall and per process area.
type CoverageResponse struct {
	Overall       scoring.Coverage                       `json:"overall"`
	ByProcessArea map[types.ProcessArea]scoring.Coverage `json:"by_process_area"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Catalog returns the question catalog in order.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	questions := h.questions
	if questions == nil {
		questions = []types.Question{}
	}
	h.respondJSON(w, http.StatusOK, questions)
}

// Summary scores one assessment.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	a, ok := h.decodeAssessment(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, scoring.SummarizeAssessment(h.questions, a, h.opts...))
}

// Readiness returns the next-level readiness of one assessment.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	a, ok := h.decodeAssessment(w, r)
	if !ok {
		return
	}
	answers := scoring.KnownAnswers(h.questions, a.Answers)
	h.respondJSON(w, http.StatusOK, scoring.NextLevelReadiness(h.questions, answers, h.opts...))
}

// Gaps lists gaps; ?enhanced=true switches to practice-level gaps.
func (h *Handler) Gaps(w http.ResponseWriter, r *http.Request) {
	enhanced := false
	if v := r.URL.Query().Get("enhanced"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, errors.New("enhanced must be a boolean"))
			return
		}
		enhanced = parsed
	}

	a, ok := h.decodeAssessment(w, r)
	if !ok {
		return
	}
	answers := scoring.KnownAnswers(h.questions, a.Answers)
	if enhanced {
		h.respondJSON(w, http.StatusOK, scoring.ExtractGapsEnhanced(h.questions, answers))
		return
	}
	h.respondJSON(w, http.StatusOK, scoring.ExtractGaps(h.questions, answers))
}

// Coverage returns evidence coverage for one assessment.
func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
	a, ok := h.decodeAssessment(w, r)
	if !ok {
		return
	}
	answers := scoring.KnownAnswers(h.questions, a.Answers)
	h.respondJSON(w, http.StatusOK, CoverageResponse{
		Overall:       scoring.EvidenceCoverage(answers),
		ByProcessArea: scoring.EvidenceCoverageBy(h.questions, answers, scoring.ByProcessArea),
	})
}

// Progress compares a series of assessments posted as a JSON array.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	var assessments []types.Assessment
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&assessments); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	snapshots := make([]scoring.Snapshot, 0, len(assessments))
	for _, a := range assessments {
		h.warnOrphans(r, a)
		snapshots = append(snapshots, scoring.SnapshotOf(scoring.SummarizeAssessment(h.questions, a, h.opts...)))
	}
	h.respondJSON(w, http.StatusOK, scoring.AnalyzeProgress(snapshots))
}

func (h *Handler) decodeAssessment(w http.ResponseWriter, r *http.Request) (types.Assessment, bool) {
	var a types.Assessment
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&a); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return types.Assessment{}, false
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	h.warnOrphans(r, a)
	return a, true
}

func (h *Handler) warnOrphans(r *http.Request, a types.Assessment) {
	if orphans := scoring.OrphanAnswers(h.questions, a.Answers); len(orphans) > 0 {
		h.log.Warn("ignoring answers for unknown questions",
			"path", r.URL.Path,
			"assessment_id", a.ID,
			"question_ids", orphans,
		)
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, err error) {
	h.respondJSON(w, status, map[string]string{"error": err.Error()})
}
