package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dotcommander/tmmi/internal/scoring"
	"github.com/dotcommander/tmmi/internal/types"
)

func gap(id string, answer types.AnswerValue) scoring.Gap {
	return scoring.Gap{QuestionID: id, CurrentAnswer: answer, Action: "action " + id}
}

func TestCreateBaseline(t *testing.T) {
	gaps := []scoring.Gap{
		gap("L2_TP_001", types.AnswerNo),
		gap("L2_TP_002", types.AnswerNotAnswered),
		// Duplicate gap - should be deduplicated
		gap("L2_TP_001", types.AnswerNo),
	}

	baseline := CreateBaseline(gaps)

	if baseline.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", baseline.Version)
	}
	if baseline.CreatedAt == "" {
		t.Error("Expected created_at to be set")
	}
	if len(baseline.Fingerprints) != 2 {
		t.Errorf("Expected 2 unique fingerprints, got %d", len(baseline.Fingerprints))
	}
	if len(baseline.index) != 2 {
		t.Errorf("Expected index with 2 entries, got %d", len(baseline.index))
	}
}

func TestIsKnown(t *testing.T) {
	accepted := gap("L2_TP_001", types.AnswerNo)
	baseline := CreateBaseline([]scoring.Gap{accepted})

	if !baseline.IsKnown(accepted) {
		t.Error("Expected accepted gap to be known")
	}

	// Remediation text and attainment may shift between runs without making the gap new.
	shifted := accepted
	shifted.Action = "different action"
	shifted.PracticeAttainment = 42
	if !baseline.IsKnown(shifted) {
		t.Error("Expected gap with changed attainment to stay known")
	}

	if baseline.IsKnown(gap("L2_TP_001", types.AnswerPartial)) {
		t.Error("Expected gap with a changed answer to be new")
	}
	if baseline.IsKnown(gap("L2_TP_009", types.AnswerNo)) {
		t.Error("Expected unrelated gap to be new")
	}

	var nilBaseline *Baseline
	if nilBaseline.IsKnown(accepted) {
		t.Error("Expected nil baseline to know nothing")
	}
}

func TestFilter(t *testing.T) {
	baseline := CreateBaseline([]scoring.Gap{gap("Q1", types.AnswerNo), gap("Q3", types.AnswerPartial)})

	gaps := []scoring.Gap{
		gap("Q1", types.AnswerNo),
		gap("Q2", types.AnswerNo),
		gap("Q3", types.AnswerPartial),
		gap("Q4", types.AnswerNotAnswered),
	}
	filtered, ignored := baseline.Filter(gaps)

	if ignored != 2 {
		t.Errorf("Expected 2 ignored gaps, got %d", ignored)
	}
	if len(filtered) != 2 || filtered[0].QuestionID != "Q2" || filtered[1].QuestionID != "Q4" {
		t.Errorf("Unexpected filtered gaps: %+v", filtered)
	}

	var nilBaseline *Baseline
	all, ignored := nilBaseline.Filter(gaps)
	if ignored != 0 || len(all) != len(gaps) {
		t.Errorf("Expected nil baseline to keep all gaps, got %d kept %d ignored", len(all), ignored)
	}
}

func TestSaveAndLoadBaseline(t *testing.T) {
	baselinePath := filepath.Join(t.TempDir(), ".tmmibaseline.json")

	original := CreateBaseline([]scoring.Gap{gap("Q1", types.AnswerNo), gap("Q2", types.AnswerNotAnswered)})
	if err := original.SaveBaseline(baselinePath); err != nil {
		t.Fatalf("SaveBaseline failed: %v", err)
	}

	if _, err := os.Stat(baselinePath); os.IsNotExist(err) {
		t.Fatal("Baseline file was not created")
	}

	loaded, err := LoadBaseline(baselinePath)
	if err != nil {
		t.Fatalf("LoadBaseline failed: %v", err)
	}

	if loaded.Version != original.Version {
		t.Errorf("Version mismatch: got %s, want %s", loaded.Version, original.Version)
	}
	if len(loaded.Fingerprints) != len(original.Fingerprints) {
		t.Errorf("Fingerprint count mismatch: got %d, want %d", len(loaded.Fingerprints), len(original.Fingerprints))
	}
	if !loaded.IsKnown(gap("Q2", types.AnswerNotAnswered)) {
		t.Error("Expected loaded baseline to know Q2")
	}
}

func TestLoadBaseline_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBaseline(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBaseline(bad); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
