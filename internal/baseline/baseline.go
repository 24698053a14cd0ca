// Package baseline records gaps an organization has accepted so later runs only
// report new ones.
package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dotcommander/tmmi/internal/scoring"
)

// Baseline represents a snapshot of accepted gaps that should be ignored
type Baseline struct {
	Version      string   `json:"version"`
	CreatedAt    string   `json:"created_at"`
	Fingerprints []string `json:"fingerprints"`
	index        map[string]bool
}

// CreateBaseline creates a new baseline from a list of gaps
func CreateBaseline(gaps []scoring.Gap) *Baseline {
	fingerprints := make([]string, 0, len(gaps))
	index := make(map[string]bool)

	for _, gap := range gaps {
		fp := fingerprint(gap)
		if !index[fp] {
			fingerprints = append(fingerprints, fp)
			index[fp] = true
		}
	}

	// Sort for deterministic output
	sort.Strings(fingerprints)

	return &Baseline{
		Version:      "1.0",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Fingerprints: fingerprints,
		index:        index,
	}
}

// LoadBaseline loads a baseline from a JSON file
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	b.index = make(map[string]bool, len(b.Fingerprints))
	for _, fp := range b.Fingerprints {
		b.index[fp] = true
	}

	return &b, nil
}

// SaveBaseline saves the baseline to a JSON file
func (b *Baseline) SaveBaseline(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}

	return nil
}

// IsKnown checks if a gap is in the baseline
func (b *Baseline) IsKnown(gap scoring.Gap) bool {
	if b == nil || b.index == nil {
		return false
	}
	return b.index[fingerprint(gap)]
}

// Filter drops known gaps, keeping order, and returns how many were dropped.
// A nil baseline keeps everything.
func (b *Baseline) Filter(gaps []scoring.Gap) ([]scoring.Gap, int) {
	filtered := make([]scoring.Gap, 0, len(gaps))
	ignored := 0
	for _, gap := range gaps {
		if b.IsKnown(gap) {
			ignored++
			continue
		}
		filtered = append(filtered, gap)
	}
	return filtered, ignored
}

// fingerprint is a stable hash of the question and the answer that made it a gap.
// A changed answer, say from No to Partial, makes the gap new again.
func fingerprint(gap scoring.Gap) string {
	data := fmt.Sprintf("%s|%s", gap.QuestionID, gap.CurrentAnswer)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
