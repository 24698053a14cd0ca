// Package catalog loads question catalogs and assessments from JSON or YAML files
// and validates them against embedded CUE schemas.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dotcommander/tmmi/internal/types"
)

// Format is the encoding of a catalog or assessment file.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension. Anything that is not YAML is read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func decode(data []byte, format Format, v any) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// LoadQuestions reads a question catalog: a list of questions in catalog order.
func LoadQuestions(path string) ([]types.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	questions, err := ParseQuestions(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return questions, nil
}

// ParseQuestions decodes a catalog. Duplicate question ids are rejected since answers
// could not be attributed.
func ParseQuestions(data []byte, format Format) ([]types.Question, error) {
	var questions []types.Question
	if err := decode(data, format, &questions); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d has no id", i+1)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return questions, nil
}

// LoadAssessment reads one assessment. A missing id is filled with a random UUID and a
// missing timestamp with the file's modification time.
func LoadAssessment(path string) (types.Assessment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Assessment{}, fmt.Errorf("failed to read assessment: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Assessment{}, fmt.Errorf("failed to read assessment: %w", err)
	}

	a, err := ParseAssessment(data, FormatOf(path))
	if err != nil {
		return types.Assessment{}, fmt.Errorf("failed to parse assessment %s: %w", path, err)
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = info.ModTime().UTC()
	}
	return a, nil
}

// ParseAssessment decodes an assessment and fills in a missing id.
func ParseAssessment(data []byte, format Format) (types.Assessment, error) {
	var a types.Assessment
	if err := decode(data, format, &a); err != nil {
		return types.Assessment{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return a, nil
}
