package catalog

import (
	"embed"
	"fmt"
	"os"
	"path"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Schema names, one per embedded .cue file.
const (
	SchemaCatalog    = "catalog"
	SchemaAssessment = "assessment"
)

// Severity levels for validation issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is a single validation finding.
type Issue struct {
	File     string `json:"file,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Validator checks catalogs and assessments against the embedded CUE schemas.
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a Validator with no schemas loaded.
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas compiles every embedded schema.
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return fmt.Errorf("could not read schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if err := inst.Err(); err != nil {
			return fmt.Errorf("could not compile schema %s: %w", entry.Name(), err)
		}
		v.schemas[strings.TrimSuffix(entry.Name(), ".cue")] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}
	return nil
}

// ValidateCatalog checks a decoded catalog, the schema first and then cross-question rules.
func (v *Validator) ValidateCatalog(data any) ([]Issue, error) {
	issues, err := v.validateAgainstSchema(SchemaCatalog, data)
	if err != nil || len(issues) > 0 {
		return issues, err
	}
	return catalogRules(data), nil
}

// ValidateAssessment checks a decoded assessment.
func (v *Validator) ValidateAssessment(data any) ([]Issue, error) {
	return v.validateAgainstSchema(SchemaAssessment, data)
}

// ValidateFile reads path and validates it as the given schema. Decode failures are
// reported as issues, not errors.
func (v *Validator) ValidateFile(file, schemaName string) ([]Issue, error) {
	var validate func(any) ([]Issue, error)
	switch schemaName {
	case SchemaCatalog:
		validate = v.ValidateCatalog
	case SchemaAssessment:
		validate = v.ValidateAssessment
	default:
		return nil, fmt.Errorf("unknown schema: %s", schemaName)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	// YAML is a superset of JSON and keeps integers as integers, which the schemas need.
	var data any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return []Issue{{File: file, Message: fmt.Sprintf("cannot parse: %v", err), Severity: SeverityError}}, nil
	}

	issues, err := validate(data)
	if err != nil {
		return nil, err
	}
	for i := range issues {
		issues[i].File = file
	}
	return issues, nil
}

func (v *Validator) validateAgainstSchema(schemaName string, data any) ([]Issue, error) {
	schema, ok := v.schemas[schemaName]
	if !ok {
		return nil, fmt.Errorf("schema %s not loaded", schemaName)
	}

	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return nil, fmt.Errorf("error encoding data: %w", err)
	}

	// #Catalog, #Assessment
	def := schema.LookupPath(cue.ParsePath("#" + strings.ToUpper(schemaName[:1]) + schemaName[1:]))
	if !def.Exists() {
		return nil, fmt.Errorf("schema %s has no top-level definition", schemaName)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return schemaIssues(err), nil
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return schemaIssues(err), nil
	}
	return nil, nil
}

func schemaIssues(err error) []Issue {
	return []Issue{{
		Message:  fmt.Sprintf("schema validation failed: %v", err),
		Severity: SeverityError,
	}}
}

// catalogRules covers what the schema cannot: uniqueness and consistency across questions.
// It only runs on data that already matched the schema.
func catalogRules(data any) []Issue {
	list, _ := data.([]any)

	var issues []Issue
	ids := make(map[string]bool)
	areaLevel := make(map[string]int)
	for i, item := range list {
		q, _ := item.(map[string]any)
		id, _ := q["id"].(string)
		area, _ := q["process_area"].(string)
		level := toInt(q["level"])

		if ids[id] {
			issues = append(issues, Issue{
				Message:  fmt.Sprintf("duplicate question id %q", id),
				Severity: SeverityError,
			})
		}
		ids[id] = true

		if first, seen := areaLevel[area]; !seen {
			areaLevel[area] = level
		} else if first != level {
			issues = append(issues, Issue{
				Message:  fmt.Sprintf("question %q: process area %q already at level %d, got %d", id, area, first, level),
				Severity: SeverityWarning,
			})
		}

		goal, _ := q["specific_goal"].(string)
		practice, _ := q["specific_practice"].(string)
		if goal != "" && practice == "" {
			issues = append(issues, Issue{
				Message:  fmt.Sprintf("question %d (%q): specific goal %q without a specific practice scores 0%%", i+1, id, goal),
				Severity: SeverityWarning,
			})
		}
	}
	return issues
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
