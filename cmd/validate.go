package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/tmmi/internal/catalog"
	"github.com/dotcommander/tmmi/internal/config"
	"github.com/dotcommander/tmmi/internal/discovery"
	"github.com/dotcommander/tmmi/internal/outputters"
)

var validateType string

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate the catalog and assessment files against their schemas",
	Long: `The validate command checks the configured catalog against the catalog schema.
Any extra files given are checked as well; each is classified as a catalog or
an assessment by its contents, or by --type when given.

Exits 1 when any error is reported. Warnings alone do not fail.`,
	Run: func(cmd *cobra.Command, args []string) {
		failed, err := runValidate(args)
		if err != nil {
			fail(err)
			return
		}
		if failed {
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateType, "type", "t", "", "Force file type for extra files (catalog|assessment)")
}

// runValidate reports whether any error-level issue was found.
func runValidate(files []string) (bool, error) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return false, fmt.Errorf("error loading configuration: %w", err)
	}

	var forced discovery.FileType
	if validateType != "" {
		forced, err = discovery.ParseFileType(validateType)
		if err != nil {
			return false, err
		}
	}

	v := catalog.NewValidator()
	if err := v.LoadSchemas(); err != nil {
		return false, err
	}

	issues, err := v.ValidateFile(cfg.Catalog, catalog.SchemaCatalog)
	if err != nil {
		return false, err
	}

	for _, file := range files {
		schema, err := schemaFor(file, forced)
		if err != nil {
			issues = append(issues, catalog.Issue{File: file, Message: err.Error(), Severity: catalog.SeverityError})
			continue
		}
		fileIssues, err := v.ValidateFile(file, schema)
		if err != nil {
			return false, err
		}
		issues = append(issues, fileIssues...)
	}

	if err := outputters.NewOutputter(cfg, rootCmd.OutOrStdout()).Issues(issues); err != nil {
		return false, err
	}
	return catalog.HasErrors(issues), nil
}

// schemaFor picks the schema for a file, from its contents unless forced is set.
func schemaFor(path string, forced discovery.FileType) (string, error) {
	absPath, err := discovery.ValidateFilePath(path)
	if err != nil {
		return "", err
	}

	fileType := forced
	if fileType == discovery.FileTypeUnknown {
		contents, err := os.ReadFile(absPath)
		if err != nil {
			return "", fmt.Errorf("cannot read file: %w", err)
		}
		fileType = discovery.DetectFileType(absPath, contents)
	}

	switch fileType {
	case discovery.FileTypeCatalog:
		return catalog.SchemaCatalog, nil
	case discovery.FileTypeAssessment:
		return catalog.SchemaAssessment, nil
	default:
		return "", fmt.Errorf("not a catalog or assessment")
	}
}
