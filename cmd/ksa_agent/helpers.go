package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/ksa-evaluator/internal/config"
	"github.com/jonathan/ksa-evaluator/internal/export"
	"github.com/jonathan/ksa-evaluator/internal/schemas"
)

func mustMarkRequired(cmdFlags interface{ MarkFlagRequired(string) error }, names ...string) {
	for _, name := range names {
		if err := cmdFlags.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}

func readInput(path, label string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file %s: %w", label, path, err)
	}
	return data, nil
}

// inputValidator validates documents against --schema-dir when set, else the bundled schemas
func inputValidator() (*schemas.Validator, error) {
	if schemaDir == "" {
		return schemas.Default(), nil
	}
	info, err := os.Stat(schemaDir)
	if err != nil {
		return nil, fmt.Errorf("invalid --schema-dir %s: %w", schemaDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid --schema-dir %s: not a directory", schemaDir)
	}
	return schemas.NewValidator(schemas.Dir(schemaDir)), nil
}

// loadConfig reads the optional config file and validates every weight vector
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isExcel reports whether an output path asks for a workbook
func isExcel(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// writeResult writes v as JSON to path, or to out when path is empty
func writeResult(out io.Writer, path string, v any) error {
	if path == "" {
		return export.WriteJSON(out, v)
	}
	return export.WriteJSONFile(path, v)
}
