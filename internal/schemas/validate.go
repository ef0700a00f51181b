// Package schemas validates evaluator inputs against JSON Schema documents.
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	bundled "github.com/jonathan/ksa-evaluator/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Source supplies schema documents by file name.
type Source interface {
	Read(name string) ([]byte, error)
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func(name string) ([]byte, error)

// Read calls f(name).
func (f SourceFunc) Read(name string) ([]byte, error) {
	return f(name)
}

// Bundled serves the schemas compiled into the binary.
var Bundled Source = SourceFunc(bundled.Read)

// Dir serves schema files from a directory. Names missing from the
// directory fall back to the bundled copy, so a directory may override
// only the schemas it contains.
type Dir string

// Read returns the named schema from the directory or the bundled set.
func (d Dir) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(string(d), name))
	if errors.Is(err, fs.ErrNotExist) {
		return bundled.Read(name)
	}
	return data, err
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validator checks documents against the schemas of one Source. Compiled
// schemas are cached, so a Validator is meant to be reused.
type Validator struct {
	source Source

	mu       sync.Mutex
	compiled map[string]*gojsonschema.Schema
}

// NewValidator returns a Validator reading schemas from source. A nil source means Bundled.
func NewValidator(source Source) *Validator {
	if source == nil {
		source = Bundled
	}
	return &Validator{source: source, compiled: make(map[string]*gojsonschema.Schema)}
}

var defaultValidator = NewValidator(Bundled)

// Default returns the shared Validator backed by the bundled schemas.
func Default() *Validator {
	return defaultValidator
}

func (v *Validator) schema(name string) (*gojsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.compiled[name]; ok {
		return s, nil
	}
	raw, err := v.source.Read(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema not found", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema document", Cause: err}
	}
	v.compiled[name] = s
	return s, nil
}

// Validate checks data against the named schema.
func (v *Validator) Validate(schemaName string, data []byte) error {
	s, err := v.schema(schemaName)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document is not valid JSON"}}}
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "schema validation failed during load", Cause: err}
	}
	return resultError(result)
}

// ValidateEmbedded validates data against one of the bundled schemas by file name.
func ValidateEmbedded(schemaName string, data []byte) error {
	return defaultValidator.Validate(schemaName, data)
}

// resultError converts a failed result into a *ValidationError, or nil when valid
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
