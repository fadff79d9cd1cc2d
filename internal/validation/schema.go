package validation

import (
	"bytes"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders the localized messages carried by jsonschema error kinds.
var printer = message.NewPrinter(language.English)

// SchemaValidator validates parsed JSON documents against a compiled JSON
// Schema. The schema dialect is draft 2020-12 and format keyword assertions
// are enforced, so a string violating e.g. "format": "date-time" fails
// validation instead of being annotated.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

func newCompiler() *jsonschema.Compiler {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	c.AssertFormat()
	return c
}

// CompileSchemaFile reads, parses and compiles the schema document at path.
// The file is read exactly once; the compiled schema is reused for every
// candidate.
func CompileSchemaFile(path string) (*SchemaValidator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return CompileSchemaBytes(path, data)
}

// CompileSchemaBytes compiles a schema held in memory. name identifies the
// schema in compile errors and intra-schema references.
func CompileSchemaBytes(name string, data []byte) (*SchemaValidator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	c := newCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, err
	}
	schema, err := c.Compile(name)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{schema: schema}, nil
}

// ParseDocument parses one JSON document the way the evaluator expects it.
func ParseDocument(data []byte) (any, error) {
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// Validate checks one parsed JSON document against the schema. A non-nil
// error is a *jsonschema.ValidationError describing every violation.
func (v *SchemaValidator) Validate(doc any) error {
	return v.schema.Validate(doc)
}

// ValidateBytes parses data as JSON and validates it against the schema.
func (v *SchemaValidator) ValidateBytes(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return v.Validate(doc)
}

// ReportFromError converts a schema validation failure into a coded report.
// Non-validation errors (e.g. a JSON parse failure) become a single issue.
func ReportFromError(err error) *ValidationReport {
	report := NewValidationReport()
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		report.AddError(CodeInvalidJSON, err.Error(), "")
		return report
	}
	addCauses(report, verr)
	return report
}

// addCauses walks the validation error tree and reports every leaf cause.
func addCauses(report *ValidationReport, verr *jsonschema.ValidationError) {
	if len(verr.Causes) > 0 {
		for _, cause := range verr.Causes {
			addCauses(report, cause)
		}
		return
	}

	code := CodeSchemaViolation
	switch verr.ErrorKind.(type) {
	case *kind.Required:
		code = CodeRequiredFieldMissing
	case *kind.Format:
		code = CodeInvalidFormat
	}
	report.AddError(code, verr.ErrorKind.LocalizedString(printer), jsonPointer(verr.InstanceLocation))
}

func jsonPointer(location []string) string {
	ptr := ""
	for _, token := range location {
		ptr += "/" + token
	}
	return ptr
}
