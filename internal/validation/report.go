// Package validation validates JSON configuration files against a JSON
// Schema (draft 2020-12, format assertions enabled) and, optionally, against
// the data-sync semantic rules the schema cannot express.
package validation

import (
	"fmt"
	"strings"
)

// ValidationLevel indicates the severity of a validation issue.
type ValidationLevel string

const (
	LevelError   ValidationLevel = "error"
	LevelWarning ValidationLevel = "warning"
)

// ValidationIssue represents a single validation problem.
type ValidationIssue struct {
	Level       ValidationLevel `json:"level"`
	Code        string          `json:"code"`
	Message     string          `json:"message"`
	JSONPointer string          `json:"json_pointer,omitempty"`
}

// ValidationReport contains the results of validating a candidate document.
type ValidationReport struct {
	OK       bool              `json:"ok"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// NewValidationReport creates a new empty validation report.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{
		OK:       true,
		Errors:   []ValidationIssue{},
		Warnings: []ValidationIssue{},
	}
}

// AddError adds an error-level issue to the report.
func (r *ValidationReport) AddError(code, message, jsonPointer string) {
	r.OK = false
	r.Errors = append(r.Errors, ValidationIssue{
		Level:       LevelError,
		Code:        code,
		Message:     message,
		JSONPointer: jsonPointer,
	})
}

// AddWarning adds a warning-level issue to the report.
func (r *ValidationReport) AddWarning(code, message, jsonPointer string) {
	r.Warnings = append(r.Warnings, ValidationIssue{
		Level:       LevelWarning,
		Code:        code,
		Message:     message,
		JSONPointer: jsonPointer,
	})
}

// Merge combines another report into this one.
func (r *ValidationReport) Merge(other *ValidationReport) {
	if other == nil {
		return
	}
	if !other.OK {
		r.OK = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// HasWarnings reports whether the report carries any warnings.
func (r *ValidationReport) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Summary renders the report as a human-readable multi-line string.
func (r *ValidationReport) Summary() string {
	if r.OK && !r.HasWarnings() {
		return "Validation passed"
	}

	var sb strings.Builder
	if !r.OK {
		sb.WriteString(fmt.Sprintf("Validation failed with %d error(s)", len(r.Errors)))
		if r.HasWarnings() {
			sb.WriteString(fmt.Sprintf(" and %d warning(s)", len(r.Warnings)))
		}
		sb.WriteString(":\n")
	} else {
		sb.WriteString(fmt.Sprintf("Validation passed with %d warning(s):\n", len(r.Warnings)))
	}

	for _, e := range r.Errors {
		sb.WriteString(fmt.Sprintf("  [ERROR] %s: %s", e.Code, e.Message))
		if e.JSONPointer != "" {
			sb.WriteString(fmt.Sprintf(" (at %s)", e.JSONPointer))
		}
		sb.WriteString("\n")
	}

	for _, w := range r.Warnings {
		sb.WriteString(fmt.Sprintf("  [WARN] %s: %s", w.Code, w.Message))
		if w.JSONPointer != "" {
			sb.WriteString(fmt.Sprintf(" (at %s)", w.JSONPointer))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Validation Issue Codes - Schema Validation
const (
	CodeFileUnreadable       = "FILE_UNREADABLE"
	CodeInvalidJSON          = "INVALID_JSON"
	CodeSchemaViolation      = "SCHEMA_VIOLATION"
	CodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	CodeInvalidFormat        = "INVALID_FORMAT"
)

// Validation Issue Codes - Data-Sync Semantic
const (
	CodeInvalidSyncDirection = "INVALID_SYNC_DIRECTION"
	CodeInvalidSyncType      = "INVALID_SYNC_TYPE"
	CodeInvalidDuration      = "INVALID_DURATION"
	CodePeriodicityRequired  = "PERIODICITY_REQUIRED"
	CodePeriodicityIgnored   = "PERIODICITY_IGNORED"
	CodeRetryIncomplete      = "RETRY_INCOMPLETE"
	CodeRetryAttemptsRange   = "RETRY_ATTEMPTS_RANGE"
	CodePathNotAbsolute      = "PATH_NOT_ABSOLUTE"
	CodeDuplicatePath        = "DUPLICATE_PATH"
	CodeListOnFileEntry      = "LIST_ON_FILE_ENTRY"
)
