package validation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bc-dunia/configlint/internal/otel"
)

// Output phrases fixed by the CLI contract. Success lines go to stdout;
// the failure message is the process termination message.
const (
	successPrefix    = "Schema validation success for "
	failurePrefix    = "Schema validation failed for "
	failureSeparator = "!!! Error : "
	schemaErrPrefix  = "Error in schema.json : "
)

// SchemaError reports that the schema document itself could not be read,
// parsed or compiled. No candidate is processed when it occurs.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return schemaErrPrefix + e.Err.Error()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// CandidateError reports the first failing candidate. The run stops there;
// later candidates are never opened.
type CandidateError struct {
	// Path of the failing candidate file.
	Path string

	// Err is the underlying failure: a read error, a JSON parse error or a
	// validation failure.
	Err error

	// Report carries the coded issues behind Err.
	Report *ValidationReport
}

func (e *CandidateError) Error() string {
	return failurePrefix + e.Path + failureSeparator + e.Err.Error()
}

func (e *CandidateError) Unwrap() error {
	return e.Err
}

// Runner validates an ordered list of candidate JSON files against a single
// schema, stopping at the first failure.
type Runner struct {
	// Out receives one success line per validated candidate. Defaults to
	// os.Stdout.
	Out io.Writer

	// Strict additionally runs the data-sync semantic checks on candidates
	// that pass schema validation.
	Strict bool

	// Metrics records per-candidate and per-run instruments. Nil disables
	// recording.
	Metrics *otel.Metrics

	// Logger receives debug diagnostics. The zero value discards them.
	Logger zerolog.Logger
}

// NewRunner returns a Runner writing success lines to stdout, with strict
// mode off and no metrics.
func NewRunner() *Runner {
	return &Runner{
		Out:    os.Stdout,
		Logger: zerolog.Nop(),
	}
}

// Run loads and compiles the schema at schemaPath once, then validates each
// candidate in order. It returns nil when every candidate passes, a
// *SchemaError when the schema cannot be used at all, and a *CandidateError
// for the first failing candidate.
func (r *Runner) Run(ctx context.Context, schemaPath string, candidatePaths []string) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	runStart := time.Now()

	compileStart := time.Now()
	schema, err := CompileSchemaFile(schemaPath)
	if err != nil {
		return &SchemaError{Err: err}
	}
	r.Logger.Debug().
		Str("schema", schemaPath).
		Dur("elapsed", time.Since(compileStart)).
		Msg("schema compiled")

	var semantic *SemanticValidator
	if r.Strict {
		semantic = NewSemanticValidator()
	}

	for _, path := range candidatePaths {
		if err := r.validateCandidate(ctx, schema, semantic, path); err != nil {
			return err
		}
		fmt.Fprintln(out, successPrefix+path)
	}

	if r.Metrics != nil {
		r.Metrics.RecordRun(ctx, float64(time.Since(runStart).Milliseconds()))
	}
	return nil
}

// validateCandidate runs the read, parse, schema and (optionally) semantic
// stages over one candidate file.
func (r *Runner) validateCandidate(ctx context.Context, schema *SchemaValidator, semantic *SemanticValidator, path string) error {
	start := time.Now()

	fail := func(kind string, err error, report *ValidationReport) error {
		r.recordCandidate(ctx, start, kind)
		return &CandidateError{Path: path, Err: err, Report: report}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		report := NewValidationReport()
		report.AddError(CodeFileUnreadable, err.Error(), "")
		return fail("read", err, report)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		report := NewValidationReport()
		report.AddError(CodeInvalidJSON, err.Error(), "")
		return fail("parse", fmt.Errorf("invalid JSON: %w", err), report)
	}

	if err := schema.Validate(doc); err != nil {
		return fail("schema", err, ReportFromError(err))
	}

	if semantic != nil {
		report := semantic.Validate(doc)
		for _, w := range report.Warnings {
			r.Logger.Warn().
				Str("candidate", path).
				Str("code", w.Code).
				Str("pointer", w.JSONPointer).
				Msg(w.Message)
		}
		if !report.OK {
			return fail("semantic", errors.New(report.Summary()), report)
		}
	}

	r.recordCandidate(ctx, start, "")
	r.Logger.Debug().
		Str("candidate", path).
		Dur("elapsed", time.Since(start)).
		Msg("candidate validated")
	return nil
}

func (r *Runner) recordCandidate(ctx context.Context, start time.Time, failureKind string) {
	if r.Metrics == nil {
		return
	}
	r.Metrics.RecordCandidate(ctx, float64(time.Since(start).Milliseconds()), failureKind)
}
