package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bc-dunia/configlint/internal/datasync"
)

// toNumber normalizes the two numeric representations seen in parsed
// documents: float64 from encoding/json and json.Number from the schema
// evaluator's decoder.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// SemanticValidator checks data-sync list documents for conditions the
// schema cannot express. The consuming daemon papers over most of them by
// falling back to defaults; strict mode reports them instead.
type SemanticValidator struct{}

// NewSemanticValidator creates a semantic validator for data-sync lists.
func NewSemanticValidator() *SemanticValidator {
	return &SemanticValidator{}
}

// Validate runs every semantic check over a parsed candidate document.
// It expects the document to have already passed schema validation; members
// with unexpected JSON types are skipped, not reported again.
func (v *SemanticValidator) Validate(doc any) *ValidationReport {
	report := NewValidationReport()

	root, ok := doc.(map[string]any)
	if !ok {
		report.AddError(CodeSchemaViolation, "document is not a JSON object", "")
		return report
	}

	// Path of first occurrence, for duplicate detection across both sections.
	seen := make(map[string]string)
	v.validateSection(root, "Files", false, seen, report)
	v.validateSection(root, "Directories", true, seen, report)
	return report
}

func (v *SemanticValidator) validateSection(root map[string]any, section string, isDir bool, seen map[string]string, report *ValidationReport) {
	entries, ok := root[section].([]any)
	if !ok {
		return
	}

	for i, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		v.validateEntry(entry, fmt.Sprintf("/%s/%d", section, i), isDir, seen, report)
	}
}

func (v *SemanticValidator) validateEntry(entry map[string]any, ptr string, isDir bool, seen map[string]string, report *ValidationReport) {
	if path, ok := entry["Path"].(string); ok {
		if !strings.HasPrefix(path, "/") {
			report.AddError(CodePathNotAbsolute,
				fmt.Sprintf("Path %q must be absolute", path),
				ptr+"/Path")
		}
		if first, dup := seen[path]; dup {
			report.AddWarning(CodeDuplicatePath,
				fmt.Sprintf("Path %q already listed at %s", path, first),
				ptr+"/Path")
		} else {
			seen[path] = ptr + "/Path"
		}
	}

	if dest, ok := entry["DestinationPath"].(string); ok && !strings.HasPrefix(dest, "/") {
		report.AddError(CodePathNotAbsolute,
			fmt.Sprintf("DestinationPath %q must be absolute", dest),
			ptr+"/DestinationPath")
	}

	if dir, ok := entry["SyncDirection"].(string); ok {
		if _, err := datasync.ParseSyncDirection(dir); err != nil {
			report.AddError(CodeInvalidSyncDirection,
				fmt.Sprintf("%v; the daemon would fall back to %s", err, datasync.Active2Passive),
				ptr+"/SyncDirection")
		}
	}

	syncType := datasync.Immediate
	if st, ok := entry["SyncType"].(string); ok {
		parsed, err := datasync.ParseSyncType(st)
		if err != nil {
			report.AddError(CodeInvalidSyncType,
				fmt.Sprintf("%v; the daemon would fall back to %s", err, datasync.Immediate),
				ptr+"/SyncType")
		} else {
			syncType = parsed
		}
	}

	v.validatePeriodicity(entry, ptr, syncType, report)
	v.validateRetry(entry, ptr, report)

	for _, list := range []string{"ExcludeList", "IncludeList"} {
		paths, ok := entry[list].([]any)
		if !ok {
			continue
		}
		if !isDir {
			report.AddWarning(CodeListOnFileEntry,
				fmt.Sprintf("%s applies to directory entries only", list),
				ptr+"/"+list)
		}
		for i, p := range paths {
			if s, ok := p.(string); ok && !strings.HasPrefix(s, "/") {
				report.AddError(CodePathNotAbsolute,
					fmt.Sprintf("%s entry %q must be absolute", list, s),
					fmt.Sprintf("%s/%s/%d", ptr, list, i))
			}
		}
	}
}

func (v *SemanticValidator) validatePeriodicity(entry map[string]any, ptr string, syncType datasync.SyncType, report *ValidationReport) {
	periodicity, present := entry["Periodicity"].(string)

	if syncType != datasync.Periodic {
		if present {
			report.AddWarning(CodePeriodicityIgnored,
				"Periodicity is ignored for Immediate entries",
				ptr+"/Periodicity")
		}
		return
	}

	if !present {
		report.AddError(CodePeriodicityRequired,
			fmt.Sprintf("Periodic entries need a Periodicity; the daemon would fall back to %s",
				datasync.FormatISODuration(datasync.DefaultPeriodicity)),
			ptr)
		return
	}

	d, err := datasync.ParseISODuration(periodicity)
	if err != nil {
		report.AddError(CodeInvalidDuration,
			fmt.Sprintf("%v; the daemon would fall back to %s", err,
				datasync.FormatISODuration(datasync.DefaultPeriodicity)),
			ptr+"/Periodicity")
		return
	}
	if d == 0 {
		report.AddError(CodeInvalidDuration, "Periodicity must be greater than zero", ptr+"/Periodicity")
	}
}

func (v *SemanticValidator) validateRetry(entry map[string]any, ptr string, report *ValidationReport) {
	attempts, hasAttempts := entry["RetryAttempts"]
	interval, hasInterval := entry["RetryInterval"]

	if hasAttempts != hasInterval {
		report.AddError(CodeRetryIncomplete,
			"RetryAttempts and RetryInterval must be specified together",
			ptr)
		// Still check whichever half is present.
	}

	if hasAttempts {
		if n, ok := toNumber(attempts); ok {
			if n != float64(int64(n)) || n < 0 || n > 255 {
				report.AddError(CodeRetryAttemptsRange,
					fmt.Sprintf("RetryAttempts %v must be an integer between 0 and 255", attempts),
					ptr+"/RetryAttempts")
			}
		}
	}

	if hasInterval {
		if s, ok := interval.(string); ok {
			d, err := datasync.ParseISODuration(s)
			if err != nil {
				report.AddError(CodeInvalidDuration,
					fmt.Sprintf("%v; the daemon would fall back to %s", err,
						datasync.FormatISODuration(datasync.DefaultRetryInterval)),
					ptr+"/RetryInterval")
			} else if d == 0 {
				report.AddError(CodeInvalidDuration, "RetryInterval must be greater than zero", ptr+"/RetryInterval")
			}
		}
	}
}
