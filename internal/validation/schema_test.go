package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bc-dunia/configlint/schemas"
)

const personSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"updated": {"type": "string", "format": "date-time"},
		"homepage": {"type": "string", "format": "uri"}
	}
}`

func compilePersonSchema(t *testing.T) *SchemaValidator {
	t.Helper()
	v, err := CompileSchemaBytes("person.json", []byte(personSchema))
	if err != nil {
		t.Fatalf("CompileSchemaBytes failed: %v", err)
	}
	return v
}

func TestCompileSchemaBytes(t *testing.T) {
	t.Run("rejects invalid JSON", func(t *testing.T) {
		if _, err := CompileSchemaBytes("bad.json", []byte(`{"type":`)); err == nil {
			t.Error("Expected error for truncated schema JSON")
		}
	})

	t.Run("rejects a schema that does not compile", func(t *testing.T) {
		if _, err := CompileSchemaBytes("bad.json", []byte(`{"type": "everything"}`)); err == nil {
			t.Error("Expected error for bogus type keyword")
		}
	})
}

func TestCompileSchemaFile(t *testing.T) {
	t.Run("compiles from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.json")
		if err := os.WriteFile(path, []byte(personSchema), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if _, err := CompileSchemaFile(path); err != nil {
			t.Fatalf("CompileSchemaFile failed: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := CompileSchemaFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Error("Expected error for missing schema file")
		}
	})
}

func TestSchemaValidatorValidate(t *testing.T) {
	v := compilePersonSchema(t)

	t.Run("conforming document passes", func(t *testing.T) {
		if err := v.ValidateBytes([]byte(`{"name": "x"}`)); err != nil {
			t.Errorf("Expected document to pass, got %v", err)
		}
	})

	t.Run("wrong type fails", func(t *testing.T) {
		if err := v.ValidateBytes([]byte(`{"name": 5}`)); err == nil {
			t.Error("Expected type mismatch to fail")
		}
	})

	t.Run("missing required member fails", func(t *testing.T) {
		err := v.ValidateBytes([]byte(`{}`))
		if err == nil {
			t.Fatal("Expected missing required member to fail")
		}
		report := ReportFromError(err)
		if report.OK {
			t.Fatal("Expected report to carry errors")
		}
		found := false
		for _, issue := range report.Errors {
			if issue.Code == CodeRequiredFieldMissing {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected a %s issue, got %+v", CodeRequiredFieldMissing, report.Errors)
		}
	})

	t.Run("format assertions are enforced", func(t *testing.T) {
		err := v.ValidateBytes([]byte(`{"name": "x", "updated": "not-a-date"}`))
		if err == nil {
			t.Fatal("Expected date-time format violation to fail")
		}
		report := ReportFromError(err)
		found := false
		for _, issue := range report.Errors {
			if issue.Code == CodeInvalidFormat {
				found = true
				if issue.JSONPointer != "/updated" {
					t.Errorf("Expected pointer /updated, got %q", issue.JSONPointer)
				}
			}
		}
		if !found {
			t.Errorf("Expected a %s issue, got %+v", CodeInvalidFormat, report.Errors)
		}
	})

	t.Run("valid format passes", func(t *testing.T) {
		doc := `{"name": "x", "updated": "2026-01-02T15:04:05Z", "homepage": "https://example.com"}`
		if err := v.ValidateBytes([]byte(doc)); err != nil {
			t.Errorf("Expected document to pass, got %v", err)
		}
	})

	t.Run("malformed candidate JSON fails", func(t *testing.T) {
		if err := v.ValidateBytes([]byte(`{"name": `)); err == nil {
			t.Error("Expected malformed JSON to fail")
		}
	})
}

func TestEmbeddedDataSyncListSchema(t *testing.T) {
	data, err := schemas.DataSyncListV1()
	if err != nil {
		t.Fatalf("DataSyncListV1 failed: %v", err)
	}

	v, err := CompileSchemaBytes("data-sync-list/v1.json", data)
	if err != nil {
		t.Fatalf("Embedded schema failed to compile: %v", err)
	}

	t.Run("accepts a documented sample", func(t *testing.T) {
		doc := `{
			"Files": [
				{
					"Path": "/file/path/to/sync",
					"Description": "Add details about the data and purpose of the synchronization",
					"SyncDirection": "Passive2Active",
					"SyncType": "Periodic",
					"Periodicity": "PT1M10S",
					"RetryAttempts": 1,
					"RetryInterval": "PT1M"
				}
			]
		}`
		if err := v.ValidateBytes([]byte(doc)); err != nil {
			t.Errorf("Expected sample to pass, got %v", err)
		}
	})

	t.Run("rejects an entry missing Description", func(t *testing.T) {
		doc := `{
			"Files": [
				{
					"Path": "/file/path/to/sync",
					"SyncDirection": "Active2Passive",
					"SyncType": "Immediate"
				}
			]
		}`
		if err := v.ValidateBytes([]byte(doc)); err == nil {
			t.Error("Expected entry without Description to fail")
		}
	})

	t.Run("rejects a Periodic entry without Periodicity", func(t *testing.T) {
		doc := `{
			"Files": [
				{
					"Path": "/file/path/to/sync",
					"Description": "d",
					"SyncDirection": "Active2Passive",
					"SyncType": "Periodic"
				}
			]
		}`
		if err := v.ValidateBytes([]byte(doc)); err == nil {
			t.Error("Expected Periodic entry without Periodicity to fail")
		}
	})

	t.Run("rejects RetryAttempts without RetryInterval", func(t *testing.T) {
		doc := `{
			"Files": [
				{
					"Path": "/file/path/to/sync",
					"Description": "d",
					"SyncDirection": "Active2Passive",
					"SyncType": "Immediate",
					"RetryAttempts": 2
				}
			]
		}`
		if err := v.ValidateBytes([]byte(doc)); err == nil {
			t.Error("Expected dangling RetryAttempts to fail")
		}
	})

	t.Run("rejects a document with neither section", func(t *testing.T) {
		if err := v.ValidateBytes([]byte(`{}`)); err == nil {
			t.Error("Expected empty document to fail")
		}
	})
}
