package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewQuietSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug().Msg("hidden")
	logger.Warn().Msg("also hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected quiet logger to suppress sub-error events, got %q", buf.String())
	}

	logger.Error().Msg("surfaced")
	if !strings.Contains(buf.String(), "surfaced") {
		t.Errorf("Expected error event to be written, got %q", buf.String())
	}
}

func TestNewVerboseWritesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug().Str("schema", "schema.json").Msg("schema compiled")
	if !strings.Contains(buf.String(), "schema compiled") {
		t.Errorf("Expected debug event to be written, got %q", buf.String())
	}
}
