package datasync

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// The daemon only understands the time-of-day components of an ISO 8601
// duration (PTnHnMnS); date components such as P1D are rejected.
var isoDurationPattern = regexp.MustCompile(`^PT(?:([0-9]+)H)?(?:([0-9]+)M)?(?:([0-9]+)S)?$`)

// ParseISODuration parses the PTnHnMnS subset of ISO 8601 durations used by
// data-sync configuration files. The string must match in full and carry at
// least one component, so bare "PT" and inputs like "P1D" are errors.
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, fmt.Errorf("%q does not match the ISO 8601 duration format PTnHnMnS", s)
	}

	var total time.Duration
	for i, unit := range []time.Duration{time.Hour, time.Minute, time.Second} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration component %q in %q: %w", m[i+1], s, err)
		}
		total += time.Duration(n) * unit
	}
	return total, nil
}

// FormatISODuration renders d in the PTnHnMnS form accepted by
// ParseISODuration. Sub-second precision is truncated.
func FormatISODuration(d time.Duration) string {
	if d <= 0 {
		return "PT0S"
	}

	out := "PT"
	if h := d / time.Hour; h > 0 {
		out += fmt.Sprintf("%dH", h)
		d -= h * time.Hour
	}
	if m := d / time.Minute; m > 0 {
		out += fmt.Sprintf("%dM", m)
		d -= m * time.Minute
	}
	if s := d / time.Second; s > 0 || out == "PT" {
		out += fmt.Sprintf("%dS", s)
	}
	return out
}
