// Package datasync defines the data-sync list configuration dialect: the
// files and directories to be synchronized between the active and passive
// BMC, with their sync direction, sync type and retry preferences.
//
// ParseList mirrors the consuming daemon: unknown enumeration values and
// unparseable durations fall back to documented defaults rather than
// failing the parse. The validation package reports those fallbacks before
// they happen silently.
package datasync

import (
	"encoding/json"
	"fmt"
	"time"
)

// SyncDirection selects which BMC pushes data to which.
type SyncDirection string

const (
	Active2Passive SyncDirection = "Active2Passive"
	Passive2Active SyncDirection = "Passive2Active"
	Bidirectional  SyncDirection = "Bidirectional"
)

// ParseSyncDirection converts a configuration string into a SyncDirection.
func ParseSyncDirection(s string) (SyncDirection, error) {
	switch SyncDirection(s) {
	case Active2Passive, Passive2Active, Bidirectional:
		return SyncDirection(s), nil
	}
	return "", fmt.Errorf("unsupported sync direction %q", s)
}

// SyncType selects when an entry is synchronized.
type SyncType string

const (
	Immediate SyncType = "Immediate"
	Periodic  SyncType = "Periodic"
)

// ParseSyncType converts a configuration string into a SyncType.
func ParseSyncType(s string) (SyncType, error) {
	switch SyncType(s) {
	case Immediate, Periodic:
		return SyncType(s), nil
	}
	return "", fmt.Errorf("unsupported sync type %q", s)
}

// Defaults applied by the daemon when an entry omits or mis-states the
// corresponding member.
const (
	DefaultPeriodicity   = 60 * time.Second
	DefaultRetryAttempts = uint8(3)
	DefaultRetryInterval = 30 * time.Second
)

// Retry holds the retry preference for one entry.
type Retry struct {
	Attempts uint8
	Interval time.Duration
}

// Entry is one file or directory to synchronize.
type Entry struct {
	Path            string
	Description     string
	DestinationPath string // empty when the destination mirrors Path
	SyncDirection   SyncDirection
	SyncType        SyncType
	Periodicity     time.Duration // zero unless SyncType is Periodic
	Retry           Retry
	ExcludeList     []string // directories only
	IncludeList     []string // directories only
}

// List is a parsed data-sync list document.
type List struct {
	Files       []Entry
	Directories []Entry
}

type rawEntry struct {
	Path            string   `json:"Path"`
	Description     string   `json:"Description"`
	DestinationPath *string  `json:"DestinationPath"`
	SyncDirection   string   `json:"SyncDirection"`
	SyncType        string   `json:"SyncType"`
	Periodicity     *string  `json:"Periodicity"`
	RetryAttempts   *int     `json:"RetryAttempts"`
	RetryInterval   *string  `json:"RetryInterval"`
	ExcludeList     []string `json:"ExcludeList"`
	IncludeList     []string `json:"IncludeList"`
}

type rawList struct {
	Files       []rawEntry `json:"Files"`
	Directories []rawEntry `json:"Directories"`
}

// ParseList decodes a data-sync list document, applying the daemon's
// defaults. It fails only on malformed JSON or wrong member types; use the
// validation package to surface entries that would silently fall back.
func ParseList(data []byte) (*List, error) {
	var raw rawList
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse data-sync list: %w", err)
	}

	list := &List{}
	for _, r := range raw.Files {
		list.Files = append(list.Files, buildEntry(r))
	}
	for _, r := range raw.Directories {
		list.Directories = append(list.Directories, buildEntry(r))
	}
	return list, nil
}

func buildEntry(r rawEntry) Entry {
	e := Entry{
		Path:        r.Path,
		Description: r.Description,
		ExcludeList: r.ExcludeList,
		IncludeList: r.IncludeList,
	}

	if r.DestinationPath != nil {
		e.DestinationPath = *r.DestinationPath
	}

	e.SyncDirection = Active2Passive
	if d, err := ParseSyncDirection(r.SyncDirection); err == nil {
		e.SyncDirection = d
	}

	e.SyncType = Immediate
	if t, err := ParseSyncType(r.SyncType); err == nil {
		e.SyncType = t
	}

	if e.SyncType == Periodic {
		e.Periodicity = DefaultPeriodicity
		if r.Periodicity != nil {
			if d, err := ParseISODuration(*r.Periodicity); err == nil {
				e.Periodicity = d
			}
		}
	}

	e.Retry = Retry{Attempts: DefaultRetryAttempts, Interval: DefaultRetryInterval}
	if r.RetryAttempts != nil && r.RetryInterval != nil {
		if *r.RetryAttempts >= 0 && *r.RetryAttempts <= 255 {
			e.Retry.Attempts = uint8(*r.RetryAttempts)
		}
		if d, err := ParseISODuration(*r.RetryInterval); err == nil {
			e.Retry.Interval = d
		}
	}

	return e
}
