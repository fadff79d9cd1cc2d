// Package schemas provides embedded JSON schema files for validation.
package schemas

import "embed"

// FS contains all JSON schema files embedded at compile time.
// Access schemas via FS.ReadFile("data-sync-list/v1.json"), etc.
//
//go:embed */v1.json
var FS embed.FS

// DataSyncListV1 returns the schema describing data-sync list
// configuration files.
func DataSyncListV1() ([]byte, error) {
	return FS.ReadFile("data-sync-list/v1.json")
}
