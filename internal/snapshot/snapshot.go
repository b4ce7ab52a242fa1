// Package snapshot writes the per-run JSON dumps of the fetched dataset.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Write dumps v as pretty-printed JSON, creating parent directories as
// needed.
func Write(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
