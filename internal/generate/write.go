package generate

import (
	"fmt"
	"io/fs"
	"os"
)

// writeFileAtomic writes data through a sibling temp file and renames it
// into place, so an interrupted run never leaves a half-written target.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
