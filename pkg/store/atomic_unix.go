//go:build !windows

package store

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
