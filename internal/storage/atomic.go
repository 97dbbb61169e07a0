package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-contacts/internal/config"
)

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	// The temp file lives next to the target so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, config.TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrTempCreate, err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }() // No-op once renamed.

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("%s: %w", config.ErrTempWrite, err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("%s: %w", config.ErrTempSync, err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrTempClose, err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("%s: %w", config.ErrTempChmod, err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("%s %s: %w", config.ErrTempRename, filename, err)
	}

	return nil
}

// WriteFile creates the parent directory if needed and replaces filename
// atomically with data.
func WriteFile(filename string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return writeFileAtomic(filename, data, config.FilePermUserRW)
}
