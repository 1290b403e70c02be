package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileExists reports whether a regular file exists at path.
func FileExists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if file exists: %w", err)
	}
	return !info.IsDir(), nil
}

// DirExists reports whether a directory exists at path.
func DirExists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat directory: %w", err)
	}
	return info.IsDir(), nil
}

// EnsureDirExists creates path (and parents) when it does not exist yet.
func EnsureDirExists(fs afero.Fs, path string) error {
	exists, err := DirExists(fs, path)
	if err != nil {
		return err
	}
	if !exists {
		if err := fs.MkdirAll(path, ReadWriteExecuteUserReadExecuteOthers); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// WriteFile writes data to path, creating the parent directory if needed.
func WriteFile(fs afero.Fs, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := EnsureDirExists(fs, dir); err != nil {
			return err
		}
	}
	if err := afero.WriteFile(fs, path, data, ReadWriteUserReadOthers); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the whole file at path.
func ReadFile(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}
