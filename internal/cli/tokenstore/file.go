package tokenstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File keeps the token byte-exact as a plain string in a single file.
// An empty file means no token.
type File struct {
	path string
}

// NewFile creates a file-backed store at path
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the token file location
func (f *File) Path() string {
	return f.path
}

func (f *File) Get() (string, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read token file: %w", err)
	}

	// A hand-edited file usually ends in a newline that is not part of the token
	token := strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	return token, token != "", nil
}

func (f *File) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated token
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}
