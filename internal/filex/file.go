// Package filex holds small filesystem helpers shared by the binaries.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrExists = errors.New("file already exists")

// EnsureParentDir creates the directory that will hold path, owner-only.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// PrepareNew checks that path is free and that its directory exists. It is
// used before writing key material that must never be overwritten silently.
func PrepareNew(path string, force bool) error {
	exists, err := Exists(path)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}
	return EnsureParentDir(path)
}
