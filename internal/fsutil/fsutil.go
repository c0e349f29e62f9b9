// Package fsutil provides file system helpers for writing generated files.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is a path and the complete content to store there.
type File struct {
	Path    string
	Content []byte
}

// TrimExt removes the extension of the last path element, if any.
func TrimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// WriteFilesAtomic writes every file or none of them. Each file is first
// written to a temporary sibling; only when all temporaries are complete are
// they renamed into place. A target that already exists is moved aside first,
// so that a failed rename restores the previous content of every target this
// call touched.
func WriteFilesAtomic(files []File, perm os.FileMode) error {
	temps := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}()

	for _, f := range files {
		tmp, err := writeTemp(f, perm)
		if err != nil {
			return err
		}
		temps = append(temps, tmp)
	}

	var done []placed
	for i, f := range files {
		backup, err := moveAside(f.Path)
		if err != nil {
			rollback(done)
			return err
		}
		if err := os.Rename(temps[i], f.Path); err != nil {
			if backup != "" {
				os.Rename(backup, f.Path)
			}
			rollback(done)
			return fmt.Errorf("failed to move %s into place: %w", f.Path, err)
		}
		done = append(done, placed{path: f.Path, backup: backup})
	}
	for _, p := range done {
		if p.backup != "" {
			os.Remove(p.backup)
		}
	}
	temps = temps[:0]
	return nil
}

// placed is a target renamed into place, with the backup of what it replaced.
type placed struct {
	path   string
	backup string
}

func rollback(done []placed) {
	for i := len(done) - 1; i >= 0; i-- {
		p := done[i]
		if p.backup != "" {
			os.Rename(p.backup, p.path)
			continue
		}
		os.Remove(p.path)
	}
}

// moveAside renames an existing regular file at path to a backup sibling and
// returns the backup's name. It returns "" when there is nothing to keep.
func moveAside(path string) (string, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", nil
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	bak, err := os.CreateTemp(dir, "."+base+".*.bak")
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	bak.Close()
	if err := os.Rename(path, bak.Name()); err != nil {
		os.Remove(bak.Name())
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return bak.Name(), nil
}

func writeTemp(f File, perm os.FileMode) (string, error) {
	dir, base := filepath.Split(f.Path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", f.Path, err)
	}

	_, werr := tmp.Write(f.Content)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to set mode on %s: %w", f.Path, err)
	}
	return tmp.Name(), nil
}
