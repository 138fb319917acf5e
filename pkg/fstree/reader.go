package fstree

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirectoryReader lists the immediate sub-directories of an absolute path.
// The order need not be sorted but must be stable for an unchanged directory.
type DirectoryReader interface {
	ReadDir(path string) ([]string, error)
}

// DirChecker is implemented by readers whose listings leave out some
// directories, such as hidden ones. Resolve uses it to step into a
// directory named on a path even though the listing omitted it.
type DirChecker interface {
	IsDir(path string) bool
}

// ReaderFunc adapts a function to DirectoryReader.
type ReaderFunc func(path string) ([]string, error)

// ReadDir calls f(path).
func (f ReaderFunc) ReadDir(path string) ([]string, error) {
	return f(path)
}

// OSReader reads directories from the host filesystem. Symlinks are
// included when their target is a directory, matching what cd accepts.
type OSReader struct {
	ShowHidden bool
}

// ReadDir returns sub-directory names in the filename order os.ReadDir uses.
func (r OSReader) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !r.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if !isDirEntry(path, e) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// IsDir reports whether path is a directory, following symlinks.
func (r OSReader) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isDirEntry(parent string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}
