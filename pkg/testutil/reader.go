// Package testutil provides in-memory directory fixtures for tests.
// All fixtures are deterministic so tree shapes and row orders are reproducible.
package testutil

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNoSuchDir is returned by MapReader for paths it does not know.
var ErrNoSuchDir = errors.New("no such directory")

// MapReader is an in-memory DirectoryReader rooted at "/".
// It records how often each path is read.
type MapReader struct {
	dirs  map[string][]string
	fail  map[string]error
	calls map[string]int
}

// NewMapReader registers every given absolute directory path together with
// its ancestors. Children keep the order in which they were first seen.
//
//	r := testutil.NewMapReader("/bin", "/home/user")
//	r.ReadDir("/")     // [bin home]
//	r.ReadDir("/home") // [user]
func NewMapReader(dirs ...string) *MapReader {
	r := &MapReader{
		dirs:  map[string][]string{"/": {}},
		fail:  make(map[string]error),
		calls: make(map[string]int),
	}
	for _, d := range dirs {
		r.Add(d)
	}
	return r
}

// Add registers dir and any missing ancestors.
func (r *MapReader) Add(dir string) {
	dir = path.Clean("/" + dir)
	if _, ok := r.dirs[dir]; ok {
		return
	}
	parent := path.Dir(dir)
	r.Add(parent)
	r.dirs[parent] = append(r.dirs[parent], path.Base(dir))
	r.dirs[dir] = []string{}
}

// FailWith makes reads of dir return err.
func (r *MapReader) FailWith(dir string, err error) {
	r.fail[path.Clean(dir)] = err
}

// ReadDir returns the registered children of dir.
func (r *MapReader) ReadDir(dir string) ([]string, error) {
	dir = path.Clean(dir)
	r.calls[dir]++
	if err, ok := r.fail[dir]; ok {
		return nil, err
	}
	children, ok := r.dirs[dir]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchDir, dir)
	}
	out := make([]string, len(children))
	copy(out, children)
	return out, nil
}

// Calls returns how many times dir was read.
func (r *MapReader) Calls(dir string) int {
	return r.calls[path.Clean(dir)]
}

// TotalCalls returns the number of reads across all paths.
func (r *MapReader) TotalCalls() int {
	total := 0
	for _, n := range r.calls {
		total += n
	}
	return total
}

// Dirs returns every registered directory path, including "/".
func (r *MapReader) Dirs() []string {
	out := make([]string, 0, len(r.dirs))
	for d := range r.dirs {
		out = append(out, d)
	}
	return out
}

// Has reports whether dir is registered.
func (r *MapReader) Has(dir string) bool {
	_, ok := r.dirs[path.Clean(dir)]
	return ok
}

// String renders the fixture as an indented listing, useful in failure output.
func (r *MapReader) String() string {
	var sb strings.Builder
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		for _, name := range r.dirs[dir] {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(name)
			sb.WriteString("\n")
			walk(path.Join(dir, name), depth+1)
		}
	}
	sb.WriteString("/\n")
	walk("/", 1)
	return sb.String()
}
