// Package fstree models a filesystem's directory hierarchy as a lazily
// loaded tree.
//
// Each TreeNode owns the children produced by its last successful Load.
// Children point back at their parent through a weak pointer, so the
// upward link never keeps a collapsed subtree alive:
//
//	root := fstree.NewRoot("/", fstree.OSReader{ShowHidden: true})
//	root.Load()
//	for _, child := range root.Children() {
//	    fmt.Println(child.Name())
//	}
package fstree

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
	"weak"

	"github.com/rs/zerolog"

	"github.com/vanderheijden86/vcd/pkg/metrics"
)

// Common errors.
var (
	ErrNotFound     = errors.New("path not found in tree")
	ErrRootMismatch = errors.New("path does not start at tree root")
	ErrDetached     = errors.New("parent node no longer exists")
	ErrNoRoot       = errors.New("cannot determine filesystem root")
)

// FileNode is the single path segment a TreeNode stands for.
type FileNode struct {
	name string
}

// NewFileNode returns a FileNode for the given segment.
func NewFileNode(name string) FileNode {
	return FileNode{name: name}
}

// Name returns the segment as reported by the filesystem.
func (f FileNode) Name() string {
	return f.name
}

// tree holds what every node of one hierarchy shares.
type tree struct {
	reader DirectoryReader
	log    zerolog.Logger
}

// Option configures a tree created by NewRoot.
type Option func(*tree)

// WithLogger sets the logger that receives load failures.
func WithLogger(l zerolog.Logger) Option {
	return func(t *tree) {
		t.log = l.With().Str("component", "fstree").Logger()
	}
}

// TreeNode represents one directory.
type TreeNode struct {
	file     FileNode
	children []*TreeNode
	loaded   bool

	parent    weak.Pointer[TreeNode]
	hasParent bool

	tree *tree
}

// NewRoot creates an unloaded root node. name is the platform root prefix
// ("/" on Unix, a volume such as `C:\` on Windows).
func NewRoot(name string, reader DirectoryReader, opts ...Option) *TreeNode {
	t := &tree{reader: reader, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	return &TreeNode{file: NewFileNode(name), tree: t}
}

// RootFor returns the filesystem root prefix that absPath begins with.
func RootFor(absPath string) (string, error) {
	if !filepath.IsAbs(absPath) {
		return "", fmt.Errorf("%w: %q is not absolute", ErrNoRoot, absPath)
	}
	return filepath.VolumeName(absPath) + string(filepath.Separator), nil
}

// Name returns the node's path segment.
func (n *TreeNode) Name() string {
	return n.file.Name()
}

// FileNode returns the segment this node stands for.
func (n *TreeNode) FileNode() FileNode {
	return n.file
}

// IsLoaded reports whether the node's children have been read.
func (n *TreeNode) IsLoaded() bool {
	return n.loaded
}

// Children returns the loaded children in reader order, or nil when unloaded.
// The returned slice must not be modified.
func (n *TreeNode) Children() []*TreeNode {
	if !n.loaded {
		return nil
	}
	return n.children
}

// Child returns the loaded child named name, or nil.
func (n *TreeNode) Child(name string) *TreeNode {
	for _, c := range n.Children() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// IsRoot reports whether the node was created by NewRoot.
func (n *TreeNode) IsRoot() bool {
	return !n.hasParent
}

// Parent returns the enclosing node. It returns (nil, nil) for the root and
// ErrDetached when the parent has already been released.
func (n *TreeNode) Parent() (*TreeNode, error) {
	if !n.hasParent {
		return nil, nil
	}
	p := n.parent.Value()
	if p == nil {
		return nil, fmt.Errorf("%w: parent of %q", ErrDetached, n.Name())
	}
	return p, nil
}

// Depth returns the number of parent links between n and the root.
func (n *TreeNode) Depth() int {
	depth := 0
	for cur := n; ; depth++ {
		p, err := cur.Parent()
		if err != nil || p == nil {
			return depth
		}
		cur = p
	}
}

// Load reads the node's sub-directories if it is not loaded yet. On a read
// failure the node stays unloaded and the error is returned for the caller
// to report.
func (n *TreeNode) Load() error {
	if n.loaded {
		return nil
	}

	path, err := n.ResolvedPath()
	if err != nil {
		n.tree.log.Debug().Err(err).Str("name", n.Name()).Msg("cannot load detached node")
		return err
	}

	stop := metrics.Timer(metrics.DirRead)
	names, err := n.tree.reader.ReadDir(path)
	stop()
	if err != nil {
		metrics.DirReadFailures.Inc()
		n.tree.log.Debug().Err(err).Str("path", path).Msg("directory read failed")
		return fmt.Errorf("reading %s: %w", path, err)
	}

	children := make([]*TreeNode, 0, len(names))
	for _, name := range names {
		children = append(children, n.newChild(name))
	}
	n.children = children
	n.loaded = true
	return nil
}

func (n *TreeNode) newChild(name string) *TreeNode {
	return &TreeNode{
		file:      NewFileNode(name),
		parent:    weak.Make(n),
		hasParent: true,
		tree:      n.tree,
	}
}

// adopt inserts a child named name into a loaded node whose listing left it
// out, before the first sibling that sorts after it. The child lives until
// the next Unload like any other.
func (n *TreeNode) adopt(name string) *TreeNode {
	if c := n.Child(name); c != nil {
		return c
	}
	child := n.newChild(name)
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].Name() > name
	})
	n.children = slices.Insert(n.children, i, child)
	return child
}

// Unload drops the loaded children and everything beneath them.
func (n *TreeNode) Unload() {
	n.children = nil
	n.loaded = false
}

// ResolvedPath rebuilds the node's absolute path from the parent chain.
func (n *TreeNode) ResolvedPath() (string, error) {
	segments := []string{n.Name()}
	for cur := n; ; {
		p, err := cur.Parent()
		if err != nil {
			return "", err
		}
		if p == nil {
			break
		}
		segments = append(segments, p.Name())
		cur = p
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return filepath.Join(segments...), nil
}

// FindNextSiblingStartingWith returns the first sibling after n whose name
// starts with letter, compared case-insensitively. When wrap is set the
// search continues from the first sibling; n itself is never returned.
// It returns nil for the root or when no sibling matches.
func (n *TreeNode) FindNextSiblingStartingWith(letter rune, wrap bool) *TreeNode {
	parent, err := n.Parent()
	if err != nil || parent == nil {
		return nil
	}
	siblings := parent.Children()
	self := -1
	for i, s := range siblings {
		if s == n {
			self = i
			break
		}
	}
	if self < 0 {
		return nil
	}

	want := string(letter)
	limit := len(siblings) - 1 - self
	if wrap {
		limit = len(siblings) - 1
	}
	for step := 1; step <= limit; step++ {
		s := siblings[(self+step)%len(siblings)]
		first, size := utf8.DecodeRuneInString(s.Name())
		if size == 0 {
			continue
		}
		if strings.EqualFold(string(first), want) {
			return s
		}
	}
	return nil
}
