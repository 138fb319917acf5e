package fstree

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vanderheijden86/vcd/pkg/metrics"
)

// Resolve walks absPath down from root, loading each node it passes through,
// and returns the node standing for absPath. It fails with ErrRootMismatch
// when absPath does not begin with root's prefix, with ErrNotFound when a
// component has no matching child, and with the reader's error when a
// directory on the way cannot be read.
//
// A hidden component left out of its parent's listing is still followed when
// the reader implements DirChecker and confirms the directory exists.
func Resolve(root *TreeNode, absPath string) (*TreeNode, error) {
	defer metrics.Timer(metrics.PathResolve)()

	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrNotFound)
	}
	if !filepath.IsAbs(absPath) {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrRootMismatch, absPath)
	}

	clean := filepath.Clean(absPath)
	prefix := root.Name()
	if !hasRootPrefix(clean, prefix) {
		return nil, fmt.Errorf("%w: %q is not under %q", ErrRootMismatch, clean, prefix)
	}

	node := root
	for _, component := range strings.Split(clean[len(prefix):], string(filepath.Separator)) {
		if component == "" {
			continue
		}
		if err := node.Load(); err != nil {
			return nil, fmt.Errorf("resolving %s: %w", clean, err)
		}
		child := node.Child(component)
		if child == nil {
			child = revealHidden(node, component)
		}
		if child == nil {
			return nil, fmt.Errorf("%w: %q has no entry %q", ErrNotFound, clean, component)
		}
		node = child
	}
	return node, nil
}

func hasRootPrefix(path, prefix string) bool {
	if len(path) < len(prefix) {
		return false
	}
	if runtime.GOOS == "windows" {
		return strings.EqualFold(path[:len(prefix)], prefix)
	}
	return path[:len(prefix)] == prefix
}

// revealHidden adds the dot-directory name under node when the reader
// filtered it out of the listing. It returns nil for anything else.
func revealHidden(node *TreeNode, name string) *TreeNode {
	if !strings.HasPrefix(name, ".") || name == "." || name == ".." {
		return nil
	}
	checker, ok := node.tree.reader.(DirChecker)
	if !ok {
		return nil
	}
	dir, err := node.ResolvedPath()
	if err != nil || !checker.IsDir(filepath.Join(dir, name)) {
		return nil
	}
	node.tree.log.Debug().Str("path", dir).Str("name", name).Msg("revealing hidden directory on path")
	return node.adopt(name)
}
