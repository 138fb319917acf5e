// Package nav drives a directory browsing session: it owns the tree, the
// flattened rows and the viewport, and applies abstract navigation commands.
package nav

import (
	"github.com/rs/zerolog"

	"github.com/vanderheijden86/vcd/pkg/fstree"
)

// Defaults used when no option overrides them.
const (
	DefaultViewportHeight = 20
	DefaultMargin         = 3
)

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger for non-fatal failures.
func WithLogger(l zerolog.Logger) Option {
	return func(n *Navigator) {
		n.log = l.With().Str("component", "nav").Logger()
	}
}

// WithMargin sets the scroll margin (scrolloff).
func WithMargin(m int) Option {
	return func(n *Navigator) {
		n.vp.SetMargin(m)
	}
}

// WithViewportHeight sets the initial number of visible rows.
func WithViewportHeight(h int) Option {
	return func(n *Navigator) {
		n.vp.SetHeight(h)
	}
}

// WithWrapJump chooses between cyclic and forward-only letter jumps.
func WithWrapJump(wrap bool) Option {
	return func(n *Navigator) {
		n.wrapJump = wrap
	}
}

// Navigator is the browsing state machine. It is not safe for concurrent use;
// every command runs to completion before the next one is considered.
type Navigator struct {
	root     *fstree.TreeNode
	rows     []fstree.Row
	vp       *Viewport
	wrapJump bool
	log      zerolog.Logger

	// lastErr is the non-fatal failure raised by the most recent command.
	lastErr error
}

// New loads root and builds the initial view with the cursor on it.
func New(root *fstree.TreeNode, opts ...Option) *Navigator {
	n := &Navigator{
		root:     root,
		vp:       NewViewport(DefaultViewportHeight, DefaultMargin),
		wrapJump: true,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if err := root.Load(); err != nil {
		n.log.Warn().Err(err).Msg("root not readable")
		n.lastErr = err
	}
	n.refresh()
	return n
}

// Start places the cursor on startPath, loading the directories along the
// way. A failure is logged and returned, and leaves the cursor on the root;
// callers treat it as a warning.
func (n *Navigator) Start(startPath string) error {
	node, err := fstree.Resolve(n.root, startPath)
	n.refresh()
	if err != nil {
		n.log.Warn().Err(err).Str("path", startPath).Msg("start path not resolved, using root")
		n.lastErr = err
		n.vp.MoveTo(0)
		return err
	}
	n.moveToNode(node)
	return nil
}

// Apply runs one command and reports whether the session has ended.
func (n *Navigator) Apply(cmd Command) Outcome {
	n.lastErr = nil

	switch cmd.Op {
	case OpMoveUp:
		n.vp.MoveBy(-1)
	case OpMoveDown:
		n.vp.MoveBy(1)
	case OpScrollUp:
		n.vp.ScrollBy(-1)
	case OpScrollDown:
		n.vp.ScrollBy(1)
	case OpPageUp:
		n.vp.MoveBy(-n.pageSize())
	case OpPageDown:
		n.vp.MoveBy(n.pageSize())
	case OpTop:
		n.vp.MoveTo(0)
	case OpBottom:
		n.vp.MoveTo(len(n.rows) - 1)
	case OpParent:
		n.moveToParent()
	case OpCollapse:
		n.collapse()
	case OpExpand:
		n.expand()
	case OpJumpToLetter:
		n.jumpToLetter(cmd.Letter)
	case OpConfirm:
		return n.confirm()
	case OpCancel:
		return Outcome{Status: Cancelled}
	}
	return Outcome{Status: Browsing}
}

// Root returns the tree root.
func (n *Navigator) Root() *fstree.TreeNode { return n.root }

// Rows returns the current flattened view. The slice is replaced, not
// modified, on structural changes.
func (n *Navigator) Rows() []fstree.Row { return n.rows }

// Cursor returns the cursor row; ok is false when there are no rows.
func (n *Navigator) Cursor() (int, bool) { return n.vp.Cursor() }

// ScrollOffset returns the first visible row.
func (n *Navigator) ScrollOffset() int { return n.vp.Offset() }

// ViewportHeight returns the number of visible rows.
func (n *Navigator) ViewportHeight() int { return n.vp.Height() }

// VisibleRange returns the half-open range of rows on screen.
func (n *Navigator) VisibleRange() (start, end int) { return n.vp.VisibleRange() }

// SetViewportHeight resizes the window, e.g. after a terminal resize.
func (n *Navigator) SetViewportHeight(h int) { n.vp.SetHeight(h) }

// Err returns the non-fatal failure raised by the last command, if any.
func (n *Navigator) Err() error { return n.lastErr }

// SelectedNode returns the node under the cursor, or nil.
func (n *Navigator) SelectedNode() *fstree.TreeNode {
	i, ok := n.vp.Cursor()
	if !ok {
		return nil
	}
	return n.rows[i].Node
}

// SelectedPath returns the absolute path of the node under the cursor.
func (n *Navigator) SelectedPath() (string, error) {
	node := n.SelectedNode()
	if node == nil {
		return "", fstree.ErrNotFound
	}
	return node.ResolvedPath()
}

func (n *Navigator) confirm() Outcome {
	path, err := n.SelectedPath()
	if err != nil {
		n.log.Warn().Err(err).Msg("cannot resolve selected path")
		n.lastErr = err
		return Outcome{Status: Browsing}
	}
	return Outcome{Status: Selected, Path: path}
}

func (n *Navigator) collapse() {
	node := n.SelectedNode()
	if node == nil {
		return
	}
	if node.IsLoaded() {
		node.Unload()
		n.refresh()
		n.moveToNode(node)
		return
	}
	n.moveToParent()
}

func (n *Navigator) expand() {
	node := n.SelectedNode()
	if node == nil {
		return
	}
	if !node.IsLoaded() {
		if err := node.Load(); err != nil {
			n.log.Warn().Err(err).Str("name", node.Name()).Msg("cannot expand")
			n.lastErr = err
			return
		}
		n.refresh()
		n.moveToNode(node)
		return
	}
	if children := node.Children(); len(children) > 0 {
		n.moveToNode(children[0])
	}
}

func (n *Navigator) moveToParent() {
	node := n.SelectedNode()
	if node == nil {
		return
	}
	parent, err := node.Parent()
	if err != nil {
		n.log.Warn().Err(err).Str("name", node.Name()).Msg("parent unavailable")
		n.lastErr = err
		return
	}
	if parent != nil {
		n.moveToNode(parent)
	}
}

func (n *Navigator) jumpToLetter(letter rune) {
	node := n.SelectedNode()
	if node == nil {
		return
	}
	if target := node.FindNextSiblingStartingWith(letter, n.wrapJump); target != nil {
		n.moveToNode(target)
	}
}

// moveToNode puts the cursor on node's row if it is visible.
func (n *Navigator) moveToNode(node *fstree.TreeNode) {
	if i := fstree.IndexOf(n.rows, node); i >= 0 {
		n.vp.MoveTo(i)
	}
}

// refresh rebuilds the rows from the tree's loaded shape.
func (n *Navigator) refresh() {
	n.rows = fstree.Flatten(n.root)
	n.vp.SetRowCount(len(n.rows))
	n.vp.Follow()
}

func (n *Navigator) pageSize() int {
	return max(1, n.vp.Height()/2)
}
