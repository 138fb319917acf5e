package testutil

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/vcd/pkg/fstree"
)

// RowNames returns the node names of rows in order.
func RowNames(rows []fstree.Row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Node.Name()
	}
	return names
}

// AssertRowNames verifies the visible rows, in order.
func AssertRowNames(t *testing.T, rows []fstree.Row, want ...string) {
	t.Helper()
	got := RowNames(rows)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

// AssertCursorInBounds verifies the cursor invariant for a row count.
func AssertCursorInBounds(t *testing.T, cursor int, ok bool, rowCount int) {
	t.Helper()
	if rowCount == 0 {
		if ok {
			t.Errorf("cursor %d present on empty row list", cursor)
		}
		return
	}
	if !ok {
		t.Errorf("cursor absent with %d rows", rowCount)
		return
	}
	if cursor < 0 || cursor >= rowCount {
		t.Errorf("cursor %d outside [0, %d)", cursor, rowCount)
	}
}

// MustResolvedPath returns node's path or fails the test.
func MustResolvedPath(t *testing.T, node *fstree.TreeNode) string {
	t.Helper()
	p, err := node.ResolvedPath()
	if err != nil {
		t.Fatalf("ResolvedPath(%q): %v", node.Name(), err)
	}
	return p
}
