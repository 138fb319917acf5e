package nav

import "fmt"

// Op identifies a navigation command.
type Op int

const (
	OpMoveUp Op = iota
	OpMoveDown
	OpScrollUp
	OpScrollDown
	OpPageUp
	OpPageDown
	OpTop
	OpBottom
	OpParent
	OpCollapse
	OpExpand
	OpJumpToLetter
	OpConfirm
	OpCancel
)

var opNames = [...]string{
	OpMoveUp:       "MoveUp",
	OpMoveDown:     "MoveDown",
	OpScrollUp:     "ScrollUp",
	OpScrollDown:   "ScrollDown",
	OpPageUp:       "PageUp",
	OpPageDown:     "PageDown",
	OpTop:          "Top",
	OpBottom:       "Bottom",
	OpParent:       "Parent",
	OpCollapse:     "Collapse",
	OpExpand:       "Expand",
	OpJumpToLetter: "JumpToLetter",
	OpConfirm:      "Confirm",
	OpCancel:       "Cancel",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Command is an input already translated from raw key events.
// Letter is only meaningful for OpJumpToLetter.
type Command struct {
	Op     Op
	Letter rune
}

// Commands without arguments.
var (
	MoveUp     = Command{Op: OpMoveUp}
	MoveDown   = Command{Op: OpMoveDown}
	ScrollUp   = Command{Op: OpScrollUp}
	ScrollDown = Command{Op: OpScrollDown}
	PageUp     = Command{Op: OpPageUp}
	PageDown   = Command{Op: OpPageDown}
	Top        = Command{Op: OpTop}
	Bottom     = Command{Op: OpBottom}
	Parent     = Command{Op: OpParent}
	Collapse   = Command{Op: OpCollapse}
	Expand     = Command{Op: OpExpand}
	Confirm    = Command{Op: OpConfirm}
	Cancel     = Command{Op: OpCancel}
)

// JumpToLetter returns the command that jumps to the next sibling starting with r.
func JumpToLetter(r rune) Command {
	return Command{Op: OpJumpToLetter, Letter: r}
}

func (c Command) String() string {
	if c.Op == OpJumpToLetter {
		return fmt.Sprintf("JumpToLetter(%q)", c.Letter)
	}
	return c.Op.String()
}

// Status is the session state after a command.
type Status int

const (
	Browsing Status = iota
	Selected
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Selected:
		return "selected"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome reports where a session stands. Path is set only when Selected.
type Outcome struct {
	Status Status
	Path   string
}

// Done reports whether the session has ended.
func (o Outcome) Done() bool {
	return o.Status != Browsing
}
