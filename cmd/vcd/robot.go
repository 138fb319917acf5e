package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/vcd/pkg/nav"
)

// robotRow is one flattened tree row in --robot-rows output.
type robotRow struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Depth  int    `json:"depth"`
	Loaded bool   `json:"loaded"`
}

// robotView is the --robot-rows document: the view a terminal session
// would open with.
type robotView struct {
	Root          string     `json:"root"`
	Start         string     `json:"start"`
	StartResolved bool       `json:"start_resolved"`
	Error         string     `json:"error,omitempty"`
	Cursor        int        `json:"cursor"`
	Selected      string     `json:"selected"`
	Rows          []robotRow `json:"rows"`
}

func writeRobotRows(w io.Writer, n *nav.Navigator, start string, startErr error) error {
	view := robotView{
		Root:          n.Root().Name(),
		Start:         start,
		StartResolved: startErr == nil,
		Cursor:        -1,
		Rows:          make([]robotRow, 0, len(n.Rows())),
	}
	if startErr != nil {
		view.Error = startErr.Error()
	}
	if c, ok := n.Cursor(); ok {
		view.Cursor = c
	}
	if p, err := n.SelectedPath(); err == nil {
		view.Selected = p
	}
	for _, r := range n.Rows() {
		view.Rows = append(view.Rows, robotRow{
			Name:   r.Node.Name(),
			Prefix: r.Prefix,
			Depth:  r.Depth,
			Loaded: r.Node.IsLoaded(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	return nil
}
