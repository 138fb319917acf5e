//go:build !windows

package main

import "os"

// openTTY opens the controlling terminal for both input and output.
func openTTY() (in, out *os.File, err error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func closeTTY(in, out *os.File) {
	_ = in.Close()
}
