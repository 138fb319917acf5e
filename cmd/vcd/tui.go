package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/colorprofile"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/vanderheijden86/vcd/pkg/nav"
	"github.com/vanderheijden86/vcd/pkg/ui"
)

// errNoTerminal is returned when the controlling terminal cannot be used.
var errNoTerminal = errors.New("no terminal available")

// runTUI drives n on the controlling terminal until the user confirms or
// cancels. stdout is never touched so the chosen path can be captured.
func runTUI(n *nav.Navigator, logger zerolog.Logger) (nav.Outcome, error) {
	in, out, err := openTTY()
	if err != nil {
		return nav.Outcome{}, fmt.Errorf("%w: %v", errNoTerminal, err)
	}
	defer closeTTY(in, out)

	if !term.IsTerminal(int(out.Fd())) {
		return nav.Outcome{}, errNoTerminal
	}

	renderer := lipgloss.NewRenderer(out)
	profile := colorprofile.Detect(out, os.Environ())
	logger.Debug().Stringer("profile", profile).Msg("terminal detected")

	m := ui.NewModel(n,
		ui.WithTheme(ui.DefaultTheme(renderer, profile)),
		ui.WithLogger(logger),
	)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set VCD_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("VCD_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return nav.Outcome{}, err
	}

	fm, ok := final.(ui.Model)
	if !ok {
		return nav.Outcome{Status: nav.Cancelled}, nil
	}
	result := fm.Outcome()
	if !result.Done() {
		// Quit by signal or timer.
		result.Status = nav.Cancelled
	}
	return result, nil
}
