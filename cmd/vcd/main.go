// Command vcd is an interactive directory picker. It draws a lazily loaded
// tree of directories on the terminal and prints the chosen path on stdout,
// so a shell function can cd into it:
//
//	vcd() { local d; d=$(command vcd "$@") && cd -- "$d"; }
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/rs/zerolog"

	"github.com/vanderheijden86/vcd/pkg/config"
	"github.com/vanderheijden86/vcd/pkg/fstree"
	"github.com/vanderheijden86/vcd/pkg/logging"
	"github.com/vanderheijden86/vcd/pkg/metrics"
	"github.com/vanderheijden86/vcd/pkg/nav"
	"github.com/vanderheijden86/vcd/pkg/version"
)

// Exit codes.
const (
	exitSelected  = 0
	exitCancelled = 1
	exitUsage     = 2
	exitStartup   = 3
)

type options struct {
	scrollOff  int
	noWrapJump bool
	hideHidden bool
	configPath string
	logFile    string
	robotRows  bool
	cpuProfile string
	version    bool
	help       bool
	startPath  string

	set map[string]bool // flags given explicitly
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Run 'vcd --help' for usage.")
		return exitUsage
	}

	if opts.help {
		fmt.Fprintln(stdout, "Usage: vcd [options] [START_PATH]")
		fmt.Fprintln(stdout, "\nOptions:")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return exitSelected
	}
	if opts.version {
		fmt.Fprintf(stdout, "vcd %s\n", version.Version)
		return exitSelected
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(stderr, "Could not create CPU profile: %v\n", err)
			return exitStartup
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(stderr, "Could not start CPU profile: %v\n", err)
			return exitStartup
		}
		defer pprof.StopCPUProfile()
	}

	cfg := loadConfig(opts, stderr)

	logger, closer, err := logging.New(logging.Options{
		File:  cfg.Log.File,
		Level: cfg.Log.Level,
		Debug: cfg.Debug,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}
	defer closer.Close()
	defer logMetrics(logger)

	start, err := startPath(opts.startPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitStartup
	}
	rootName, err := fstree.RootFor(start)
	if err != nil {
		logger.Error().Err(err).Str("path", start).Msg("no filesystem root")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitStartup
	}

	root := fstree.NewRoot(rootName, fstree.OSReader{ShowHidden: cfg.ShowHidden}, fstree.WithLogger(logger))
	n := nav.New(root,
		nav.WithLogger(logger),
		nav.WithMargin(cfg.ScrollOff),
		nav.WithWrapJump(cfg.WrapJump),
	)
	logger.Debug().Str("root", rootName).Str("start", start).Msg("session start")
	// A failure is logged by the navigator and leaves the cursor on the root.
	startErr := n.Start(start)

	if opts.robotRows {
		if err := writeRobotRows(stdout, n, start, startErr); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitStartup
		}
		return exitSelected
	}

	out, err := runTUI(n, logger)
	if err != nil {
		logger.Error().Err(err).Msg("terminal session failed")
		fmt.Fprintf(stderr, "Error running vcd: %v\n", err)
		return exitStartup
	}
	logger.Debug().Stringer("status", out.Status).Str("path", out.Path).Msg("session end")

	if out.Status != nav.Selected {
		return exitCancelled
	}
	fmt.Fprintln(stdout, out.Path)
	return exitSelected
}

// parseArgs parses flags and the optional start path.
func parseArgs(args []string) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("vcd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.IntVar(&opts.scrollOff, "scrolloff", config.DefaultConfig().ScrollOff, "Rows kept between the cursor and the viewport edge")
	fs.BoolVar(&opts.noWrapJump, "no-wrap-jump", false, "Letter jumps stop at the last sibling instead of wrapping")
	fs.BoolVar(&opts.hideHidden, "hide-hidden", false, "Do not list directories whose name starts with '.'")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default: "+config.ConfigPath()+")")
	fs.StringVar(&opts.logFile, "log-file", "", "Write diagnostic logs to this file")
	fs.BoolVar(&opts.robotRows, "robot-rows", false, "Print the initial view as JSON and exit (no terminal needed)")
	fs.StringVar(&opts.cpuProfile, "cpu-profile", "", "Write CPU profile to file")
	fs.BoolVar(&opts.version, "version", false, "Show version")
	fs.BoolVar(&opts.help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.help = true
			return opts, fs, nil
		}
		return opts, fs, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.scrollOff < 0 {
		return opts, fs, fmt.Errorf("--scrolloff must not be negative, got %d", opts.scrollOff)
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.startPath = fs.Arg(0)
	default:
		return opts, fs, fmt.Errorf("expected at most one start path, got %d", fs.NArg())
	}
	return opts, fs, nil
}

// loadConfig layers the config file, VCD_* variables and explicit flags.
// Problems with the first two are reported and otherwise ignored.
func loadConfig(opts options, stderr io.Writer) config.Config {
	path := opts.configPath
	if path == "" {
		path = config.ConfigPath()
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadFrom(path)
		if err != nil {
			fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	if opts.set["scrolloff"] {
		cfg.ScrollOff = opts.scrollOff
	}
	if opts.noWrapJump {
		cfg.WrapJump = false
	}
	if opts.hideHidden {
		cfg.ShowHidden = false
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	return cfg
}

// startPath returns arg as an absolute, cleaned path, or the working
// directory when arg is empty.
func startPath(arg string) (string, error) {
	if arg == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", arg, err)
	}
	return abs, nil
}

func logMetrics(logger zerolog.Logger) {
	if !metrics.Enabled() {
		return
	}
	for _, s := range metrics.Summaries() {
		logger.Debug().
			Str("metric", s.Name).
			Int64("count", s.Count).
			Float64("avg_ms", s.AvgMs).
			Float64("max_ms", s.MaxMs).
			Msg("timing")
	}
	for _, c := range metrics.AllCounters() {
		if v := c.Value(); v > 0 {
			logger.Debug().Str("metric", c.Name()).Int64("value", v).Msg("counter")
		}
	}
}
