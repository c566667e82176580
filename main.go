// Copyright
// SPDX-License-Identifier: MIT
// sidedrawer: swipeable side drawer state machine, terminal demo and gesture replay
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"sidedrawer/internal/anim"
	"sidedrawer/internal/config"
	"sidedrawer/internal/drawer"
	"sidedrawer/internal/script"
	"sidedrawer/internal/tui"
	"sidedrawer/internal/tui/state"
	"sidedrawer/internal/tui/widgets/diff"
)

const Version = "0.3.0"

// presets picked up from the working directory when --config is omitted
var defaultPresets = []string{"sidedrawer.yaml", "sidedrawer.yml", "sidedrawer.json"}

/* ---------- CLI ---------- */

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Args[2])
		} else {
			usage()
		}
	case "version", "--version":
		fmt.Println("sidedrawer", Version)
	case "demo":
		cmdDemo()
	case "simulate":
		cmdSimulate()
	case "config":
		cmdConfig()
	default:
		usage()
	}
}

func usage() {
	fmt.Print(`sidedrawer ` + Version + `
Swipeable side drawer: edge-swipe gestures, quarter-screen release, spring settle.
USAGE
  sidedrawer <command> [options]
COMMANDS
  demo         Interactive terminal drawer (drag with the mouse, o to toggle)
  simulate     Replay a gesture script and print what the drawer reported
  config       Print the effective preset, diff it against the defaults, or write it
  help         Show help (try: sidedrawer help simulate)
  version      Print version
NOTES
  • Presets are JSON or YAML; sidedrawer.yaml|yml|json in the working directory is used when --config is omitted.
  • Default output is minimal; use -v or -vv for detailed logs. Use --log-file to tee logs to a file.
` + "\n")
}

func helpTopic(name string) {
	switch name {
	case "demo":
		fmt.Print(`USAGE
  sidedrawer demo [--config PATH | --pick] [--watch] [--right] [--no-mouse] [--no-color] [-v | -vv] [--log-file PATH]
DESCRIPTION
  Runs the drawer in the terminal. One cell counts as 8x16 points, so the default
  60pt edge band is the first 7-8 columns. Press ? inside for keys.
OPTIONS
  --config PATH     Preset file (JSON or YAML)
  --pick            Choose a preset from the working directory in a small picker first
  --watch           Reload the preset whenever the file changes (session is kept)
  --right           Anchor the menu to the right edge
  --no-mouse        Keyboard only
  --no-color        Plain rendering (NO_COLOR is honored too)
  -v | -vv          INFO / DEBUG logs (written to --log-file only while the demo runs)
  --log-file PATH   Append logs to file (created if missing)
` + "\n")
	case "simulate":
		fmt.Print(`USAGE
  sidedrawer simulate --script PATH [--config PATH] [--instant] [--slides] [--view] [-v | -vv] [--log-file PATH]
DESCRIPTION
  Replays pointer, resize and open/close steps from a YAML or JSON script against a
  drawer and prints one line per notification ("#3 move 80", "#4 change open", ...).
  Exits 1 when an expect step fails.
OPTIONS
  --script PATH     Gesture script (required)
  --config PATH     Preset the script's own preset is layered on
  --instant         Settle animations immediately instead of stepping the spring
  --slides          Include slide-progress notifications
  --view            Browse the trace in a TUI (search with /, save with S)
` + "\n")
	case "config":
		fmt.Print(`USAGE
  sidedrawer config [--config PATH] [--yaml] [--diff] [--write PATH]
DESCRIPTION
  Prints the effective preset (defaults plus PATH). --diff shows it against the
  defaults; --write saves it (format follows the file extension).
` + "\n")
	default:
		usage()
	}
}

/* ---------- logging ---------- */

var logFileMu sync.Mutex

type logger struct {
	verbosity int
	console   bool
	file      *os.File
}

func (l *logger) printf(level int, tag, format string, args ...any) {
	if l == nil || l.verbosity < level {
		return
	}
	line := fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...))
	if l.console {
		fmt.Println(line)
	}
	if l.file != nil {
		logFileMu.Lock()
		_, _ = fmt.Fprintf(l.file, "%s %s\n", time.Now().Format(time.RFC3339), line)
		logFileMu.Unlock()
	}
}

func (l *logger) infof(format string, args ...any)  { l.printf(1, "info", format, args...) }
func (l *logger) debugf(format string, args ...any) { l.printf(2, "debug", format, args...) }

func (l *logger) Close() {
	if l != nil && l.file != nil {
		_ = l.file.Close()
	}
}

func verbosityFlags(fs *flag.FlagSet) (verbose, debug *bool, logPath *string) {
	verbose = fs.Bool("v", false, "Verbose logs (INFO)")
	debug = fs.Bool("vv", false, "Debug logs (DEBUG)")
	logPath = fs.String("log-file", "", "Append logs to file (created if missing)")
	return
}

func newLogger(verbose, debug bool, logPath string, console bool) *logger {
	l := &logger{console: console}
	if debug {
		l.verbosity = 2
	} else if verbose {
		l.verbosity = 1
	}
	lf, err := openLogFile(logPath)
	if err != nil {
		fmt.Println("Could not open log file:", err)
	}
	l.file = lf
	return l
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(f, "=== sidedrawer %s started at %s ===\n", Version, time.Now().Format(time.RFC3339))
	return f, nil
}

/* ---------- presets ---------- */

// loadPreset reads path, or the first default preset present when path is
// empty. A nil preset means plain defaults.
func loadPreset(path string, log *logger) (*config.Preset, error) {
	if path == "" {
		for _, name := range defaultPresets {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			log.debugf("no preset given or found, using defaults")
			return nil, nil
		}
	}
	p, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log.infof("preset %s loaded", path)
	return p, nil
}

/* ---------- commands ---------- */

func cmdDemo() {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	fs.Usage = func() { helpTopic("demo") }
	cfgPath := fs.String("config", "", "Preset file (JSON or YAML)")
	pick := fs.Bool("pick", false, "Choose a preset in a picker first")
	right := fs.Bool("right", false, "Anchor the menu to the right edge")
	noMouse := fs.Bool("no-mouse", false, "Disable mouse gestures")
	noColor := fs.Bool("no-color", false, "Plain rendering")
	watch := fs.Bool("watch", false, "Reload the preset file when it changes")
	verbose, debug, logPath := verbosityFlags(fs)
	_ = fs.Parse(os.Args[2:])

	// the alt screen owns stdout while the demo runs
	log := newLogger(*verbose, *debug, *logPath, false)
	defer log.Close()

	if *pick {
		path, ok, err := tui.PickPreset(tui.PresetFiles("."))
		if err != nil {
			fmt.Println("Picker failed:", err)
			os.Exit(1)
		}
		if !ok {
			return
		}
		*cfgPath = path
	}
	p, err := loadPreset(*cfgPath, log)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	cfg := p.Apply(drawer.DefaultConfig())
	if *right {
		cfg.Position = drawer.Right
	}
	watchPath := ""
	if *watch {
		if *cfgPath == "" {
			fmt.Println("--watch needs --config or --pick")
			os.Exit(2)
		}
		watchPath = *cfgPath
	}
	log.infof("demo: position=%s edge=%g autoClosing=%v", cfg.Position, cfg.EdgeHitWidth, cfg.AutoClosing)
	err = tui.Run(tui.Options{
		Config:   cfg,
		Defaults: drawer.DefaultConfig(),
		Spring:   p.SpringOptions(),
		NoMouse:  *noMouse,
		NoColor:  *noColor,
		Watch:    watchPath,
		Logf:     log.debugf,
	})
	if err != nil {
		fmt.Println("Demo failed:", err)
		os.Exit(1)
	}
}

func cmdSimulate() {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	fs.Usage = func() { helpTopic("simulate") }
	scriptPath := fs.String("script", "", "Gesture script (YAML or JSON)")
	cfgPath := fs.String("config", "", "Preset the script preset is layered on")
	instant := fs.Bool("instant", false, "Settle animations immediately")
	slides := fs.Bool("slides", false, "Include slide-progress notifications")
	view := fs.Bool("view", false, "Browse the trace in a TUI")
	verbose, debug, logPath := verbosityFlags(fs)
	_ = fs.Parse(os.Args[2:])

	log := newLogger(*verbose, *debug, *logPath, !*view)
	defer log.Close()

	if *scriptPath == "" {
		helpTopic("simulate")
		os.Exit(2)
	}
	s, err := script.Load(*scriptPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	p, err := loadPreset(*cfgPath, log)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	base := p.Apply(drawer.DefaultConfig())
	log.infof("replaying %d steps on a %gx%g viewport", len(s.Steps), s.Viewport.Width, s.Viewport.Height)

	res, runErr := script.Run(s, script.Options{Instant: *instant, Base: &base, Slides: *slides})
	for _, line := range res.Lines() {
		log.debugf("%s", line)
	}
	if *view {
		sum := tui.TraceSummary{
			Script: *scriptPath,
			Steps:  len(s.Steps),
			Frames: res.Frames,
			Open:   res.Open,
			Offset: res.Offset,
			Err:    runErr,
		}
		if err := tui.ShowTrace(sum, res.Lines()); err != nil {
			fmt.Println("Viewer failed:", err)
		}
	} else {
		for _, line := range res.Lines() {
			fmt.Println(line)
		}
		st := "closed"
		if res.Open {
			st = "open"
		}
		fmt.Printf("final: %s offset=%g frames=%d\n", st, res.Offset, res.Frames)
	}
	if runErr != nil {
		fmt.Println("FAIL", runErr)
		os.Exit(1)
	}
}

func cmdConfig() {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	fs.Usage = func() { helpTopic("config") }
	cfgPath := fs.String("config", "", "Preset file (JSON or YAML)")
	asYAML := fs.Bool("yaml", false, "Print YAML instead of JSON")
	showDiff := fs.Bool("diff", false, "Show the effective preset against the defaults")
	writePath := fs.String("write", "", "Save the effective preset to PATH")
	verbose, debug, logPath := verbosityFlags(fs)
	_ = fs.Parse(os.Args[2:])

	log := newLogger(*verbose, *debug, *logPath, true)
	defer log.Close()

	p, err := loadPreset(*cfgPath, log)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	effective := config.FromConfig(p.Apply(drawer.DefaultConfig()), p.SpringOptions())

	if *writePath != "" {
		if _, err := os.Stat(*writePath); err == nil {
			log.infof("overwriting %s", *writePath)
		} else if !errors.Is(err, os.ErrNotExist) {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := config.Save(*writePath, effective); err != nil {
			fmt.Println("Could not write preset:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", *writePath)
		return
	}

	after, err := config.Marshal(effective, *asYAML)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if !*showDiff {
		fmt.Print(string(after))
		return
	}
	before, err := config.Marshal(config.FromConfig(drawer.DefaultConfig(), anim.SpringOptions{}), *asYAML)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	ui := state.UIState{Width: termWidth()}
	fmt.Print(diff.NewDiffView().View(ui, string(before), string(after)))
}

// termWidth honors $COLUMNS and falls back to 80.
func termWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 80
}
