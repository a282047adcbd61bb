package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/jwalton/gchalk"
	"github.com/mattn/go-isatty"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	out       io.Writer
	errOut    io.Writer
	emojis    bool
	spin      bool
	indention int
	debug     *log.Logger
}

// Options configure a new Logger
type Options struct {
	// Out receives normal output. Defaults to os.Stdout
	Out io.Writer
	// Err receives warnings, errors and debug output. Defaults to os.Stderr
	Err io.Writer
	// Verbose enables debug output
	Verbose bool
	// NoColor disables colors and emojis
	NoColor bool
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a cyan line
func (l *Logger) Headline(s string) {
	fmt.Fprintln(l.out, gchalk.WithCyan().Bold(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Infof is Info with formatting
func (l *Logger) Infof(format string, a ...interface{}) {
	l.println(fmt.Sprintf(format, a...))
}

// Success prints a line with a check mark
func (l *Logger) Success(s string) {
	l.println(gchalk.Green("✓") + " " + s)
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	fmt.Fprintln(l.errOut, l.sprintEmoji("⚠️ ")+gchalk.WithYellow().Bold(s))
}

// Error prints an error line without exiting
func (l *Logger) Error(s string) {
	fmt.Fprintln(l.errOut, l.sprintEmoji("💣")+gchalk.WithRed().Bold("Error: ")+gchalk.Bold(s))
}

// Debug prints s (with optional key value pairs) if verbose logging is enabled
func (l *Logger) Debug(s string, keyvals ...interface{}) {
	l.debug.Debug(s, keyvals...)
}

// Timed logs the elapsed time since start, prefixed with msg
func (l *Logger) Timed(msg string, start time.Time) {
	l.Success(fmt.Sprintf("%s in %s", msg, time.Since(start).Round(time.Millisecond)))
}

// Size returns a human readable size string
func Size(n int64) string {
	if n < 0 {
		return "unknown size"
	}
	return humanize.Bytes(uint64(n))
}

// Spinner returns a spinner that only spins on terminals
func (l *Logger) Spinner(msg string) *MaybeSpinner {
	s := NewMaybeSpinner(l.spin, l.out)
	s.Msg = msg
	return s
}

// New returns a new Logger
func New(opts Options) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	emojis := runtime.GOOS != "windows"
	spin := isTerminal(out)

	// disable color for CI
	if opts.NoColor || os.Getenv("CI") != "" {
		emojis = false
		spin = false
		gchalk.SetLevel(gchalk.LevelNone)
	}

	debug := log.NewWithOptions(errOut, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "modkit",
	})
	if opts.Verbose {
		debug.SetLevel(log.DebugLevel)
	} else {
		debug.SetLevel(log.InfoLevel)
	}

	return &Logger{out: out, errOut: errOut, emojis: emojis, spin: spin, debug: debug}
}

// Discard returns a Logger that writes nowhere. Useful in tests
func Discard() *Logger {
	return &Logger{out: io.Discard, errOut: io.Discard, debug: log.New(io.Discard)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
