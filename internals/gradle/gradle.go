// Package gradle runs the gradle wrapper of a generated project and turns
// its diagnostics into a single readable line.
package gradle

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/minepkg/modkit/internals/cmdlog"
	"github.com/minepkg/modkit/internals/merrors"
)

const causedBy = "Caused by: "

var continuation = regexp.MustCompile(`^[> ]+`)

// Driver runs gradle tasks
type Driver struct {
	Logger *cmdlog.Logger
	// Stdout receives gradle's normal output. Defaults to os.Stdout
	Stdout io.Writer
	// Command overrides the wrapper script (mostly for tests)
	Command []string
}

// BuildError is returned when gradle fails
type BuildError struct {
	Summary  string
	ExitCode int
	// Output holds all lines gradle wrote to stderr
	Output []string
	err    *merrors.Error
}

func (e *BuildError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying *merrors.Error (of kind KindBuild)
func (e *BuildError) Unwrap() error {
	return e.err
}

// Wrapper returns the command for the gradle wrapper in dir
func Wrapper(dir string) []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(dir, "gradlew.bat")}
	}
	return []string{filepath.Join(dir, "gradlew")}
}

// MakeExecutable sets the executable bits of the wrapper script in dir
func MakeExecutable(dir string) error {
	script := filepath.Join(dir, "gradlew")
	stat, err := os.Stat(script)
	if err != nil {
		return err
	}
	return os.Chmod(script, stat.Mode()|0111)
}

// Run runs tasks in dir and blocks until gradle exits. There is no timeout,
// a hanging gradle daemon hangs Run unless ctx is cancelled
func (d *Driver) Run(ctx context.Context, dir string, tasks ...string) error {
	// the wrapper path must not be resolved relative to cmd.Dir a second time
	dir, err := filepath.Abs(dir)
	if err != nil {
		return merrors.Filesystem(err, "could not resolve the project folder")
	}
	command := d.Command
	if command == nil {
		command = Wrapper(dir)
	}
	args := append(append([]string{}, command[1:]...), tasks...)

	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdout = d.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	d.logger().Debug("running gradle", "dir", dir, "cmd", command[0], "args", strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return merrors.Filesystem(err, "could not start gradle")
	}

	var lines []string
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		d.logger().Debug(line)
		lines = append(lines, line)
	}

	err = cmd.Wait()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	summary := Summarize(lines)
	if summary == "" {
		summary = err.Error()
	}
	return &BuildError{
		Summary:  summary,
		ExitCode: exitCode,
		Output:   lines,
		err: &merrors.Error{
			Kind:  merrors.KindBuild,
			Err:   summary,
			Help:  "Run again with --verbose to see the full gradle output",
			Cause: err,
		},
	}
}

// Summarize picks the most useful line of gradle's stderr output:
// the last "Caused by: " line without its marker, else the last line
// containing a ">" without the leading markers, else the last non empty line
func Summarize(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], causedBy) {
			return strings.TrimSpace(strings.TrimPrefix(lines[i], causedBy))
		}
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], ">") {
			line := strings.NewReplacer("\r", "", "\n", "").Replace(lines[i])
			return continuation.ReplaceAllString(line, "")
		}
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return ""
}

func (d *Driver) logger() *cmdlog.Logger {
	if d.Logger == nil {
		return cmdlog.Discard()
	}
	return d.Logger
}
