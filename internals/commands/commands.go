package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minepkg/modkit/internals/merrors"
	"github.com/spf13/cobra"
)

type Command struct {
	*cobra.Command
	runner Runner
}

type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// exit is replaced in tests
var exit = os.Exit

func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err != nil {
			Render(cmd.ErrOrStderr(), err)
			exit(1)
		}
	}

	return build
}

// Render prints err in a box. Errors with a kind get a matching hint
func Render(w io.Writer, err error) {
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		fmt.Fprintln(w, asCliErr.RichError()+"\n")
		return
	}
	fmt.Fprintln(w, FromError(err).RichError()+"\n")
}

// FromError turns err into a CliError
func FromError(err error) *CliError {
	cliErr := &CliError{Text: err.Error()}

	var asModkitErr *merrors.Error
	if !errors.As(err, &asModkitErr) {
		return cliErr
	}
	if asModkitErr.Kind != merrors.KindUnknown {
		cliErr.Code = asModkitErr.Kind.String()
	}
	cliErr.Help = asModkitErr.Help

	switch asModkitErr.Kind {
	case merrors.KindTransient:
		cliErr.Suggestions = append(cliErr.Suggestions, "This is probably temporary. Try again in a minute")
	case merrors.KindBuild:
		cliErr.Suggestions = append(cliErr.Suggestions, "Run with --verbose to see the full gradle output")
	case merrors.KindFilesystem:
		cliErr.Suggestions = append(cliErr.Suggestions, "Check the permissions and free space of the project directory")
	}
	return cliErr
}
