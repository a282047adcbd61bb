package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/minepkg/modkit/internals/merrors"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err         error
		code        string
		help        string
		suggestions int
	}{
		{errors.New("plain"), "", "", 0},
		{merrors.Usage("bad name"), "usage error", "", 0},
		{&merrors.Error{Kind: merrors.KindUsage, Err: "no manifest", Help: "run init"}, "usage error", "run init", 0},
		{merrors.Transient(errors.New("503"), "modrinth failed"), "temporary error", "", 1},
		{&merrors.Error{Kind: merrors.KindBuild, Err: "gradle failed"}, "build error", "", 1},
		{errors.Wrap(merrors.Filesystem(errors.New("EACCES"), "could not write"), "save"), "filesystem error", "", 1},
		{&merrors.Error{Err: "unclassified"}, "", "", 0},
	}

	for _, test := range tests {
		t.Run(test.err.Error(), func(t *testing.T) {
			cliErr := FromError(test.err)
			if cliErr.Text != test.err.Error() {
				t.Errorf("expected text %q, got %q", test.err.Error(), cliErr.Text)
			}
			if cliErr.Code != test.code {
				t.Errorf("expected code %q, got %q", test.code, cliErr.Code)
			}
			if cliErr.Help != test.help {
				t.Errorf("expected help %q, got %q", test.help, cliErr.Help)
			}
			if len(cliErr.Suggestions) != test.suggestions {
				t.Errorf("expected %d suggestions, got %v", test.suggestions, cliErr.Suggestions)
			}
		})
	}
}

func TestRender(t *testing.T) {
	EmojiEnabled = false
	defer func() { EmojiEnabled = true }()

	buf := &bytes.Buffer{}
	Render(buf, &merrors.Error{Kind: merrors.KindUsage, Err: "no modkit.toml found", Help: "Run modkit init"})
	out := buf.String()
	for _, expected := range []string{"[usage error] no modkit.toml found", "Run modkit init"} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected %q in\n%s", expected, out)
		}
	}
	if strings.Count(out, "no modkit.toml found") != 1 {
		t.Errorf("error should be rendered once\n%s", out)
	}
}

type failingRunner struct{ err error }

func (f *failingRunner) RunE(cmd *cobra.Command, args []string) error { return f.err }

func TestNewExitsOnError(t *testing.T) {
	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	buf := &bytes.Buffer{}
	cmd := New(&cobra.Command{Use: "fail"}, &failingRunner{fmt.Errorf("boom")})
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("error was not printed: %q", buf.String())
	}

	code = -1
	ok := New(&cobra.Command{Use: "ok"}, &failingRunner{})
	ok.SetArgs([]string{})
	if err := ok.Execute(); err != nil {
		t.Fatal(err)
	}
	if code != -1 {
		t.Error("exit should not be called without error")
	}
}
