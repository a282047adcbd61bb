package cmdlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugOnlyWhenVerbose(t *testing.T) {
	var quietErr, loudErr bytes.Buffer
	quiet := New(Options{Out: &bytes.Buffer{}, Err: &quietErr, NoColor: true})
	loud := New(Options{Out: &bytes.Buffer{}, Err: &loudErr, NoColor: true, Verbose: true})

	quiet.Debug("gradle line", "line", "> Task :compileJava")
	loud.Debug("gradle line", "line", "> Task :compileJava")

	if quietErr.Len() != 0 {
		t.Fatalf("expected no debug output, got %q", quietErr.String())
	}
	if !strings.Contains(loudErr.String(), "gradle line") {
		t.Fatalf("expected debug output, got %q", loudErr.String())
	}
}

func TestSpinnerWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	l := New(Options{Out: &out, Err: &bytes.Buffer{}, NoColor: true})

	s := l.Spinner("Collecting fabric versions")
	s.Start()
	s.Update("still collecting")
	s.Stop()

	want := "Collecting fabric versions\nstill collecting\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestSize(t *testing.T) {
	if got := Size(2048); got != "2.0 kB" {
		t.Fatalf("unexpected size %q", got)
	}
	if got := Size(-1); got != "unknown size" {
		t.Fatalf("unexpected size %q", got)
	}
}

func TestInfof(t *testing.T) {
	var out bytes.Buffer
	l := New(Options{Out: &out, Err: &bytes.Buffer{}, NoColor: true})
	l.Infof("  %s (%s)", "test-mod-1.0.0.jar", Size(2048))
	if out.String() != "  test-mod-1.0.0.jar (2.0 kB)\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
