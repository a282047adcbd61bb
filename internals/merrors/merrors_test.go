package merrors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestKindOf(t *testing.T) {
	usage := Usage("could not find a texture for %q", "Ruby")
	wrapped := pkgerrors.Wrap(usage, "adding item")

	if KindOf(wrapped) != KindUsage {
		t.Fatalf("expected usage kind, got %s", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatal("plain errors should have no kind")
	}
	if KindOf(fmt.Errorf("ctx: %w", Filesystem(fs.ErrPermission, "write"))) != KindFilesystem {
		t.Fatal("expected filesystem kind through fmt wrapping")
	}
}

func TestWithCause(t *testing.T) {
	sentinel := &Error{Kind: KindUsage, Err: "missing location manifest"}
	err := sentinel.WithCause(fs.ErrNotExist)

	if !errors.Is(err, sentinel) {
		t.Fatal("copy should still match the sentinel")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("cause should be reachable with errors.Is")
	}
	if err.Error() != "missing location manifest: file does not exist" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if sentinel.Cause != nil {
		t.Fatal("sentinel was mutated")
	}
}
