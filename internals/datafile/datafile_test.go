package datafile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMarshalRoundTrip(t *testing.T) {
	l := &Locations{
		Entrypoint: filepath.Join("src", "main", "java", "alice", "test", "mod", "TestMod.java"),
		Assets:     filepath.Join("src", "main", "resources", "assets", "testmod"),
	}

	parsed, err := Unmarshal(l.Marshal())
	if err != nil {
		t.Fatal(err)
	}
	if *parsed != *l {
		t.Fatalf("expected %+v, got %+v", l, parsed)
	}
}

func TestUnmarshalIgnoresUnknownKeys(t *testing.T) {
	data := []byte(`# some comment

assets: src/main/resources/assets/x
future key: whatever
main entrypoint: src/main/java/a/X.java
`)
	l, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if l.Entrypoint != "src/main/java/a/X.java" || l.Assets != "src/main/resources/assets/x" {
		t.Fatalf("unexpected locations %+v", l)
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	tests := map[string]string{
		"missing assets":     "main entrypoint: a/B.java\n",
		"missing entrypoint": "assets: a\n",
		"garbage line":       "main entrypoint: a/B.java\nassets a\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(data))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestRead(t *testing.T) {
	root := t.TempDir()

	if _, err := Read(root); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}

	l := &Locations{
		Entrypoint: filepath.Join("src", "main", "java", "a", "X.java"),
		Assets:     filepath.Join("src", "main", "resources", "assets", "x"),
	}
	if err := Write(root, l); err != nil {
		t.Fatal(err)
	}

	// directories do not exist yet
	if _, err := Read(root); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for missing directories, got %v", err)
	}

	for _, dir := range []string{filepath.Dir(l.Entrypoint), l.Assets} {
		if err := os.MkdirAll(filepath.Join(root, dir), os.ModePerm); err != nil {
			t.Fatal(err)
		}
	}
	read, err := Read(root)
	if err != nil {
		t.Fatal(err)
	}
	if *read != *l {
		t.Fatalf("expected %+v, got %+v", l, read)
	}
}

func TestReadRejectsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	l := &Locations{Entrypoint: "../X.java", Assets: "assets"}
	if err := Write(root, l); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(root); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestInside(t *testing.T) {
	tests := map[string]bool{
		"src/main":     true,
		".":            true,
		"..":           false,
		"../sibling":   false,
		"a/../../b":    false,
		"..hidden/dir": true,
	}
	for rel, want := range tests {
		if got := Inside("/project", rel); got != want {
			t.Errorf("Inside(%q) = %v, want %v", rel, got, want)
		}
	}
}
