// Package datafile reads and writes the location manifest ("data.txt") that
// lives in the root of every generated project. It records where the
// generated entrypoint and the assets directory are.
package datafile

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/modkit/internals/merrors"
)

// FileName is the name of the location manifest
const FileName = "data.txt"

const (
	keyEntrypoint = "main entrypoint"
	keyAssets     = "assets"
)

const header = `# This file was auto-generated by modkit.
# Feel free to delete this file when uploading this mod's source code.
`

var (
	// ErrMissing is returned if a project has no location manifest
	ErrMissing = &merrors.Error{
		Kind: merrors.KindUsage,
		Err:  "the project folder exists but has no " + FileName,
		Help: "Move the folder away to generate a new project, or restore " + FileName,
	}
	// ErrMalformed is returned if the manifest can not be used
	ErrMalformed = &merrors.Error{
		Kind: merrors.KindUsage,
		Err:  "the " + FileName + " of this project is malformed",
		Help: "Restore the \"" + keyEntrypoint + "\" and \"" + keyAssets + "\" lines or regenerate the project",
	}
)

// Locations are paths relative to the project root
type Locations struct {
	// Entrypoint is the java file containing the generated mod initializer
	Entrypoint string
	// Assets is the directory containing lang files, models and textures
	Assets string
}

// Marshal returns the file content for l
func (l *Locations) Marshal() []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "%s: %s\n", keyEntrypoint, l.Entrypoint)
	fmt.Fprintf(&buf, "%s: %s\n", keyAssets, l.Assets)
	return buf.Bytes()
}

// Unmarshal parses the file content. Comments, blank lines and unknown keys are ignored
func Unmarshal(data []byte) (*Locations, error) {
	l := &Locations{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, ErrMalformed.WithCause(fmt.Errorf("invalid line %q", line))
		}

		switch strings.TrimSpace(key) {
		case keyEntrypoint:
			l.Entrypoint = strings.TrimSpace(value)
		case keyAssets:
			l.Assets = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	switch {
	case l.Entrypoint == "":
		return nil, ErrMalformed.WithCause(fmt.Errorf("%q is missing", keyEntrypoint))
	case l.Assets == "":
		return nil, ErrMalformed.WithCause(fmt.Errorf("%q is missing", keyAssets))
	}

	return l, nil
}

// Write writes the manifest into the project root
func Write(root string, l *Locations) error {
	return os.WriteFile(filepath.Join(root, FileName), l.Marshal(), 0644)
}

// Read reads the manifest from the project root and makes sure both
// locations exist inside of it
func Read(root string) (*Locations, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	switch {
	case os.IsNotExist(err):
		return nil, ErrMissing
	case err != nil:
		return nil, merrors.Filesystem(err, "could not read "+FileName)
	}

	l, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}

	// the entrypoint itself gets (re)written, so only its directory has to exist
	for _, dir := range []string{filepath.Dir(l.Entrypoint), l.Assets} {
		if !Inside(root, dir) {
			return nil, ErrMalformed.WithCause(fmt.Errorf("%s points outside of the project", dir))
		}
		stat, err := os.Stat(filepath.Join(root, dir))
		if err != nil || !stat.IsDir() {
			return nil, ErrMalformed.WithCause(fmt.Errorf("%s does not exist", dir))
		}
	}

	return l, nil
}

// Inside reports if the relative path rel stays inside of root
func Inside(root string, rel string) bool {
	if filepath.IsAbs(rel) {
		return false
	}
	joined := filepath.Join(root, rel)
	r, err := filepath.Rel(root, joined)
	return err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator))
}
