package gradle

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minepkg/modkit/internals/merrors"
)

var ErrNoBuildFiles = &merrors.Error{
	Kind: merrors.KindBuild,
	Err:  "no jar files found",
	Help: "Make sure that your build is outputting jar files to build/libs",
}

// FindJar returns the jar built for baseName and version inside of the
// project dir. If that file does not exist, the newest jar that is no
// dev or sources jar is returned
func FindJar(dir string, baseName string, version string) (string, error) {
	libs := filepath.Join(dir, "build", "libs")
	expected := filepath.Join(libs, baseName+"-"+version+".jar")
	if stat, err := os.Stat(expected); err == nil && !stat.IsDir() {
		return expected, nil
	}

	entries, err := os.ReadDir(libs)
	if err != nil {
		return "", ErrNoBuildFiles
	}

	type candidate struct {
		path string
		info os.FileInfo
	}
	candidates := []candidate{}
	for _, entry := range entries {
		name := entry.Name()
		// filter out dirs, dev and sources jars
		switch {
		case entry.IsDir():
			continue
		case !strings.HasSuffix(name, ".jar"):
			continue
		case strings.HasSuffix(name, "dev.jar"):
			continue
		case strings.HasSuffix(name, "sources.jar"):
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", err
		}
		candidates = append(candidates, candidate{filepath.Join(libs, name), info})
	}

	if len(candidates) == 0 {
		return "", ErrNoBuildFiles
	}

	sort.Slice(candidates, func(a int, b int) bool {
		return candidates[a].info.ModTime().After(candidates[b].info.ModTime())
	})
	return candidates[0].path, nil
}

// CopyFile copies src to the directory dst (keeping the file name) and
// returns the new path
func CopyFile(src string, dst string) (string, error) {
	if err := os.MkdirAll(dst, os.ModePerm); err != nil {
		return "", err
	}
	target := filepath.Join(dst, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}
	return target, out.Sync()
}
