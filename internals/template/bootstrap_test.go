package template

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/magiconair/properties"
	"github.com/minepkg/modkit/internals/datafile"
	"github.com/minepkg/modkit/internals/fabric"
	"github.com/minepkg/modkit/internals/license"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/minepkg/modkit/internals/versions"
)

const fixtureProperties = `# Done to increase the memory available to gradle.
org.gradle.jvmargs=-Xmx1G
org.gradle.parallel=true

# Fabric Properties
minecraft_version=1.19.4
yarn_mappings=1.19.4+build.2
loader_version=0.14.19
loom_version=1.2-SNAPSHOT

# Mod Properties
mod_version=1.0.0
maven_group=com.example
archives_base_name=fabric-example-mod

# Dependencies
fabric_version=0.80.0+1.19.4
`

const fixtureModJSON = `{
  "schemaVersion": 1,
  "id": "modid",
  "version": "${version}",
  "name": "Example Mod",
  "description": "This is an example description!",
  "authors": ["Me!"],
  "contact": {
    "homepage": "https://fabricmc.net/",
    "sources": "https://github.com/FabricMC/fabric-example-mod"
  },
  "license": "CC0-1.0",
  "icon": "assets/modid/icon.png",
  "environment": "*",
  "entrypoints": {
    "main": ["com.example.ExampleMod"],
    "client": ["com.example.ExampleModClient"],
    "fabric-datagen": ["com.example.ExampleModDataGenerator"]
  },
  "mixins": ["modid.mixins.json"],
  "depends": {
    "fabricloader": ">=0.14.19",
    "minecraft": "~1.19.4"
  }
}
`

var iconBytes = []byte("\x89PNG fake icon")

func templateZip(t *testing.T, skip ...string) []byte {
	t.Helper()
	files := map[string][]byte{
		"LICENSE":                                           []byte("CC0"),
		"README.md":                                         []byte("# Fabric Example Mod"),
		".github/workflows/build.yml":                       []byte("name: build"),
		"gradlew":                                           []byte("#!/bin/sh\n"),
		"gradle.properties":                                 []byte(fixtureProperties),
		"src/main/java/com/example/ExampleMod.java":         []byte("class ExampleMod {}"),
		"src/main/resources/fabric.mod.json":                []byte(fixtureModJSON),
		"src/main/resources/modid.mixins.json":              []byte("{}"),
		"src/main/resources/assets/modid/icon.png":          iconBytes,
		"src/client/java/com/example/ExampleModClient.java": []byte("class ExampleModClient {}"),
	}
	for _, s := range skip {
		delete(files, s)
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if _, err := w.Create("fabric-example-mod-1.19/"); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		f, err := w.Create("fabric-example-mod-1.19/" + name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type fakeResolver struct{}

func (fakeResolver) Resolve(ctx context.Context, gameVersion string) (*versions.Resolution, error) {
	return &versions.Resolution{CompatVersion: "0.83.0+1.20"}, nil
}

type fakeLoaders struct{}

func (fakeLoaders) LoaderForGameVersion(ctx context.Context, gameVersion string) (*fabric.LoaderEntry, error) {
	return &fabric.LoaderEntry{
		Loader:   fabric.LoaderVersion{Version: "0.14.21"},
		Mappings: fabric.MappingVersion{Version: "1.20+build.1"},
	}, nil
}

type fakeTemplates struct {
	url  string
	refs []string
}

func (f *fakeTemplates) DefaultBranch(ctx context.Context, owner string, repo string) (string, error) {
	return "1.20", nil
}

func (f *fakeTemplates) ArchiveURL(owner string, repo string, ref string) string {
	f.refs = append(f.refs, ref)
	return f.url
}

type fakeGradle struct {
	dir   string
	tasks []string
}

func (f *fakeGradle) Run(ctx context.Context, dir string, tasks ...string) error {
	f.dir = dir
	f.tasks = tasks
	return nil
}

func newBootstrapper(t *testing.T, archive []byte) (*Bootstrapper, *fakeTemplates, *fakeGradle) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	t.Cleanup(ts.Close)

	templates := &fakeTemplates{url: ts.URL + "/archive.zip"}
	g := &fakeGradle{}
	return &Bootstrapper{
		Versions:  fakeResolver{},
		Loaders:   fakeLoaders{},
		Templates: templates,
		Gradle:    g,
		HTTP:      ts.Client(),
		JVMArgs:   "-Xmx3G",
	}, templates, g
}

func testProject(dir string) *Project {
	return &Project{
		Name:             "Test Mod",
		ModID:            "testmod",
		Group:            "alice.test.mod",
		EntryPoint:       "TestMod",
		ArchiveBaseName:  "test-mod",
		Description:      "A test",
		Version:          "0.1.0",
		MinecraftVersion: "1.20",
		Website:          "https://example.com",
		Authors:          []string{"Alice"},
		Directory:        dir,
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestBootstrap(t *testing.T) {
	b, templates, g := newBootstrapper(t, templateZip(t))
	p := testProject(t.TempDir())
	if err := b.Bootstrap(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	root := p.Root()

	if len(templates.refs) != 1 || templates.refs[0] != "1.20" {
		t.Errorf("expected the default branch to be used, got %v", templates.refs)
	}
	if exists(root + ".tmp") {
		t.Error("temporary extraction folder was not removed")
	}

	for _, gone := range []string{
		"LICENSE",
		"README.md",
		".github",
		"src/client",
		"src/main/java/com",
		"src/main/resources/assets/modid",
	} {
		if exists(filepath.Join(root, gone)) {
			t.Errorf("%s should have been removed", gone)
		}
	}
	if !exists(filepath.Join(root, "src/main/java/alice/test/mod")) {
		t.Error("source folder was not created")
	}
	icon, err := os.ReadFile(filepath.Join(root, "src/main/resources/assets/testmod/icon.png"))
	if err != nil || !bytes.Equal(icon, iconBytes) {
		t.Errorf("icon was not moved to the new assets folder (%v)", err)
	}

	locations, err := datafile.Read(root)
	if err != nil {
		t.Fatal(err)
	}
	if locations.Entrypoint != filepath.FromSlash("src/main/java/alice/test/mod/TestMod.java") {
		t.Errorf("unexpected entrypoint %s", locations.Entrypoint)
	}
	if locations.Assets != filepath.FromSlash("src/main/resources/assets/testmod") {
		t.Errorf("unexpected assets %s", locations.Assets)
	}

	props, err := properties.LoadFile(filepath.Join(root, "gradle.properties"), properties.UTF8)
	if err != nil {
		t.Fatal(err)
	}
	expected := map[string]string{
		"org.gradle.jvmargs":  "-Xmx3G",
		"org.gradle.parallel": "true",
		"minecraft_version":   "1.20",
		"yarn_mappings":       "1.20+build.1",
		"loader_version":      "0.14.21",
		"loom_version":        "1.2-SNAPSHOT",
		"mod_version":         "0.1.0",
		"maven_group":         "alice.test.mod",
		"archives_base_name":  "test-mod",
		"fabric_version":      "0.83.0+1.20",
	}
	for key, value := range expected {
		if got := props.GetString(key, ""); got != value {
			t.Errorf("gradle.properties %s = %q, expected %q", key, got, value)
		}
	}

	raw, err := os.ReadFile(filepath.Join(root, "src/main/resources/fabric.mod.json"))
	if err != nil {
		t.Fatal(err)
	}
	var manifest fabric.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		t.Fatal(err)
	}
	if manifest.ID != "testmod" || manifest.Name != "Test Mod" || manifest.Icon != "assets/testmod/icon.png" {
		t.Errorf("metadata was not rewritten: %+v", manifest)
	}
	if manifest.License != "CC0-1.0" || manifest.Depends["minecraft"] != "~1.19.4" {
		t.Errorf("template fields were not preserved: %+v", manifest)
	}
	if len(manifest.Entrypoints) != 1 || manifest.Entrypoints["main"][0] != "alice.test.mod.TestMod" {
		t.Errorf("unexpected entrypoints %v", manifest.Entrypoints)
	}
	if len(manifest.Mixins) != 0 || manifest.Contact.Sources != "" {
		t.Errorf("mixins and sources should be cleared: %+v", manifest)
	}

	if g.dir != root || len(g.tasks) != 1 || g.tasks[0] != "wrapper" {
		t.Errorf("gradle wrapper was not run in the project: %s %v", g.dir, g.tasks)
	}
	if runtime.GOOS != "windows" {
		stat, err := os.Stat(filepath.Join(root, "gradlew"))
		if err != nil {
			t.Fatal(err)
		}
		if stat.Mode()&0100 == 0 {
			t.Error("gradlew is not executable")
		}
	}
}

func TestBootstrapUsesConfiguredRef(t *testing.T) {
	b, templates, _ := newBootstrapper(t, templateZip(t))
	b.Ref = "1.19"
	if err := b.Bootstrap(context.Background(), testProject(t.TempDir())); err != nil {
		t.Fatal(err)
	}
	if templates.refs[0] != "1.19" {
		t.Errorf("expected ref 1.19, got %s", templates.refs[0])
	}
}

func TestBootstrapExistingFolder(t *testing.T) {
	b, _, g := newBootstrapper(t, templateZip(t))
	p := testProject(t.TempDir())
	if err := os.MkdirAll(p.Root(), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	err := b.Bootstrap(context.Background(), p)
	if !errors.Is(err, ErrProjectExists) {
		t.Fatalf("expected ErrProjectExists, got %v", err)
	}
	if g.tasks != nil {
		t.Error("gradle should not run")
	}
}

func TestBootstrapBrokenTemplate(t *testing.T) {
	tests := []string{
		"src/main/java/com/example/ExampleMod.java",
		"src/main/resources/fabric.mod.json",
	}
	for _, missing := range tests {
		t.Run(missing, func(t *testing.T) {
			b, _, _ := newBootstrapper(t, templateZip(t, missing))
			err := b.Bootstrap(context.Background(), testProject(t.TempDir()))
			if !errors.Is(err, ErrTemplateLayout) {
				t.Fatalf("expected ErrTemplateLayout, got %v", err)
			}
		})
	}
}

func TestOptionalLeftovers(t *testing.T) {
	b, _, _ := newBootstrapper(t, templateZip(t, "LICENSE", "README.md", ".github/workflows/build.yml"))
	if err := b.Bootstrap(context.Background(), testProject(t.TempDir())); err != nil {
		t.Fatal(err)
	}
}

func TestExtractReplacesLeftoverTmp(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "template.zip")
	if err := os.WriteFile(archive, templateZip(t), 0644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(dir, "Test Mod")
	if err := os.MkdirAll(filepath.Join(target+".tmp", "stale"), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := extract(archive, target); err != nil {
		t.Fatal(err)
	}
	if !exists(filepath.Join(target, "gradlew")) || exists(target+".tmp") {
		t.Fatal("expected a clean extraction")
	}
}

func TestExtractFailsOnUnremovableTmp(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix path semantics")
	}
	dir := t.TempDir()
	archive := filepath.Join(dir, "template.zip")
	if err := os.WriteFile(archive, templateZip(t), 0644); err != nil {
		t.Fatal(err)
	}

	// names with a NUL byte can not be removed
	err := extract(archive, filepath.Join(dir, "Test\x00Mod"))
	if merrors.KindOf(err) != merrors.KindFilesystem {
		t.Fatalf("expected a filesystem error, got %v", err)
	}
}

func TestJVMArgs(t *testing.T) {
	if got := jvmArgsFor(4 << 30); got != "-Xmx1G" {
		t.Errorf("expected -Xmx1G for 4GiB, got %s", got)
	}
	if got := jvmArgsFor(8 << 30); got != "-Xmx2G" {
		t.Errorf("expected -Xmx2G for 8GiB, got %s", got)
	}
}

func TestRewriteModJSONRejectsGarbage(t *testing.T) {
	if _, err := rewriteModJSON([]byte("{nope"), testProject("")); err == nil {
		t.Fatal("expected an error")
	}
}

type fakeLicenses struct{}

func (fakeLicenses) License(ctx context.Context, key string) (*license.License, error) {
	if key != "MIT" {
		return nil, license.ErrUnknown
	}
	return &license.License{Key: "mit", SpdxID: "MIT", Body: "MIT License\n\nCopyright (c) [year] [fullname]\n"}, nil
}

func TestBootstrapLicense(t *testing.T) {
	b, _, _ := newBootstrapper(t, templateZip(t))
	b.Licenses = fakeLicenses{}
	p := testProject(t.TempDir())
	p.License = "MIT"
	if err := b.Bootstrap(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(filepath.Join(p.Root(), "LICENSE"))
	if err != nil {
		t.Fatal(err)
	}
	expected := fmt.Sprintf("MIT License\n\nCopyright (c) %d Alice\n", time.Now().Year())
	if string(content) != expected {
		t.Errorf("unexpected LICENSE\n%s", content)
	}

	modJSON, err := os.ReadFile(filepath.Join(p.Root(), "src", "main", "resources", "fabric.mod.json"))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(modJSON, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["license"] != "MIT" {
		t.Errorf("expected the license in fabric.mod.json, got %v", raw["license"])
	}
}

func TestBootstrapUnknownLicense(t *testing.T) {
	b, _, _ := newBootstrapper(t, templateZip(t))
	b.Licenses = fakeLicenses{}
	p := testProject(t.TempDir())
	p.License = "nope"
	err := b.Bootstrap(context.Background(), p)
	if merrors.KindOf(err) != merrors.KindUsage {
		t.Fatalf("expected a usage error, got %v", err)
	}
}
