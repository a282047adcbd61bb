package template

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	archiver "github.com/mholt/archiver/v3"
	"github.com/minepkg/modkit/internals/cmdlog"
	"github.com/minepkg/modkit/internals/datafile"
	"github.com/minepkg/modkit/internals/downloadmgr"
	"github.com/minepkg/modkit/internals/fabric"
	"github.com/minepkg/modkit/internals/gradle"
	"github.com/minepkg/modkit/internals/license"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/minepkg/modkit/internals/versions"
	"github.com/pkg/errors"
)

const (
	DefaultOwner = "FabricMC"
	DefaultRepo  = "fabric-example-mod"
)

var (
	// ErrTemplateLayout is returned if the downloaded template is missing files we rely on
	ErrTemplateLayout = &merrors.Error{
		Kind: merrors.KindFilesystem,
		Err:  "the mod template does not have the expected layout",
		Help: "Check the template.owner, template.repo and template.ref settings",
	}
	// ErrProjectExists is returned if the project folder is already there
	ErrProjectExists = &merrors.Error{
		Kind: merrors.KindUsage,
		Err:  "the project folder already exists",
		Help: "Choose another mod name or directory",
	}
)

// files of the template that don't belong to a new mod
var templateLeftovers = []string{"LICENSE", "README.md", ".github"}

// VersionResolver finds the fabric API version of a minecraft version
type VersionResolver interface {
	Resolve(ctx context.Context, gameVersion string) (*versions.Resolution, error)
}

// LoaderSource finds the fabric loader and mappings of a minecraft version
type LoaderSource interface {
	LoaderForGameVersion(ctx context.Context, gameVersion string) (*fabric.LoaderEntry, error)
}

// TemplateSource locates the template archive
type TemplateSource interface {
	DefaultBranch(ctx context.Context, owner string, repo string) (string, error)
	ArchiveURL(owner string, repo string, ref string) string
}

// LicenseSource fetches license texts
type LicenseSource interface {
	License(ctx context.Context, key string) (*license.License, error)
}

// GradleRunner runs gradle tasks in a project
type GradleRunner interface {
	Run(ctx context.Context, dir string, tasks ...string) error
}

// Bootstrapper creates new projects from the template
type Bootstrapper struct {
	Versions  VersionResolver
	Loaders   LoaderSource
	Templates TemplateSource
	// Licenses is only used for projects with a license
	Licenses LicenseSource
	Gradle   GradleRunner
	// HTTP downloads the archive. Defaults to the download manager's client
	HTTP   *http.Client
	Logger *cmdlog.Logger

	Owner string
	Repo  string
	// Ref is the git ref of the template. Defaults to the default branch
	Ref string
	// JVMArgs overwrites the memory settings of the gradle daemon
	JVMArgs string
}

// Bootstrap creates the project folder of p. There is no rollback: if
// anything fails, a partial project folder is left behind
func (b *Bootstrapper) Bootstrap(ctx context.Context, p *Project) error {
	logger := b.logger()
	root := p.Root()
	if _, err := os.Stat(root); err == nil {
		return ErrProjectExists.WithCause(errors.Errorf("%s exists", root))
	}

	if _, err := semver.NewVersion(p.Version); err != nil {
		logger.Warn("Mod version " + p.Version + " is not a valid semver version")
	}

	resolution, err := b.Versions.Resolve(ctx, p.MinecraftVersion)
	if err != nil {
		return err
	}
	logger.Debug("resolved fabric API", "minecraft", p.MinecraftVersion, "fabric", resolution.CompatVersion)

	if err := b.fetchTemplate(ctx, root); err != nil {
		return err
	}

	for _, leftover := range templateLeftovers {
		if err := os.RemoveAll(filepath.Join(root, leftover)); err != nil {
			return merrors.Filesystem(err, "could not remove %s", leftover)
		}
	}
	modJSONFile := filepath.Join(root, ResourceRoot, "fabric.mod.json")
	for _, required := range []string{filepath.Join(root, JavaRoot), modJSONFile} {
		if _, err := os.Stat(required); err != nil {
			return ErrTemplateLayout.WithCause(err)
		}
	}
	if err := b.writeLicense(ctx, root, p); err != nil {
		return err
	}

	loader, err := b.Loaders.LoaderForGameVersion(ctx, p.MinecraftVersion)
	if err != nil {
		if errors.Is(err, fabric.ErrNoFabricLoader) {
			return merrors.Usage("fabric does not support minecraft %s", p.MinecraftVersion).WithCause(err)
		}
		return merrors.Transient(err, "could not fetch the fabric loader")
	}

	jvmArgs := b.JVMArgs
	if jvmArgs == "" {
		jvmArgs = DefaultJVMArgs()
	}
	props := gradleProperties(p, loader, resolution.CompatVersion, jvmArgs)
	if err := writeGradleProperties(filepath.Join(root, "gradle.properties"), props); err != nil {
		return merrors.Filesystem(err, "could not update gradle.properties")
	}

	modJSON, err := os.ReadFile(modJSONFile)
	if err != nil {
		return merrors.Filesystem(err, "could not read fabric.mod.json")
	}
	icon := templateIcon(filepath.Join(root, ResourceRoot), modJSON)
	if modJSON, err = rewriteModJSON(modJSON, p); err != nil {
		return ErrTemplateLayout.WithCause(err)
	}
	if err := os.WriteFile(modJSONFile, modJSON, 0644); err != nil {
		return merrors.Filesystem(err, "could not write fabric.mod.json")
	}

	if err := removePlaceholders(root); err != nil {
		return merrors.Filesystem(err, "could not remove the template sources")
	}

	locations := p.Locations()
	if err := os.MkdirAll(filepath.Join(root, filepath.Dir(locations.Entrypoint)), os.ModePerm); err != nil {
		return merrors.Filesystem(err, "could not create the source folder")
	}
	assets := filepath.Join(root, locations.Assets)
	if err := os.MkdirAll(assets, os.ModePerm); err != nil {
		return merrors.Filesystem(err, "could not create the assets folder")
	}
	if icon != nil {
		if err := os.WriteFile(filepath.Join(assets, "icon.png"), icon, 0644); err != nil {
			return merrors.Filesystem(err, "could not write the mod icon")
		}
	}
	if err := datafile.Write(root, locations); err != nil {
		return merrors.Filesystem(err, "could not write %s", datafile.FileName)
	}

	if err := gradle.MakeExecutable(root); err != nil {
		return ErrTemplateLayout.WithCause(err)
	}
	start := time.Now()
	spinner := logger.Spinner("Setting up gradle")
	spinner.Start()
	err = b.Gradle.Run(ctx, root, "wrapper")
	spinner.Stop()
	if err != nil {
		return err
	}
	logger.Timed("Gradle is ready", start)
	return nil
}

// writeLicense replaces the template license with the one of p
func (b *Bootstrapper) writeLicense(ctx context.Context, root string, p *Project) error {
	if p.License == "" {
		return nil
	}
	if b.Licenses == nil {
		b.logger().Warn("No license source configured, skipping the LICENSE file")
		return nil
	}

	text, err := b.Licenses.License(ctx, p.License)
	switch {
	case errors.Is(err, license.ErrUnknown):
		return merrors.Usage("unknown license %q", p.License).WithCause(err)
	case err != nil:
		return merrors.Transient(err, "could not fetch the %s license", p.License)
	}

	content := text.Fill(time.Now().Year(), p.Authors)
	if err := os.WriteFile(filepath.Join(root, "LICENSE"), []byte(content), 0644); err != nil {
		return merrors.Filesystem(err, "could not write LICENSE")
	}
	return nil
}

// fetchTemplate downloads the template and extracts it to root
func (b *Bootstrapper) fetchTemplate(ctx context.Context, root string) error {
	owner, repo, ref := b.Owner, b.Repo, b.Ref
	if owner == "" {
		owner = DefaultOwner
	}
	if repo == "" {
		repo = DefaultRepo
	}
	if ref == "" {
		branch, err := b.Templates.DefaultBranch(ctx, owner, repo)
		if err != nil {
			return merrors.Transient(err, "could not look up the template repository %s/%s", owner, repo)
		}
		ref = branch
	}

	archive, err := os.CreateTemp("", "modkit-template-*.zip")
	if err != nil {
		return merrors.Filesystem(err, "could not create a temporary file")
	}
	archive.Close()
	defer os.Remove(archive.Name())

	item := downloadmgr.NewHTTPItem(b.Templates.ArchiveURL(owner, repo, ref), archive.Name())
	if b.HTTP != nil {
		item.Client = b.HTTP
	}
	spinner := b.logger().Spinner("Downloading " + owner + "/" + repo + "@" + ref)
	spinner.Start()
	err = item.Download(ctx)
	spinner.Stop()
	var statusErr *downloadmgr.StatusError
	switch {
	case errors.As(err, &statusErr) && statusErr.NotFound():
		return merrors.Usage("the template %s/%s has no ref %q", owner, repo, ref).WithCause(err)
	case err != nil:
		return merrors.Transient(err, "could not download the mod template")
	}
	b.logger().Debug("downloaded template", "size", cmdlog.Size(item.Size))

	if err := extract(archive.Name(), root); err != nil {
		if merrors.KindOf(err) != merrors.KindUnknown {
			return err
		}
		return merrors.Filesystem(err, "could not extract the mod template")
	}
	return nil
}

// extract unpacks the single top level directory of archive to dir
func extract(archive string, dir string) error {
	// the root directory is something like "fabric-example-mod-1.20"
	rootDirName := ""
	err := archiver.Walk(archive, func(f archiver.File) error {
		if f.IsDir() {
			rootDirName = f.Name()
			return archiver.ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return err
	}
	if rootDirName == "" {
		return errors.New("archive has no root directory")
	}

	tmp := dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return merrors.Filesystem(err, "could not remove the leftover %s", tmp)
	}
	if err := archiver.Unarchive(archive, tmp); err != nil {
		return err
	}
	if err := os.Rename(filepath.Join(tmp, rootDirName), dir); err != nil {
		return err
	}
	return os.RemoveAll(tmp)
}

// removePlaceholders deletes the template's example sources and assets
func removePlaceholders(root string) error {
	for _, dir := range []string{JavaRoot, AssetRoot} {
		if err := removeChildren(filepath.Join(root, filepath.FromSlash(dir))); err != nil {
			return err
		}
	}
	return os.RemoveAll(filepath.Join(root, "src", "client"))
}

func removeChildren(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bootstrapper) logger() *cmdlog.Logger {
	if b.Logger == nil {
		return cmdlog.Discard()
	}
	return b.Logger
}
