// Package versions resolves the fabric API version that belongs to a
// minecraft version. The mapping is built from all fabric API releases on
// Modrinth and cached on disk.
package versions

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/minepkg/modkit/internals/cmdlog"
	"github.com/minepkg/modkit/internals/fabric"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/minepkg/modkit/internals/modrinth"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultStagger is the pause between starting two release fetches
	DefaultStagger = 400 * time.Millisecond
	// DefaultWorkers is the number of release fetches running at the same time
	DefaultWorkers = 8
)

// GameVersionSource lists minecraft versions (newest first)
type GameVersionSource interface {
	GameVersions(ctx context.Context) ([]fabric.GameVersion, error)
}

// ReleaseSource returns a project and its releases
type ReleaseSource interface {
	GetProject(ctx context.Context, idOrSlug string) (*modrinth.Project, error)
	GetVersion(ctx context.Context, id string) (*modrinth.Version, error)
}

// Resolver finds compat versions and keeps the cache file up to date
type Resolver struct {
	Meta     GameVersionSource
	Releases ReleaseSource
	// ProjectID is the project whose releases are collected. Defaults to the fabric API
	ProjectID string
	// CacheFile is the location of the cache
	CacheFile string
	// Stagger is the minimum time between two release fetches
	Stagger time.Duration
	// Workers limits how many releases are fetched concurrently
	Workers int
	Logger  *cmdlog.Logger
}

// Resolution is the result of Resolve
type Resolution struct {
	// GameVersions are all minecraft versions, newest first
	GameVersions []fabric.GameVersion
	// CompatVersion is the fabric API version for the requested minecraft version
	CompatVersion string
}

// Resolve returns the compat version for gameVersion. The cache is rebuilt if
// it looks outdated
func (r *Resolver) Resolve(ctx context.Context, gameVersion string) (*Resolution, error) {
	cache, err := LoadCache(r.CacheFile)
	if err != nil {
		r.logger().Warn("Ignoring unreadable version cache: " + err.Error())
	}

	all, err := r.Meta.GameVersions(ctx)
	if err != nil {
		return nil, merrors.Transient(err, "could not fetch minecraft versions")
	}

	if Stale(cache, all) {
		if cache, err = r.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	compat, ok := cache[gameVersion]
	if !ok {
		return nil, &merrors.Error{
			Kind: merrors.KindUsage,
			Err:  fmt.Sprintf("minecraft version %s is not supported by fabric", gameVersion),
			Help: "Use a released minecraft version that has a fabric API release",
		}
	}

	return &Resolution{GameVersions: all, CompatVersion: compat}, nil
}

// Stale reports if the cache misses the second newest stable version.
// The newest stable version may not have a fabric API release yet.
func Stale(cache Cache, all []fabric.GameVersion) bool {
	stable := fabric.Stable(all)
	if len(stable) < 2 {
		return len(cache) == 0
	}
	_, ok := cache[stable[1].Version]
	return !ok
}

type claim struct {
	gameVersion string
	label       string
}

// Refresh rebuilds the cache from all releases and persists it
func (r *Resolver) Refresh(ctx context.Context) (Cache, error) {
	projectID := r.ProjectID
	if projectID == "" {
		projectID = modrinth.FabricAPIProjectID
	}

	spinner := r.logger().Spinner("Collecting fabric versions …")
	spinner.Start()
	defer spinner.Stop()

	project, err := r.Releases.GetProject(ctx, projectID)
	if err != nil {
		return nil, merrors.Transient(err, "could not fetch fabric API releases")
	}
	spinner.Update(fmt.Sprintf("Collecting %d fabric API releases …", len(project.Versions)))

	cache, err := r.collect(ctx, project.Versions)
	if err != nil {
		return nil, err
	}

	if err := cache.Save(r.CacheFile); err != nil {
		return nil, merrors.Filesystem(err, "could not write version cache")
	}
	r.logger().Debug("version cache rebuilt", "releases", len(project.Versions), "entries", len(cache))

	return cache, nil
}

// collect fetches every release and gathers their claims in a single goroutine
func (r *Resolver) collect(ctx context.Context, releaseIDs []string) (Cache, error) {
	stagger := r.Stagger
	if stagger <= 0 {
		stagger = DefaultStagger
	}
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	limiter := rate.NewLimiter(rate.Every(stagger), 1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	claims := make(chan claim)
	cache := Cache{}
	collected := make(chan struct{})
	go func() {
		for c := range claims {
			cache.merge(c.gameVersion, c.label)
		}
		close(collected)
	}()

	launchErr := func() error {
		for _, id := range releaseIDs {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			id := id
			g.Go(func() error {
				release, err := r.Releases.GetVersion(gctx, id)
				if err != nil {
					return fmt.Errorf("release %s: %w", id, err)
				}
				for _, gv := range release.GameVersions {
					claims <- claim{gameVersion: gv, label: release.VersionNumber}
				}
				return nil
			})
		}
		return nil
	}()

	err := g.Wait()
	close(claims)
	<-collected

	if err == nil {
		err = launchErr
	}
	if err != nil {
		if merrors.KindOf(err) != merrors.KindUnknown {
			return nil, err
		}
		return nil, merrors.Transient(err, "could not fetch fabric API releases")
	}

	return cache, nil
}

func (r *Resolver) logger() *cmdlog.Logger {
	if r.Logger == nil {
		return cmdlog.Discard()
	}
	return r.Logger
}

// New returns a Resolver for the fabric API that talks to the public
// fabric meta and Modrinth APIs and caches in cacheDir
func New(httpClient *http.Client, cacheDir string, logger *cmdlog.Logger) *Resolver {
	return &Resolver{
		Meta:      fabric.NewMetaClient(httpClient, ""),
		Releases:  modrinth.New(httpClient),
		ProjectID: modrinth.FabricAPIProjectID,
		CacheFile: filepath.Join(cacheDir, CacheFileName),
		Logger:    logger,
	}
}
