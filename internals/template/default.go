package template

import (
	"context"
	"time"

	"github.com/minepkg/modkit/internals/cmdlog"
	"github.com/minepkg/modkit/internals/fabric"
	"github.com/minepkg/modkit/internals/github"
	"github.com/minepkg/modkit/internals/gradle"
	"github.com/minepkg/modkit/internals/ownhttp"
	"github.com/minepkg/modkit/internals/versions"
)

// Config configures New
type Config struct {
	// CacheDir contains the fabric version cache
	CacheDir string
	// GitHubToken is optional and only raises the API rate limit
	GitHubToken string
	Owner       string
	Repo        string
	Ref         string
	JVMArgs     string
	Logger      *cmdlog.Logger
}

// New returns a Bootstrapper using the public fabric, Modrinth and GitHub services
func New(ctx context.Context, cfg Config) *Bootstrapper {
	httpClient := ownhttp.New()
	// github and fabric meta have no documented limits, but let's be nice
	throttled := ownhttp.NewThrottled(100*time.Millisecond, 4)

	templates := github.New(ctx, throttled, cfg.GitHubToken)

	return &Bootstrapper{
		Versions:  versions.New(httpClient, cfg.CacheDir, cfg.Logger),
		Loaders:   fabric.NewMetaClient(throttled, ""),
		Templates: templates,
		Licenses:  templates,
		Gradle:    &gradle.Driver{Logger: cfg.Logger},
		HTTP:      httpClient,
		Logger:    cfg.Logger,
		Owner:     cfg.Owner,
		Repo:      cfg.Repo,
		Ref:       cfg.Ref,
		JVMArgs:   cfg.JVMArgs,
	}
}
