package main

import (
	"net/http"

	"github.com/minepkg/modkit/cmd"
	"github.com/minepkg/modkit/internals/globals"
)

// set by goreleaser
var (
	version = "dev"
	commit  string
)

func main() {
	// replace default http client
	http.DefaultClient = globals.HTTPClient

	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
