// Where: cmd/envbuild/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/yunusdonmez-dev/envbuild/internal/app"
	"github.com/yunusdonmez-dev/envbuild/internal/build"
	"github.com/yunusdonmez-dev/envbuild/internal/docker"
	"github.com/yunusdonmez-dev/envbuild/internal/registry"
)

var newEngineClient = docker.NewEngineClient

// buildDependencies constructs all runtime dependencies required by the CLI.
// The engine client is optional: build and plan work without a reachable
// daemon socket, so its construction error is deferred to verify.
func buildDependencies() (app.Dependencies, io.Closer, error) {
	runner := docker.ExecRunner{}
	resolver := registry.RemoteResolver{}

	deps := app.Dependencies{
		Out:     os.Stdout,
		Builder: build.New(runner, resolver, os.Stdout),
	}

	client, err := newEngineClient()
	if err == nil {
		deps.Engine = client
		return deps, client, nil
	}
	return deps, nil, nil
}
