// Where: internal/app/deps.go
// What: Injected dependencies for CLI commands.
// Why: Enable swapping the builder and engine in tests.
package app

import (
	"context"
	"io"

	"github.com/yunusdonmez-dev/envbuild/internal/build"
	"github.com/yunusdonmez-dev/envbuild/internal/config"
	"github.com/yunusdonmez-dev/envbuild/internal/docker"
)

// Builder runs the environment build pipeline.
type Builder interface {
	Build(ctx context.Context, req build.Request) (build.Result, error)
}

// Dependencies holds all injected dependencies required for CLI command
// execution.
type Dependencies struct {
	Out        io.Writer
	Builder    Builder
	Engine     docker.EngineClient
	LoadConfig func(path string) (*config.Config, error)
}

func loadConfig(cli CLI, deps Dependencies) (*config.Config, error) {
	loader := deps.LoadConfig
	if loader == nil {
		loader = config.Load
	}
	return loader(cli.Config)
}
