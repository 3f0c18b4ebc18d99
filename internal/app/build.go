// Where: internal/app/build.go
// What: Build command handler.
// Why: Translate CLI flags into one build invocation.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/yunusdonmez-dev/envbuild/internal/build"
)

func runBuild(cli CLI, deps Dependencies, out io.Writer) int {
	if deps.Builder == nil {
		fmt.Fprintln(out, "build: not implemented")
		return 1
	}

	cfg, err := loadConfig(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	request := build.Request{
		Config:      cfg,
		NoCache:     cli.Build.NoCache,
		Verbose:     cli.Build.Verbose,
		DryRun:      cli.Build.DryRun,
		SkipResolve: cli.Build.SkipResolve,
	}

	result, err := deps.Builder.Build(context.Background(), request)
	if err != nil {
		return exitWithError(out, err)
	}

	if result.State == build.StateInstalled {
		fmt.Fprintln(out, "build complete")
	}
	return 0
}
