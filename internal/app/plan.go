// Where: internal/app/plan.go
// What: Plan command handler.
// Why: Show exactly what a build would stage and render, touching nothing.
package app

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/yunusdonmez-dev/envbuild/internal/build"
	"github.com/yunusdonmez-dev/envbuild/internal/manifest"
	"github.com/yunusdonmez-dev/envbuild/internal/meta"
)

func runPlan(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := loadConfig(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	man, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return exitWithError(out, err)
	}

	extraEntries := make([]string, 0, len(cfg.Stage.Extra))
	for _, src := range cfg.ExtraStagePaths() {
		extraEntries = append(extraEntries, filepath.Base(src))
	}

	dockerfile, err := build.RenderDockerfile(cfg, extraEntries)
	if err != nil {
		return exitWithError(out, err)
	}

	fmt.Fprintf(out, "base:        %s\n", cfg.BaseRef())
	fmt.Fprintf(out, "tag:         %s\n", cfg.Image.Tag)
	fmt.Fprintf(out, "fingerprint: %s\n", build.Fingerprint(cfg.BaseRef(), cfg.Image.Version, man.Content, []byte(dockerfile), cfg.Build.Args))
	fmt.Fprintln(out, "staged files:")
	fmt.Fprintf(out, "  %s\n", meta.DockerfileName)
	fmt.Fprintf(out, "  %s\n", meta.DefaultManifestName)
	for _, entry := range extraEntries {
		fmt.Fprintf(out, "  %s\n", entry)
	}
	fmt.Fprintln(out, "---")
	fmt.Fprint(out, dockerfile)
	return 0
}
