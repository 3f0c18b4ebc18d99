// Where: internal/app/manifest.go
// What: Manifest command handler.
// Why: Report constraints that can never install before a build is attempted.
package app

import (
	"fmt"
	"io"

	"github.com/yunusdonmez-dev/envbuild/internal/manifest"
)

func runManifest(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := loadConfig(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	man, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return exitWithError(out, err)
	}

	fmt.Fprintf(out, "manifest: %s (%d requirements)\n", man.Path, len(man.Requirements))
	for _, req := range man.Requirements {
		fmt.Fprintf(out, "  %s\n", req.Raw)
	}

	issues := man.Lint(cfg.Image.Version)
	for _, issue := range issues {
		fmt.Fprintln(out, issue)
	}
	if manifest.HasErrors(issues) {
		return 1
	}
	return 0
}
