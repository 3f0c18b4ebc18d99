// Where: internal/app/verify.go
// What: Verify command handler.
// Why: Confirm a built image still matches the pinned configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yunusdonmez-dev/envbuild/internal/build"
	"github.com/yunusdonmez-dev/envbuild/internal/config"
	"github.com/yunusdonmez-dev/envbuild/internal/docker"
	"github.com/yunusdonmez-dev/envbuild/internal/manifest"
	"github.com/yunusdonmez-dev/envbuild/internal/meta"
)

func runVerify(cli CLI, deps Dependencies, out io.Writer) int {
	if deps.Engine == nil {
		fmt.Fprintln(out, "verify: engine not available")
		return 1
	}
	ctx := context.Background()

	if cli.Verify.List {
		return runVerifyList(ctx, deps, out)
	}

	cfg, err := loadConfig(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	labels, err := docker.InspectLabels(ctx, deps.Engine, cfg.Image.Tag)
	if err != nil {
		return exitWithError(out, err)
	}

	expected, err := expectedFingerprint(cfg)
	if err != nil {
		return exitWithError(out, err)
	}

	mismatches := 0
	if got := labels[meta.LabelFrameworkVersion]; got != cfg.Image.Version {
		fmt.Fprintf(out, "framework version mismatch: image has %q, config pins %q\n", got, cfg.Image.Version)
		mismatches++
	}
	if got := labels[meta.LabelFingerprint]; got != expected {
		fmt.Fprintf(out, "fingerprint mismatch: image has %q, inputs produce %q\n", got, expected)
		mismatches++
	}
	if mismatches > 0 {
		return 1
	}
	fmt.Fprintf(out, "%s matches the configuration (fingerprint %s)\n", cfg.Image.Tag, expected)
	return 0
}

func runVerifyList(ctx context.Context, deps Dependencies, out io.Writer) int {
	images, err := docker.ListManagedImages(ctx, deps.Engine)
	if err != nil {
		return exitWithError(out, err)
	}
	if len(images) == 0 {
		fmt.Fprintln(out, "no managed images")
		return 0
	}
	for _, img := range images {
		tags := strings.Join(img.Tags, ", ")
		if tags == "" {
			tags = img.ID
		}
		fmt.Fprintf(out, "%s\tversion=%s\tfingerprint=%s\n",
			tags,
			img.Labels[meta.LabelFrameworkVersion],
			img.Labels[meta.LabelFingerprint],
		)
	}
	return 0
}

// expectedFingerprint recomputes the fingerprint from the current inputs,
// the same way the build pipeline does.
func expectedFingerprint(cfg *config.Config) (string, error) {
	man, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return "", err
	}

	entries := make([]string, 0, len(cfg.Stage.Extra))
	for _, src := range cfg.ExtraStagePaths() {
		entries = append(entries, filepath.Base(src))
	}
	dockerfile, err := build.RenderDockerfile(cfg, entries)
	if err != nil {
		return "", err
	}
	return build.Fingerprint(cfg.BaseRef(), cfg.Image.Version, man.Content, []byte(dockerfile), cfg.Build.Args), nil
}
