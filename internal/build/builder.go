// Where: internal/build/builder.go
// What: The environment build pipeline.
// Why: One linear pass from pinned inputs to a tagged image, all-or-nothing.
package build

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yunusdonmez-dev/envbuild/internal/config"
	"github.com/yunusdonmez-dev/envbuild/internal/docker"
	"github.com/yunusdonmez-dev/envbuild/internal/manifest"
	"github.com/yunusdonmez-dev/envbuild/internal/meta"
	"github.com/yunusdonmez-dev/envbuild/internal/registry"
	"github.com/yunusdonmez-dev/envbuild/internal/version"
)

// State tracks pipeline progress. Transitions are strictly linear; any
// failure is terminal for the invocation and the caller re-runs from pending.
type State string

const (
	StatePending        State = "pending"
	StateBaseResolved   State = "base-resolved"
	StateManifestStaged State = "manifest-staged"
	StateInstalled      State = "installed"
	StateFailed         State = "failed"
)

// Step identifies the pipeline stage an error originated from.
type Step string

const (
	StepResolve Step = "resolve base"
	StepStage   Step = "stage manifest"
	StepInstall Step = "install"
)

// StepError ties a failure to its pipeline stage.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

// Request carries one build invocation's inputs.
type Request struct {
	Config      *config.Config
	NoCache     bool
	Verbose     bool
	DryRun      bool
	SkipResolve bool
}

// Result reports what a build produced.
type Result struct {
	State       State
	Tag         string
	Fingerprint string
	BaseDigest  string
}

// Builder runs the environment build pipeline.
type Builder struct {
	runner   docker.CommandRunner
	resolver registry.Resolver
	out      io.Writer
}

func New(runner docker.CommandRunner, resolver registry.Resolver, out io.Writer) *Builder {
	if out == nil {
		out = io.Discard
	}
	return &Builder{runner: runner, resolver: resolver, out: out}
}

// Build executes resolve -> stage -> install. No image is tagged on any
// failure path; the engine's own build atomicity guarantees that.
func (b *Builder) Build(ctx context.Context, req Request) (Result, error) {
	res := Result{State: StatePending}
	cfg := req.Config
	if cfg == nil {
		return failed(&res, StepResolve, fmt.Errorf("configuration is required"))
	}
	res.Tag = cfg.Image.Tag

	tag, err := registry.ParseTaggedRef(cfg.BaseRef())
	if err != nil {
		return failed(&res, StepResolve, err)
	}
	if !req.SkipResolve {
		if b.resolver == nil {
			return failed(&res, StepResolve, fmt.Errorf("registry resolver is required"))
		}
		digest, err := b.resolver.Resolve(ctx, tag)
		if err != nil {
			return failed(&res, StepResolve, err)
		}
		res.BaseDigest = digest
	}
	res.State = StateBaseResolved

	man, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return failed(&res, StepStage, err)
	}
	staged, err := StageBuildContext(cfg, man)
	if err != nil {
		return failed(&res, StepStage, err)
	}
	defer func() { _ = staged.Cleanup() }()
	res.State = StateManifestStaged
	res.Fingerprint = Fingerprint(cfg.BaseRef(), cfg.Image.Version, man.Content, []byte(staged.Dockerfile), cfg.Build.Args)

	if req.DryRun {
		fmt.Fprintf(b.out, "dry run: context staged at %s, engine not invoked\n", staged.Dir)
		return res, nil
	}

	args := buildArgs(cfg, res.Fingerprint, req)
	if err := b.runBuild(ctx, staged.Dir, args, req.Verbose); err != nil {
		return failed(&res, StepInstall, err)
	}
	res.State = StateInstalled
	fmt.Fprintf(b.out, "built %s (fingerprint %s)\n", res.Tag, res.Fingerprint)
	return res, nil
}

func failed(res *Result, step Step, err error) (Result, error) {
	res.State = StateFailed
	return *res, &StepError{Step: step, Err: err}
}

// buildArgs assembles the engine invocation. The framework version rides in
// as a build ARG so the pin in the definition and the one passed here come
// from the same configuration value.
func buildArgs(cfg *config.Config, fingerprint string, req Request) []string {
	args := []string{"build"}
	if !req.SkipResolve {
		args = append(args, "--pull")
	}
	if req.NoCache {
		args = append(args, "--no-cache")
	}
	args = append(args,
		"--build-arg", fmt.Sprintf("%s=%s", meta.VersionBuildArg, cfg.Image.Version),
	)
	for _, key := range sortedKeys(cfg.Build.Args) {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", key, cfg.Build.Args[key]))
	}
	args = append(args,
		"--label", fmt.Sprintf("%s=true", meta.LabelManaged),
		"--label", fmt.Sprintf("%s=%s", meta.LabelFrameworkVersion, cfg.Image.Version),
		"--label", fmt.Sprintf("%s=%s", meta.LabelFingerprint, fingerprint),
		"--label", fmt.Sprintf("%s=%s", meta.LabelBuilderVersion, version.GetVersion()),
		"-t", cfg.Image.Tag,
		".",
	)
	return args
}

func (b *Builder) runBuild(ctx context.Context, dir string, args []string, verbose bool) error {
	if b.runner == nil {
		return fmt.Errorf("command runner is nil")
	}
	if verbose {
		return b.runner.Run(ctx, dir, "docker", args...)
	}
	output, err := b.runner.RunOutput(ctx, dir, "docker", args...)
	if err == nil {
		return nil
	}
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("engine build failed: %w\n%s", err, trimmed)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
