// Where: internal/build/context.go
// What: Build context staging.
// Why: Put the manifest and definition in place before the engine ever runs.
package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yunusdonmez-dev/envbuild/internal/config"
	"github.com/yunusdonmez-dev/envbuild/internal/fileops"
	"github.com/yunusdonmez-dev/envbuild/internal/manifest"
	"github.com/yunusdonmez-dev/envbuild/internal/meta"
)

// StagedContext is a fully prepared build context directory.
type StagedContext struct {
	Dir            string
	Dockerfile     string
	DockerfilePath string
	ManifestPath   string
	ExtraEntries   []string

	temp bool
}

// Cleanup removes the context directory when the builder created it.
// Contexts pinned through build.context_dir are left alone.
func (s *StagedContext) Cleanup() error {
	if s == nil || !s.temp {
		return nil
	}
	return fileops.RemoveDir(s.Dir)
}

// StageBuildContext lays out the context: manifest bytes copied verbatim to
// the context root, extra entries copied by name, and the rendered
// definition written last.
func StageBuildContext(cfg *config.Config, man *manifest.Manifest) (*StagedContext, error) {
	dir := cfg.Build.ContextDir
	temp := false
	if dir == "" {
		tmp, err := os.MkdirTemp("", meta.AppName+"-ctx-")
		if err != nil {
			return nil, fmt.Errorf("create build context: %w", err)
		}
		dir = tmp
		temp = true
	} else if err := fileops.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create build context %s: %w", dir, err)
	}

	staged := &StagedContext{Dir: dir, temp: temp}
	if err := populateContext(staged, cfg, man); err != nil {
		_ = staged.Cleanup()
		return nil, err
	}
	return staged, nil
}

func populateContext(staged *StagedContext, cfg *config.Config, man *manifest.Manifest) error {
	staged.ManifestPath = filepath.Join(staged.Dir, meta.DefaultManifestName)
	if err := os.WriteFile(staged.ManifestPath, man.Content, 0o644); err != nil {
		return fmt.Errorf("stage manifest: %w", err)
	}

	for _, src := range cfg.ExtraStagePaths() {
		entry := filepath.Base(src)
		dst := filepath.Join(staged.Dir, entry)
		switch {
		case fileops.DirExists(src):
			if err := fileops.CopyDir(src, dst); err != nil {
				return fmt.Errorf("stage %s: %w", entry, err)
			}
		case fileops.FileExists(src):
			if err := fileops.CopyFile(src, dst); err != nil {
				return fmt.Errorf("stage %s: %w", entry, err)
			}
		default:
			return fmt.Errorf("stage entry not found: %s", src)
		}
		staged.ExtraEntries = append(staged.ExtraEntries, entry)
	}

	dockerfile, err := RenderDockerfile(cfg, staged.ExtraEntries)
	if err != nil {
		return fmt.Errorf("render build definition: %w", err)
	}
	staged.Dockerfile = dockerfile
	staged.DockerfilePath = filepath.Join(staged.Dir, meta.DockerfileName)
	if err := fileops.WriteFile(staged.DockerfilePath, dockerfile); err != nil {
		return fmt.Errorf("write build definition: %w", err)
	}
	return nil
}
