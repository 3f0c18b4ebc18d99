// Where: internal/config/config.go
// What: Build configuration types and loading.
// Why: Make the framework version an explicit value with a single source of truth.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yunusdonmez-dev/envbuild/internal/meta"
)

// Config captures everything a build consumes. The framework version appears
// exactly once (image.version) and feeds both the base tag and the explicit
// install pin, so the two cannot drift apart.
type Config struct {
	Image    ImageConfig    `yaml:"image"`
	Manifest ManifestConfig `yaml:"manifest"`
	Build    BuildConfig    `yaml:"build"`
	Stage    StageConfig    `yaml:"stage"`

	// Dir is the directory the config file was loaded from; relative paths
	// in the file resolve against it.
	Dir string `yaml:"-"`
}

// ImageConfig pins the base image and names the output tag.
type ImageConfig struct {
	Base    string `yaml:"base"`
	Version string `yaml:"version"`
	Tag     string `yaml:"tag"`
}

// ManifestConfig locates the dependency manifest.
type ManifestConfig struct {
	Path string `yaml:"path"`
}

// BuildConfig tunes the engine invocation.
type BuildConfig struct {
	ContextDir string            `yaml:"context_dir,omitempty"`
	Args       map[string]string `yaml:"args,omitempty"`
}

// StageConfig lists extra files or directories copied verbatim into the
// build context alongside the manifest (e.g. dags/, scripts/).
type StageConfig struct {
	Extra []string `yaml:"extra,omitempty"`
}

// Load reads, schema-validates, and decodes the config file at path, then
// applies defaults and resolves relative paths against the file's directory.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := validateSchema(content); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(abs)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Image.Base) == "" {
		c.Image.Base = meta.DefaultBaseRepository
	}
	if strings.TrimSpace(c.Image.Tag) == "" && c.Image.Version != "" {
		c.Image.Tag = meta.DefaultImageRepo + ":" + c.Image.Version
	}
	if strings.TrimSpace(c.Manifest.Path) == "" {
		c.Manifest.Path = meta.DefaultManifestName
	}
}

// Validate enforces the pinning invariants: a concrete version, no floating
// tags anywhere.
func (c *Config) Validate() error {
	version := strings.TrimSpace(c.Image.Version)
	if version == "" {
		return fmt.Errorf("image.version is required")
	}
	if version == "latest" {
		return fmt.Errorf("image.version %q is not a pinned release", version)
	}
	// a colon may appear in a registry port, so only the last path segment
	// counts as a tag separator
	base := c.Image.Base
	if strings.Contains(base[strings.LastIndex(base, "/")+1:], ":") {
		return fmt.Errorf("image.base must not carry a tag; the tag comes from image.version")
	}
	if strings.TrimSpace(c.Image.Tag) == "" {
		return fmt.Errorf("image.tag is required")
	}
	// build.args passes through to the engine last, after the builder's own
	// version argument, so a user-supplied value would win and break the
	// single-source version pin
	if _, ok := c.Build.Args[meta.VersionBuildArg]; ok {
		return fmt.Errorf("build.args must not set %s; the pin comes from image.version", meta.VersionBuildArg)
	}
	return nil
}

// BaseRef returns the fully pinned base image reference.
func (c *Config) BaseRef() string {
	return c.Image.Base + ":" + c.Image.Version
}

// ManifestPath returns the manifest location resolved against the config dir.
func (c *Config) ManifestPath() string {
	return c.resolvePath(c.Manifest.Path)
}

// ExtraStagePaths returns stage.extra entries resolved against the config dir.
func (c *Config) ExtraStagePaths() []string {
	paths := make([]string, 0, len(c.Stage.Extra))
	for _, entry := range c.Stage.Extra {
		paths = append(paths, c.resolvePath(entry))
	}
	return paths
}

func (c *Config) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}
