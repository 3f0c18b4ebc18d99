// Where: internal/build/render.go
// What: Render the build definition from the pinned configuration.
// Why: One template, one version value feeding both the base tag and the pin.
package build

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/yunusdonmez-dev/envbuild/internal/config"
	"github.com/yunusdonmez-dev/envbuild/internal/meta"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

type dockerfileTemplateData struct {
	BaseImage        string
	Version          string
	VersionArg       string
	VersionRef       string
	FrameworkPackage string
	ManifestName     string
	RuntimeHome      string
	ExtraEntries     []string
}

// RuntimeHome is where the framework expects mounted workflow content.
const RuntimeHome = "/opt/airflow"

// RenderDockerfile produces the build definition for the given configuration.
// The framework reinstall pin and the manifest install share a single RUN so
// the dependency resolver considers them jointly; splitting them risks
// incompatible transitive picks.
func RenderDockerfile(cfg *config.Config, extraEntries []string) (string, error) {
	data := dockerfileTemplateData{
		BaseImage:        cfg.BaseRef(),
		Version:          cfg.Image.Version,
		VersionArg:       meta.VersionBuildArg,
		VersionRef:       fmt.Sprintf("${%s}", meta.VersionBuildArg),
		FrameworkPackage: meta.FrameworkPackage,
		ManifestName:     meta.DefaultManifestName,
		RuntimeHome:      RuntimeHome,
		ExtraEntries:     extraEntries,
	}
	return renderTemplate("templates/dockerfile.tmpl", data)
}

func renderTemplate(name string, data any) (string, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func loadTemplate(name string) (*template.Template, error) {
	if value, ok := templateCache.Load(name); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", name)
		}
		return cached, nil
	}
	tmpl, err := template.New(path.Base(name)).Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, name)
	if err != nil {
		return nil, err
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}
