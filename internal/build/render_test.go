// Where: internal/build/render_test.go
// What: Tests for build definition rendering.
// Why: The rendered definition carries the reproducibility invariants.
package build

import (
	"strings"
	"testing"

	"github.com/yunusdonmez-dev/envbuild/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Image: config.ImageConfig{
			Base:    "apache/airflow",
			Version: "3.1.6",
			Tag:     "airflow-env:3.1.6",
		},
		Manifest: config.ManifestConfig{Path: "requirements.txt"},
	}
}

func TestRenderDockerfilePinsBase(t *testing.T) {
	out, err := RenderDockerfile(testConfig(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "FROM apache/airflow:3.1.6\n") {
		t.Fatalf("expected pinned FROM line, got:\n%s", out)
	}
	if !strings.Contains(out, `ARG AIRFLOW_VERSION="3.1.6"`) {
		t.Fatalf("expected version build arg with default, got:\n%s", out)
	}
	if !strings.Contains(out, "COPY requirements.txt /requirements.txt") {
		t.Fatalf("expected manifest copy, got:\n%s", out)
	}
}

func TestRenderDockerfileSingleInstallInvocation(t *testing.T) {
	out, err := RenderDockerfile(testConfig(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Count(out, "RUN ") != 1 {
		t.Fatalf("framework pin and manifest must share one installer invocation, got:\n%s", out)
	}

	var runLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "RUN ") {
			runLine = line
		}
	}
	if !strings.Contains(runLine, `"apache-airflow==${AIRFLOW_VERSION}"`) {
		t.Fatalf("expected explicit framework pin in install line: %s", runLine)
	}
	if !strings.Contains(runLine, "-r /requirements.txt") {
		t.Fatalf("expected manifest install in the same line: %s", runLine)
	}
}

func TestRenderDockerfileExtraEntries(t *testing.T) {
	out, err := RenderDockerfile(testConfig(), []string{"dags", "scripts"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "COPY dags /opt/airflow/dags") {
		t.Fatalf("expected dags copy, got:\n%s", out)
	}
	if !strings.Contains(out, "COPY scripts /opt/airflow/scripts") {
		t.Fatalf("expected scripts copy, got:\n%s", out)
	}
}

func TestRenderDockerfileDeterministic(t *testing.T) {
	first, err := RenderDockerfile(testConfig(), []string{"dags"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := RenderDockerfile(testConfig(), []string{"dags"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != second {
		t.Fatal("rendering the same inputs twice must be byte-identical")
	}
}
