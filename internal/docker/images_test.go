// Where: internal/docker/images_test.go
// What: Tests for engine image queries.
// Why: Verification depends on reading labels back correctly.
package docker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	dockerspec "github.com/moby/docker-image-spec/specs-go/v1"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/yunusdonmez-dev/envbuild/internal/meta"
)

type fakeEngine struct {
	inspect    image.InspectResponse
	inspectErr error
	list       []image.Summary
	listErr    error
	lastFilter string
}

func (f *fakeEngine) ImageInspect(_ context.Context, _ string, _ ...client.ImageInspectOption) (image.InspectResponse, error) {
	return f.inspect, f.inspectErr
}

func (f *fakeEngine) ImageList(_ context.Context, options image.ListOptions) ([]image.Summary, error) {
	if options.Filters.Len() > 0 {
		f.lastFilter = fmt.Sprint(options.Filters)
	}
	return f.list, f.listErr
}

func TestInspectLabels(t *testing.T) {
	engine := &fakeEngine{
		inspect: image.InspectResponse{
			Config: &dockerspec.DockerOCIImageConfig{
				ImageConfig: ocispec.ImageConfig{
					Labels: map[string]string{meta.LabelFrameworkVersion: "3.1.6"},
				},
			},
		},
	}

	labels, err := InspectLabels(context.Background(), engine, "airflow-env:3.1.6")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if labels[meta.LabelFrameworkVersion] != "3.1.6" {
		t.Fatalf("unexpected labels: %v", labels)
	}
}

func TestInspectLabelsNilConfig(t *testing.T) {
	labels, err := InspectLabels(context.Background(), &fakeEngine{}, "airflow-env:3.1.6")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(labels) != 0 {
		t.Fatalf("expected empty labels, got %v", labels)
	}
}

func TestInspectLabelsMissingImage(t *testing.T) {
	engine := &fakeEngine{inspectErr: errors.New("no such image")}
	if _, err := InspectLabels(context.Background(), engine, "airflow-env:3.1.6"); err == nil {
		t.Fatal("expected error for a missing image")
	}
}

func TestListManagedImages(t *testing.T) {
	engine := &fakeEngine{
		list: []image.Summary{
			{
				ID:       "sha256:one",
				RepoTags: []string{"airflow-env:3.1.6", "<none>:<none>"},
				Labels:   map[string]string{meta.LabelFingerprint: "abcd"},
			},
			{
				ID:       "sha256:two",
				RepoTags: nil,
			},
		},
	}

	images, err := ListManagedImages(context.Background(), engine)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if len(images[0].Tags) != 1 || images[0].Tags[0] != "airflow-env:3.1.6" {
		t.Fatalf("expected untagged entries filtered, got %v", images[0].Tags)
	}
	if images[0].Labels[meta.LabelFingerprint] != "abcd" {
		t.Fatalf("unexpected labels: %v", images[0].Labels)
	}
}
