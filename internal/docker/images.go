// Where: internal/docker/images.go
// What: Engine queries for built images.
// Why: Provide scoped lookups for verification and listing.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"

	"github.com/yunusdonmez-dev/envbuild/internal/meta"
)

// ImageInfo summarizes a built image known to the engine.
type ImageInfo struct {
	ID     string
	Tags   []string
	Labels map[string]string
}

// InspectLabels returns the labels recorded on an image, or an error if the
// image is not present in the engine.
func InspectLabels(ctx context.Context, client EngineClient, ref string) (map[string]string, error) {
	resp, err := client.ImageInspect(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("inspect image %s: %w", ref, err)
	}
	if resp.Config == nil {
		return map[string]string{}, nil
	}
	return resp.Config.Labels, nil
}

// ListManagedImages returns every image carrying the builder's managed label.
func ListManagedImages(ctx context.Context, client EngineClient) ([]ImageInfo, error) {
	labelFilter := filters.NewArgs()
	labelFilter.Add("label", fmt.Sprintf("%s=true", meta.LabelManaged))

	images, err := client.ImageList(ctx, image.ListOptions{Filters: labelFilter})
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	result := make([]ImageInfo, 0, len(images))
	for _, img := range images {
		tags := make([]string, 0, len(img.RepoTags))
		for _, tag := range img.RepoTags {
			if tag == "<none>:<none>" {
				continue
			}
			tags = append(tags, tag)
		}
		result = append(result, ImageInfo{ID: img.ID, Tags: tags, Labels: img.Labels})
	}
	return result, nil
}
