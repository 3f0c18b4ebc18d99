// Where: internal/docker/client.go
// What: Docker SDK client construction and interface.
// Why: Scope the engine API surface to what the builder actually needs.
package docker

import (
	"context"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// EngineClient defines the subset of Docker SDK methods used by this module.
// This interface enables mocking the engine in tests.
type EngineClient interface {
	ImageInspect(ctx context.Context, imageRef string, opts ...client.ImageInspectOption) (image.InspectResponse, error)
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
}

// NewEngineClient creates a Docker client from the standard environment
// (DOCKER_HOST and friends) with API version negotiation.
func NewEngineClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}
