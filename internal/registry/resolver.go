// Where: internal/registry/resolver.go
// What: Registry tag resolution.
// Why: Prove the pinned tag exists before staging anything.
package registry

import (
	"context"
	"fmt"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// Resolver checks that a pinned tag is resolvable and returns its digest.
type Resolver interface {
	Resolve(ctx context.Context, tag name.Tag) (string, error)
}

// RemoteResolver resolves tags against the image registry with a HEAD
// request, using the ambient keychain for credentials.
type RemoteResolver struct{}

func (RemoteResolver) Resolve(ctx context.Context, tag name.Tag) (string, error) {
	desc, err := remote.Head(tag,
		remote.WithContext(ctx),
		remote.WithAuthFromKeychain(authn.DefaultKeychain),
	)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", tag.Name(), err)
	}
	return desc.Digest.String(), nil
}
