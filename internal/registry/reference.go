// Where: internal/registry/reference.go
// What: Base image reference parsing.
// Why: Enforce the exact-tag invariant before any build work starts.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
)

// ErrFloatingTag is returned for references that do not pin an exact,
// non-"latest" tag. Reproducibility requires the same bytes on every build.
var ErrFloatingTag = errors.New("base image tag must be pinned (floating tags are not reproducible)")

// ParseTaggedRef parses a base image reference and requires an explicit,
// non-"latest" tag. The returned tag is immutable for the rest of the build.
func ParseTaggedRef(ref string) (name.Tag, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return name.Tag{}, fmt.Errorf("base image reference is required")
	}

	tag, err := name.NewTag(ref)
	if err != nil {
		return name.Tag{}, fmt.Errorf("parse base image reference %q: %w", ref, err)
	}

	// name.NewTag fills in "latest" when the tag is absent; an explicit tag
	// in the authored reference is required here.
	last := ref[strings.LastIndex(ref, "/")+1:]
	if !strings.Contains(last, ":") || tag.TagStr() == "latest" {
		return name.Tag{}, fmt.Errorf("%q: %w", ref, ErrFloatingTag)
	}
	return tag, nil
}
