// Where: internal/build/fingerprint.go
// What: Input fingerprint for change detection and idempotence checks.
// Why: Two builds with equal fingerprints must describe equivalent images.
package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint hashes every input that shapes the built image: the pinned
// base reference, the framework version, the verbatim manifest bytes, the
// rendered definition, and any extra engine build arguments.
func Fingerprint(baseRef, version string, manifestContent, dockerfile []byte, buildArgs map[string]string) string {
	h := sha256.New()
	parts := [][]byte{
		[]byte(baseRef),
		[]byte(version),
		manifestContent,
		dockerfile,
	}
	for _, key := range sortedKeys(buildArgs) {
		parts = append(parts, []byte(key+"="+buildArgs[key]))
	}
	for _, part := range parts {
		h.Write(part)
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
