// Where: internal/version/version.go
// What: Builder version derived from embedded VCS metadata.
// Why: The builder stamps its own version onto every image it labels.
package version

import "runtime/debug"

// GetVersion reports the short VCS revision the binary was built from,
// suffixed with "(dirty)" when the tree was modified. Binaries without
// embedded build info report "dev".
func GetVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	revision, dirty := "", false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return "dev"
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		return revision + " (dirty)"
	}
	return revision
}
