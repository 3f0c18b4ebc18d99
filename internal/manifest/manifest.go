// Where: internal/manifest/manifest.go
// What: Dependency manifest loading and parsing.
// Why: Stage the manifest verbatim while still understanding its constraints.
package manifest

import (
	"fmt"
	"os"
	"strings"
)

// Requirement is a single parsed line of the dependency manifest.
type Requirement struct {
	Name       string // normalized package name, empty for installer options
	Extras     string // raw extras expression, e.g. "[celery]"
	Constraint string // raw constraint expression, e.g. "==1.0.0" or ">=2,<3"
	Raw        string // the line as authored, trailing comment stripped
	Line       int    // 1-based line number in the manifest file
}

// Manifest holds the dependency manifest exactly as authored plus its parse.
// Content is staged into the build context byte for byte; Requirements exist
// only so the CLI can lint and report, never to rewrite the file.
type Manifest struct {
	Path         string
	Content      []byte
	Requirements []Requirement
}

// Load reads and parses the manifest at path. A missing or unreadable file is
// a staging error: the caller must abort before any installer runs.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	reqs, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &Manifest{Path: path, Content: content, Requirements: reqs}, nil
}

// Parse splits manifest content into requirement lines. Blank lines and
// comments are skipped. Installer option lines (leading "-") are preserved
// with an empty Name so lint can flag ones that reference unstaged files.
func Parse(content []byte) ([]Requirement, error) {
	var reqs []Requirement
	for i, line := range strings.Split(string(content), "\n") {
		raw := stripComment(line)
		if raw == "" {
			continue
		}
		req := Requirement{Raw: raw, Line: i + 1}
		if !strings.HasPrefix(raw, "-") {
			name, extras, constraint, err := splitRequirement(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			req.Name = NormalizeName(name)
			req.Extras = extras
			req.Constraint = constraint
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// NormalizeName lowercases a package name and folds separators, so that
// "Apache_Airflow" and "apache-airflow" compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}

// ExactPin returns the version a requirement pins with "==", or "" when the
// constraint is absent or a range.
func (r Requirement) ExactPin() string {
	c := strings.TrimSpace(r.Constraint)
	if !strings.HasPrefix(c, "==") || strings.HasPrefix(c, "===") {
		if strings.HasPrefix(c, "===") {
			return strings.TrimSpace(strings.TrimPrefix(c, "==="))
		}
		return ""
	}
	pin := strings.TrimSpace(strings.TrimPrefix(c, "=="))
	if strings.ContainsAny(pin, ",*") {
		return ""
	}
	return pin
}

func stripComment(line string) string {
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}
	// environment markers are irrelevant to the lint; the installer sees the
	// verbatim line anyway
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

var constraintOps = []string{"===", "==", "~=", "!=", ">=", "<=", ">", "<"}

func splitRequirement(raw string) (name, extras, constraint string, err error) {
	rest := raw
	opIdx := len(rest)
	for _, op := range constraintOps {
		if idx := strings.Index(rest, op); idx >= 0 && idx < opIdx {
			opIdx = idx
		}
	}
	name = strings.TrimSpace(rest[:opIdx])
	constraint = strings.TrimSpace(rest[opIdx:])

	if idx := strings.Index(name, "["); idx >= 0 {
		end := strings.Index(name, "]")
		if end < idx {
			return "", "", "", fmt.Errorf("unterminated extras in %q", raw)
		}
		extras = name[idx : end+1]
		name = strings.TrimSpace(name[:idx])
	}
	if name == "" {
		return "", "", "", fmt.Errorf("missing package name in %q", raw)
	}
	return name, extras, constraint, nil
}
