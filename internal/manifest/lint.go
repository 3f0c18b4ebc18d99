// Where: internal/manifest/lint.go
// What: Manifest lint checks against the framework version pin.
// Why: Surface constraints that can never install before the build runs.
package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/yunusdonmez-dev/envbuild/internal/meta"
)

// Severity classifies a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single lint finding, tied to a manifest line.
type Issue struct {
	Severity Severity
	Line     int
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: line %d: %s", i.Severity, i.Line, i.Message)
}

// Lint checks the manifest against the configured framework version.
// Errors are constraints that are guaranteed to fail at install time. The
// build itself never consults this (install-time resolution stays the
// authoritative check), but the manifest command uses it to fail early.
func (m *Manifest) Lint(frameworkVersion string) []Issue {
	var issues []Issue

	seen := map[string]int{}
	for _, req := range m.Requirements {
		if req.Name == "" {
			issues = append(issues, lintOption(req)...)
			continue
		}

		if prev, ok := seen[req.Name]; ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Line:     req.Line,
				Message:  fmt.Sprintf("duplicate requirement %q (first on line %d)", req.Name, prev),
			})
		} else {
			seen[req.Name] = req.Line
		}

		if req.Name == meta.FrameworkPackage {
			issues = append(issues, lintFrameworkPin(req, frameworkVersion)...)
		}
	}
	return issues
}

// HasErrors reports whether any issue is a hard error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func lintOption(req Requirement) []Issue {
	fields := strings.Fields(req.Raw)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "-r", "--requirement", "-c", "--constraint":
		return []Issue{{
			Severity: SeverityWarning,
			Line:     req.Line,
			Message:  fmt.Sprintf("%s references a file that is not staged into the build context", fields[0]),
		}}
	}
	return nil
}

func lintFrameworkPin(req Requirement, frameworkVersion string) []Issue {
	if req.Constraint == "" {
		return nil
	}

	if pin := req.ExactPin(); pin != "" && pin != frameworkVersion {
		return []Issue{{
			Severity: SeverityError,
			Line:     req.Line,
			Message: fmt.Sprintf("%s pinned to %s but the environment is built for %s",
				meta.FrameworkPackage, pin, frameworkVersion),
		}}
	}

	excluded, ok := constraintExcludes(req.Constraint, frameworkVersion)
	if ok && excluded {
		return []Issue{{
			Severity: SeverityError,
			Line:     req.Line,
			Message: fmt.Sprintf("%s constraint %q excludes the pinned version %s",
				meta.FrameworkPackage, req.Constraint, frameworkVersion),
		}}
	}
	return nil
}

// constraintExcludes evaluates a constraint expression against a version.
// Only the operator subset shared between pip and semver ranges is evaluated;
// anything else (~=, ===, wildcards) reports ok=false and is left to the
// installer.
func constraintExcludes(constraint, version string) (excluded, ok bool) {
	if strings.ContainsAny(constraint, "*") ||
		strings.Contains(constraint, "~=") ||
		strings.Contains(constraint, "===") {
		return false, false
	}

	expr := strings.ReplaceAll(constraint, "==", "=")
	c, err := semver.NewConstraint(expr)
	if err != nil {
		return false, false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, false
	}
	return !c.Check(v), true
}
