// Where: internal/manifest/manifest_test.go
// What: Tests for manifest parsing.
// Why: The lint is only as good as the parse behind it.
package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRequirements(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantNames  []string
		wantCounts int
	}{
		{
			name:       "plain pins",
			content:    "pandas==2.2.0\nrequests==2.32.0\n",
			wantNames:  []string{"pandas", "requests"},
			wantCounts: 2,
		},
		{
			name:       "comments and blanks skipped",
			content:    "# extract deps\n\npandas==2.2.0  # dataframe\n",
			wantNames:  []string{"pandas"},
			wantCounts: 1,
		},
		{
			name:       "extras and markers",
			content:    "apache-airflow[celery]==3.1.6\nrequests>=2.0; python_version < \"3.13\"\n",
			wantNames:  []string{"apache-airflow", "requests"},
			wantCounts: 2,
		},
		{
			name:       "name normalization",
			content:    "Apache_Airflow==3.1.6\n",
			wantNames:  []string{"apache-airflow"},
			wantCounts: 1,
		},
		{
			name:       "option line kept unnamed",
			content:    "-r other.txt\npandas==2.2.0\n",
			wantNames:  []string{"", "pandas"},
			wantCounts: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			reqs, err := Parse([]byte(tc.content))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(reqs) != tc.wantCounts {
				t.Fatalf("expected %d requirements, got %d", tc.wantCounts, len(reqs))
			}
			for i, want := range tc.wantNames {
				if reqs[i].Name != want {
					t.Fatalf("requirement %d: expected name %q, got %q", i, want, reqs[i].Name)
				}
			}
		})
	}
}

func TestParseRejectsMissingName(t *testing.T) {
	_, err := Parse([]byte("==1.0.0\n"))
	if err == nil {
		t.Fatal("expected error for constraint without package name")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestExactPin(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"==1.0.0", "1.0.0"},
		{"===1.0.0", "1.0.0"},
		{"==1.0.*", ""},
		{">=1.0.0", ""},
		{"", ""},
		{"==2.2.0,<3", ""},
	}

	for _, tc := range tests {
		got := Requirement{Constraint: tc.constraint}.ExactPin()
		if got != tc.want {
			t.Fatalf("constraint %q: expected pin %q, got %q", tc.constraint, tc.want, got)
		}
	}
}

func TestLoadReadsVerbatimContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	content := "pandas==2.2.0\r\n# keep my line endings\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	man, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(man.Content) != content {
		t.Fatal("manifest content must be preserved byte for byte")
	}
	if len(man.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(man.Requirements))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "requirements.txt"))
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
