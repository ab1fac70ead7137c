// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"os"
	"path/filepath"
	"testing"

	"patbundle-cli/internal/manifest"
)

// writeBundle materializes a bundle layout under a temp dir. Entries ending
// in "/" become directories, everything else becomes a file.
func writeBundle(t *testing.T, entries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, e := range entries {
		path := filepath.Join(root, filepath.FromSlash(e))
		if len(e) > 0 && e[len(e)-1] == '/' {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func simpleManifest() manifest.Manifest {
	return manifest.Manifest{
		Required: manifest.Required{
			Files: []string{"A.md"},
			Dirs:  []string{"refs"},
		},
		Optional: []manifest.OptionalGroup{
			{Dir: "refs", Files: []string{"x.md"}},
		},
	}
}

func TestValidatePassWithWarning(t *testing.T) {
	// Bundle has A.md and an empty refs/ directory: passes with one warning
	// for the missing optional refs/x.md.
	root := writeBundle(t, "A.md", "refs/")
	report := Validate(root, simpleManifest())

	if !report.Passed() {
		t.Errorf("Passed() = false, want true")
	}
	if got := report.ErrorCount(); got != 0 {
		t.Errorf("ErrorCount() = %d, want 0", got)
	}
	if got := report.WarningCount(); got != 1 {
		t.Errorf("WarningCount() = %d, want 1", got)
	}

	last := report.Findings[len(report.Findings)-1]
	if last.Kind != KindMissingOptional || last.Path != "refs/x.md" {
		t.Errorf("last finding = %+v, want MissingOptional refs/x.md", last)
	}
}

func TestValidateMissingRequiredFile(t *testing.T) {
	root := writeBundle(t, "refs/")
	report := Validate(root, simpleManifest())

	if report.Passed() {
		t.Error("Passed() = true, want false")
	}
	if got := report.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount() = %d, want 1", got)
	}
	if f := report.Findings[0]; f.Kind != KindMissingRequired || f.Path != "A.md" {
		t.Errorf("first finding = %+v, want MissingRequired A.md", f)
	}
}

func TestValidateMissingDirSkipsOptionalChecks(t *testing.T) {
	root := writeBundle(t, "A.md")
	report := Validate(root, simpleManifest())

	if report.Passed() {
		t.Error("Passed() = true, want false")
	}
	// One error for the directory itself; no optional finding for refs/x.md.
	if got := report.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount() = %d, want 1", got)
	}
	if got := report.WarningCount(); got != 0 {
		t.Errorf("WarningCount() = %d, want 0 (optional checks skipped)", got)
	}
	for _, f := range report.Findings {
		if f.Path == "refs/x.md" {
			t.Error("optional entry checked despite missing directory")
		}
	}
}

func TestValidateFindingOrder(t *testing.T) {
	m := manifest.Manifest{
		Required: manifest.Required{
			Files: []string{"A.md", "B.md"},
			Dirs:  []string{"one", "two"},
		},
		Optional: []manifest.OptionalGroup{
			{Dir: "one", Files: []string{"o1.md"}},
			{Dir: "two", Files: []string{"o2.md"}},
		},
	}
	root := writeBundle(t, "A.md", "B.md", "one/", "two/", "one/o1.md", "two/o2.md")

	report := Validate(root, m)
	want := []string{"A.md", "B.md", "one", "two", "one/o1.md", "two/o2.md"}
	if len(report.Findings) != len(want) {
		t.Fatalf("got %d findings, want %d", len(report.Findings), len(want))
	}
	for i, f := range report.Findings {
		if f.Path != want[i] {
			t.Errorf("finding[%d].Path = %q, want %q", i, f.Path, want[i])
		}
		if f.Kind != KindOK {
			t.Errorf("finding[%d].Kind = %v, want OK", i, f.Kind)
		}
	}
}

func TestValidateDirFileCount(t *testing.T) {
	root := writeBundle(t, "A.md", "refs/", "refs/a.md", "refs/sub/b.md")
	report := Validate(root, simpleManifest())

	var dirFinding *Finding
	for i := range report.Findings {
		if report.Findings[i].IsDir {
			dirFinding = &report.Findings[i]
		}
	}
	if dirFinding == nil {
		t.Fatal("no directory finding recorded")
	}
	if dirFinding.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", dirFinding.FileCount)
	}
}

func TestValidateGlobOptional(t *testing.T) {
	m := manifest.Manifest{
		Required: manifest.Required{
			Files: []string{"A.md"},
			Dirs:  []string{"refs"},
		},
		Optional: []manifest.OptionalGroup{
			{Dir: "refs", Files: []string{"*.md", "drafts/**/*.txt"}},
		},
	}

	tests := []struct {
		name         string
		entries      []string
		wantWarnings int
	}{
		{
			name:         "both patterns match",
			entries:      []string{"A.md", "refs/", "refs/a.md", "refs/drafts/x/y.txt"},
			wantWarnings: 0,
		},
		{
			name:         "only flat pattern matches",
			entries:      []string{"A.md", "refs/", "refs/a.md"},
			wantWarnings: 1,
		},
		{
			name:         "nothing matches",
			entries:      []string{"A.md", "refs/"},
			wantWarnings: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeBundle(t, tt.entries...)
			report := Validate(root, m)
			if !report.Passed() {
				t.Error("Passed() = false, want true (globs are optional)")
			}
			if got := report.WarningCount(); got != tt.wantWarnings {
				t.Errorf("WarningCount() = %d, want %d", got, tt.wantWarnings)
			}
		})
	}
}

func TestValidateDefaultManifestAgainstCompleteBundle(t *testing.T) {
	root := writeBundle(t,
		"PATTERNS.md", "README.md",
		"references/", "references/creational.md", "references/structural.md",
		"references/behavioral.md", "references/concurrency.md", "references/architectural.md",
		"templates/", "templates/pattern-template.md", "templates/decision-template.md",
		"examples/", "examples/singleton-example.md", "examples/event-bus-example.md",
		"examples/repository-example.md",
	)

	report := Validate(root, manifest.Default())
	if !report.Passed() || report.WarningCount() != 0 {
		t.Errorf("complete bundle: passed=%v warnings=%d, want passed with no warnings",
			report.Passed(), report.WarningCount())
	}
}

func TestValidateNonexistentRoot(t *testing.T) {
	report := Validate(filepath.Join(t.TempDir(), "absent"), simpleManifest())
	if report.Passed() {
		t.Error("Passed() = true for nonexistent root")
	}
	// Every required entry missing: 1 file + 1 dir.
	if got := report.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount() = %d, want 2", got)
	}
}
