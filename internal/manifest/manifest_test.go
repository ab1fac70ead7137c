// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultInvariants(t *testing.T) {
	m := Default()

	if err := m.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := m.PrimaryFile(); got != "PATTERNS.md" {
		t.Errorf("PrimaryFile() = %q, want %q", got, "PATTERNS.md")
	}
	if len(m.Required.Dirs) != 3 {
		t.Errorf("Default() has %d required dirs, want 3", len(m.Required.Dirs))
	}

	// Every optional group must reference a required directory.
	dirs := map[string]bool{}
	for _, d := range m.Required.Dirs {
		dirs[d] = true
	}
	for _, g := range m.Optional {
		if !dirs[g.Dir] {
			t.Errorf("optional group %q does not match a required directory", g.Dir)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Manifest
		wantErr bool
	}{
		{
			name: "minimal valid manifest",
			m: Manifest{
				Required: Required{Files: []string{"A.md"}, Dirs: []string{"refs"}},
			},
		},
		{
			name: "no required files",
			m: Manifest{
				Required: Required{Dirs: []string{"refs"}},
			},
			wantErr: true,
		},
		{
			name: "no required dirs",
			m: Manifest{
				Required: Required{Files: []string{"A.md"}},
			},
			wantErr: true,
		},
		{
			name: "empty file name",
			m: Manifest{
				Required: Required{Files: []string{""}, Dirs: []string{"refs"}},
			},
			wantErr: true,
		},
		{
			name: "empty optional group dir",
			m: Manifest{
				Required: Required{Files: []string{"A.md"}, Dirs: []string{"refs"}},
				Optional: []OptionalGroup{{Dir: ""}},
			},
			wantErr: true,
		},
		{
			name: "optional group under required dir",
			m: Manifest{
				Required: Required{Files: []string{"A.md"}, Dirs: []string{"refs"}},
				Optional: []OptionalGroup{{Dir: "refs", Files: []string{"x.md"}}},
			},
		},
		{
			name: "optional group outside required dirs",
			m: Manifest{
				Required: Required{Files: []string{"A.md"}, Dirs: []string{"refs"}},
				Optional: []OptionalGroup{{Dir: "docs", Files: []string{"guide.md"}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.m.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, m Manifest)
	}{
		{
			name: "valid manifest file",
			content: `
required: {
	files: ["GUIDE.md"]
	dirs: ["notes"]
}
optional: [
	{dir: "notes", files: ["todo.md", "*.draft.md"]},
]
`,
			check: func(t *testing.T, m Manifest) {
				if m.PrimaryFile() != "GUIDE.md" {
					t.Errorf("PrimaryFile() = %q", m.PrimaryFile())
				}
				if len(m.Optional) != 1 || m.Optional[0].Dir != "notes" {
					t.Errorf("unexpected optional groups: %+v", m.Optional)
				}
			},
		},
		{
			name: "empty required files rejected by schema",
			content: `
required: {
	files: []
	dirs: ["notes"]
}
`,
			wantErr: true,
		},
		{
			name:    "syntax error rejected",
			content: `required: files: [`,
			wantErr: true,
		},
		{
			name: "optional group dir outside required dirs rejected",
			content: `
required: {
	files: ["GUIDE.md"]
	dirs: ["notes"]
}
optional: [
	{dir: "dcos", files: ["todo.md"]},
]
`,
			wantErr: true,
		},
		{
			name: "unknown field rejected",
			content: `
required: {
	files: ["A.md"]
	dirs: ["d"]
}
mandatory: ["B.md"]
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.cue")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			m, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.check != nil {
				tt.check(t, m)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	if err == nil {
		t.Fatal("Load() on missing file should fail")
	}
}
