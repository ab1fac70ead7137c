// SPDX-License-Identifier: MPL-2.0

// Package manifest defines the declarative layout of a pattern bundle.
//
// A manifest lists required top-level files, required directories, and
// per-directory optional file checklists. The validator treats missing
// required entries as errors and missing optional entries as warnings.
// Declaration order is preserved: the validator reports findings in the
// order entries appear here, so reports are deterministic and reproducible.
package manifest

import (
	_ "embed"
	"fmt"
	"os"

	"patbundle-cli/internal/cueutil"
	"patbundle-cli/internal/issue"
)

//go:embed manifest_schema.cue
var manifestSchema []byte

type (
	// Manifest declares the expected directory/file layout of a bundle.
	Manifest struct {
		// Required lists entries whose absence fails validation.
		Required Required `json:"required"`
		// Optional groups optional file checklists by directory. Absent
		// optional files produce warnings, never failures. Lists may be empty.
		Optional []OptionalGroup `json:"optional,omitempty"`
	}

	// Required holds the entries that must exist for a bundle to validate.
	// Both lists are always non-empty; Files[0] is the primary instructions
	// file used for install sanity and post-copy verification checks.
	Required struct {
		Files []string `json:"files"`
		Dirs  []string `json:"dirs"`
	}

	// OptionalGroup lists optional file names expected within one required
	// directory. Names may be doublestar glob patterns (e.g. "*.md").
	OptionalGroup struct {
		Dir   string   `json:"dir"`
		Files []string `json:"files"`
	}
)

// Default returns the built-in manifest for the canonical pattern bundle
// layout: a primary instructions file, a README, and the three content
// directories with their documented checklists.
func Default() Manifest {
	return Manifest{
		Required: Required{
			Files: []string{"PATTERNS.md", "README.md"},
			Dirs:  []string{"references", "templates", "examples"},
		},
		Optional: []OptionalGroup{
			{
				Dir: "references",
				Files: []string{
					"creational.md",
					"structural.md",
					"behavioral.md",
					"concurrency.md",
					"architectural.md",
				},
			},
			{
				Dir: "templates",
				Files: []string{
					"pattern-template.md",
					"decision-template.md",
				},
			},
			{
				Dir: "examples",
				Files: []string{
					"singleton-example.md",
					"event-bus-example.md",
					"repository-example.md",
				},
			},
		},
	}
}

// PrimaryFile returns the bundle's primary instructions file: the first
// required file. The Manifest invariant guarantees the list is non-empty
// for any manifest produced by Default or Load; a zero Manifest returns "".
func (m Manifest) PrimaryFile() string {
	if len(m.Required.Files) == 0 {
		return ""
	}
	return m.Required.Files[0]
}

// Validate checks the manifest invariants: non-empty required lists and
// names, and optional groups referencing required directories. The CUE
// schema enforces the structural subset; Validate runs on every loaded
// manifest and on manifests constructed directly in Go, so both paths get
// the same guarantees.
func (m Manifest) Validate() error {
	if len(m.Required.Files) == 0 {
		return fmt.Errorf("manifest must declare at least one required file")
	}
	if len(m.Required.Dirs) == 0 {
		return fmt.Errorf("manifest must declare at least one required directory")
	}
	for _, f := range m.Required.Files {
		if f == "" {
			return fmt.Errorf("required file names cannot be empty")
		}
	}
	dirs := make(map[string]bool, len(m.Required.Dirs))
	for _, d := range m.Required.Dirs {
		if d == "" {
			return fmt.Errorf("required directory names cannot be empty")
		}
		dirs[d] = true
	}
	for _, g := range m.Optional {
		if g.Dir == "" {
			return fmt.Errorf("optional group directory cannot be empty")
		}
		// The validator only probes optional entries under required
		// directories, so a group outside them would silently never be
		// checked. Reject it here instead.
		if !dirs[g.Dir] {
			return fmt.Errorf("optional group directory %q is not one of the required directories", g.Dir)
		}
	}
	return nil
}

// Load reads a manifest override from a CUE file, validating it against the
// embedded schema.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, issue.NewErrorContext().
			WithOperation("load manifest").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			Wrap(err).
			BuildError()
	}

	result, err := cueutil.ParseAndDecode[Manifest](
		manifestSchema,
		data,
		"#Manifest",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return Manifest{}, issue.NewErrorContext().
			WithOperation("parse manifest").
			WithResource(path).
			WithSuggestion("Check that the file contains valid CUE syntax").
			WithSuggestion("required.files and required.dirs must be non-empty").
			Wrap(err).
			BuildError()
	}

	m := *result.Value
	if err := m.Validate(); err != nil {
		return Manifest{}, issue.NewErrorContext().
			WithOperation("validate manifest").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	return m, nil
}
