// SPDX-License-Identifier: MPL-2.0

// Package validate applies a manifest against a bundle directory and
// produces a structured pass/fail report.
//
// The check order is a contract: required files first, then required
// directories, then per-directory optional files, each group in manifest
// declaration order. Reports are therefore deterministic for a given
// bundle and manifest. Filesystem errors never escape; anything that
// cannot be read counts as missing.
package validate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"patbundle-cli/internal/fsprobe"
	"patbundle-cli/internal/manifest"
)

const (
	// KindOK marks an entry that is present.
	KindOK Kind = iota
	// KindMissingRequired marks an absent required entry; any such finding
	// fails the report.
	KindMissingRequired
	// KindMissingOptional marks an absent optional entry; a warning that
	// never fails the report.
	KindMissingOptional
)

type (
	// Kind classifies a single validation finding.
	Kind int

	// Finding records the outcome of one manifest entry check.
	Finding struct {
		// Kind classifies the finding.
		Kind Kind
		// Path is the checked entry relative to the bundle root. Optional
		// glob entries keep their pattern form (e.g. "references/*.md").
		Path string
		// IsDir is true for required-directory findings.
		IsDir bool
		// FileCount is the number of regular files contained in a present
		// required directory, for diagnostic display. Zero otherwise.
		FileCount int
	}

	// Report is the ordered sequence of findings for one validation run.
	Report struct {
		// BundleRoot is the validated bundle directory.
		BundleRoot string
		// Findings are ordered per the manifest contract.
		Findings []Finding
	}
)

// ErrorCount returns the number of missing required entries.
func (r Report) ErrorCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == KindMissingRequired {
			n++
		}
	}
	return n
}

// WarningCount returns the number of missing optional entries.
func (r Report) WarningCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == KindMissingOptional {
			n++
		}
	}
	return n
}

// Passed reports whether the bundle satisfies every required entry.
// Warnings never affect the result.
func (r Report) Passed() bool {
	return r.ErrorCount() == 0
}

// Validate checks the bundle at root against the manifest.
func Validate(root string, m manifest.Manifest) Report {
	report := Report{BundleRoot: root}

	for _, name := range m.Required.Files {
		kind := KindMissingRequired
		if fsprobe.IsFile(filepath.Join(root, name)) {
			kind = KindOK
		}
		report.Findings = append(report.Findings, Finding{Kind: kind, Path: name})
	}

	presentDirs := make(map[string]bool, len(m.Required.Dirs))
	for _, dir := range m.Required.Dirs {
		path := filepath.Join(root, dir)
		if !fsprobe.IsDir(path) {
			report.Findings = append(report.Findings, Finding{
				Kind:  KindMissingRequired,
				Path:  dir,
				IsDir: true,
			})
			continue
		}
		presentDirs[dir] = true
		report.Findings = append(report.Findings, Finding{
			Kind:      KindOK,
			Path:      dir,
			IsDir:     true,
			FileCount: fsprobe.CountFiles(path),
		})
	}

	for _, group := range m.Optional {
		// Optional checks are skipped for absent directories; the directory
		// itself was already reported as missing required.
		if !presentDirs[group.Dir] {
			continue
		}
		dirPath := filepath.Join(root, group.Dir)
		for _, name := range group.Files {
			entry := group.Dir + "/" + name
			kind := KindMissingOptional
			if optionalPresent(dirPath, name) {
				kind = KindOK
			}
			report.Findings = append(report.Findings, Finding{Kind: kind, Path: entry})
		}
	}

	return report
}

// optionalPresent probes a single optional entry. Plain names are checked
// directly; names containing glob metacharacters are matched with doublestar
// against the directory contents and count as present when at least one
// regular file matches.
func optionalPresent(dirPath, name string) bool {
	if !strings.ContainsAny(name, `*?[{`) {
		return fsprobe.IsFile(filepath.Join(dirPath, name))
	}

	matches, err := doublestar.Glob(os.DirFS(dirPath), name)
	if err != nil {
		return false
	}
	for _, match := range matches {
		info, err := fs.Stat(os.DirFS(dirPath), match)
		if err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}
