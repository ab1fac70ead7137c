// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"patbundle-cli/internal/validate"
)

func TestRunValidatePasses(t *testing.T) {
	resetFlags(t)
	validateTarget = newBundleDir(t)
	tc := newTestCmd(t, "")

	if err := runValidate(tc.cmd, nil); err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	if !strings.Contains(tc.stdout.String(), "Validation passed!") {
		t.Errorf("stdout = %q, want pass summary", tc.stdout.String())
	}
}

func TestRunValidateMissingRequiredFileExitsOne(t *testing.T) {
	resetFlags(t)
	validateTarget = newBundleDir(t)
	if err := os.Remove(filepath.Join(validateTarget, "PATTERNS.md")); err != nil {
		t.Fatal(err)
	}
	tc := newTestCmd(t, "")

	err := runValidate(tc.cmd, nil)
	wantExitCode(t, err, 1)

	out := tc.stdout.String()
	if !strings.Contains(out, "Validation failed!") {
		t.Errorf("stdout = %q, want failure summary", out)
	}
	if !strings.Contains(out, "missing (required)") {
		t.Errorf("stdout = %q, want required-missing line", out)
	}
}

func TestRunValidateMissingOptionalStillPasses(t *testing.T) {
	resetFlags(t)
	validateTarget = newBundleDir(t)
	tc := newTestCmd(t, "")

	// The canonical optional checklists are absent; only warnings expected.
	if err := runValidate(tc.cmd, nil); err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	out := tc.stdout.String()
	if !strings.Contains(out, "missing (optional)") {
		t.Errorf("stdout = %q, want optional-missing warnings", out)
	}
	if !strings.Contains(out, "warning(s)") {
		t.Errorf("stdout = %q, want warning count in summary", out)
	}
}

func TestRunValidateCustomManifest(t *testing.T) {
	resetFlags(t)
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "GUIDE.md"), []byte("# guide\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "docs"), 0755); err != nil {
		t.Fatal(err)
	}

	manifestPath := filepath.Join(t.TempDir(), "team.cue")
	content := `required: {
	files: ["GUIDE.md"]
	dirs: ["docs"]
}
`
	if err := os.WriteFile(manifestPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	validateTarget = root
	validateManifestPath = manifestPath
	tc := newTestCmd(t, "")

	if err := runValidate(tc.cmd, nil); err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	if !strings.Contains(tc.stdout.String(), "GUIDE.md") {
		t.Errorf("stdout = %q, want manifest entries rendered", tc.stdout.String())
	}
}

func TestRunValidateBadManifestExitsOne(t *testing.T) {
	resetFlags(t)
	manifestPath := filepath.Join(t.TempDir(), "bad.cue")
	if err := os.WriteFile(manifestPath, []byte("required: { files: [] }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	validateTarget = t.TempDir()
	validateManifestPath = manifestPath
	tc := newTestCmd(t, "")

	wantExitCode(t, runValidate(tc.cmd, nil), 1)
}

func TestRenderReportFileCounts(t *testing.T) {
	var buf bytes.Buffer
	renderReport(&buf, validate.Report{
		BundleRoot: "/bundle",
		Findings: []validate.Finding{
			{Kind: validate.KindOK, Path: "PATTERNS.md"},
			{Kind: validate.KindOK, Path: "references", IsDir: true, FileCount: 5},
			{Kind: validate.KindMissingOptional, Path: "references/creational.md"},
		},
	})

	out := buf.String()
	if !strings.Contains(out, "(5 files)") {
		t.Errorf("output = %q, want directory file count", out)
	}
	if !strings.Contains(out, "(1 warning(s))") {
		t.Errorf("output = %q, want warning count", out)
	}
}
