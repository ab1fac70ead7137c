// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// testCmd wraps a cobra command with captured streams for exercising RunE
// functions directly.
type testCmd struct {
	cmd    *cobra.Command
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestCmd(t *testing.T, stdin string) *testCmd {
	t.Helper()
	tc := &testCmd{
		cmd:    &cobra.Command{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	tc.cmd.SetOut(tc.stdout)
	tc.cmd.SetErr(tc.stderr)
	tc.cmd.SetIn(strings.NewReader(stdin))
	return tc
}

// newBundleDir creates a directory holding a complete canonical bundle.
func newBundleDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{"PATTERNS.md", "README.md"} {
		if err := os.WriteFile(filepath.Join(root, f), []byte("# "+f+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range []string{"references", "templates", "examples"} {
		dir := filepath.Join(root, d)
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "doc.md"), []byte("# doc\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// resetFlags restores all package-level flag state after a test touches it
// and points the CLI at a throwaway config so the host's config.cue and
// PATBUNDLE_* environment never leak into tests.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		verbose = false
		cfgFile = ""
		installSource, installTarget, installManifestPath, installYes = "", "", "", false
		uninstallTarget, uninstallYes = "", false
		validateTarget, validateManifestPath, validateWatch = "", "", false
		showTarget, showTheme = "", ""
		infoTarget = ""
	})

	path := filepath.Join(t.TempDir(), "config.cue")
	if err := os.WriteFile(path, []byte("ui: verbose: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfgFile = path
	for _, key := range []string{"PATBUNDLE_TARGET", "PATBUNDLE_SOURCE", "PATBUNDLE_UI_THEME", "PATBUNDLE_UI_VERBOSE"} {
		t.Setenv(key, "")
	}
}

// wantExitCode asserts err is an ExitError carrying the given code.
func wantExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.Code != code {
		t.Fatalf("exit code = %d, want %d", exitErr.Code, code)
	}
}
