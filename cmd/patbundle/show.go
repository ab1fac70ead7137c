// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"patbundle-cli/internal/fsprobe"
	"patbundle-cli/internal/issue"
	"patbundle-cli/internal/manifest"
)

var (
	// showTarget is the bundle directory to read from
	showTarget string
	// showTheme overrides the glamour style
	showTheme string

	// showCmd renders a bundle markdown file in the terminal
	showCmd = &cobra.Command{
		Use:   "show [file]",
		Short: "Render a bundle document in the terminal",
		Long: `Render a markdown document from the installed bundle.

Without arguments it renders the bundle's primary instructions file
(PATTERNS.md). Pass a relative path to render any other document in
the bundle.

Examples:
  patbundle show                             Render PATTERNS.md
  patbundle show references/creational.md    Render a reference doc
  patbundle show --theme dracula README.md   Pick a glamour style`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
)

func init() {
	showCmd.Flags().StringVar(&showTarget, "target", "", "bundle directory to read from (default: config, then ~/.patbundle/bundle)")
	showCmd.Flags().StringVar(&showTheme, "theme", "", "glamour style: auto, dark, light, notty, or a style name")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fail(cmd, err)
	}

	target, err := resolveTarget(showTarget, cfg)
	if err != nil {
		return fail(cmd, err)
	}

	rel := manifestPrimaryFile()
	if len(args) == 1 {
		rel = args[0]
		// Only paths inside the bundle may be rendered; absolute paths and
		// ".." traversal would reach arbitrary files on the host.
		if !filepath.IsLocal(rel) {
			return fail(cmd, issue.NewErrorContext().
				WithOperation("show document").
				WithResource(rel).
				WithSuggestion("Pass a path relative to the bundle root").
				Wrap(errors.New("path escapes the bundle directory")).
				BuildError())
		}
	}
	path := filepath.Join(target, rel)

	if !fsprobe.IsFile(path) {
		return failStatus(cmd,
			fmt.Sprintf("%s not found in bundle at %s", rel, PathStyle.Render(target)),
			issue.BundleNotInstalledId, nil)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fail(cmd, issue.NewErrorContext().
			WithOperation("show").
			WithResource(path).
			WithSuggestion("Check read permissions on the bundle directory").
			Wrap(err).
			BuildError())
	}

	rendered, err := renderMarkdown(string(raw), resolveTheme(showTheme, cfg))
	if err != nil {
		return fail(cmd, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// manifestPrimaryFile returns the default document to render. The built-in
// layout is used; show never needs a manifest override since it only picks
// a default filename from it.
func manifestPrimaryFile() string {
	return manifest.Default().PrimaryFile()
}

// renderMarkdown is swapped out in tests to avoid terminal detection.
var renderMarkdown = func(source, theme string) (string, error) {
	var opts []glamour.TermRendererOption
	if theme == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(theme))
	}
	opts = append(opts, glamour.WithWordWrap(100))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(source)
}
