// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"patbundle-cli/internal/manifest"
	"patbundle-cli/internal/validate"
	"patbundle-cli/internal/watch"
)

var (
	// validateTarget is the bundle directory to check
	validateTarget string
	// validateManifestPath is an optional manifest override file
	validateManifestPath string
	// validateWatch re-validates on filesystem changes
	validateWatch bool

	// validateCmd checks a bundle against the manifest
	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate a bundle's structure",
		Long: `Validate a bundle directory against the manifest.

Each required file and directory is checked in manifest order; present
directories also report their contained file count. Missing optional files
are warnings and never affect the exit code. The command exits non-zero
only when a required entry is missing.

With --watch, validation re-runs whenever files under the bundle change,
until interrupted.

Examples:
  patbundle validate                      Validate the installed bundle
  patbundle validate --target ./my-pack   Validate a bundle in progress
  patbundle validate --target . --watch   Re-validate while editing
  patbundle validate --manifest team.cue  Use a custom manifest`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().StringVar(&validateTarget, "target", "", "bundle directory to validate (default: config, then ~/.patbundle/bundle)")
	validateCmd.Flags().StringVar(&validateManifestPath, "manifest", "", "manifest override file (CUE)")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "re-validate on filesystem changes")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fail(cmd, err)
	}
	logger := newLogger(cfg)

	m, err := resolveManifest(validateManifestPath)
	if err != nil {
		return fail(cmd, err)
	}
	target, err := resolveTarget(validateTarget, cfg)
	if err != nil {
		return fail(cmd, err)
	}

	logger.Debug("validating bundle", "target", target, "manifest entries",
		len(m.Required.Files)+len(m.Required.Dirs))

	if !validateWatch {
		report := validate.Validate(target, m)
		renderReport(cmd.OutOrStdout(), report)
		if !report.Passed() {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return &ExitError{Code: 1}
		}
		return nil
	}

	return runValidateWatch(cmd, target, m)
}

// runValidateWatch validates once, then re-validates on every debounced
// change until the context is cancelled (Ctrl+C). Watch mode always exits
// zero on interrupt; it is a feedback loop, not a check.
func runValidateWatch(cmd *cobra.Command, target string, m manifest.Manifest) error {
	stdout := cmd.OutOrStdout()

	renderReport(stdout, validate.Validate(target, m))
	fmt.Fprintf(stdout, "\n%s Watching %s for changes...\n", infoIcon, PathStyle.Render(target))

	w, err := watch.New(watch.Config{
		Root:        target,
		ClearScreen: true,
		Stdout:      stdout,
		Stderr:      cmd.ErrOrStderr(),
		OnChange: func(_ context.Context, changed []string) error {
			fmt.Fprintf(stdout, "%s %d path(s) changed\n\n", infoIcon, len(changed))
			renderReport(stdout, validate.Validate(target, m))
			fmt.Fprintf(stdout, "\n%s Watching %s for changes...\n", infoIcon, PathStyle.Render(target))
			return nil
		},
	})
	if err != nil {
		return fail(cmd, err)
	}

	if err := w.Run(cmd.Context()); err != nil {
		return fail(cmd, err)
	}
	return nil
}

// renderReport prints one line per finding, in report order, followed by a
// summary line.
func renderReport(w io.Writer, report validate.Report) {
	fmt.Fprintln(w, TitleStyle.Render("Bundle Validation"))
	fmt.Fprintf(w, "%s Path: %s\n\n", infoIcon, PathStyle.Render(report.BundleRoot))

	for _, f := range report.Findings {
		switch f.Kind {
		case validate.KindOK:
			if f.IsDir {
				fmt.Fprintf(w, "  %s %s %s\n", checkIcon, f.Path,
					SubtitleStyle.Render(fmt.Sprintf("(%d files)", f.FileCount)))
			} else {
				fmt.Fprintf(w, "  %s %s\n", checkIcon, f.Path)
			}
		case validate.KindMissingRequired:
			fmt.Fprintf(w, "  %s %s %s\n", crossIcon, f.Path, ErrorStyle.Render("missing (required)"))
		case validate.KindMissingOptional:
			fmt.Fprintf(w, "  %s %s %s\n", warnIcon, f.Path, WarningStyle.Render("missing (optional)"))
		}
	}

	fmt.Fprintln(w)
	errs, warns := report.ErrorCount(), report.WarningCount()
	switch {
	case report.Passed() && warns == 0:
		fmt.Fprintf(w, "%s %s\n", successMark, SuccessStyle.Render("Validation passed!"))
	case report.Passed():
		fmt.Fprintf(w, "%s %s %s\n", successMark, SuccessStyle.Render("Validation passed!"),
			WarningStyle.Render(fmt.Sprintf("(%d warning(s))", warns)))
	default:
		fmt.Fprintf(w, "%s %s\n", failureMark,
			ErrorStyle.Render(fmt.Sprintf("Validation failed! %d error(s), %d warning(s)", errs, warns)))
	}
}
