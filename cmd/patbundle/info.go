// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"patbundle-cli/internal/fsprobe"
	"patbundle-cli/internal/install"
	"patbundle-cli/internal/issue"
	"patbundle-cli/internal/manifest"
)

var (
	// infoTarget is the install location to inspect
	infoTarget string

	// infoCmd reports what is installed at the target
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Show details about the installed bundle",
		Long: `Show details about the bundle installed at the target: install
time and source (from the install receipt) plus per-directory file counts.

Exits non-zero when nothing is installed at the target.`,
		Args: cobra.NoArgs,
		RunE: runInfo,
	}
)

func init() {
	infoCmd.Flags().StringVar(&infoTarget, "target", "", "install location to inspect (default: config, then ~/.patbundle/bundle)")
}

func runInfo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fail(cmd, err)
	}

	target, err := resolveTarget(infoTarget, cfg)
	if err != nil {
		return fail(cmd, err)
	}

	m := manifest.Default()
	if !fsprobe.IsFile(filepath.Join(target, m.PrimaryFile())) {
		return failStatus(cmd,
			fmt.Sprintf("No bundle installed at %s", PathStyle.Render(target)),
			issue.BundleNotInstalledId, nil)
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, TitleStyle.Render("Installed Bundle"))
	fmt.Fprintf(stdout, "%s Target: %s\n", infoIcon, PathStyle.Render(target))

	if r, err := install.ReadReceipt(target); err == nil {
		fmt.Fprintf(stdout, "%s Installed: %s\n", infoIcon, r.InstalledAt.Local().Format(time.RFC1123))
		fmt.Fprintf(stdout, "%s Source: %s\n", infoIcon, PathStyle.Render(r.Source))
		fmt.Fprintf(stdout, "%s Files at install time: %d\n", infoIcon, r.TotalFiles)
	} else {
		fmt.Fprintf(stdout, "%s %s\n", warnIcon, WarningStyle.Render("No install receipt found (installed by an older version or copied manually)"))
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, SubtitleStyle.Render("Contents:"))
	for _, f := range m.Required.Files {
		if fsprobe.IsFile(filepath.Join(target, f)) {
			fmt.Fprintf(stdout, "  %s %s\n", checkIcon, f)
		} else {
			fmt.Fprintf(stdout, "  %s %s %s\n", crossIcon, f, ErrorStyle.Render("missing"))
		}
	}
	for _, d := range m.Required.Dirs {
		dirPath := filepath.Join(target, d)
		if fsprobe.IsDir(dirPath) {
			fmt.Fprintf(stdout, "  %s %s/ %s\n", checkIcon, d,
				SubtitleStyle.Render(fmt.Sprintf("(%d files)", fsprobe.CountFiles(dirPath))))
		} else {
			fmt.Fprintf(stdout, "  %s %s/ %s\n", crossIcon, d, ErrorStyle.Render("missing"))
		}
	}
	return nil
}
