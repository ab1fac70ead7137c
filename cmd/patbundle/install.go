// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"patbundle-cli/internal/install"
)

var (
	// installSource is the bundle directory to copy from
	installSource string
	// installTarget overrides the install directory
	installTarget string
	// installManifestPath is an optional manifest override file
	installManifestPath string
	// installYes skips the overwrite prompt
	installYes bool

	// installCmd copies a bundle into the install target
	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install a pattern bundle",
		Long: `Install a pattern bundle by copying it into the target directory.

The source must contain the manifest's primary instructions file. When the
target already exists you are asked before it is replaced; declining leaves
the target untouched and exits successfully.

Examples:
  patbundle install --source ./my-bundle
  patbundle install --source ./my-bundle --target /opt/patterns
  patbundle install --source ./my-bundle --yes`,
		Args: cobra.NoArgs,
		RunE: runInstall,
	}
)

func init() {
	installCmd.Flags().StringVar(&installSource, "source", "", "bundle directory to install from (default: config, then current directory)")
	installCmd.Flags().StringVar(&installTarget, "target", "", "install directory (default: config, then ~/.patbundle/bundle)")
	installCmd.Flags().StringVar(&installManifestPath, "manifest", "", "manifest override file (CUE)")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "overwrite an existing install without prompting")
}

func runInstall(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fail(cmd, err)
	}
	logger := newLogger(cfg)

	m, err := resolveManifest(installManifestPath)
	if err != nil {
		return fail(cmd, err)
	}
	target, err := resolveTarget(installTarget, cfg)
	if err != nil {
		return fail(cmd, err)
	}
	source := resolveSource(installSource, cfg)

	logger.Debug("installing bundle", "source", source, "target", target)

	status, opErr := install.Install(install.Options{
		Source:   source,
		Target:   target,
		Manifest: m,
		Confirm: func() bool {
			if installYes {
				return true
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists.\n", PathStyle.Render(target))
			return promptYesNo(cmd, "Do you want to overwrite it?")
		},
	})

	stdout := cmd.OutOrStdout()
	switch status {
	case install.StatusInstalled:
		if opErr != nil {
			// Non-fatal: the bundle is installed but the receipt write failed.
			fmt.Fprintf(stdout, "%s %s\n", warnIcon, WarningStyle.Render(opErr.Error()))
		}
		fmt.Fprintf(stdout, "%s Installed bundle to %s\n", successMark, PathStyle.Render(target))
		return nil

	case install.StatusCancelled:
		fmt.Fprintf(stdout, "%s Installation cancelled, target unchanged\n", infoIcon)
		return nil

	default:
		return failStatus(cmd, fmt.Sprintf("Installation failed: %s", status), status.IssueId(), opErr)
	}
}
