// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"patbundle-cli/internal/install"
	"patbundle-cli/internal/issue"
)

var (
	// uninstallTarget overrides the install directory
	uninstallTarget string
	// uninstallYes skips the removal prompt
	uninstallYes bool

	// uninstallCmd removes the installed bundle
	uninstallCmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the installed pattern bundle",
		Long: `Remove the installed pattern bundle.

Removing a target that is not installed is a no-op, not an error. You are
asked before anything is deleted; declining leaves the target untouched.

Examples:
  patbundle uninstall
  patbundle uninstall --target /opt/patterns --yes`,
		Args: cobra.NoArgs,
		RunE: runUninstall,
	}
)

func init() {
	uninstallCmd.Flags().StringVar(&uninstallTarget, "target", "", "install directory (default: config, then ~/.patbundle/bundle)")
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "remove without prompting")
}

func runUninstall(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fail(cmd, err)
	}
	logger := newLogger(cfg)

	target, err := resolveTarget(uninstallTarget, cfg)
	if err != nil {
		return fail(cmd, err)
	}

	logger.Debug("uninstalling bundle", "target", target)

	status, opErr := install.Uninstall(target, func() bool {
		if uninstallYes {
			return true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "This removes %s and everything under it.\n", PathStyle.Render(target))
		return promptYesNo(cmd, "Are you sure you want to uninstall?")
	})

	stdout := cmd.OutOrStdout()
	switch status {
	case install.StatusRemoved:
		fmt.Fprintf(stdout, "%s Removed bundle at %s\n", successMark, PathStyle.Render(target))
		return nil

	case install.StatusNotInstalled:
		fmt.Fprintf(stdout, "%s Nothing installed at %s\n", infoIcon, PathStyle.Render(target))
		return nil

	case install.StatusDeclined:
		fmt.Fprintf(stdout, "%s Uninstall cancelled, target unchanged\n", infoIcon)
		return nil

	default:
		return failStatus(cmd, fmt.Sprintf("Uninstall failed: %s", status), issue.RemovalFailedId, opErr)
	}
}
