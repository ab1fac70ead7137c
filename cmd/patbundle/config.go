// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"patbundle-cli/internal/config"
	"patbundle-cli/internal/fsprobe"
)

var (
	// configCmd groups configuration inspection subcommands
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect patbundle configuration",
		Long: `Inspect the effective patbundle configuration.

Configuration is read from config.cue in the patbundle config directory,
then overridden by PATBUNDLE_* environment variables and command flags.`,
	}

	// configShowCmd prints the effective configuration
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	// configPathCmd prints where the config file is read from
	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show the config file location",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fail(cmd, err)
	}

	target, err := resolveTarget("", cfg)
	if err != nil {
		return fail(cmd, err)
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, TitleStyle.Render("Configuration"))
	fmt.Fprintf(stdout, "%s target: %s\n", infoIcon, PathStyle.Render(target))
	fmt.Fprintf(stdout, "%s source: %s\n", infoIcon, PathStyle.Render(resolveSource("", cfg)))
	fmt.Fprintf(stdout, "%s ui.theme: %s\n", infoIcon, resolveTheme("", cfg))
	fmt.Fprintf(stdout, "%s ui.verbose: %t\n", infoIcon, cfg.UI.Verbose)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.ConfigFilePath()
		if err != nil {
			return fail(cmd, err)
		}
	}

	stdout := cmd.OutOrStdout()
	if fsprobe.IsFile(path) {
		fmt.Fprintf(stdout, "%s %s\n", checkIcon, PathStyle.Render(path))
	} else {
		fmt.Fprintf(stdout, "%s %s %s\n", warnIcon, PathStyle.Render(path),
			WarningStyle.Render("(not found, using defaults)"))
	}
	return nil
}
