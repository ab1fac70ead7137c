// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"patbundle-cli/internal/config"
	"patbundle-cli/internal/manifest"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "patbundle",
		Short: "Manage design-pattern bundles for AI assistants",
		Long: TitleStyle.Render("patbundle") + SubtitleStyle.Render(" - Manage design-pattern bundles for AI assistants") + `

patbundle installs, validates, and inspects pattern bundles: directory
trees of design-pattern documentation (an instructions file plus
reference, template, and example subdirectories) consumed by AI coding
assistants. The directory layout itself is the package format.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Validate a bundle in your working directory: patbundle validate --target .
  2. Install it to the default location:          patbundle install --source .
  3. Render the installed instructions:           patbundle show

` + SubtitleStyle.Render("Examples:") + `
  patbundle validate                 Validate the installed bundle
  patbundle validate --watch         Re-validate on every change
  patbundle install --source ./pack  Install a bundle
  patbundle info                     Show what is installed
  patbundle uninstall                Remove the installed bundle`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/patbundle/config.cue)")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig loads the effective configuration, honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
}

// newLogger builds the CLI logger. Debug level when --verbose or the config
// asks for it.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "patbundle",
	})
	if verbose || (cfg != nil && cfg.UI.Verbose) {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// resolveTarget picks the install target: flag, then config, then the
// built-in default under the user's home directory.
func resolveTarget(flagValue string, cfg *config.Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg != nil && cfg.Target != "" {
		return cfg.Target, nil
	}
	return config.DefaultTarget()
}

// resolveSource picks the source bundle directory: flag, then config, then
// the current working directory.
func resolveSource(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil && cfg.Source != "" {
		return cfg.Source
	}
	return "."
}

// resolveManifest loads a manifest override or falls back to the built-in
// bundle layout.
func resolveManifest(flagValue string) (manifest.Manifest, error) {
	if flagValue == "" {
		return manifest.Default(), nil
	}
	return manifest.Load(flagValue)
}

// resolveTheme picks the glamour style for markdown rendering.
func resolveTheme(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil && cfg.UI.Theme != "" {
		return cfg.UI.Theme
	}
	return "auto"
}
