// SPDX-License-Identifier: MPL-2.0

// Package config loads patbundle configuration.
//
// Precedence, lowest to highest: built-in defaults, the config.cue file,
// PATBUNDLE_* environment variables. Flags override all of these at the
// CLI layer. No package-level state is mutated by loading; every Load call
// builds a fresh view.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"patbundle-cli/internal/cueutil"
	"patbundle-cli/internal/issue"
)

const (
	// AppName is the application name, used for directory layout and the
	// environment variable prefix.
	AppName = "patbundle"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

type (
	// Config is the effective patbundle configuration.
	Config struct {
		// Target is the install directory. Empty means the built-in default
		// under the user's home directory.
		Target string `mapstructure:"target"`

		// Source is the default bundle directory for install and validate.
		// Empty means the current working directory.
		Source string `mapstructure:"source"`

		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Theme is the glamour style used for markdown rendering.
		Theme string `mapstructure:"theme"`

		// Verbose enables debug logging without the --verbose flag.
		Verbose bool `mapstructure:"verbose"`
	}

	// LoadOptions carries explicit inputs for one Load call.
	LoadOptions struct {
		// ConfigFilePath, when set, is used exclusively instead of the
		// default lookup locations. Missing file is an error in this mode.
		ConfigFilePath string

		// ConfigDirPath overrides the config directory lookup (tests).
		ConfigDirPath string
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{Theme: "auto"},
	}
}

// ConfigDir returns the patbundle configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultTarget returns the well-known install directory,
// ~/.patbundle/bundle on all platforms.
func DefaultTarget() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "."+AppName, "bundle"), nil
}

// Load builds the effective configuration from defaults, the config file
// (if any), and PATBUNDLE_* environment variables.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("target", defaults.Target)
	v.SetDefault("source", defaults.Source)
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		// An explicit config file must exist.
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'patbundle config path' to see the default location").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, wrapConfigError(err, opts.ConfigFilePath)
		}
	} else {
		cuePath, err := resolveConfigPath(opts.ConfigDirPath)
		if err != nil {
			return nil, err
		}
		if cuePath != "" && fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, wrapConfigError(err, cuePath)
			}
		}
		// No config file found: defaults plus env.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ConfigFilePath returns the default config file location, whether or not
// the file exists.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

func resolveConfigPath(dirOverride string) (string, error) {
	if dirOverride != "" {
		return filepath.Join(dirOverride, ConfigFileName+"."+ConfigFileExt), nil
	}
	return ConfigFilePath()
}

func wrapConfigError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the values match the expected schema").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE config file, validates it against the
// embedded schema, and merges the result into viper so defaults are
// preserved and env overrides still apply.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	return v.MergeConfigMap(configMap)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
