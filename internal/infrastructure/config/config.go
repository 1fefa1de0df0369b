// Package config provides configuration loading for the commit-composer application.
// Settings come from an optional config file, a .env file and environment
// variables, in increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
)

// Configuration keys.
const (
	KeyTypes                 = "types"
	KeyDefaultType           = "defaultType"
	KeyDefaultScope          = "defaultScope"
	KeyDefaultSubject        = "defaultSubject"
	KeyDefaultBody           = "defaultBody"
	KeyDisableScopeLowerCase = "disableScopeLowerCase"
	KeyPrefixWithBranch      = "prefixWithBranch"
	KeyMaxHeaderWidth        = "maxHeaderWidth"
	KeyMaxLineWidth          = "maxLineWidth"
	KeyLogLevel              = "logLevel"
	KeyLogAppName            = "logAppName"
)

// Environment variable names.
const (
	EnvType                  = "CZ_TYPE"
	EnvScope                 = "CZ_SCOPE"
	EnvSubject               = "CZ_SUBJECT"
	EnvBody                  = "CZ_BODY"
	EnvMaxHeaderWidth        = "CZ_MAX_HEADER_WIDTH"
	EnvMaxLineWidth          = "CZ_MAX_LINE_WIDTH"
	EnvPrefixWithBranch      = "CZ_PREFIX_WITH_BRANCH"
	EnvDisableScopeLowerCase = "CZ_DISABLE_SCOPE_LOWERCASE"

	// EnvLogLevel is the log level (debug, info, error). Defaults to error.
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"
)

// Default values.
const (
	// DefaultLogLevel keeps log entries out of the interactive prompt unless asked for.
	DefaultLogLevel   = "error"
	DefaultLogAppName = "commit-composer"

	// ConfigName is the config file base name; any extension viper supports is accepted.
	ConfigName = ".commit-composer"

	// DotEnvFile is loaded from the working directory when present.
	DotEnvFile = ".env"
)

// Configuration errors.
var (
	// ErrConfigNotFound indicates an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigInvalid indicates the config file could not be parsed.
	ErrConfigInvalid = errors.New("configuration file is not valid")
)

// envBindings maps configuration keys to the environment variables overriding them.
var envBindings = map[string]string{
	KeyDefaultType:           EnvType,
	KeyDefaultScope:          EnvScope,
	KeyDefaultSubject:        EnvSubject,
	KeyDefaultBody:           EnvBody,
	KeyMaxHeaderWidth:        EnvMaxHeaderWidth,
	KeyMaxLineWidth:          EnvMaxLineWidth,
	KeyPrefixWithBranch:      EnvPrefixWithBranch,
	KeyDisableScopeLowerCase: EnvDisableScopeLowerCase,
	KeyLogLevel:              EnvLogLevel,
	KeyLogAppName:            EnvLogAppName,
}

// Config holds all application configuration.
type Config struct {
	// Composer is the configuration handed to the message composer.
	Composer domain.Config

	// LogLevel is the logging level (debug, info, error).
	LogLevel string

	// LogAppName is the application name for log context.
	LogAppName string

	// ConfigFile is the config file that was read, empty when none was found.
	ConfigFile string
}

// Options controls where configuration is read from.
type Options struct {
	// ConfigFile is an explicit config file path. A missing file is an error.
	// Files without a known extension (such as .czrc) are read as JSON.
	ConfigFile string

	// SearchPaths are the directories searched for ConfigName when ConfigFile
	// is empty. Defaults to the working directory and the home directory.
	SearchPaths []string

	// DotEnvPath is the .env file to load. Defaults to DotEnvFile.
	DotEnvPath string
}

// Load loads the application configuration from the default locations.
func Load() (*Config, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions loads the application configuration using the given options.
//
// Precedence, highest first:
//   - environment variables (CZ_TYPE, CZ_MAX_HEADER_WIDTH, ...)
//   - variables from the .env file, which never override the real environment
//   - the config file
//   - built-in defaults
func LoadWithOptions(opts Options) (*Config, error) {
	dotEnv := opts.DotEnvPath
	if dotEnv == "" {
		dotEnv = DotEnvFile
	}
	// .env is optional
	_ = godotenv.Load(dotEnv)

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	format, err := readConfigFile(v, opts)
	if err != nil {
		return nil, err
	}

	var composer domain.Config
	if err := v.Unmarshal(&composer); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if path := v.ConfigFileUsed(); path != "" && format != "" {
		types, err := decodeTypes(path, format)
		if err != nil {
			return nil, err
		}
		if types != nil {
			composer.Types = types
		}
	}
	if len(composer.Types) == 0 {
		composer.Types = DefaultTypes()
	}

	return &Config{
		Composer:   composer,
		LogLevel:   v.GetString(KeyLogLevel),
		LogAppName: v.GetString(KeyLogAppName),
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyMaxHeaderWidth, domain.DefaultMaxHeaderWidth)
	v.SetDefault(KeyMaxLineWidth, domain.DefaultMaxLineWidth)
	v.SetDefault(KeyDisableScopeLowerCase, false)
	v.SetDefault(KeyPrefixWithBranch, false)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogAppName, DefaultLogAppName)
}

// readConfigFile reads the explicit config file, or searches for ConfigName,
// and returns the format of the file read. Not finding a file during the
// search is not an error.
func readConfigFile(v *viper.Viper, opts Options) (string, error) {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		format := strings.TrimPrefix(filepath.Ext(opts.ConfigFile), ".")
		if !slices.Contains(viper.SupportedExts, format) {
			format = "json"
			v.SetConfigType(format)
		}
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigFile)
			}
			return "", fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
		return format, nil
	}

	v.SetConfigName(ConfigName)
	for _, path := range searchPaths(opts) {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return strings.TrimPrefix(filepath.Ext(v.ConfigFileUsed()), "."), nil
}

// typesSection is the part of a config file whose map keys are user data.
type typesSection struct {
	Types map[string]struct {
		Description string `json:"description" yaml:"description" toml:"description"`
		Title       string `json:"title" yaml:"title" toml:"title"`
	} `json:"types" yaml:"types" toml:"types"`
}

// decodeTypes reads the types map straight from the file so type keys keep
// their case; viper lowercases every key it loads. Returns nil for formats
// other than JSON, YAML and TOML, and when the file has no types.
func decodeTypes(path, format string) (map[string]domain.TypeDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var section typesSection
	switch format {
	case "json":
		err = json.Unmarshal(data, &section)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &section)
	case "toml":
		err = toml.Unmarshal(data, &section)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: types: %w", ErrConfigInvalid, err)
	}
	if len(section.Types) == 0 {
		return nil, nil
	}

	types := make(map[string]domain.TypeDescriptor, len(section.Types))
	for key, t := range section.Types {
		types[key] = domain.TypeDescriptor{Description: t.Description, Title: t.Title}
	}
	return types, nil
}

func searchPaths(opts Options) []string {
	if len(opts.SearchPaths) > 0 {
		return opts.SearchPaths
	}
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return paths
}

// DefaultTypes returns the conventional commit types offered when the
// configuration does not define its own.
func DefaultTypes() map[string]domain.TypeDescriptor {
	return map[string]domain.TypeDescriptor{
		"feat": {
			Description: "A new feature",
			Title:       "Features",
		},
		"fix": {
			Description: "A bug fix",
			Title:       "Bug Fixes",
		},
		"docs": {
			Description: "Documentation only changes",
			Title:       "Documentation",
		},
		"style": {
			Description: "Changes that do not affect the meaning of the code (white-space, formatting, missing semi-colons, etc)",
			Title:       "Styles",
		},
		"refactor": {
			Description: "A code change that neither fixes a bug nor adds a feature",
			Title:       "Code Refactoring",
		},
		"perf": {
			Description: "A code change that improves performance",
			Title:       "Performance Improvements",
		},
		"test": {
			Description: "Adding missing tests or correcting existing tests",
			Title:       "Tests",
		},
		"build": {
			Description: "Changes that affect the build system or external dependencies (example scopes: gulp, broccoli, npm)",
			Title:       "Builds",
		},
		"ci": {
			Description: "Changes to our CI configuration files and scripts (example scopes: Travis, Circle, BrowserStack, SauceLabs)",
			Title:       "Continuous Integrations",
		},
		"chore": {
			Description: "Other changes that don't modify src or test files",
			Title:       "Chores",
		},
		"revert": {
			Description: "Reverts a previous commit",
			Title:       "Reverts",
		},
	}
}
