package snaptmpl

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = "snaptmpl.yaml"

// Output formats
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Config represents the snaptmpl configuration
type Config struct {
	DataFiles  []string     `yaml:"data_files"`
	EnvFiles   []string     `yaml:"env_files"`
	SourceName string       `yaml:"source_name"`
	Output     OutputConfig `yaml:"output"`
}

// OutputConfig represents output settings
type OutputConfig struct {
	Format          string `yaml:"format"`
	TrailingNewline bool   `yaml:"trailing_newline"`
}

// LoadConfig loads configuration from the given path.
// A missing file yields the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadDotEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.Output.Format != "" {
		validFormats := map[string]bool{
			FormatText: true,
			FormatHTML: true,
		}
		if !validFormats[config.Output.Format] {
			return fmt.Errorf("%w: output.format '%s' is invalid: must be one of text, html", ErrConfigValidation, config.Output.Format)
		}
	}

	for i, file := range config.DataFiles {
		if file == "" {
			return fmt.Errorf("%w: data_files[%d] must not be empty", ErrConfigValidation, i)
		}
	}

	for i, file := range config.EnvFiles {
		if file == "" {
			return fmt.Errorf("%w: env_files[%d] must not be empty", ErrConfigValidation, i)
		}
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		SourceName: "stdin",
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.SourceName == "" {
		config.SourceName = defaults.SourceName
	}

	if config.Output.Format == "" {
		config.Output.Format = defaults.Output.Format
	}
}

// loadDotEnv loads .env from the working directory if it exists
func loadDotEnv() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvPattern   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in path-valued settings
func expandConfigEnvVars(config *Config) {
	for i, file := range config.DataFiles {
		config.DataFiles[i] = expandEnvVars(file)
	}

	for i, file := range config.EnvFiles {
		config.EnvFiles[i] = expandEnvVars(file)
	}

	config.SourceName = expandEnvVars(config.SourceName)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
