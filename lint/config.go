package lint

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/solint/internal/rules"
	tt "github.com/gnolang/solint/internal/types"
)

// DefaultConfigPath is read when no configuration file is given.
const DefaultConfigPath = ".solint.yaml"

// Config represents the overall configuration with a name, the rule
// settings and the paths to skip.
type Config struct {
	Name        string                   `yaml:"name" toml:"name"`
	Rules       map[string]tt.ConfigRule `yaml:"rules" toml:"rules"`
	IgnorePaths []string                 `yaml:"ignore-paths,omitempty" toml:"ignore-paths,omitempty"`
}

// DefaultConfig enables every rule at error severity.
func DefaultConfig() Config {
	config := Config{
		Name:  "solint",
		Rules: make(map[string]tt.ConfigRule),
	}
	for _, id := range rules.IDs() {
		config.Rules[id] = tt.RuleWithSeverity(tt.SeverityError)
	}
	return config
}

// LoadConfig reads the configuration at path. Files ending in ".toml" are
// decoded as TOML, anything else as YAML. With an empty path the default
// file is used when present, otherwise the zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		config, err := parseConfigurationFile(DefaultConfigPath)
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return config, err
	}
	return parseConfigurationFile(path)
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config

	data, err := os.ReadFile(configurationPath)
	if err != nil {
		return config, err
	}

	if isTOML(configurationPath) {
		if _, err := toml.Decode(string(data), &config); err != nil {
			return config, fmt.Errorf("%w: %s: %v", rules.ErrConfiguration, configurationPath, err)
		}
		return config, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return config, nil
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("%w: %s: %v", rules.ErrConfiguration, configurationPath, err)
	}
	return config, nil
}

// WriteConfig stores config at path, as TOML when the path ends in
// ".toml" and as YAML otherwise, so LoadConfig reads it back.
func WriteConfig(path string, config Config) error {
	var buf bytes.Buffer
	if isTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("error marshalling config: %w", err)
		}
	} else {
		data, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("error marshalling config: %w", err)
		}
		buf.Write(data)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
