package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mcncl/jsonalchemy/internal/errors"
	"github.com/mcncl/jsonalchemy/internal/naming"
	"gopkg.in/yaml.v3"
)

// DefaultTableName is used when no type name hint is given.
const DefaultTableName = "TableName"

// Config represents the complete configuration for jsonalchemy
type Config struct {
	TableName string       `yaml:"table_name"`
	Naming    NamingConfig `yaml:"naming"`
	Types     TypesConfig  `yaml:"types"`
	Output    OutputConfig `yaml:"output"`
	Dev       DevConfig    `yaml:"dev"`
}

// NamingConfig controls column and class naming
type NamingConfig struct {
	ClassNameStyle naming.ClassNameStyle `yaml:"class_name_style"`
	// FieldMappings maps a raw JSON key to the column name to emit for it.
	FieldMappings map[string]string `yaml:"field_mappings"`
}

// TypesConfig controls column type inference
type TypesConfig struct {
	// PreserveFloatLiterals reads number literals as written instead of
	// rewriting ".0" to ".1" in the raw text before parsing.
	PreserveFloatLiterals bool          `yaml:"preserve_float_literals"`
	Mappings              []TypeMapping `yaml:"mappings"`
}

// TypeMapping overrides the inferred column type for keys matching Pattern.
type TypeMapping struct {
	Pattern string `yaml:"pattern"`
	Type    string `yaml:"type"`
	Comment string `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// OutputConfig controls the emitted declaration text
type OutputConfig struct {
	FileHeader    string `yaml:"file_header"`
	BaseModel     string `yaml:"base_model"`
	ColumnFunc    string `yaml:"column_func"`
	TypeNamespace string `yaml:"type_namespace"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		TableName: DefaultTableName,
		Naming: NamingConfig{
			ClassNameStyle: naming.StyleLegacy,
			FieldMappings:  make(map[string]string),
		},
		Types: TypesConfig{
			PreserveFloatLiterals: false,
			Mappings:              []TypeMapping{},
		},
		Output: OutputConfig{
			BaseModel:     "db.Model",
			ColumnFunc:    "db.Column",
			TypeNamespace: "db.",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonalchemy.yml", ".jsonalchemy.yaml", "jsonalchemy.yml", "jsonalchemy.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks option values and compiles type mapping patterns.
func (c *Config) Validate() error {
	if c.Naming.ClassNameStyle == "" {
		c.Naming.ClassNameStyle = naming.StyleLegacy
	}
	if !naming.ValidStyle(c.Naming.ClassNameStyle) {
		return errors.NewConfigError(
			fmt.Sprintf("unknown class_name_style '%s' (want '%s' or '%s')",
				c.Naming.ClassNameStyle, naming.StyleLegacy, naming.StyleCamel),
			nil,
		)
	}

	for i := range c.Types.Mappings {
		mapping := &c.Types.Mappings[i]
		if mapping.Type == "" {
			return errors.NewConfigError(
				fmt.Sprintf("type mapping '%s' has no type", mapping.Pattern),
				errors.ErrInvalidPattern,
			)
		}
		regex, err := regexp.Compile(mapping.Pattern)
		if err != nil {
			return errors.NewConfigError(
				fmt.Sprintf("invalid type mapping pattern '%s'", mapping.Pattern),
				fmt.Errorf("%w: %w", errors.ErrInvalidPattern, err),
			)
		}
		mapping.regex = regex
	}

	return nil
}

// MatchesField checks if this type mapping matches the given JSON key
func (tm *TypeMapping) MatchesField(key string) bool {
	if tm.regex == nil {
		regex, err := regexp.Compile(tm.Pattern)
		if err != nil {
			return false
		}
		tm.regex = regex
	}
	return tm.regex.MatchString(key)
}

// GetFieldName returns the column name for a JSON key, applying naming rules
func (c *Config) GetFieldName(jsonKey string) string {
	if mapped, exists := c.Naming.FieldMappings[jsonKey]; exists {
		return mapped
	}
	return naming.Format(jsonKey)
}

// FindTypeMapping finds the first type mapping that matches the JSON key
func (c *Config) FindTypeMapping(jsonKey string) (TypeMapping, bool) {
	for i := range c.Types.Mappings {
		if c.Types.Mappings[i].MatchesField(jsonKey) {
			return c.Types.Mappings[i], true
		}
	}
	return TypeMapping{}, false
}

// MergeConfigs merges CLI overrides into a base config.
// Non-empty strings and true booleans from override take precedence.
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.TableName != "" {
		merged.TableName = override.TableName
	}
	if override.Naming.ClassNameStyle != "" {
		merged.Naming.ClassNameStyle = override.Naming.ClassNameStyle
	}
	if override.Types.PreserveFloatLiterals {
		merged.Types.PreserveFloatLiterals = true
	}
	if override.Dev.Debug {
		merged.Dev.Debug = true
	}

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults.
func LoadConfigWithCLI(configPath, cliTableName string, cliPreserveFloats, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	override := &Config{TableName: cliTableName}
	override.Types.PreserveFloatLiterals = cliPreserveFloats
	override.Dev.Debug = cliDebug

	return MergeConfigs(cfg, override), nil
}
