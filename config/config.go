// Package config loads the application configuration.
// Settings come from a YAML file (global config dir, with a local
// .echodeck.yaml merged on top); credentials and API keys are read from the
// environment only.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/echodeck/echodeck/internal/model"
)

// Config represents the application configuration.
type Config struct {
	DefaultFormat string `yaml:"default_format,omitempty"` // table or json

	Scoring *ScoringOverrides `yaml:"scoring,omitempty"`
	Oracle  *OracleOverrides  `yaml:"oracle,omitempty"`
	Serve   *ServeOverrides   `yaml:"serve,omitempty"`
}

// ScoringOverrides customizes the synthetic task score heuristic per tier.
type ScoringOverrides struct {
	UrgentUrgency       *int `yaml:"urgent_urgency,omitempty"`
	UrgentImportance    *int `yaml:"urgent_importance,omitempty"`
	ImportantUrgency    *int `yaml:"important_urgency,omitempty"`
	ImportantImportance *int `yaml:"important_importance,omitempty"`
	RoutineUrgency      *int `yaml:"routine_urgency,omitempty"`
	RoutineImportance   *int `yaml:"routine_importance,omitempty"`
}

// OracleOverrides customizes the classification oracle call.
type OracleOverrides struct {
	Model        *string `yaml:"model,omitempty"`
	TopMin       *int    `yaml:"top_min,omitempty"`
	TopMax       *int    `yaml:"top_max,omitempty"`
	MaxTokens    *int    `yaml:"max_tokens,omitempty"`
	ChatMaxChars *int    `yaml:"chat_max_chars,omitempty"`
}

// ServeOverrides customizes the HTTP API server.
type ServeOverrides struct {
	Addr           *string  `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// ScoreWeights is the resolved synthetic-task heuristic: the urgency and
// importance assigned to items classified into a tier but not elevated by
// the oracle.
type ScoreWeights struct {
	UrgentUrgency       int
	UrgentImportance    int
	ImportantUrgency    int
	ImportantImportance int
	RoutineUrgency      int
	RoutineImportance   int
}

// DefaultScoreWeights returns the default synthetic scoring heuristic.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		UrgentUrgency:       8,
		UrgentImportance:    9,
		ImportantUrgency:    6,
		ImportantImportance: 8,
		RoutineUrgency:      3,
		RoutineImportance:   4,
	}
}

// OracleSettings is the resolved oracle configuration.
type OracleSettings struct {
	Model        string
	TopMin       int // lower bound of the oracle's top-priority subset
	TopMax       int // upper bound of the oracle's top-priority subset
	MaxTokens    int
	ChatMaxChars int // per-item content cap in the chat context
}

// DefaultOracleSettings returns the default oracle configuration.
func DefaultOracleSettings() OracleSettings {
	return OracleSettings{
		Model:        "claude-sonnet-4-5-20250929",
		TopMin:       3,
		TopMax:       5,
		MaxTokens:    4096,
		ChatMaxChars: 200,
	}
}

// ServeSettings is the resolved HTTP server configuration.
type ServeSettings struct {
	Addr           string
	AllowedOrigins []string
}

// DefaultServeSettings returns the default server configuration.
func DefaultServeSettings() ServeSettings {
	return ServeSettings{
		Addr:           ":8383",
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
	}
}

// GetScoreWeights returns score weights with user overrides merged over defaults.
func (c *Config) GetScoreWeights() ScoreWeights {
	w := DefaultScoreWeights()
	if c.Scoring == nil {
		return w
	}
	s := c.Scoring
	if s.UrgentUrgency != nil {
		w.UrgentUrgency = *s.UrgentUrgency
	}
	if s.UrgentImportance != nil {
		w.UrgentImportance = *s.UrgentImportance
	}
	if s.ImportantUrgency != nil {
		w.ImportantUrgency = *s.ImportantUrgency
	}
	if s.ImportantImportance != nil {
		w.ImportantImportance = *s.ImportantImportance
	}
	if s.RoutineUrgency != nil {
		w.RoutineUrgency = *s.RoutineUrgency
	}
	if s.RoutineImportance != nil {
		w.RoutineImportance = *s.RoutineImportance
	}
	return w
}

// GetOracleSettings returns oracle settings with overrides merged over defaults.
func (c *Config) GetOracleSettings() OracleSettings {
	s := DefaultOracleSettings()
	if c.Oracle == nil {
		return s
	}
	o := c.Oracle
	if o.Model != nil && *o.Model != "" {
		s.Model = *o.Model
	}
	if o.TopMin != nil {
		s.TopMin = *o.TopMin
	}
	if o.TopMax != nil {
		s.TopMax = *o.TopMax
	}
	if o.MaxTokens != nil {
		s.MaxTokens = *o.MaxTokens
	}
	if o.ChatMaxChars != nil {
		s.ChatMaxChars = *o.ChatMaxChars
	}
	return s
}

// GetServeSettings returns server settings with overrides merged over defaults.
func (c *Config) GetServeSettings() ServeSettings {
	s := DefaultServeSettings()
	if c.Serve == nil {
		return s
	}
	if c.Serve.Addr != nil && *c.Serve.Addr != "" {
		s.Addr = *c.Serve.Addr
	}
	if len(c.Serve.AllowedOrigins) > 0 {
		s.AllowedOrigins = c.Serve.AllowedOrigins
	}
	return s
}

// GetAnthropicKey returns the oracle API key from the environment.
// Following 12-factor practice, keys are only read from the environment.
func (c *Config) GetAnthropicKey() string {
	return os.Getenv("ANTHROPIC_API_KEY")
}

// GetCredentials assembles per-source credentials from the environment.
// Unset sources are simply absent; a session with no credentials at all
// runs on the fixed demo set.
func (c *Config) GetCredentials() model.UserCredentials {
	return model.UserCredentials{
		GoogleToken: os.Getenv("GOOGLE_TOKEN"),
		SlackToken:  os.Getenv("SLACK_TOKEN"),
		Jira: model.JiraCredentials{
			Domain:   os.Getenv("JIRA_DOMAIN"),
			Email:    os.Getenv("JIRA_EMAIL"),
			APIToken: os.Getenv("JIRA_API_TOKEN"),
		},
	}
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".echodeck"
	}
	return filepath.Join(configDir, "echodeck")
}

// ConfigPath returns the path to the global config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory.
func LocalConfigPath() string {
	return ".echodeck.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config, then merges any local .echodeck.yaml on
// top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}
		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}
		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	result.Scoring = mergeScoring(global.Scoring, local.Scoring)
	result.Oracle = mergeOracle(global.Oracle, local.Oracle)
	result.Serve = mergeServe(global.Serve, local.Serve)

	return result
}

func mergeScoring(global, local *ScoringOverrides) *ScoringOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &ScoringOverrides{}
	if global != nil {
		*result = *global
	}
	if local != nil {
		if local.UrgentUrgency != nil {
			result.UrgentUrgency = local.UrgentUrgency
		}
		if local.UrgentImportance != nil {
			result.UrgentImportance = local.UrgentImportance
		}
		if local.ImportantUrgency != nil {
			result.ImportantUrgency = local.ImportantUrgency
		}
		if local.ImportantImportance != nil {
			result.ImportantImportance = local.ImportantImportance
		}
		if local.RoutineUrgency != nil {
			result.RoutineUrgency = local.RoutineUrgency
		}
		if local.RoutineImportance != nil {
			result.RoutineImportance = local.RoutineImportance
		}
	}
	return result
}

func mergeOracle(global, local *OracleOverrides) *OracleOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &OracleOverrides{}
	if global != nil {
		*result = *global
	}
	if local != nil {
		if local.Model != nil {
			result.Model = local.Model
		}
		if local.TopMin != nil {
			result.TopMin = local.TopMin
		}
		if local.TopMax != nil {
			result.TopMax = local.TopMax
		}
		if local.MaxTokens != nil {
			result.MaxTokens = local.MaxTokens
		}
		if local.ChatMaxChars != nil {
			result.ChatMaxChars = local.ChatMaxChars
		}
	}
	return result
}

func mergeServe(global, local *ServeOverrides) *ServeOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &ServeOverrides{}
	if global != nil {
		*result = *global
	}
	if local != nil {
		if local.Addr != nil {
			result.Addr = local.Addr
		}
		if len(local.AllowedOrigins) > 0 {
			result.AllowedOrigins = local.AllowedOrigins
		}
	}
	return result
}

// Save saves the configuration to the global config path.
func (c *Config) Save() error {
	configDir := DefaultConfigDir()
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ToYAML returns the config as a YAML string.
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// MinimalConfig returns a minimal config template with comments.
func MinimalConfig() string {
	return `# Echodeck configuration file

# Output format for non-interactive runs: table or json
default_format: table

# Synthetic task scoring (optional)
# scoring:
#   urgent_urgency: 8
#   urgent_importance: 9

# Oracle settings (optional)
# oracle:
#   model: claude-sonnet-4-5-20250929
#   top_min: 3
#   top_max: 5

# HTTP API (optional)
# serve:
#   addr: ":8383"
#   allowed_origins:
#     - http://localhost:5173
`
}
