package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths describes the global and local config file locations.
type ConfigPaths struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns the config file locations and whether they exist.
func GetConfigPaths() ConfigPaths {
	paths := ConfigPaths{
		GlobalPath: ConfigPath(),
		LocalPath:  LocalConfigPath(),
	}
	if _, err := os.Stat(paths.GlobalPath); err == nil {
		paths.GlobalExists = true
	}
	if _, err := os.Stat(paths.LocalPath); err == nil {
		paths.LocalExists = true
	}
	return paths
}

// DefaultConfig returns a config populated with all default values spelled
// out, suitable for `config defaults` output.
func DefaultConfig() *Config {
	w := DefaultScoreWeights()
	o := DefaultOracleSettings()
	s := DefaultServeSettings()
	return &Config{
		DefaultFormat: "table",
		Scoring: &ScoringOverrides{
			UrgentUrgency:       &w.UrgentUrgency,
			UrgentImportance:    &w.UrgentImportance,
			ImportantUrgency:    &w.ImportantUrgency,
			ImportantImportance: &w.ImportantImportance,
			RoutineUrgency:      &w.RoutineUrgency,
			RoutineImportance:   &w.RoutineImportance,
		},
		Oracle: &OracleOverrides{
			Model:        &o.Model,
			TopMin:       &o.TopMin,
			TopMax:       &o.TopMax,
			MaxTokens:    &o.MaxTokens,
			ChatMaxChars: &o.ChatMaxChars,
		},
		Serve: &ServeOverrides{
			Addr:           &s.Addr,
			AllowedOrigins: s.AllowedOrigins,
		},
	}
}

// SaveTo writes raw config content to the given path, creating parent
// directories as needed.
func SaveTo(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
