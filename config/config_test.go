package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestDefaultScoreWeights(t *testing.T) {
	weights := DefaultScoreWeights()

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"UrgentUrgency", weights.UrgentUrgency, 8},
		{"UrgentImportance", weights.UrgentImportance, 9},
		{"ImportantUrgency", weights.ImportantUrgency, 6},
		{"ImportantImportance", weights.ImportantImportance, 8},
		{"RoutineUrgency", weights.RoutineUrgency, 3},
		{"RoutineImportance", weights.RoutineImportance, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("DefaultScoreWeights().%s = %d, want %d", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestGetScoreWeights(t *testing.T) {
	t.Run("returns defaults when no overrides", func(t *testing.T) {
		cfg := &Config{}
		if got := cfg.GetScoreWeights(); got != DefaultScoreWeights() {
			t.Errorf("GetScoreWeights() = %+v, want defaults", got)
		}
	})

	t.Run("applies partial overrides", func(t *testing.T) {
		cfg := &Config{Scoring: &ScoringOverrides{
			UrgentUrgency:  intPtr(10),
			RoutineUrgency: intPtr(1),
		}}
		got := cfg.GetScoreWeights()
		if got.UrgentUrgency != 10 {
			t.Errorf("UrgentUrgency = %d, want 10", got.UrgentUrgency)
		}
		if got.RoutineUrgency != 1 {
			t.Errorf("RoutineUrgency = %d, want 1", got.RoutineUrgency)
		}
		if got.ImportantUrgency != 6 {
			t.Errorf("ImportantUrgency = %d, want default 6", got.ImportantUrgency)
		}
	})
}

func TestGetOracleSettings(t *testing.T) {
	t.Run("returns defaults when no overrides", func(t *testing.T) {
		cfg := &Config{}
		got := cfg.GetOracleSettings()
		if got != DefaultOracleSettings() {
			t.Errorf("GetOracleSettings() = %+v, want defaults", got)
		}
	})

	t.Run("empty model string keeps default", func(t *testing.T) {
		cfg := &Config{Oracle: &OracleOverrides{Model: strPtr(""), MaxTokens: intPtr(1024)}}
		got := cfg.GetOracleSettings()
		if got.Model != DefaultOracleSettings().Model {
			t.Errorf("Model = %q, want default", got.Model)
		}
		if got.MaxTokens != 1024 {
			t.Errorf("MaxTokens = %d, want 1024", got.MaxTokens)
		}
	})
}

func TestMergeConfig(t *testing.T) {
	global := &Config{
		DefaultFormat: "json",
		Scoring: &ScoringOverrides{
			UrgentUrgency:    intPtr(9),
			ImportantUrgency: intPtr(7),
		},
		Serve: &ServeOverrides{
			Addr:           strPtr(":9999"),
			AllowedOrigins: []string{"http://global.example"},
		},
	}
	local := &Config{
		Scoring: &ScoringOverrides{
			UrgentUrgency: intPtr(10),
		},
		Serve: &ServeOverrides{
			AllowedOrigins: []string{"http://local.example"},
		},
	}

	merged := mergeConfig(global, local)

	if merged.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want global %q", merged.DefaultFormat, "json")
	}
	if got := *merged.Scoring.UrgentUrgency; got != 10 {
		t.Errorf("UrgentUrgency = %d, want local 10", got)
	}
	if got := *merged.Scoring.ImportantUrgency; got != 7 {
		t.Errorf("ImportantUrgency = %d, want global 7", got)
	}
	if got := *merged.Serve.Addr; got != ":9999" {
		t.Errorf("Serve.Addr = %q, want global :9999", got)
	}
	if len(merged.Serve.AllowedOrigins) != 1 || merged.Serve.AllowedOrigins[0] != "http://local.example" {
		t.Errorf("AllowedOrigins = %v, want local origins", merged.Serve.AllowedOrigins)
	}

	t.Run("local format wins when set", func(t *testing.T) {
		merged := mergeConfig(global, &Config{DefaultFormat: "table"})
		if merged.DefaultFormat != "table" {
			t.Errorf("DefaultFormat = %q, want local %q", merged.DefaultFormat, "table")
		}
	})
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	raw := `
default_format: json
scoring:
  urgent_urgency: 10
oracle:
  top_max: 7
serve:
  addr: ":8080"
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want json", cfg.DefaultFormat)
	}
	if cfg.Scoring == nil || cfg.Scoring.UrgentUrgency == nil || *cfg.Scoring.UrgentUrgency != 10 {
		t.Errorf("Scoring.UrgentUrgency not parsed: %+v", cfg.Scoring)
	}
	if cfg.Scoring.RoutineUrgency != nil {
		t.Error("RoutineUrgency should be nil when absent")
	}
	if got := cfg.GetOracleSettings().TopMax; got != 7 {
		t.Errorf("TopMax = %d, want 7", got)
	}
	if got := cfg.GetServeSettings().Addr; got != ":8080" {
		t.Errorf("Serve addr = %q, want :8080", got)
	}
}

func TestMinimalConfigParses(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(MinimalConfig()), &cfg); err != nil {
		t.Fatalf("MinimalConfig does not parse: %v", err)
	}
	if cfg.DefaultFormat != "table" {
		t.Errorf("DefaultFormat = %q, want table", cfg.DefaultFormat)
	}
}
