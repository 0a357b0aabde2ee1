package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for pipeline settings, e.g.
// DRAGONS_TEAM or DRAGONS_STORAGE_DIR.
const envPrefix = "DRAGONS"

// Default values applied before the pipeline file is read.
const (
	DefaultJob            = "dragons_season"
	DefaultTeamColumn     = "team_name"
	DefaultStorageKind    = "csv"
	DefaultStorageDir     = "."
	DefaultMetricsBackend = "none"
	DefaultPushgatewayURL = "http://localhost:9091"
	DefaultDashboardAddr  = ":8501"
	DefaultUnifiedOutput  = "final_data.csv"
)

// DefaultOutputs maps each category to its default output file name.
var DefaultOutputs = map[string]string{
	CategoryBatting:  "final_batting_data.csv",
	CategoryBowling:  "final_bowling_data.csv",
	CategoryFielding: "final_fielding_data.csv",
}

// Load reads a pipeline file (JSON or YAML, chosen by extension), applies
// defaults and DRAGONS_* environment overrides, and returns the decoded
// Pipeline. It does not validate; call ValidatePipeline on the result.
func Load(path string) (Pipeline, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "yml" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return Pipeline{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var p Pipeline
	if err := v.Unmarshal(&p); err != nil {
		return Pipeline{}, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	p.fillDefaults()
	return p, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("job", DefaultJob)
	v.SetDefault("team_column", DefaultTeamColumn)
	v.SetDefault("unified_output", DefaultUnifiedOutput)
	v.SetDefault("storage.kind", DefaultStorageKind)
	v.SetDefault("storage.dir", DefaultStorageDir)
	v.SetDefault("metrics.backend", DefaultMetricsBackend)
	v.SetDefault("metrics.pushgateway_url", DefaultPushgatewayURL)
	v.SetDefault("dashboard.addr", DefaultDashboardAddr)
	v.SetDefault("dashboard.mode", "release")
	// team has no default, but registering the key lets DRAGONS_TEAM bind.
	v.SetDefault("team", "")
}

// fillDefaults sets per-source and per-category defaults that viper cannot
// express for list elements.
func (p *Pipeline) fillDefaults() {
	fill := func(name string, c *Category) {
		if c.Output == "" {
			c.Output = DefaultOutputs[name]
		}
		for i := range c.Sources {
			s := &c.Sources[i]
			if s.Kind == "" {
				s.Kind = "file"
			}
			if s.Parser.Kind == "" {
				s.Parser.Kind = "csv"
			}
			if s.Parser.Options == nil {
				s.Parser.Options = Options{}
			}
		}
	}
	fill(CategoryBatting, &p.Categories.Batting)
	fill(CategoryBowling, &p.Categories.Bowling)
	fill(CategoryFielding, &p.Categories.Fielding)
}
