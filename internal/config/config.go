// Package config defines the configuration model for a season aggregation
// run: which team, which tournament exports feed each stat category, where
// the merged snapshot is written, and how metrics and the dashboard are set
// up.
//
// Pipeline files are JSON or YAML and are loaded with Load (see loader.go).
// Field names mirror the file keys.
//
// Example (trimmed):
//
//	job: dragons_season
//	team: SPVGG Dragons
//	categories:
//	  batting:
//	    output: final_batting_data.csv
//	    sources:
//	      - name: Beer Cup
//	        kind: file
//	        file: { path: Data/Beer_Cup/1397502_batting_leaderboard.csv }
//	        drop_columns: [team_id]
//	storage: { kind: csv, dir: . }
package config

import (
	"encoding/json"
	"strings"
)

// Category names used throughout the pipeline.
const (
	CategoryBatting  = "batting"
	CategoryBowling  = "bowling"
	CategoryFielding = "fielding"
)

// AllCategories lists the categories in run order.
var AllCategories = []string{CategoryBatting, CategoryBowling, CategoryFielding}

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job labels the run in logs and metrics.
	Job string `mapstructure:"job" json:"job"`

	// Team is the team whose players are aggregated. Rows of other teams are
	// filtered out before merging.
	Team string `mapstructure:"team" json:"team"`

	// TeamColumn is the source column holding the team name (default
	// "team_name"). A source may override it.
	TeamColumn string `mapstructure:"team_column" json:"team_column"`

	// Categories configures the three aggregators.
	Categories Categories `mapstructure:"categories" json:"categories"`

	// UnifiedOutput is the file name of the lowercase player table derived
	// from the batting output. Empty disables it.
	UnifiedOutput string `mapstructure:"unified_output" json:"unified_output"`

	Storage   Storage   `mapstructure:"storage" json:"storage"`
	Metrics   Metrics   `mapstructure:"metrics" json:"metrics"`
	Dashboard Dashboard `mapstructure:"dashboard" json:"dashboard"`
}

// Categories groups the per-category settings.
type Categories struct {
	Batting  Category `mapstructure:"batting" json:"batting"`
	Bowling  Category `mapstructure:"bowling" json:"bowling"`
	Fielding Category `mapstructure:"fielding" json:"fielding"`
}

// Get returns the settings for a category name.
func (c Categories) Get(name string) (Category, bool) {
	switch strings.ToLower(name) {
	case CategoryBatting:
		return c.Batting, true
	case CategoryBowling:
		return c.Bowling, true
	case CategoryFielding:
		return c.Fielding, true
	}
	return Category{}, false
}

// Category configures one aggregator.
type Category struct {
	// Output is the file name of the finalized table inside storage.dir.
	Output string `mapstructure:"output" json:"output"`

	// Sources lists the tournament exports in merge order. Order matters:
	// metadata conflicts resolve to the first source that has a value.
	Sources []Source `mapstructure:"sources" json:"sources"`
}

// Enabled reports whether the category has any sources configured.
func (c Category) Enabled() bool { return len(c.Sources) > 0 }

// Source identifies one tournament export.
type Source struct {
	// Name is a human label for logs (e.g. "Beer Cup").
	Name string `mapstructure:"name" json:"name"`

	// Kind selects the source implementation. Current value: "file".
	Kind string `mapstructure:"kind" json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `mapstructure:"file" json:"file"`

	// Parser configures how the bytes become records.
	Parser Parser `mapstructure:"parser" json:"parser"`

	// TeamColumn overrides Pipeline.TeamColumn for this source.
	TeamColumn string `mapstructure:"team_column" json:"team_column"`

	// DropColumns are removed right after parsing (e.g. "team_id").
	DropColumns []string `mapstructure:"drop_columns" json:"drop_columns"`
}

// Label returns Name, or the file path when Name is empty.
func (s Source) Label() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return s.File.Path
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the export.
	Path string `mapstructure:"path" json:"path"`
}

// Parser selects how to parse the raw source.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `mapstructure:"kind" json:"kind"`

	// Options is interpreted by the parser implementation. For CSV:
	//   comma (string), trim_space (bool), lazy_quotes (bool),
	//   header_map (object)
	Options Options `mapstructure:"options" json:"options"`
}

// Storage selects where the finalized snapshot is written.
type Storage struct {
	// Kind selects the storage backend: "csv" or "tsv".
	Kind string `mapstructure:"kind" json:"kind"`

	// Dir is the output directory.
	Dir string `mapstructure:"dir" json:"dir"`
}

// Metrics selects an optional metrics backend.
type Metrics struct {
	// Backend is "none", "pushgateway" or "datadog".
	Backend string `mapstructure:"backend" json:"backend"`

	PushgatewayURL string   `mapstructure:"pushgateway_url" json:"pushgateway_url"`
	DatadogAddr    string   `mapstructure:"datadog_addr" json:"datadog_addr"`
	Namespace      string   `mapstructure:"namespace" json:"namespace"`
	Tags           []string `mapstructure:"tags" json:"tags"`
}

// Dashboard configures the HTTP dashboard.
type Dashboard struct {
	// Addr is the listen address, e.g. ":8501".
	Addr string `mapstructure:"addr" json:"addr"`

	// DataDir holds the finalized files. Defaults to Storage.Dir.
	DataDir string `mapstructure:"data_dir" json:"data_dir"`

	// Mode is the gin mode: "debug", "release" or "test".
	Mode string `mapstructure:"mode" json:"mode"`
}

// TeamColumnFor returns the team column for s.
func (p Pipeline) TeamColumnFor(s Source) string {
	if strings.TrimSpace(s.TeamColumn) != "" {
		return s.TeamColumn
	}
	if strings.TrimSpace(p.TeamColumn) != "" {
		return p.TeamColumn
	}
	return "team_name"
}

// DataDir returns the directory the dashboard reads from.
func (p Pipeline) DataDir() string {
	if p.Dashboard.DataDir != "" {
		return p.Dashboard.DataDir
	}
	if p.Storage.Dir != "" {
		return p.Storage.Dir
	}
	return "."
}

// Options is a small helper to fetch typed values from free-form option
// maps. It performs only minimal type coercion and returns the provided
// default when a key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64,
// YAML numbers as int; both are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case int64:
			return int(n)
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			if s == `\t` {
				return '\t'
			}
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object.
// Non-string values are ignored. Returns an empty map when absent.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		switch m := v.(type) {
		case map[string]any:
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		case map[string]string:
			for k, s := range m {
				res[k] = s
			}
		}
	}
	return res
}

// UnmarshalJSON makes a missing or null "options" object decode to an empty,
// non-nil Options map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
