package config

// This file adds a lightweight linter for Pipeline values. It performs
// static checks over a decoded Pipeline and returns a list of issues (errors
// and warnings) that the CLI surfaces before a run starts.

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a problem worth surfacing that does not block
	// execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "categories.bowling.sources[1].file.path").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether issues contains at least one SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// minSources is the smallest number of tournaments a merge accepts.
const minSources = 2

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels logs and metrics",
		})
	}
	if strings.TrimSpace(p.Team) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "team",
			Message:  "team must not be empty; rows are filtered to a single team",
		})
	}

	enabled := 0
	for _, name := range AllCategories {
		c, _ := p.Categories.Get(name)
		if !c.Enabled() {
			continue
		}
		enabled++
		issues = append(issues, validateCategory(name, c)...)
	}
	if enabled == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "categories",
			Message:  "no category has sources configured",
		})
	}

	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	return issues
}

func validateCategory(name string, c Category) []Issue {
	var issues []Issue
	base := "categories." + name

	if len(c.Sources) < minSources {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     base + ".sources",
			Message:  fmt.Sprintf("%d source(s) configured; a merge needs at least %d", len(c.Sources), minSources),
		})
	}
	if strings.TrimSpace(c.Output) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     base + ".output",
			Message:  "output file name must not be empty",
		})
	} else if filepath.Base(c.Output) != c.Output {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     base + ".output",
			Message:  "output must be a bare file name; use storage.dir for the directory",
		})
	}

	seen := map[string]int{}
	for i, s := range c.Sources {
		path := fmt.Sprintf("%s.sources[%d]", base, i)
		issues = append(issues, validateSource(path, s)...)

		clean := filepath.Clean(s.File.Path)
		if prev, dup := seen[clean]; dup && s.File.Path != "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path + ".file.path",
				Message:  fmt.Sprintf("same file as sources[%d]; its stats will be counted twice", prev),
			})
		} else {
			seen[clean] = i
		}
	}
	return issues
}

func validateSource(path string, s Source) []Issue {
	var issues []Issue

	switch s.Kind {
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".file.path",
				Message:  "file source requires a non-empty path",
			})
		}
	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".kind",
			Message:  "source kind must not be empty",
		})
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".kind",
			Message:  fmt.Sprintf("unsupported source kind %q", s.Kind),
		})
	}

	switch s.Parser.Kind {
	case "csv", "tsv":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".parser.kind",
			Message:  fmt.Sprintf("unsupported parser kind %q", s.Parser.Kind),
		})
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue
	switch s.Kind {
	case "csv", "tsv":
	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unsupported storage kind %q; outputs are flat files (csv, tsv)", s.Kind),
		})
	}
	if strings.TrimSpace(s.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dir",
			Message:  "storage.dir must not be empty",
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue
	switch m.Backend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires a URL",
			})
		}
	case "datadog":
		if strings.TrimSpace(m.DatadogAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.datadog_addr",
				Message:  "datadog backend requires a DogStatsD address",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		})
	}
	return issues
}
