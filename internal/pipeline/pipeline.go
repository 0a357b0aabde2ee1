// Package pipeline runs a season aggregation: it reads every configured
// tournament export, cleans the rows, merges each category and publishes the
// finalized tables as one snapshot.
//
// Flow per category:
//
//	source (file) → fingerprint → csv parser → transform chain
//	    → aggregate.MergeX → aggregate.Output
//
// Outputs are staged as they are produced and committed together at the end.
// Any failure discards the staged snapshot, so previously published tables
// stay untouched.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/22chandu94/DragonsDashboard/internal/aggregate"
	"github.com/22chandu94/DragonsDashboard/internal/config"
	"github.com/22chandu94/DragonsDashboard/internal/datasource"
	"github.com/22chandu94/DragonsDashboard/internal/metrics"
	"github.com/22chandu94/DragonsDashboard/internal/parser"
	pcsv "github.com/22chandu94/DragonsDashboard/internal/parser/csv"
	"github.com/22chandu94/DragonsDashboard/internal/storage"
	"github.com/22chandu94/DragonsDashboard/internal/transformer"
	"github.com/22chandu94/DragonsDashboard/internal/transformer/builtin"
	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return storage.New(ctx, cfg)
	}

	newSourceFn = datasource.New

	nowFn = time.Now
)

// identityFields are the columns a row needs at least one of to be merged.
var identityFields = []string{aggregate.ColPlayerID, aggregate.ColName}

// SourceStats describes what happened to one export.
type SourceStats struct {
	Label       string
	Fingerprint datasource.Fingerprint
	Read        int
	Skipped     int
	Filtered    int
	Kept        int
}

// Summary describes one category of a run.
type Summary struct {
	Category string
	File     string
	Sources  []SourceStats
	Players  int
	Elapsed  time.Duration
}

// Result is what Aggregate produced, in publish order.
type Result struct {
	Outputs   []Published
	Summaries []Summary
}

// Published is one finalized table and the file name it is written under.
type Published struct {
	File   string
	Output aggregate.Output
}

// Output returns the finalized table for category, if present.
func (r Result) Output(category string) (aggregate.Output, bool) {
	for _, p := range r.Outputs {
		if p.Output.Category == category {
			return p.Output, true
		}
	}
	return aggregate.Output{}, false
}

// Runner executes runs for one pipeline configuration.
type Runner struct {
	cfg config.Pipeline
	log logrus.FieldLogger
}

// New returns a Runner. A nil logger falls back to the standard logrus
// logger.
func New(cfg config.Pipeline, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{cfg: cfg, log: log.WithField("job", cfg.Job)}
}

// Run aggregates categories (all enabled ones when empty) and publishes the
// result as a single snapshot.
func (r *Runner) Run(ctx context.Context, categories []string) (Result, error) {
	res, err := r.Aggregate(ctx, categories)
	if err != nil {
		return Result{}, err
	}
	if err := r.publish(ctx, res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Aggregate computes the finalized tables without writing anything. The
// unified table is added whenever batting is aggregated and
// unified_output is set.
func (r *Runner) Aggregate(ctx context.Context, categories []string) (Result, error) {
	cats, err := r.selectCategories(categories)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, name := range cats {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		cat, _ := r.cfg.Categories.Get(name)

		start := nowFn()
		outs, sum, err := r.runCategory(ctx, name, cat)
		sum.Elapsed = nowFn().Sub(start)
		metrics.RecordStep(r.cfg.Job, name, err, sum.Elapsed)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", name, err)
		}

		res.Summaries = append(res.Summaries, sum)
		res.Outputs = append(res.Outputs, Published{File: sum.File, Output: outs[0]})
		if len(outs) > 1 && r.cfg.UnifiedOutput != "" {
			res.Outputs = append(res.Outputs, Published{File: r.cfg.UnifiedOutput, Output: outs[1]})
		}
	}
	return res, nil
}

// selectCategories resolves the requested names against the config. An
// explicitly requested category must be configured.
func (r *Runner) selectCategories(requested []string) ([]string, error) {
	if len(requested) == 0 {
		var out []string
		for _, name := range config.AllCategories {
			if c, _ := r.cfg.Categories.Get(name); c.Enabled() {
				out = append(out, name)
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("no category has sources configured")
		}
		return out, nil
	}

	out := make([]string, 0, len(requested))
	for _, name := range requested {
		c, ok := r.cfg.Categories.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown category %q (want one of %v)", name, config.AllCategories)
		}
		if !c.Enabled() {
			return nil, fmt.Errorf("category %q has no sources configured", name)
		}
		out = append(out, strings.ToLower(name))
	}
	return out, nil
}

// runCategory merges one category. The first output is the category table;
// batting also returns the unified player table second.
func (r *Runner) runCategory(ctx context.Context, name string, cat config.Category) ([]aggregate.Output, Summary, error) {
	log := r.log.WithField("category", name)
	sum := Summary{Category: name, File: outputFile(name, cat)}

	tables := make([]records.Table, 0, len(cat.Sources))
	labels := make([]string, 0, len(cat.Sources))
	sums := make([]datasource.Fingerprint, 0, len(cat.Sources))
	for _, s := range cat.Sources {
		t, st, err := r.loadSource(ctx, name, s)
		if err != nil {
			return nil, sum, err
		}
		tables = append(tables, t)
		labels = append(labels, st.Label)
		sums = append(sums, st.Fingerprint)
		sum.Sources = append(sum.Sources, st)
	}

	for first, later := range datasource.Duplicates(labels, sums) {
		log.WithFields(logrus.Fields{"source": first, "duplicates": later}).
			Warn("sources have identical content; their stats will be counted more than once")
	}

	var outs []aggregate.Output
	switch name {
	case config.CategoryBatting:
		rows, err := aggregate.MergeBatting(tables, log)
		if err != nil {
			return nil, sum, err
		}
		outs = append(outs, aggregate.BattingOutput(rows), aggregate.UnifiedOutput(aggregate.Unified(rows)))
	case config.CategoryBowling:
		rows, err := aggregate.MergeBowling(tables, log)
		if err != nil {
			return nil, sum, err
		}
		outs = append(outs, aggregate.BowlingOutput(rows))
	case config.CategoryFielding:
		rows, err := aggregate.MergeFielding(tables, log)
		if err != nil {
			return nil, sum, err
		}
		outs = append(outs, aggregate.FieldingOutput(rows))
	default:
		return nil, sum, fmt.Errorf("no aggregator for category %q", name)
	}

	sum.Players = outs[0].Len()
	metrics.RecordRows(r.cfg.Job, name, metrics.RowsMerged, sum.Players)
	log.WithFields(logrus.Fields{"sources": len(tables), "players": sum.Players}).Info("category merged")
	return outs, sum, nil
}

// loadSource reads, parses and cleans one export.
func (r *Runner) loadSource(ctx context.Context, category string, s config.Source) (records.Table, SourceStats, error) {
	st := SourceStats{Label: s.Label()}
	log := r.log.WithFields(logrus.Fields{"category": category, "source": st.Label})

	p, err := parser.New(s.Parser.Kind, s.Parser.Options, log)
	if err != nil {
		return records.Table{}, st, fmt.Errorf("source %q: %w", st.Label, err)
	}
	src, err := newSourceFn(s)
	if err != nil {
		return records.Table{}, st, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return records.Table{}, st, fmt.Errorf("source %q: %w", st.Label, err)
	}
	defer rc.Close()

	fr := datasource.NewFingerprintReader(rc)
	t, skipped, err := p.Parse(fr, st.Label)
	if err != nil {
		return records.Table{}, st, fmt.Errorf("source %q: %w", st.Label, err)
	}
	// Drain anything the parser left so the fingerprint covers the whole file.
	if _, err := io.Copy(io.Discard, fr); err != nil {
		return records.Table{}, st, fmt.Errorf("source %q: %w", st.Label, err)
	}
	st.Fingerprint = fr.Sum()
	st.Read = t.Len()
	st.Skipped = skipped

	teamColumn := pcsv.CanonicalName(r.cfg.TeamColumnFor(s))
	if !t.HasColumn(teamColumn) {
		log.WithField("column", teamColumn).Warn("team column missing; rows are not filtered by team")
	}

	var missingIdentity int
	t = buildChain(r.cfg.Team, teamColumn, s.DropColumns, &missingIdentity).Apply(t)
	st.Kept = t.Len()
	st.Filtered = st.Read - st.Kept

	metrics.RecordRows(r.cfg.Job, category, metrics.RowsRead, st.Read)
	metrics.RecordRows(r.cfg.Job, category, metrics.RowsSkipped, st.Skipped)
	metrics.RecordRows(r.cfg.Job, category, metrics.RowsFiltered, st.Filtered)

	log.WithFields(logrus.Fields{
		"fingerprint":      st.Fingerprint.String(),
		"rows":             st.Read,
		"skipped":          st.Skipped,
		"filtered":         st.Filtered,
		"missing_identity": missingIdentity,
	}).Debug("source loaded")
	return t, st, nil
}

// buildChain returns the clean-up applied to every source table. Column
// names are canonicalized the same way the parser canonicalizes headers.
func buildChain(team, teamColumn string, drop []string, missingIdentity *int) transformer.Chain {
	cols := make([]string, 0, len(drop))
	for _, c := range drop {
		cols = append(cols, pcsv.CanonicalName(c))
	}
	return transformer.Chain{
		builtin.DropColumns{Columns: cols},
		builtin.Normalize{},
		builtin.TeamFilter{Column: teamColumn, Team: team},
		builtin.Require{Fields: identityFields, Any: true, Dropped: missingIdentity},
	}
}

// publish stages every output and commits them together.
func (r *Runner) publish(ctx context.Context, res Result) (err error) {
	start := nowFn()
	defer func() { metrics.RecordStep(r.cfg.Job, "commit", err, nowFn().Sub(start)) }()

	repo, err := newRepositoryFn(ctx, storage.Config{Kind: r.cfg.Storage.Kind, Dir: r.cfg.Storage.Dir})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	snap, err := repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	for _, p := range res.Outputs {
		if err := snap.Stage(ctx, p.File, p.Output.Header, p.Output.Rows); err != nil {
			if derr := snap.Discard(); derr != nil {
				r.log.WithError(derr).Warn("discard staged snapshot")
			}
			return fmt.Errorf("stage %s: %w", p.File, err)
		}
	}
	if err := snap.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	for _, p := range res.Outputs {
		metrics.RecordRows(r.cfg.Job, p.Output.Category, metrics.RowsWritten, p.Output.Len())
		r.log.WithFields(logrus.Fields{
			"table": p.Output.Category,
			"file":  p.File,
			"rows":  p.Output.Len(),
		}).Info("published")
	}
	return nil
}

func outputFile(name string, c config.Category) string {
	if c.Output != "" {
		return c.Output
	}
	return config.DefaultOutputs[name]
}
