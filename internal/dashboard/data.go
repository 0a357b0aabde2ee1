package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/22chandu94/DragonsDashboard/internal/aggregate"
	"github.com/22chandu94/DragonsDashboard/internal/config"
	"github.com/22chandu94/DragonsDashboard/internal/storage"
	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// Files names the published tables the dashboard reads.
type Files struct {
	Batting  string
	Bowling  string
	Fielding string
	Unified  string
}

// FilesFromConfig returns the output names configured for p, falling back
// to the defaults for categories without an explicit output.
func FilesFromConfig(p config.Pipeline) Files {
	pick := func(name string) string {
		if c, _ := p.Categories.Get(name); c.Output != "" {
			return c.Output
		}
		return config.DefaultOutputs[name]
	}
	unified := p.UnifiedOutput
	if unified == "" {
		unified = config.DefaultUnifiedOutput
	}
	return Files{
		Batting:  pick(config.CategoryBatting),
		Bowling:  pick(config.CategoryBowling),
		Fielding: pick(config.CategoryFielding),
		Unified:  unified,
	}
}

// Snapshot is the published season as typed rows. A table that was never
// published is empty and listed in Missing.
type Snapshot struct {
	Batting  []aggregate.BattingRow
	Bowling  []aggregate.BowlingRow
	Fielding []aggregate.FieldingRow
	Players  []aggregate.UnifiedRow
	Missing  []string
}

// Loader reads the snapshot once per process and serves the cached copy
// afterwards.
type Loader struct {
	repo  storage.Repository
	files Files
	log   logrus.FieldLogger

	once sync.Once
	snap Snapshot
	err  error
}

// NewLoader returns a Loader reading files from repo.
func NewLoader(repo storage.Repository, files Files, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{repo: repo, files: files, log: log}
}

// Snapshot returns the cached snapshot, loading it on first use. The load
// keeps ctx's values but not its cancellation: the snapshot is shared by
// every later request, so a visitor who disconnects must not abort it. A
// read error is cached; restart the process to retry.
func (l *Loader) Snapshot(ctx context.Context) (Snapshot, error) {
	l.once.Do(func() {
		l.snap, l.err = l.load(context.WithoutCancel(ctx))
	})
	return l.snap, l.err
}

func (l *Loader) load(ctx context.Context) (Snapshot, error) {
	var (
		snap                Snapshot
		bat, bowl, fld, uni records.Table
		mu                  sync.Mutex
	)
	missing := func(name string) {
		mu.Lock()
		snap.Missing = append(snap.Missing, name)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	read := func(name, file string, dst *records.Table) {
		g.Go(func() error {
			t, err := l.repo.Read(gctx, file)
			if errors.Is(err, fs.ErrNotExist) {
				l.log.WithFields(logrus.Fields{"table": name, "file": file}).Warn("table not published yet; showing empty state")
				missing(name)
				return nil
			}
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}
			*dst = t
			return nil
		})
	}
	read(config.CategoryBatting, l.files.Batting, &bat)
	read(config.CategoryBowling, l.files.Bowling, &bowl)
	read(config.CategoryFielding, l.files.Fielding, &fld)
	read("unified", l.files.Unified, &uni)
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap.Batting = aggregate.DecodeBatting(bat)
	snap.Bowling = aggregate.DecodeBowling(bowl)
	snap.Fielding = aggregate.DecodeFielding(fld)
	snap.Players = aggregate.DecodeUnified(uni)
	sort.Strings(snap.Missing)

	l.log.WithFields(logrus.Fields{
		"batting":  len(snap.Batting),
		"bowling":  len(snap.Bowling),
		"fielding": len(snap.Fielding),
		"players":  len(snap.Players),
	}).Info("snapshot loaded")
	return snap, nil
}
