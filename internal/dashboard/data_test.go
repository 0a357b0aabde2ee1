package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22chandu94/DragonsDashboard/internal/aggregate"
	"github.com/22chandu94/DragonsDashboard/internal/config"
	"github.com/22chandu94/DragonsDashboard/internal/storage"
	"github.com/22chandu94/DragonsDashboard/internal/storage/flatfile"
	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

var testFiles = Files{
	Batting:  "bat.csv",
	Bowling:  "bowl.csv",
	Fielding: "field.csv",
	Unified:  "all.csv",
}

// publish writes outputs into a fresh flat-file repository.
func publish(t *testing.T, outs map[string]aggregate.Output) *flatfile.Repository {
	t.Helper()
	repo, err := flatfile.New(t.TempDir(), ',')
	require.NoError(t, err)
	snap, err := repo.Begin(context.Background())
	require.NoError(t, err)
	for name, o := range outs {
		require.NoError(t, snap.Stage(context.Background(), name, o.Header, o.Rows))
	}
	require.NoError(t, snap.Commit())
	return repo
}

func seasonOutputs() map[string]aggregate.Output {
	bat := []aggregate.BattingRow{
		{Name: "Asha Rao", Team: "SPVGG Dragons", Matches: 7, Innings: 7, Runs: 200, Average: 33.33, StrikeRate: 125, BallsFaced: 160, Fours: 16, Sixes: 5},
		{Name: "Chen Wei", Team: "SPVGG Dragons", Matches: 2, Innings: 2, Runs: 15, Average: 7.5, StrikeRate: 75, BallsFaced: 20, Fours: 1},
	}
	return map[string]aggregate.Output{
		testFiles.Batting: aggregate.BattingOutput(bat),
		testFiles.Bowling: aggregate.BowlingOutput([]aggregate.BowlingRow{
			{PlayerID: "1", Name: "Asha Rao", Team: "SPVGG Dragons", Wickets: 8, BallsBowled: 120, OversBowled: 20, Economy: 6.9, StrikeRate: 15, Style: "Right-arm medium"},
		}),
		testFiles.Fielding: aggregate.FieldingOutput([]aggregate.FieldingRow{
			{PlayerID: "1", Name: "Asha Rao", Team: "SPVGG Dragons", Matches: 7, Catches: 3, TotalCatches: 3, TotalDismissals: 5, DismissalsPerMatch: 0.71},
		}),
		testFiles.Unified: aggregate.UnifiedOutput(aggregate.Unified(bat)),
	}
}

func TestLoader_ReadsEveryTable(t *testing.T) {
	repo := publish(t, seasonOutputs())
	l := NewLoader(repo, testFiles, nil)

	snap, err := l.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Batting, 2)
	require.Len(t, snap.Bowling, 1)
	require.Len(t, snap.Fielding, 1)
	require.Len(t, snap.Players, 2)
	assert.Empty(t, snap.Missing)

	assert.Equal(t, 200, snap.Batting[0].Runs)
	assert.Equal(t, "1", snap.Bowling[0].PlayerID)
	assert.InDelta(t, 0.71, snap.Fielding[0].DismissalsPerMatch, 1e-9)
	assert.Equal(t, 160, snap.Players[0].BallFaced)
}

func TestLoader_MissingTablesAreEmpty(t *testing.T) {
	outs := seasonOutputs()
	delete(outs, testFiles.Bowling)
	delete(outs, testFiles.Unified)
	repo := publish(t, outs)

	logger, hook := test.NewNullLogger()
	snap, err := NewLoader(repo, testFiles, logger).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Bowling)
	assert.Empty(t, snap.Players)
	assert.Len(t, snap.Batting, 2)
	assert.Equal(t, []string{config.CategoryBowling, "unified"}, snap.Missing)
	assert.NotEmpty(t, hook.AllEntries())
}

type countingRepo struct {
	storage.Repository
	reads atomic.Int32
	err   error
}

func (c *countingRepo) Read(ctx context.Context, name string) (records.Table, error) {
	c.reads.Add(1)
	if c.err != nil {
		return records.Table{}, c.err
	}
	return c.Repository.Read(ctx, name)
}

func TestLoader_LoadsOnce(t *testing.T) {
	repo := &countingRepo{Repository: publish(t, seasonOutputs())}
	l := NewLoader(repo, testFiles, nil)

	for i := 0; i < 3; i++ {
		_, err := l.Snapshot(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(4), repo.reads.Load())
}

func TestLoader_CancelledFirstRequestStillLoads(t *testing.T) {
	repo := &countingRepo{Repository: publish(t, seasonOutputs())}
	l := NewLoader(repo, testFiles, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	first, err := l.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, first.Batting, 2)

	second, err := l.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, second.Players, 2)
	assert.Empty(t, second.Missing)
	assert.Equal(t, int32(4), repo.reads.Load())
}

func TestLoader_ReadErrorIsReturned(t *testing.T) {
	boom := errors.New("disk on fire")
	repo := &countingRepo{Repository: publish(t, nil), err: boom}

	_, err := NewLoader(repo, testFiles, nil).Snapshot(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFilesFromConfig(t *testing.T) {
	p := config.Pipeline{
		Categories:    config.Categories{Bowling: config.Category{Output: "bowl.csv"}},
		UnifiedOutput: "",
	}
	assert.Equal(t, Files{
		Batting:  config.DefaultOutputs[config.CategoryBatting],
		Bowling:  "bowl.csv",
		Fielding: config.DefaultOutputs[config.CategoryFielding],
		Unified:  config.DefaultUnifiedOutput,
	}, FilesFromConfig(p))
}
