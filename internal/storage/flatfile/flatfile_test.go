package flatfile

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22chandu94/DragonsDashboard/internal/storage"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

/*
TestSnapshot_CommitPublishesAll verifies that staged tables are invisible
until Commit, and that Commit publishes every one of them.
*/
func TestSnapshot_CommitPublishesAll(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := New(dir, ',')
	require.NoError(t, err)

	snap, err := repo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, snap.Stage(ctx, "final_batting_data.csv", []string{"Name", "Runs"}, [][]string{{"Asha", "200"}, {"Bilal, Jr", "15"}}))
	require.NoError(t, snap.Stage(ctx, "final_fielding_data.csv", []string{"Player Name", "Caught & Bowled"}, [][]string{{"Asha", "1"}}))

	_, err = repo.Read(ctx, "final_batting_data.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist, "nothing is visible before commit")

	require.NoError(t, snap.Commit())
	assert.ElementsMatch(t, []string{"final_batting_data.csv", "final_fielding_data.csv"}, listDir(t, dir))

	bat, err := repo.Read(ctx, "final_batting_data.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Runs"}, bat.Columns)
	require.Len(t, bat.Rows, 2)
	assert.Equal(t, "Bilal, Jr", bat.Rows[1]["Name"])

	fld, err := repo.Read(ctx, "final_fielding_data.csv")
	require.NoError(t, err)
	assert.Equal(t, "1", fld.Rows[0]["Caught & Bowled"])

	assert.ErrorIs(t, snap.Commit(), ErrClosed)
	assert.NoError(t, snap.Discard())
}

/*
TestSnapshot_DiscardKeepsPreviousSnapshot verifies that a failed run leaves
the previously published file untouched and no temp files behind.
*/
func TestSnapshot_DiscardKeepsPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "final_bowling_data.csv"), []byte("Player Name\nOld\n"), 0o644))

	repo, err := New(dir, ',')
	require.NoError(t, err)
	snap, err := repo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, snap.Stage(ctx, "final_bowling_data.csv", []string{"Player Name"}, [][]string{{"New"}}))
	require.NoError(t, snap.Discard())

	assert.Equal(t, []string{"final_bowling_data.csv"}, listDir(t, dir))
	got, err := repo.Read(ctx, "final_bowling_data.csv")
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Rows[0]["Player Name"])

	assert.ErrorIs(t, snap.Stage(ctx, "x.csv", nil, nil), ErrClosed)
}

/*
TestSnapshot_FailedCommitRestoresPreviousSet makes the last rename fail by
putting a directory where its table belongs. The tables renamed before it are
rolled back: a.csv gets its old content again and c.csv, which did not exist,
is removed.
*/
func TestSnapshot_FailedCommitRestoresPreviousSet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("n\nold\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b.csv", "blocker"), 0o755))

	repo, err := New(dir, ',')
	require.NoError(t, err)
	snap, err := repo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, snap.Stage(ctx, "a.csv", []string{"n"}, [][]string{{"new"}}))
	require.NoError(t, snap.Stage(ctx, "c.csv", []string{"n"}, [][]string{{"new"}}))
	require.NoError(t, snap.Stage(ctx, "b.csv", []string{"n"}, [][]string{{"new"}}))

	err = snap.Commit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit b.csv")

	assert.ElementsMatch(t, []string{"a.csv", "b.csv"}, listDir(t, dir), "no new tables and no hidden files left")
	got, err := repo.Read(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, "old", got.Rows[0]["n"])
}

func TestSnapshot_CommitReplacesExistingWithoutLeftovers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("n\nold\n"), 0o644))

	repo, err := New(dir, ',')
	require.NoError(t, err)
	snap, err := repo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, snap.Stage(ctx, "a.csv", []string{"n"}, [][]string{{"new"}}))
	require.NoError(t, snap.Commit())

	assert.Equal(t, []string{"a.csv"}, listDir(t, dir))
	got, err := repo.Read(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Rows[0]["n"])
}

func TestSnapshot_RestageReplaces(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := New(dir, ',')
	require.NoError(t, err)
	snap, err := repo.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, snap.Stage(ctx, "a.csv", []string{"n"}, [][]string{{"1"}}))
	require.NoError(t, snap.Stage(ctx, "a.csv", []string{"n"}, [][]string{{"2"}}))
	require.NoError(t, snap.Commit())

	assert.Equal(t, []string{"a.csv"}, listDir(t, dir))
	got, err := repo.Read(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, "2", got.Rows[0]["n"])
}

func TestSnapshot_RejectsPathNames(t *testing.T) {
	repo, err := New(t.TempDir(), ',')
	require.NoError(t, err)
	snap, err := repo.Begin(context.Background())
	require.NoError(t, err)
	assert.Error(t, snap.Stage(context.Background(), "../escape.csv", []string{"a"}, nil))
	assert.Error(t, snap.Stage(context.Background(), "", []string{"a"}, nil))
}

func TestRegisteredKinds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "published")
	repo, err := storage.New(context.Background(), storage.Config{Kind: "tsv", Dir: dir})
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	snap, err := repo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, snap.Stage(ctx, "t.tsv", []string{"Player Name", "Team"}, [][]string{{"Asha", "SPVGG Dragons"}}))
	require.NoError(t, snap.Commit())

	raw, err := os.ReadFile(filepath.Join(dir, "t.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "Player Name\tTeam\nAsha\tSPVGG Dragons\n", string(raw))

	assert.Subset(t, storage.ListKinds(), []string{"csv", "tsv"})
}
