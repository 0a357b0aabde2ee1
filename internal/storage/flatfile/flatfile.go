// Package flatfile stores published tables as delimited text files in one
// directory. It registers two storage kinds: "csv" (comma separated) and
// "tsv" (tab separated).
//
// Staged tables are written to hidden temporary files next to their final
// name and fsynced; Commit renames them into place. A rename is atomic per
// file, so a reader sees either the old or the new version of any table,
// never a partial one.
//
// The set of tables is not swapped atomically. Before renaming, Commit keeps
// a hidden backup of every table it replaces; if a later rename fails, the
// tables already renamed are restored from those backups (or removed when
// they did not exist before), so a failed Commit leaves the previous set in
// place. A crash in the middle of Commit can still leave a mix of old and
// new tables, each of them complete.
package flatfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	pcsv "github.com/22chandu94/DragonsDashboard/internal/parser/csv"
	"github.com/22chandu94/DragonsDashboard/internal/storage"
	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// ErrClosed is returned by a Snapshot used after Commit or Discard.
var ErrClosed = errors.New("snapshot already committed or discarded")

func init() {
	storage.Register("csv", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return New(cfg.Dir, ',')
	})
	storage.Register("tsv", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return New(cfg.Dir, '\t')
	})
}

// Repository is a directory of delimited files.
type Repository struct {
	dir   string
	comma rune
}

// New returns a Repository rooted at dir, creating the directory if needed.
func New(dir string, comma rune) (*Repository, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("flatfile: create dir %s: %w", dir, err)
	}
	return &Repository{dir: dir, comma: comma}, nil
}

// Dir returns the directory tables are published to.
func (r *Repository) Dir() string { return r.dir }

// Begin starts a snapshot.
func (r *Repository) Begin(ctx context.Context) (storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &snapshot{repo: r, staged: map[string]string{}}, nil
}

// Read parses the published file name. Headers are kept verbatim.
func (r *Repository) Read(ctx context.Context, name string) (records.Table, error) {
	if err := ctx.Err(); err != nil {
		return records.Table{}, err
	}
	path := filepath.Join(r.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return records.Table{}, fmt.Errorf("flatfile: open %s: %w", path, err)
	}
	defer f.Close()

	p := pcsv.NewParser(pcsv.Options{Comma: r.comma, TrimSpace: true, RawHeaders: true}, logrus.StandardLogger())
	t, _, err := p.Parse(f, name)
	if err != nil {
		return records.Table{}, fmt.Errorf("flatfile: %w", err)
	}
	return t, nil
}

// Close is a no-op; files are closed as soon as they are written or read.
func (r *Repository) Close() error { return nil }

type snapshot struct {
	repo *Repository

	mu     sync.Mutex
	order  []string
	staged map[string]string // final name -> temp path
	done   bool
}

// Stage writes header and rows to a temporary file. Staging the same name
// twice replaces the earlier content.
func (s *snapshot) Stage(ctx context.Context, name string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("flatfile: invalid table name %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrClosed
	}

	tmp, err := os.CreateTemp(s.repo.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("flatfile: stage %s: %w", name, err)
	}
	if err := writeTable(tmp, s.repo.comma, header, rows); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("flatfile: stage %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("flatfile: stage %s: close: %w", name, err)
	}

	if prev, ok := s.staged[name]; ok {
		os.Remove(prev)
	} else {
		s.order = append(s.order, name)
	}
	s.staged[name] = tmp.Name()
	return nil
}

func writeTable(f *os.File, comma rune, header []string, rows [][]string) error {
	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	if err := f.Chmod(filePerm); err != nil {
		return err
	}
	return f.Sync()
}

// Commit renames every staged file into place in staging order. When a
// rename fails, the tables renamed before it are rolled back.
func (s *snapshot) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrClosed
	}
	s.done = true

	removeStaged := func(names []string) {
		for _, name := range names {
			os.Remove(s.staged[name])
		}
	}

	backups := map[string]string{} // final name -> backup path
	defer func() {
		for _, b := range backups {
			os.Remove(b)
		}
	}()
	for _, name := range s.order {
		b, err := s.backup(name)
		if err != nil {
			removeStaged(s.order)
			return fmt.Errorf("flatfile: commit %s: backup: %w", name, err)
		}
		if b != "" {
			backups[name] = b
		}
	}

	for i, name := range s.order {
		final := filepath.Join(s.repo.dir, name)
		if err := os.Rename(s.staged[name], final); err != nil {
			removeStaged(s.order[i:])
			if rerr := s.rollback(s.order[:i], backups); rerr != nil {
				return fmt.Errorf("flatfile: commit %s: %w (rollback: %v)", name, err, rerr)
			}
			return fmt.Errorf("flatfile: commit %s: %w", name, err)
		}
	}
	return nil
}

// backup preserves the published file name under a hidden name and returns
// that path, or "" when there is no regular file to preserve. A hard link is
// tried first; filesystems without links get a copy.
func (s *snapshot) backup(name string) (string, error) {
	final := filepath.Join(s.repo.dir, name)
	fi, err := os.Lstat(final)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !fi.Mode().IsRegular() {
		return "", nil
	}

	tmp, err := os.CreateTemp(s.repo.dir, "."+name+".*.bak")
	if err != nil {
		return "", err
	}
	path := tmp.Name()
	tmp.Close()
	os.Remove(path)
	if err := os.Link(final, path); err == nil {
		return path, nil
	}
	if err := copyFile(final, path); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// rollback puts back the previous version of every name in renamed.
func (s *snapshot) rollback(renamed []string, backups map[string]string) error {
	var errs []error
	for _, name := range renamed {
		final := filepath.Join(s.repo.dir, name)
		if b, ok := backups[name]; ok {
			if err := os.Rename(b, final); err != nil {
				errs = append(errs, err)
				continue
			}
			delete(backups, name)
			continue
		}
		if err := os.Remove(final); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Discard removes every staged file. It is safe to call after Commit.
func (s *snapshot) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil
	}
	s.done = true

	var errs []error
	for _, name := range s.order {
		if err := os.Remove(s.staged[name]); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
