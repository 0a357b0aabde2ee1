// Package storage defines the backend-agnostic contract for publishing a
// season snapshot and reading it back.
//
// Backends register a Factory under a kind name from their init functions
// (see storage/all). Callers obtain a Repository with New and never import a
// backend directly.
//
// A snapshot is all-or-nothing: tables are staged with Snapshot.Stage and
// only become visible to readers after Commit. Discard drops everything
// staged, leaving the previously published tables in place.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "csv" or "tsv".
	Kind string

	// Dir is the directory published tables live in.
	Dir string
}

// Repository publishes and reads named tables.
type Repository interface {
	// Begin starts a new snapshot.
	Begin(ctx context.Context) (Snapshot, error)

	// Read loads a published table. A table that was never published returns
	// an error matching errors.Is(err, fs.ErrNotExist).
	Read(ctx context.Context, name string) (records.Table, error)

	Close() error
}

// Snapshot collects staged tables until Commit or Discard.
type Snapshot interface {
	Stage(ctx context.Context, name string, header []string, rows [][]string) error
	Commit() error
	Discard() error
}

// Factory constructs a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind, replacing any previous
// registration.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens the Repository registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage kind %q (registered: %v)", cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered backend names, sorted.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
