// Package datasource opens the raw bytes of a tournament export. Sources are
// selected by config.Source.Kind; the only kind today is "file".
package datasource

import (
	"context"
	"fmt"
	"io"

	"github.com/22chandu94/DragonsDashboard/internal/config"
	"github.com/22chandu94/DragonsDashboard/internal/datasource/file"
)

// Source yields a fresh reader over one export per call.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// New returns the Source described by s.
func New(s config.Source) (Source, error) {
	switch s.Kind {
	case "file", "":
		if s.File.Path == "" {
			return nil, fmt.Errorf("source %q: empty file path", s.Label())
		}
		return file.NewLocal(s.File.Path), nil
	default:
		return nil, fmt.Errorf("source %q: unsupported kind %q", s.Label(), s.Kind)
	}
}
