// Package parser turns raw export bytes into records.Table values.
package parser

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/22chandu94/DragonsDashboard/internal/config"
	pcsv "github.com/22chandu94/DragonsDashboard/internal/parser/csv"
	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// Parser reads one export. It returns the table and the number of rows it
// had to skip.
type Parser interface {
	Parse(r io.Reader, name string) (records.Table, int, error)
}

// Kinds lists the parser kinds New accepts.
var Kinds = []string{"csv", "tsv"}

// New returns the parser for kind. An empty kind means "csv"; "tsv" is the
// CSV parser with a tab delimiter unless the options set one.
func New(kind string, opts config.Options, log logrus.FieldLogger) (Parser, error) {
	switch kind {
	case "", "csv":
		return pcsv.NewParser(pcsv.OptionsFromConfig(opts), log), nil
	case "tsv":
		o := pcsv.OptionsFromConfig(opts)
		if _, set := opts["comma"]; !set {
			o.Comma = '\t'
		}
		return pcsv.NewParser(o, log), nil
	}
	return nil, fmt.Errorf("unsupported parser kind %q", kind)
}
