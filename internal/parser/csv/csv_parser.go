// Package csv reads tournament leaderboard exports into records.Table values.
//
// The parser is lenient in the way real exports require: it strips a UTF-8
// BOM from the first header cell, canonicalizes header names, tolerates stray
// quotes, and soft-skips rows whose width does not match the header instead
// of failing the whole file.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/22chandu94/DragonsDashboard/internal/config"
	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// maxLoggedSkips caps the per-file skip log lines; the total is still counted.
const maxLoggedSkips = 20

// Options configures the CSV parser behavior. All fields are optional.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing whitespace from each value.
	TrimSpace bool

	// LazyQuotes relaxes quote handling (csv.Reader.LazyQuotes).
	LazyQuotes bool

	// HeaderMap maps source header names to canonical keys. Lookups use the
	// trimmed raw header first, then the canonicalized form.
	HeaderMap map[string]string

	// RawHeaders keeps header cells as written (BOM stripped, trimmed) instead
	// of canonicalizing them. Published outputs use display names such as
	// "Player Name" and are read back this way.
	RawHeaders bool
}

// OptionsFromConfig reads parser options from a pipeline options bag:
// comma (string), trim_space (bool, default true), lazy_quotes (bool, default
// true) and header_map (object). Config loaders may lowercase map keys, so
// every header_map key is also registered under its canonical form.
func OptionsFromConfig(o config.Options) Options {
	headerMap := map[string]string{}
	for k, v := range o.StringMap("header_map") {
		headerMap[k] = v
		headerMap[CanonicalName(k)] = v
	}
	return Options{
		Comma:      o.Rune("comma", ','),
		TrimSpace:  o.Bool("trim_space", true),
		LazyQuotes: o.Bool("lazy_quotes", true),
		HeaderMap:  headerMap,
	}
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct {
	opt Options
	log logrus.FieldLogger
}

// NewParser constructs a Parser. A nil logger falls back to the standard
// logrus logger.
func NewParser(opt Options, log logrus.FieldLogger) *Parser {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Parser{opt: opt, log: log}
}

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Parse consumes r and returns a table named name together with the number
// of data rows skipped because they could not be parsed or had the wrong
// width. An empty input or unreadable header is an error.
func (p *Parser) Parse(r io.Reader, name string) (records.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = p.opt.LazyQuotes
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return records.Table{}, 0, fmt.Errorf("read csv header %s: empty input", name)
		}
		return records.Table{}, 0, fmt.Errorf("read csv header %s: %w", name, err)
	}
	headers := NormalizeHeaders(h, p.opt.HeaderMap)
	if p.opt.RawHeaders {
		headers = rawHeaders(h)
	}

	table := records.Table{Name: name, Columns: headers}
	var skipped int
	log := p.log.WithField("source", name)

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if skipped < maxLoggedSkips {
				log.WithField("line", line).WithError(err).Warn("skipping unparsable row")
			}
			skipped++
			continue
		}
		if isBlank(row) {
			continue
		}
		if len(row) != len(headers) {
			if skipped < maxLoggedSkips {
				log.WithFields(logrus.Fields{
					"line":     line,
					"expected": len(headers),
					"got":      len(row),
				}).Warn("skipping row with wrong field count")
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[keyFor(i, headers)] = emptyToNil(val)
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, skipped, nil
}

// NormalizeHeaders produces canonical header keys: BOM stripped, trimmed,
// lowercased, spaces turned into underscores. HeaderMap entries win over the
// generic rule.
func NormalizeHeaders(h []string, headerMap map[string]string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimSpace(strings.TrimPrefix(c, utf8BOM))
		}
		if m, ok := headerMap[c]; ok && m != "" {
			res[i] = m
			continue
		}
		canonical := CanonicalName(c)
		if m, ok := headerMap[canonical]; ok && m != "" {
			res[i] = m
			continue
		}
		res[i] = canonical
	}
	return res
}

func rawHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		if i == 0 {
			col = strings.TrimPrefix(col, utf8BOM)
		}
		res[i] = strings.TrimSpace(col)
	}
	return res
}

// CanonicalName lowercases name and replaces runs of spaces with a single
// underscore.
func CanonicalName(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "_")
}

// keyFor returns the column key for index idx, synthesizing "col_N" for
// blank header cells.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// emptyToNil converts an empty string to nil; all other values are returned as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
