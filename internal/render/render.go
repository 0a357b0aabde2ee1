// Package render formats finalized tables for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/22chandu94/DragonsDashboard/internal/aggregate"
)

// Options controls leaderboard rendering.
type Options struct {
	// Top limits the number of rows; zero or negative renders all rows.
	Top int

	// Title is printed above the table. Empty uses the category name.
	Title string

	// Markdown renders a Markdown table instead of box drawing.
	Markdown bool
}

// Leaderboard writes out as a ranked table. The rank column is the 1-based
// row position in out, which is already sorted.
func Leaderboard(w io.Writer, out aggregate.Output, opt Options) error {
	rows := out.Rows
	if opt.Top > 0 && len(rows) > opt.Top {
		rows = rows[:opt.Top]
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Header = text.FormatDefault

	title := opt.Title
	if title == "" {
		title = out.Category
	}
	tbl.SetTitle(title)

	header := make(table.Row, 0, len(out.Header)+1)
	header = append(header, "#")
	for _, h := range out.Header {
		header = append(header, h)
	}
	tbl.AppendHeader(header)

	var configs []table.ColumnConfig
	for i, h := range out.Header {
		if numericColumn(out, i) {
			configs = append(configs, table.ColumnConfig{Name: h, Align: text.AlignRight})
		}
	}
	tbl.SetColumnConfigs(configs)

	for i, r := range rows {
		row := make(table.Row, 0, len(r)+1)
		row = append(row, i+1)
		for _, v := range r {
			row = append(row, v)
		}
		tbl.AppendRow(row)
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d of %d players", len(rows), out.Len())})

	var rendered string
	if opt.Markdown {
		rendered = tbl.RenderMarkdown()
	} else {
		rendered = tbl.Render()
	}
	_, err := fmt.Fprintln(w, rendered)
	return err
}

// numericColumn reports whether every non-empty cell of column col parses
// as a number.
func numericColumn(out aggregate.Output, col int) bool {
	seen := false
	for _, r := range out.Rows {
		if col >= len(r) || r[col] == "" {
			continue
		}
		if _, err := strconv.ParseFloat(r[col], 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
