package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "100%"
	chartHeight = "420px"
	// EChartsAsset is loaded once by the page layout; chart fragments do not
	// carry their own script tags for it.
	EChartsAsset = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

	minSymbolSize = 6
	maxSymbolSize = 25
)

// series is one named bar series. Series sharing a Stack are stacked.
type series struct {
	Name   string
	Values []float64
	Stack  string
}

// point is one scatter marker. Size is relative: the largest Size in a chart
// gets maxSymbolSize.
type point struct {
	Name string
	X, Y float64
	Size float64
}

// pointGroup is one scatter series.
type pointGroup struct {
	Name   string
	Points []point
}

type renderer interface {
	Render(w io.Writer) error
}

func barChart(title, yName string, labels []string, ss ...series) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(ss) > 1), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	bar.SetXAxis(labels)
	for _, s := range ss {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(s.Name, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: s.Stack}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(len(ss) == 1), Position: "top"}),
		)
	}
	return bar
}

func scatterChart(title, xName, yName string, groups []pointGroup) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{c}"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(groups) > 1), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value"}),
	)

	var largest float64
	for _, g := range groups {
		for _, p := range g.Points {
			largest = max(largest, p.Size)
		}
	}
	for _, g := range groups {
		data := make([]opts.ScatterData, len(g.Points))
		for i, p := range g.Points {
			data[i] = opts.ScatterData{
				Name:       p.Name,
				Value:      []any{p.X, p.Y, p.Name},
				SymbolSize: symbolSize(p.Size, largest),
			}
		}
		scatter.AddSeries(g.Name, data)
	}
	return scatter
}

// symbolSize scales size linearly into [minSymbolSize, maxSymbolSize].
func symbolSize(size, largest float64) int {
	if largest <= 0 || size <= 0 {
		return minSymbolSize
	}
	return minSymbolSize + int(size/largest*float64(maxSymbolSize-minSymbolSize))
}

func pieChart(title string, shares []Share, donut bool) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	data := make([]opts.PieData, len(shares))
	for i, s := range shares {
		data[i] = opts.PieData{Name: s.Name, Value: s.Value}
	}
	radius := any("70%")
	if donut {
		radius = []string{"40%", "70%"}
	}
	pie.AddSeries(title, data).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: radius}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
	)
	return pie
}

// fragment renders a chart and keeps only its element and script, so
// several charts can share one page.
func fragment(c renderer) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return template.HTML(chartContent(buf.String())), nil
}

// chartContent cuts the chart container and script out of a full echarts
// page. Input that is not a full page is returned unchanged.
func chartContent(page string) string {
	trimmed := strings.TrimSpace(page)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return page
	}
	start := strings.Index(page, `<div class="container">`)
	end := strings.Index(page, `</body>`)
	if start == -1 || end == -1 || end < start {
		return page
	}
	content := strings.ReplaceAll(page[start:end], `class="container"`, `class="chart"`)
	return stripStyles(content)
}

func stripStyles(s string) string {
	const startTag, endTag = "<style>", "</style>"
	for {
		i := strings.Index(s, startTag)
		if i == -1 {
			return s
		}
		j := strings.Index(s[i:], endTag)
		if j == -1 {
			return s
		}
		s = s[:i] + s[i+j+len(endTag):]
	}
}
