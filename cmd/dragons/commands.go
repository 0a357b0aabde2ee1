package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/22chandu94/DragonsDashboard/internal/config"
	"github.com/22chandu94/DragonsDashboard/internal/dashboard"
	"github.com/22chandu94/DragonsDashboard/internal/pipeline"
	"github.com/22chandu94/DragonsDashboard/internal/render"
	"github.com/22chandu94/DragonsDashboard/internal/storage"
)

func newValidateCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a pipeline file and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := o.loadPipeline(cmd); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration is valid: %s\n", o.configPath)
			return nil
		},
	}
}

func newAggregateCommand(o *rootOptions) *cobra.Command {
	var categories []string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Merge the tournament exports and publish the season tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := o.loadPipeline(cmd)
			if err != nil {
				return err
			}
			flush := setupMetrics(p.Metrics, p.Job, o.log)
			defer flush()

			start := time.Now()
			res, err := pipeline.New(p, o.log).Run(cmd.Context(), categories)
			if err != nil {
				return err
			}
			writeSummary(cmd, res)
			o.log.WithField("elapsed", time.Since(start).Truncate(time.Millisecond).String()).Info("season published")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&categories, "category", nil, "categories to aggregate (batting, bowling, fielding); default all configured")
	return cmd
}

// writeSummary prints one line per published table.
func writeSummary(cmd *cobra.Command, res pipeline.Result) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(cmd.OutOrStdout())
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Table", "File", "Rows"})
	for _, p := range res.Outputs {
		tbl.AppendRow(table.Row{p.Output.Category, p.File, p.Output.Len()})
	}
	tbl.Render()
}

func newLeaderboardCommand(o *rootOptions) *cobra.Command {
	var (
		category string
		top      int
		markdown bool
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Merge one category and print it as a ranked table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := o.loadPipeline(cmd)
			if err != nil {
				return err
			}
			category = strings.ToLower(strings.TrimSpace(category))
			res, err := pipeline.New(p, o.log).Aggregate(cmd.Context(), []string{category})
			if err != nil {
				return err
			}
			out, ok := res.Output(category)
			if !ok {
				return fmt.Errorf("no output for category %q", category)
			}
			return render.Leaderboard(cmd.OutOrStdout(), out, render.Options{Top: top, Markdown: markdown})
		},
	}
	cmd.Flags().StringVar(&category, "category", config.CategoryBatting, "category to print (batting, bowling, fielding)")
	cmd.Flags().IntVar(&top, "top", 10, "rows to print; 0 prints all")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print a Markdown table")
	return cmd
}

func newServeCommand(o *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over the published season tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := o.loadPipeline(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = p.Dashboard.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			repo, err := storage.New(ctx, storage.Config{Kind: p.Storage.Kind, Dir: p.DataDir()})
			if err != nil {
				return err
			}
			defer repo.Close()

			loader := dashboard.NewLoader(repo, dashboard.FilesFromConfig(p), o.log)
			srv := dashboard.NewServer(dashboard.Config{Addr: addr, Mode: p.Dashboard.Mode, Team: p.Team}, loader, o.log)
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address; overrides dashboard.addr")
	return cmd
}
