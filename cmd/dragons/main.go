// Command dragons aggregates a team's per-tournament leaderboard exports into
// season tables and serves them on a dashboard.
//
//	dragons validate    --config pipeline.yaml
//	dragons aggregate   --config pipeline.yaml [--category batting]
//	dragons leaderboard --config pipeline.yaml --category bowling --top 10
//	dragons serve       --config pipeline.yaml
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/22chandu94/DragonsDashboard/internal/config"

	// register all backends with the storage factory.
	_ "github.com/22chandu94/DragonsDashboard/internal/storage/all"
)

const defaultConfigPath = "configs/pipeline.yaml"

// rootOptions holds the persistent flags and the logger built from them.
type rootOptions struct {
	configPath string
	verbose    bool
	logFormat  string

	log *logrus.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:   "dragons",
		Short: "Season statistics aggregator and dashboard for one cricket team",
		Long: `dragons merges per-tournament batting, bowling and fielding leaderboard
exports into one season table per category and serves them on a dashboard.

Commands:
  validate     check a pipeline file
  aggregate    merge the exports and publish the season tables
  leaderboard  print a merged category in the terminal
  serve        run the dashboard over the published tables`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(o.verbose, o.logFormat)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			o.log = log
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", defaultConfigPath, "pipeline config path (JSON or YAML)")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logs")
	root.PersistentFlags().StringVar(&o.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newValidateCommand(o),
		newAggregateCommand(o),
		newLeaderboardCommand(o),
		newServeCommand(o),
	)
	return root
}

func newLogger(verbose bool, format string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	return log, nil
}

// loadPipeline loads and validates the pipeline file, printing every issue
// to stderr. Validation errors fail the command; warnings do not.
func (o *rootOptions) loadPipeline(cmd *cobra.Command) (config.Pipeline, error) {
	p, err := config.Load(o.configPath)
	if err != nil {
		return config.Pipeline{}, err
	}
	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return config.Pipeline{}, fmt.Errorf("configuration is invalid: %s", o.configPath)
	}
	return p, nil
}
