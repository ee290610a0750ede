package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/agentic-research/regroup/api"
	"github.com/agentic-research/regroup/internal/config"
	"github.com/agentic-research/regroup/internal/graph"
	"github.com/agentic-research/regroup/internal/ingest"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	selector   string
	table      string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to grouping specification (.yaml, .json, .hcl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log ingestion progress")
	rootCmd.PersistentFlags().StringVar(&selector, "select", "", "JSONPath selecting rows inside JSON/YAML inputs")
	rootCmd.PersistentFlags().StringVar(&table, "table", ingest.DefaultTable, "Table to read from SQLite inputs")
}

var rootCmd = &cobra.Command{
	Use:           "regroup",
	Short:         "Regroup: turn flat rows into nested, de-duplicated object graphs",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// source describes where rows come from and how they are grouped.
type source struct {
	ConfigPath string
	Selector   string
	Table      string
	Inputs     []string
}

func currentSource(inputs []string) source {
	return source{
		ConfigPath: configPath,
		Selector:   selector,
		Table:      table,
		Inputs:     inputs,
	}
}

func (s source) config() (*api.Config, error) {
	if s.ConfigPath == "" {
		return nil, fmt.Errorf("no specification given (use --config)")
	}
	cfg, err := config.Load(s.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load specification: %w", err)
	}
	return cfg, nil
}

// load builds the graph described by the specification, or an ungrouped
// graph when grouped is false, and ingests every input into it.
func (s source) load(grouped bool) (*graph.Graph, error) {
	var g *graph.Graph
	if grouped {
		cfg, err := s.config()
		if err != nil {
			return nil, err
		}
		if g, err = config.NewGraph(cfg, nil); err != nil {
			return nil, fmt.Errorf("build groups: %w", err)
		}
	} else {
		var err error
		if g, err = graph.New(); err != nil {
			return nil, err
		}
	}

	e := ingest.NewEngine(g)
	e.Selector = s.Selector
	e.Table = s.Table
	for _, in := range s.Inputs {
		if err := e.Ingest(in); err != nil {
			return nil, err
		}
	}
	slog.Debug("ingestion complete", "inputs", len(s.Inputs), "rows", g.Len())
	return g, nil
}
