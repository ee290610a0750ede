package cmd

import (
	"fmt"
	"io"

	"github.com/agentic-research/regroup/internal/config"
	"github.com/agentic-research/regroup/internal/lattice"
	"github.com/spf13/cobra"
)

var (
	inferSample   int
	inferRootName string
)

var inferCmd = &cobra.Command{
	Use:   "infer [inputs...]",
	Short: "Propose a grouping specification for the input rows",
	Long: `Infer reads the inputs, finds fields that determine each other and
prints a YAML specification with one group per entity. Entities whose key
determines another entity's key are nested under it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inf := &lattice.Inferrer{Config: lattice.InferConfig{
			SampleSize: inferSample,
			RootName:   inferRootName,
		}}
		return runInfer(cmd.OutOrStdout(), currentSource(args), inf)
	},
}

func init() {
	def := lattice.DefaultInferConfig()
	inferCmd.Flags().IntVar(&inferSample, "sample", def.SampleSize, "Maximum number of rows to analyze")
	inferCmd.Flags().StringVar(&inferRootName, "root-name", def.RootName, "Type name for entities keyed by a bare id field")
	rootCmd.AddCommand(inferCmd)
}

func runInfer(w io.Writer, src source, inf *lattice.Inferrer) error {
	g, err := src.load(false)
	if err != nil {
		return err
	}
	cfg, err := inf.InferFromRecords(g.Rows())
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	out, err := config.MarshalYAML(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
