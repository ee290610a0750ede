package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	shapeGroups []string
	shapeFormat string
)

var shapeCmd = &cobra.Command{
	Use:   "shape [inputs...]",
	Short: "Group input rows and print the shaped data of each root group",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShape(cmd.OutOrStdout(), currentSource(args), shapeGroups, shapeFormat)
	},
}

func runShape(w io.Writer, src source, groups []string, format string) error {
	g, err := src.load(true)
	if err != nil {
		return err
	}

	names := groups
	if len(names) == 0 {
		names = g.Children()
	}
	out := orderedmap.New[string, any]()
	for _, name := range names {
		if _, ok := g.Group(name); !ok {
			return fmt.Errorf("unknown group %q", name)
		}
		data := g.Data(name)
		if data == nil {
			data = []any{}
		}
		out.Set(name, data)
	}
	return write(w, format, out)
}

var rowsFormat string

var rowsCmd = &cobra.Command{
	Use:   "rows [inputs...]",
	Short: "Print the rows read from the inputs, unchanged",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRows(cmd.OutOrStdout(), currentSource(args), rowsFormat)
	},
}

func runRows(w io.Writer, src source, format string) error {
	g, err := src.load(false)
	if err != nil {
		return err
	}
	rows := g.Rows()
	if rows == nil {
		rows = []any{}
	}
	return write(w, format, rows)
}

func init() {
	shapeCmd.Flags().StringSliceVarP(&shapeGroups, "group", "g", nil, "Root group to print (repeatable; default all)")
	shapeCmd.Flags().StringVar(&shapeFormat, "format", FormatJSON, "Output format: json, yaml or dump")
	rowsCmd.Flags().StringVar(&rowsFormat, "format", FormatJSON, "Output format: json, yaml or dump")
	rootCmd.AddCommand(shapeCmd, rowsCmd)
}
