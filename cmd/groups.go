package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentic-research/regroup/internal/config"
	"github.com/agentic-research/regroup/internal/graph"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Print the group tree declared by a specification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGroups(cmd.OutOrStdout(), currentSource(nil))
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(w io.Writer, src source) error {
	cfg, err := src.config()
	if err != nil {
		return err
	}
	roots, err := config.Build(cfg)
	if err != nil {
		return fmt.Errorf("build groups: %w", err)
	}
	for _, g := range roots {
		if err := printGroup(w, g, 0); err != nil {
			return err
		}
	}
	return nil
}

func printGroup(w io.Writer, g *graph.Group, depth int) error {
	c := g.Category()
	typ := g.Type().Name()
	if typ == "" {
		typ = "-"
	}
	line := fmt.Sprintf("%s%s by=%s parent=%s type=%s",
		strings.Repeat("  ", depth), g.Name(),
		quoteParts(c.IDKey().Parts()), quoteParts(c.ParentKey().Parts()), typ)
	if c.IncludeBlank() {
		line += " include_blank"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, name := range g.Children() {
		child, _ := g.Child(name)
		if err := printGroup(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func quoteParts(parts []string) string {
	q := make([]string, len(parts))
	for i, p := range parts {
		q[i] = fmt.Sprintf("%q", p)
	}
	return "[" + strings.Join(q, ", ") + "]"
}
