package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/graphview/scene"
)

func newSceneCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scene <file.hcl>",
		Short: "Validate a scene file and list its graphs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rootOpts.context(cmd.Context(), os.Stderr)
			s, err := scene.Load(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, g := range s.Graphs {
				fmt.Fprintf(out, "%-20s %s  nodes=%d edges=%d\n", g.Name, g.ID.Short(), len(g.Nodes), len(g.Edges))
			}
			fmt.Fprintf(out, "%d graphs, %d nodes, %d edges\n", len(s.Graphs), s.NodeCount(), s.EdgeCount())
			return nil
		},
	}
}
