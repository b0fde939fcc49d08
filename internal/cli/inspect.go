package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-artpack/graph"
)

func (a *app) buildGraph(cmd *cobra.Command) (*graph.Graph, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	r, err := a.resolver()
	if err != nil {
		return nil, err
	}
	return graph.Build(r, cfg.Manifest, cfg.Modules), nil
}

func newGraphCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show which files every selected entry bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.buildGraph(cmd)
			if err != nil {
				return err
			}
			switch strings.ToLower(format) {
			case "text":
				_, err = fmt.Fprint(a.stdout, g.ToText())
			case "json":
				var data []byte
				if data, err = g.ToJSON(); err == nil {
					_, err = fmt.Fprintln(a.stdout, string(data))
				}
			case "dot":
				_, err = fmt.Fprint(a.stdout, g.ToDOT())
			default:
				err = fmt.Errorf("unknown --format %q (want text, json or dot)", format)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or dot")
	return cmd
}

func newExplainCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <entry>",
		Short: "Explain why an entry was or was not selected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.buildGraph(cmd)
			if err != nil {
				return err
			}
			text, err := g.ToExplainText(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, text)
			return nil
		},
	}
}

func newOwnersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "owners <file>",
		Short: "List the selected entries that bundle a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.buildGraph(cmd)
			if err != nil {
				return err
			}
			owners := g.EntriesFor(args[0])
			if len(owners) == 0 {
				warnColor.Fprintf(a.stdout, "no selected entry bundles %s\n", args[0])
				return nil
			}
			for _, key := range owners {
				fmt.Fprintln(a.stdout, key)
			}
			return nil
		},
	}
}
