package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/encoderdisk/pkg/pipeline"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.GraphOptions{Bits: 3}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Draw the Gray code cycle with Graphviz",
		Long: `Draw the Gray code as a cycle: one node per angular position labelled with
its code word, one edge to the next position labelled with the bit that flips.`,
		Example: `  encoderdisk graph -b 4 --circular -o cycle.svg
  encoderdisk graph -b 3 -f dot -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" {
				opts.Formats = []string{formatsStr}
			}
			return c.runGraph(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().IntVarP(&opts.Bits, "bits", "b", opts.Bits, fmt.Sprintf("number of bits (at most %d)", pipeline.MaxGraphBits))
	cmd.Flags().IntVar(&opts.ZeroOffset, "zero-offset", 0, "rotate the code by this many positions")
	cmd.Flags().BoolVar(&opts.Circular, "circular", false, "lay the cycle out on a circle")
	cmd.Flags().BoolVar(&opts.ShowPositions, "positions", false, "add position numbers to node labels")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format: svg (default), pdf, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts pipeline.GraphOptions, output string, noCache bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	format := opts.Formats[0]
	spinner := newSpinner(ctx, "Rendering code cycle...")
	spinner.Start()
	artifacts, err := runner.Graph(ctx, opts)
	spinner.Stop()
	if err != nil {
		printError("Graph rendering failed")
		return err
	}

	if output == "-" {
		_, err := os.Stdout.Write(artifacts[format])
		return err
	}
	paths, err := writeArtifacts(artifacts, opts.Formats, output, fmt.Sprintf("gray-%dbit", opts.Bits))
	if err != nil {
		return err
	}
	printSuccess("Drew %d-position code cycle", 1<<opts.Bits)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
