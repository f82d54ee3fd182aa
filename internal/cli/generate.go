package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/encoderdisk/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an encoder disk",
		Long: `Generate an absolute rotary encoder disk.

Every bit of the Gray code becomes one concentric track, most significant
bit outermost. Settings come from the defaults, then the optional --config
TOML file, then any flag given explicitly.

Rendered artifacts are cached locally for faster subsequent runs.`,
		Example: `  encoderdisk generate -b 10 --encoder-diameter 120 -o disk.svg
  encoderdisk generate -c disk.toml -f svg,png -o build/disk
  encoderdisk generate -b 6 -f json -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" {
				formats, err := pipeline.ParseFormats(formatsStr)
				if err != nil {
					return err
				}
				opts.Formats = formats
			}
			resolved, err := resolveOptions(cmd.Flags(), configPath, opts)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), resolved, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML options file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")
	bindOptionFlags(cmd.Flags(), &opts)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	toStdout := output == "-"
	if toStdout {
		if len(opts.Formats) > 1 {
			return fmt.Errorf("cannot write %d formats to stdout", len(opts.Formats))
		}
		out = os.Stderr
		defer func() { out = os.Stdout }()
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	var spinner *Spinner
	if slices.Contains(opts.Formats, pipeline.FormatPDF) || slices.Contains(opts.Formats, pipeline.FormatPNG) {
		spinner = newSpinner(ctx, "Converting with rsvg-convert...")
		spinner.Start()
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		printError("Generation failed")
		return err
	}

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	if toStdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, defaultBaseName(opts))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	printSuccess("Generated %d-bit encoder disk", opts.Disk.Bits)
	printStats(result.Stats.Tracks, result.Stats.Wedges, result.CacheHit)
	for _, p := range paths {
		printFile(p)
	}
	fmt.Fprintln(out)
	printNextStep("Browse the tracks", fmt.Sprintf("%s inspect -b %d", appName, opts.Disk.Bits))
	return nil
}

// defaultBaseName is the output name used without -o, e.g. "encoder-8bit".
func defaultBaseName(opts pipeline.Options) string {
	return fmt.Sprintf("encoder-%dbit", opts.Disk.Bits)
}
