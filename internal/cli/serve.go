package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/encoderdisk/internal/server"
	"github.com/matzehuels/encoderdisk/pkg/cache"
	"github.com/matzehuels/encoderdisk/pkg/pipeline"
)

type serveOpts struct {
	addr      string
	redisURL  string
	keyPrefix string
	maxBits   int
	maxSegs   int
	timeout   time.Duration
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		keyPrefix: appName + ":",
		maxBits:   server.DefaultMaxBits,
		maxSegs:   server.DefaultMaxSegments,
		timeout:   30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered disks over HTTP",
		Long: `Serve rendered disks over HTTP.

  GET /healthz
  GET /disk.{svg,json,png,pdf}?bits=8&encoder_diameter=100&...
  GET /gray/{bits}

Artifacts are cached in Redis when --redis-url is given, otherwise in the
local cache directory.`,
		Example: `  encoderdisk serve --addr :8080
  encoderdisk serve --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for a shared artifact cache")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", opts.keyPrefix, "prefix for Redis cache keys")
	cmd.Flags().IntVar(&opts.maxBits, "max-bits", opts.maxBits, "largest bit count accepted from clients")
	cmd.Flags().IntVar(&opts.maxSegs, "max-segments", opts.maxSegs, "largest incremental ring segment count accepted from clients")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	var runner *pipeline.Runner
	if opts.redisURL != "" && !opts.noCache {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		runner = pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, opts.keyPrefix), logger)
		logger.Info("using redis cache", "prefix", opts.keyPrefix)
	} else {
		var err error
		if runner, err = c.newRunner(opts.noCache); err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
	}
	defer runner.Close()

	srv := server.New(runner, logger,
		server.WithMaxBits(opts.maxBits),
		server.WithMaxSegments(opts.maxSegs),
		server.WithTimeout(opts.timeout))

	printInfo("Serving on %s", opts.addr)
	if err := srv.ListenAndServe(ctx, opts.addr); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}
