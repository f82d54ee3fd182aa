package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/encoderdisk/pkg/cache"
	"github.com/matzehuels/encoderdisk/pkg/disk"
	"github.com/matzehuels/encoderdisk/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// A Runner holds no per-run state, so one Runner may serve many goroutines
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute runs validate → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Warnings: opts.Disk.Warnings()}
	for _, w := range result.Warnings {
		opts.Logger.Warn(w)
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	d, err := r.Layout(ctx, opts.Disk)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Disk = d
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Tracks = len(d.Tracks)
	result.Stats.Wedges = len(d.Outlines())

	opts.Logger.Info("laid out disk",
		"bits", d.Config.Bits,
		"tracks", result.Stats.Tracks,
		"wedges", result.Stats.Wedges,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout lays out cfg and reports the event to the pipeline hooks.
func (r *Runner) Layout(ctx context.Context, cfg disk.Config) (disk.Disk, error) {
	if err := ctx.Err(); err != nil {
		return disk.Disk{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, cfg.Bits)
	start := time.Now()

	d, err := disk.Layout(cfg)
	hooks.OnLayoutComplete(ctx, cfg.Bits, len(d.Outlines()), time.Since(start), err)
	return d, err
}

// RenderWithCacheInfo renders every requested format of d. The boolean is
// true when all of them came from the cache. Cache failures are reported to
// the hooks and logged, then the render proceeds uncached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d disk.Disk, opts Options) (map[string][]byte, bool, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	configKey := r.Keyer.ConfigKey(d.Config)
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(configKey, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, ok := r.cacheGet(ctx, key, opts.Logger); ok {
				artifacts[format] = data
				continue
			}
		}
		allCached = false

		data, err := RenderFormat(ctx, d, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		r.cacheSet(ctx, key, data, opts.Logger)
	}

	return artifacts, allCached, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, d disk.Disk, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cacheGet(ctx context.Context, key string, logger *log.Logger) ([]byte, bool) {
	hooks := observability.Cache()
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	switch {
	case err != nil:
		hooks.OnCacheError(ctx, "get", err)
		logger.Warn("cache read failed", "err", err)
		return nil, false
	case hit:
		hooks.OnCacheHit(ctx, "artifact")
		return data, true
	default:
		hooks.OnCacheMiss(ctx, "artifact")
		return nil, false
	}
}

func (r *Runner) cacheSet(ctx context.Context, key string, data []byte, logger *log.Logger) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, r.TTL)
	})
	if err != nil {
		observability.Cache().OnCacheError(ctx, "set", err)
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}
