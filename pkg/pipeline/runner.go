package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/autocrate/autocrate/pkg/buildinfo"
	"github.com/autocrate/autocrate/pkg/cache"
	"github.com/autocrate/autocrate/pkg/expr"
	"github.com/autocrate/autocrate/pkg/layout"
)

// Runner executes the generation pipeline with result caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete resolve → layout → serialize pipeline.
// The write to opts.Output, when requested, is atomic: either the full
// expressions file appears or nothing does.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	result := &Result{}
	key := cache.Key(buildinfo.Version, opts.Spec, opts.Policy)

	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			r.Logger.Debug("expression cache hit", "key", key[:16])
			result.Data = data
			result.CacheHit = true
			return result, r.finish(result, opts)
		}
	}

	layoutStart := time.Now()
	l, err := layout.Build(opts.Spec, opts.Policy)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	r.Logger.Info("computed crate layout",
		"skids", l.Skids.Count,
		"floorboards", l.Floor.ActiveCount(),
		"panels", len(l.Panels),
		"duration", result.Stats.LayoutTime)

	serializeStart := time.Now()
	set, err := expr.Build(l, opts.Policy)
	if err != nil {
		return nil, err
	}
	data, err := set.Render()
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Entries = set.Len()
	result.Stats.SerializeTime = time.Since(serializeStart)
	r.Logger.Info("serialized expressions",
		"entries", result.Entries,
		"bytes", len(data),
		"duration", result.Stats.SerializeTime)

	if !opts.NoCache {
		if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
			r.Logger.Debug("expression cache write failed", "err", err)
		}
	}
	return result, r.finish(result, opts)
}

// finish writes the output file when one was requested.
func (r *Runner) finish(result *Result, opts Options) error {
	if opts.Output == "" {
		return nil
	}
	if err := expr.WriteFile(opts.Output, result.Data); err != nil {
		return err
	}
	r.Logger.Info("wrote expressions file", "path", opts.Output)
	return nil
}
