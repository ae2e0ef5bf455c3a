package pipeline

import (
	"context"

	"github.com/matzehuels/tipmark/pkg/cache"
	"github.com/matzehuels/tipmark/pkg/config"
)

// ExecuteCached is Execute backed by r.Cache. The cache is only used when
// every requested format is present; hit reports that case, and the result
// then carries Artifacts alone. Cache failures are logged and otherwise
// ignored.
func (r *Runner) ExecuteCached(ctx context.Context, d *config.Document, opts Options) (result *Result, hit bool, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if r.Cache == nil {
		result, err := r.Execute(ctx, d, opts)
		return result, false, err
	}

	docHash, err := cache.HashValue(d)
	if err != nil {
		r.Logger.Warn("document not hashable, skipping cache", "error", err)
		result, err := r.Execute(ctx, d, opts)
		return result, false, err
	}

	keys := make(map[string]string, len(opts.Formats))
	cached := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		keys[f] = cache.ArtifactKey(docHash, artifactKeyOpts(f, opts))
		data, ok, err := r.Cache.Get(ctx, keys[f])
		if err != nil {
			r.Logger.Warn("cache read failed", "format", f, "error", err)
		}
		if ok {
			cached[f] = data
		}
	}
	if len(cached) == len(opts.Formats) {
		r.Logger.Debug("artifacts served from cache", "formats", opts.Formats)
		return &Result{Artifacts: cached}, true, nil
	}

	result, err = r.Execute(ctx, d, opts)
	if err != nil {
		return nil, false, err
	}
	for f, data := range result.Artifacts {
		if err := r.Cache.Set(ctx, keys[f], data, cache.DefaultTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", f, "error", err)
		}
	}
	return result, false, nil
}

func artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Surface:  opts.Surface,
		Memory:   opts.Memory,
		HideDots: opts.HideDots,
	}
	if format == FormatPNG {
		k.Scale = opts.Scale
	}
	return k
}
