package cache

import (
	"context"
	"strings"
)

// Open returns the cache named by target: a redis:// or rediss:// URL, a
// mongodb:// or mongodb+srv:// URI, or a directory for a [FileCache].
func Open(ctx context.Context, target string) (Cache, error) {
	switch {
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return NewRedisCache(ctx, target)
	case strings.HasPrefix(target, "mongodb://"), strings.HasPrefix(target, "mongodb+srv://"):
		return NewMongoCache(ctx, target)
	default:
		return NewFileCache(target)
	}
}
