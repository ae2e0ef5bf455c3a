// Package cache stores rendered artifacts between runs.
//
// Rendering through a live browser surface takes seconds per document, so
// the CLI and the HTTP endpoint look artifacts up by a hash of the plot
// document and the options that affect the output. Entries live in a local
// directory ([FileCache]), Redis ([RedisCache]) or MongoDB ([MongoCache]).
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.ArtifactKey(docHash, cache.ArtifactKeyOpts{Format: "svg", Surface: "chrome"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    ...
//	}
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with expiring entries. A miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Surface  string  `json:"surface"`
	Memory   string  `json:"memory"`
	Scale    float64 `json:"scale,omitempty"`
	HideDots bool    `json:"hide_dots,omitempty"`
}

// ArtifactKey returns the key of one rendered format of a document.
func ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
