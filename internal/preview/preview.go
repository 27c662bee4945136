// Package preview lazily loads and caches the content shown for the
// highlighted candidate. Entries are keyed by canonical path, live open
// documents always win over cached snapshots, and total cached bytes are
// bounded by an LRU.
package preview

import (
	"github.com/Paintersrp/pick/internal/cache"
	"github.com/Paintersrp/pick/internal/docs"
)

type Status int

const (
	StatusPending Status = iota
	StatusLoaded
	StatusUnavailable
)

// Result is what the display layer receives for a highlighted candidate.
// A load that fails is surfaced as StatusUnavailable with a reason, never
// propagated as an error.
type Result struct {
	Status  Status
	Path    string
	Content string
	Reason  string
}

// Source is implemented by candidates that have something to preview.
type Source interface {
	PreviewPath() (string, bool)
}

// Loader performs canonicalization and cold loads for one kind of
// candidate source (local files, bucket objects).
type Loader interface {
	// Canonical normalizes a path into the cache key form. For
	// filesystem paths this resolves symlinks and makes the path
	// absolute.
	Canonical(path string) (string, error)
	// Load reads the content behind a canonical path.
	Load(canonicalPath string) (string, error)
}

type Cache struct {
	entries *cache.Cache
	reg     *docs.Registry
	loader  Loader
}

// NewCache builds a preview cache bounded at maxSizeMB. reg may be nil
// when no host document registry is wired in.
func NewCache(maxSizeMB int64, reg *docs.Registry, loader Loader) (*Cache, error) {
	entries, err := cache.New(maxSizeMB)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, reg: reg, loader: loader}, nil
}

// Get resolves the preview for path. The live-document check runs on
// every request, not just the first: the registry can change between
// requests without notifying this component. A cached entry can still
// diverge from an out-of-session change to the file on disk; that is an
// accepted limitation, there is no invalidation signal in that direction.
func (c *Cache) Get(path string) Result {
	canonical, err := c.loader.Canonical(path)
	if err != nil {
		return Result{Status: StatusUnavailable, Path: path, Reason: "path could not be resolved"}
	}

	if c.reg != nil {
		if content, ok := c.reg.Get(canonical); ok {
			return Result{Status: StatusLoaded, Path: canonical, Content: content}
		}
	}

	if content, ok := c.entries.Get(canonical); ok {
		return Result{Status: StatusLoaded, Path: canonical, Content: content}
	}

	content, err := c.loader.Load(canonical)
	if err != nil {
		return Result{Status: StatusUnavailable, Path: canonical, Reason: err.Error()}
	}

	// An entry too large for the cache is still served, just not kept.
	_ = c.entries.Put(canonical, content)

	return Result{Status: StatusLoaded, Path: canonical, Content: content}
}

// Cached reports how many snapshots the cache currently holds.
func (c *Cache) Cached() int {
	return c.entries.Len()
}
