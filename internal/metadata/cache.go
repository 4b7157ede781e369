package metadata

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of resolved definitions kept by CachedProvider.
const DefaultCacheSize = 4096

// CachedProvider memoizes Resolve results of another Provider, keyed by
// definition name. Failed lookups are not cached.
type CachedProvider struct {
	Provider

	cache *lru.Cache[string, *TypeDef]
}

// NewCachedProvider wraps p with an LRU of the given size
// (DefaultCacheSize when size <= 0).
func NewCachedProvider(p Provider, size int) (*CachedProvider, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[string, *TypeDef](size)
	if err != nil {
		return nil, fmt.Errorf("create resolve cache: %w", err)
	}

	return &CachedProvider{Provider: p, cache: cache}, nil
}

// Resolve implements Provider.
func (c *CachedProvider) Resolve(sig TypeSig) (*TypeDef, error) {
	key := sig.DefinitionName()
	if sig.GenericParam {
		return c.Provider.Resolve(sig)
	}

	if def, ok := c.cache.Get(key); ok {
		return def, nil
	}

	def, err := c.Provider.Resolve(sig)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, def)

	return def, nil
}

// Len returns the number of cached definitions.
func (c *CachedProvider) Len() int {
	return c.cache.Len()
}
