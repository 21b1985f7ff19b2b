package analysis

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/lookup"
	"vigil-hq/vigil/pkg/providers"
)

// SampleCache stores sample values resolved through identifiers, keyed by
// normalized lookup key. The default is an unbounded map, which is right
// for one-shot audits; long-lived processes can substitute a bounded
// implementation.
type SampleCache interface {
	Get(lookupKey string) (any, bool)
	Set(lookupKey string, value any)
}

type mapSampleCache map[string]any

// NewMapSampleCache creates the default unbounded sample cache.
func NewMapSampleCache() SampleCache {
	return mapSampleCache{}
}

func (c mapSampleCache) Get(key string) (any, bool) {
	v, ok := c[lookup.Fold(key)]
	return v, ok
}

func (c mapSampleCache) Set(key string, value any) {
	c[lookup.Fold(key)] = value
}

type lruSampleCache struct {
	cache *lru.Cache[string, any]
}

// NewLRUSampleCache creates a bounded sample cache for audits that share a
// resolver across many runs, such as watch mode.
func NewLRUSampleCache(size int) (SampleCache, error) {
	cache, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create sample cache: %w", err)
	}
	return &lruSampleCache{cache: cache}, nil
}

func (c *lruSampleCache) Get(key string) (any, bool) {
	return c.cache.Get(lookup.Fold(key))
}

func (c *lruSampleCache) Set(key string, value any) {
	c.cache.Add(lookup.Fold(key), value)
}

// SampleValueOptions configures a SampleValueResolver.
type SampleValueOptions struct {
	// Cache overrides the default unbounded map cache.
	Cache SampleCache

	// HostOverrides supplies explicit samples per value-host name. The
	// map is read live on every resolution and never copied or cached.
	HostOverrides map[string]any

	// KeyOverrides supplies explicit samples per lookup key, also read
	// live and never cached.
	KeyOverrides map[string]any
}

// SampleValueResolver produces a representative native value for a lookup
// key or a named value host, used to probe converters and comparers
// without live data.
//
// Resolution precedence: per-host override, per-key override, cached or
// identifier-resolved value for the requested key (retrying once through
// the fallback registry), then the same for the host's data type. Values
// resolved through identifiers are cached under the originally requested
// key; override values are never cached.
type SampleValueResolver struct {
	identifiers *providers.Registry[providers.Identifier]
	fallbacks   *lookup.FallbackRegistry
	cache       SampleCache
	hostValues  map[string]any
	keyValues   map[string]any
}

// NewSampleValueResolver creates a resolver over the given identifier
// registry and fallback registry. opts may be nil.
func NewSampleValueResolver(identifiers *providers.Registry[providers.Identifier], fallbacks *lookup.FallbackRegistry, opts *SampleValueOptions) *SampleValueResolver {
	if opts == nil {
		opts = &SampleValueOptions{}
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewMapSampleCache()
	}
	return &SampleValueResolver{
		identifiers: identifiers,
		fallbacks:   fallbacks,
		cache:       cache,
		hostValues:  opts.HostOverrides,
		keyValues:   opts.KeyOverrides,
	}
}

// RegisterSampleValue writes value into the cache under lookupKey,
// replacing any cached entry.
func (r *SampleValueResolver) RegisterSampleValue(lookupKey string, value any) {
	if lookup.Normalize(lookupKey) == "" {
		return
	}
	r.cache.Set(lookupKey, value)
}

// GetSampleValue resolves a sample value for lookupKey in the context of
// vh. It returns false when no sample is available.
func (r *SampleValueResolver) GetSampleValue(lookupKey string, vh *conftree.ValueHostConfig) (any, bool) {
	if vh != nil {
		if v, ok := r.hostValues[vh.Name]; ok {
			return v, true
		}
	}
	if v, ok := overrideFor(r.keyValues, lookupKey); ok {
		return v, true
	}
	if v, ok := r.resolveKey(lookupKey); ok {
		return v, true
	}
	if vh != nil && vh.DataType != "" && !lookup.Equal(vh.DataType, lookupKey) {
		if v, ok := overrideFor(r.keyValues, vh.DataType); ok {
			return v, true
		}
		return r.resolveKey(vh.DataType)
	}
	return nil, false
}

// resolveKey resolves one key through the cache and the identifier
// registry, retrying once with the fallback registry's standin. Successes
// are cached under the requested key, not the standin.
func (r *SampleValueResolver) resolveKey(key string) (any, bool) {
	if lookup.Normalize(key) == "" {
		return nil, false
	}
	if v, ok := r.cache.Get(key); ok {
		return v, true
	}
	id, ok := r.identify(key)
	if !ok {
		standin, found := r.fallbacks.Resolve(key)
		if !found {
			return nil, false
		}
		if id, ok = r.identify(standin); !ok {
			return nil, false
		}
	}
	var v any
	if err := capture(func() { v = id.SampleValue() }); err != nil {
		return nil, false
	}
	r.cache.Set(key, v)
	return v, true
}

func (r *SampleValueResolver) identify(key string) (providers.Identifier, bool) {
	for _, id := range r.identifiers.All() {
		var match bool
		if err := capture(func() { match = lookup.Equal(id.DataTypeLookupKey(), key) }); err != nil {
			continue
		}
		if match {
			return id, true
		}
	}
	return providers.BuiltinIdentifierFor(key)
}

func overrideFor(values map[string]any, key string) (any, bool) {
	for k, v := range values {
		if lookup.Equal(k, key) {
			return v, true
		}
	}
	return nil, false
}
