package analysis

import (
	"fmt"

	"vigil-hq/vigil/pkg/lookup"
)

// fakeFormatter supports one lookup key, optionally restricted to a set of
// cultures. An empty culture list means every culture.
type fakeFormatter struct {
	key      string
	cultures []string
}

func (f *fakeFormatter) Supports(lookupKey, cultureID string) bool {
	if !lookup.Equal(lookupKey, f.key) {
		return false
	}
	if len(f.cultures) == 0 {
		return true
	}
	for _, c := range f.cultures {
		if c == cultureID {
			return true
		}
	}
	return false
}

func (f *fakeFormatter) Format(value any, lookupKey, cultureID string) (string, error) {
	return fmt.Sprint(value), nil
}

// fakeIdentifier resolves one lookup key to a fixed sample value.
type fakeIdentifier struct {
	key    string
	sample any
}

func (f *fakeIdentifier) DataTypeLookupKey() string { return f.key }
func (f *fakeIdentifier) SupportsValue(v any) bool  { return false }
func (f *fakeIdentifier) SampleValue() any          { return f.sample }

// fakeConverter accepts any value whose result key matches.
type fakeConverter struct {
	resultKey string
}

func (f *fakeConverter) CanConvert(value any, sourceKey, resultKey string) bool {
	return lookup.Equal(resultKey, f.resultKey)
}

func (f *fakeConverter) Convert(value any, sourceKey, resultKey string) (any, error) {
	return value, nil
}

// fakeComparer supports values under one lookup key.
type fakeComparer struct {
	key string
}

func (f *fakeComparer) SupportsValues(v1, v2 any, k1, k2 string) bool {
	return lookup.Equal(k1, f.key) && lookup.Equal(k2, f.key)
}

func (f *fakeComparer) Compare(v1, v2 any, k1, k2 string) (int, error) {
	return 0, nil
}

// Three distinct parser types so multi-match fan-out is observable through
// classFound. All accept the same lookup key in every culture.
type alphaParser struct{ key string }

func (p *alphaParser) IsCompatible(lookupKey, cultureID string) bool {
	return lookup.Equal(lookupKey, p.key)
}
func (p *alphaParser) Parse(text, lookupKey, cultureID string) (any, error) { return text, nil }

type betaParser struct{ key string }

func (p *betaParser) IsCompatible(lookupKey, cultureID string) bool {
	return lookup.Equal(lookupKey, p.key)
}
func (p *betaParser) Parse(text, lookupKey, cultureID string) (any, error) { return text, nil }

type gammaParser struct{ key string }

func (p *gammaParser) IsCompatible(lookupKey, cultureID string) bool {
	return lookup.Equal(lookupKey, p.key)
}
func (p *gammaParser) Parse(text, lookupKey, cultureID string) (any, error) { return text, nil }

// panickyParser raises in its predicate to exercise panic capture.
type panickyParser struct{}

func (panickyParser) IsCompatible(lookupKey, cultureID string) bool { panic("parser exploded") }
func (panickyParser) Parse(text, lookupKey, cultureID string) (any, error) {
	return nil, nil
}

// spySampleCache records every Set so tests can assert what was cached.
type spySampleCache struct {
	inner SampleCache
	sets  []string
}

func newSpySampleCache() *spySampleCache {
	return &spySampleCache{inner: NewMapSampleCache()}
}

func (s *spySampleCache) Get(key string) (any, bool) { return s.inner.Get(key) }

func (s *spySampleCache) Set(key string, value any) {
	s.sets = append(s.sets, key)
	s.inner.Set(key, value)
}
