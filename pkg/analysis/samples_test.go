package analysis

import (
	"testing"

	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/lookup"
	"vigil-hq/vigil/pkg/providers"
)

func newTestResolver(opts *SampleValueOptions, ids ...providers.Identifier) *SampleValueResolver {
	reg := providers.NewRegistry[providers.Identifier]()
	reg.Register(ids...)
	return NewSampleValueResolver(reg, lookup.NewFallbackRegistry(), opts)
}

func TestSampleValuePrecedence(t *testing.T) {
	spy := newSpySampleCache()
	resolver := newTestResolver(&SampleValueOptions{
		Cache:         spy,
		HostOverrides: map[string]any{"valueHost1": "sampleValue1"},
		KeyOverrides:  map[string]any{lookup.KeyNumber: 99.9},
	}, &fakeIdentifier{key: lookup.KeyNumber, sample: -100.5})

	vh := &conftree.ValueHostConfig{Name: "valueHost1", DataType: lookup.KeyNumber}

	// Host override beats everything and is never cached.
	got, ok := resolver.GetSampleValue(lookup.KeyNumber, vh)
	if !ok || got != "sampleValue1" {
		t.Errorf("with host override: got %v, want sampleValue1", got)
	}

	// Key override beats the identifier.
	other := &conftree.ValueHostConfig{Name: "valueHost2", DataType: lookup.KeyNumber}
	got, ok = resolver.GetSampleValue(lookup.KeyNumber, other)
	if !ok || got != 99.9 {
		t.Errorf("with key override: got %v, want 99.9", got)
	}

	if len(spy.sets) != 0 {
		t.Errorf("override resolutions wrote to the cache: %v", spy.sets)
	}
}

func TestSampleValueIdentifierResolution(t *testing.T) {
	spy := newSpySampleCache()
	resolver := newTestResolver(&SampleValueOptions{Cache: spy},
		&fakeIdentifier{key: "Score", sample: 4.2})

	got, ok := resolver.GetSampleValue("Score", nil)
	if !ok || got != 4.2 {
		t.Fatalf("got %v, want 4.2", got)
	}
	if len(spy.sets) != 1 || spy.sets[0] != "Score" {
		t.Errorf("cache writes = %v, want one write under the requested key", spy.sets)
	}

	// A second resolution is served from the cache.
	if _, ok := resolver.GetSampleValue("score", nil); !ok {
		t.Error("cached value not found under case-insensitive identity")
	}
	if len(spy.sets) != 1 {
		t.Errorf("cache writes after repeat = %d, want 1", len(spy.sets))
	}
}

func TestSampleValueFallbackStandin(t *testing.T) {
	spy := newSpySampleCache()
	reg := providers.NewRegistry[providers.Identifier]()
	fallbacks := lookup.NewFallbackRegistry()
	fallbacks.Register("Custom", lookup.KeyNumber)
	resolver := NewSampleValueResolver(reg, fallbacks, &SampleValueOptions{Cache: spy})

	got, ok := resolver.GetSampleValue("Custom", nil)
	if !ok {
		t.Fatal("standin identifier should supply the sample")
	}
	if !providers.IsNumber(got) {
		t.Errorf("got %v (%T), want the built-in number sample", got, got)
	}
	// Cached under the requested key, not the standin.
	if len(spy.sets) != 1 || spy.sets[0] != "Custom" {
		t.Errorf("cache writes = %v, want [Custom]", spy.sets)
	}
}

func TestSampleValueDataTypeRetry(t *testing.T) {
	resolver := newTestResolver(nil, &fakeIdentifier{key: lookup.KeyNumber, sample: 7.0})
	vh := &conftree.ValueHostConfig{Name: "amount", DataType: lookup.KeyNumber}

	got, ok := resolver.GetSampleValue("Unrelated", vh)
	if !ok || got != 7.0 {
		t.Errorf("got %v, want the data type's sample 7.0", got)
	}
}

func TestRegisterSampleValue(t *testing.T) {
	resolver := newTestResolver(nil)
	resolver.RegisterSampleValue("Custom", 42)

	got, ok := resolver.GetSampleValue(" custom ", nil)
	if !ok || got != 42 {
		t.Errorf("got %v, want 42", got)
	}

	resolver.RegisterSampleValue("Custom", 43)
	if got, _ := resolver.GetSampleValue("Custom", nil); got != 43 {
		t.Errorf("got %v after replacement, want 43", got)
	}
}

func TestLRUSampleCache(t *testing.T) {
	cache, err := NewLRUSampleCache(2)
	if err != nil {
		t.Fatalf("NewLRUSampleCache: %v", err)
	}
	cache.Set("A", 1)
	cache.Set("B", 2)
	cache.Set("C", 3)

	if _, ok := cache.Get("A"); ok {
		t.Error("oldest entry survived past the cache bound")
	}
	if v, ok := cache.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %v, %v; want 3 under folded identity", v, ok)
	}

	if _, err := NewLRUSampleCache(0); err == nil {
		t.Error("size 0 should be rejected")
	}
}
