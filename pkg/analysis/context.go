package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/culture"
	"vigil-hq/vigil/pkg/l10n"
	"vigil-hq/vigil/pkg/lookup"
	"vigil-hq/vigil/pkg/providers"
)

// Options configures one audit run. Everything is optional: an empty
// Options audits against the active culture "en", the built-in providers,
// and an empty localizer.
type Options struct {
	// Cultures lists the supported cultures. The first entry becomes the
	// active culture. Defaults to a single "en" entry.
	Cultures []culture.Entry

	// LookupKeyFallbacks maps custom lookup keys to standin keys.
	LookupKeyFallbacks map[string]string

	// SampleValues supplies explicit sample values per lookup key.
	SampleValues map[string]any

	// ValueHostSampleValues supplies explicit sample values per host name.
	ValueHostSampleValues map[string]any

	// SampleCache overrides the resolver's default unbounded cache.
	SampleCache SampleCache

	// Localizer resolves localized text. Defaults to an empty in-memory
	// localizer, which reports every localization key as missing.
	Localizer l10n.TextLocalizer

	// ConditionCategories infers condition categories. Defaults to the
	// built-in condition-type table.
	ConditionCategories CategoryResolver

	// Provider registrations, appended after the built-ins unless
	// WithoutBuiltins is set.
	Formatters  []providers.Formatter
	Converters  []providers.Converter
	Comparers   []providers.Comparer
	Parsers     []providers.Parser
	Identifiers []providers.Identifier

	// WithoutBuiltins skips registering the built-in providers, leaving
	// only the explicitly supplied ones.
	WithoutBuiltins bool
}

// Context drives one audit run. It owns every registry it consults, so
// concurrent audits never share mutable state. A Context is single-use:
// create one per audit.
type Context struct {
	cultures   *culture.Service
	fallbacks  *lookup.FallbackRegistry
	formatters *providers.Registry[providers.Formatter]
	converters *providers.Registry[providers.Converter]
	comparers  *providers.Registry[providers.Comparer]
	parsers    *providers.Registry[providers.Parser]
	ids        *providers.Registry[providers.Identifier]
	samples    *SampleValueResolver
	localizer  l10n.TextLocalizer
	categories CategoryResolver
	analyzers  map[Service]serviceAnalyzer
	report     *Report

	hostNames    map[string]bool // verbatim value-host name inventory
	hostNameList []string
	caseIssues   map[string]bool // folded keys with an emitted case issue
}

// NewContext creates an audit context from opts.
func NewContext(opts Options) *Context {
	cultures := culture.NewService()
	for _, e := range opts.Cultures {
		cultures.Register(e)
	}
	if cultures.ActiveCultureID() == "" {
		cultures.Register(culture.Entry{CultureID: "en"})
	}

	fallbacks := lookup.NewFallbackRegistry()
	for custom, standin := range opts.LookupKeyFallbacks {
		fallbacks.Register(custom, standin)
	}

	c := &Context{
		cultures:   cultures,
		fallbacks:  fallbacks,
		formatters: providers.NewRegistry[providers.Formatter](),
		converters: providers.NewRegistry[providers.Converter](),
		comparers:  providers.NewRegistry[providers.Comparer](),
		parsers:    providers.NewRegistry[providers.Parser](),
		ids:        providers.NewRegistry[providers.Identifier](),
		localizer:  opts.Localizer,
		categories: opts.ConditionCategories,
		hostNames:  make(map[string]bool),
		caseIssues: make(map[string]bool),
		report: &Report{
			AuditID:     uuid.NewString(),
			GeneratedAt: time.Now().UTC(),
		},
	}

	if !opts.WithoutBuiltins {
		c.formatters.Register(providers.BuiltinFormatters()...)
		c.converters.Register(providers.BuiltinConverters()...)
		c.comparers.Register(providers.BuiltinComparers()...)
		c.parsers.Register(providers.BuiltinParsers()...)
		c.ids.Register(providers.BuiltinIdentifiers()...)
	}
	c.formatters.Register(opts.Formatters...)
	c.converters.Register(opts.Converters...)
	c.comparers.Register(opts.Comparers...)
	c.parsers.Register(opts.Parsers...)
	c.ids.Register(opts.Identifiers...)

	if c.localizer == nil {
		c.localizer = l10n.NewInMemoryLocalizer(nil)
	}
	if c.categories == nil {
		c.categories = NewBuiltinCategoryResolver()
	}

	c.samples = NewSampleValueResolver(c.ids, c.fallbacks, &SampleValueOptions{
		Cache:         opts.SampleCache,
		HostOverrides: opts.ValueHostSampleValues,
		KeyOverrides:  opts.SampleValues,
	})

	c.analyzers = map[Service]serviceAnalyzer{
		ServiceIdentifier: &identifierAnalyzer{identifiers: c.ids},
		ServiceFormatter:  &formatterAnalyzer{formatters: c.formatters, cultures: cultures, fallbacks: fallbacks},
		ServiceConverter:  &converterAnalyzer{converters: c.converters, samples: c.samples},
		ServiceComparer:   &comparerAnalyzer{comparers: c.comparers, samples: c.samples},
		ServiceParser:     &parserAnalyzer{parsers: c.parsers, cultures: cultures, fallbacks: fallbacks},
	}

	return c
}

// Report returns the accumulated result model.
func (c *Context) Report() *Report {
	return c.report
}

// Samples returns the context's sample-value resolver.
func (c *Context) Samples() *SampleValueResolver {
	return c.samples
}

// Cultures returns the context's culture registry.
func (c *Context) Cultures() *culture.Service {
	return c.cultures
}

// RegisterValueHostNames seeds the verbatim name inventory consulted by
// value-host reference checks. Analyze calls this with every name in the
// configuration before walking any condition, so forward references
// resolve; callers driving checks directly seed it themselves.
func (c *Context) RegisterValueHostNames(names ...string) {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if !c.hostNames[name] {
			c.hostNames[name] = true
			c.hostNameList = append(c.hostNameList, name)
		}
	}
}

// RegisterLookupKey normalizes key, ensures exactly one LookupKeyInfo row
// exists for it, and resolves the requested service category against that
// row. Re-registering the same (key, service) pair is a no-op that returns
// the first result. A ServiceNone registration marks the key as used as a
// data type and resolves nothing.
//
// A key that case-insensitively matches an already-known or built-in key
// reuses the registered spelling and reports the near miss; a wholly
// unknown key is reported as such once, when its row is created.
func (c *Context) RegisterLookupKey(key string, svc Service, vh *conftree.ValueHostConfig) *ServiceResult {
	return c.registerLookupKey(key, svc, vh, true)
}

func (c *Context) registerLookupKey(key string, svc Service, vh *conftree.ValueHostConfig, allowFallback bool) *ServiceResult {
	trimmed := lookup.Normalize(key)
	if trimmed == "" && vh != nil {
		trimmed = lookup.Normalize(vh.DataType)
	}
	if trimmed == "" {
		return nil
	}

	canonical, known := c.canonicalKey(trimmed)
	if known && canonical != trimmed {
		fold := lookup.Fold(trimmed)
		if !c.caseIssues[fold] {
			c.caseIssues[fold] = true
			c.report.LookupKeysIssues = append(c.report.LookupKeysIssues, Issue{
				Feature:   FeatureLookupKey,
				Severity:  SeverityWarning,
				LookupKey: canonical,
				Message:   fmt.Sprintf("LookupKey %q is a case insensitive match for %q. Fix the spelling so the configuration stays consistent.", trimmed, canonical),
			})
		}
	}

	row := c.report.Info(canonical)
	if row == nil {
		if !known {
			sev := SeverityInfo
			if svc != ServiceNone {
				sev = SeverityWarning
			}
			c.report.LookupKeysIssues = append(c.report.LookupKeysIssues, Issue{
				Feature:   FeatureLookupKey,
				Severity:  sev,
				LookupKey: canonical,
				Message:   fmt.Sprintf("LookupKey %q is not already known. It may be fine, or it may have a typo. If it was meant to be a built-in key, fix the spelling.", canonical),
			})
		}
		row = &LookupKeyInfo{LookupKey: canonical}
		c.report.LookupKeysInfo = append(c.report.LookupKeysInfo, row)
	}

	if svc == ServiceNone || svc == ServiceIdentifier {
		row.UsedAsDataType = true
	}
	if svc == ServiceNone {
		return nil
	}

	if existing := row.ServiceResult(svc); existing != nil {
		return existing
	}

	analyzer, ok := c.analyzers[svc]
	if !ok {
		// Only reachable when the hosting application wired the context
		// incorrectly, never from bad configuration data.
		panic(fmt.Sprintf("analysis: no analyzer registered for service %q", svc))
	}

	result := analyzer.Analyze(canonical, vh)
	row.Services = append(row.Services, result)

	if result.TryFallback && allowFallback {
		if standin, ok := c.fallbacks.Resolve(canonical); ok {
			// One fallback hop only; the standin's own fallback is not
			// chased.
			c.registerLookupKey(standin, svc, vh, false)
		}
	}
	return result
}

// canonicalKey resolves a trimmed key to its registered or built-in
// spelling. The second return reports whether the key was already known.
func (c *Context) canonicalKey(trimmed string) (string, bool) {
	if row := c.report.Info(trimmed); row != nil {
		return row.LookupKey, true
	}
	if builtin, ok := lookup.CanonicalBuiltin(trimmed); ok {
		return builtin, true
	}
	return trimmed, false
}

// keyKnown reports whether key names something resolvable: a built-in
// key, an already-registered row, a registered identifier's key, or a
// custom key with a fallback entry.
func (c *Context) keyKnown(key string) bool {
	if lookup.Normalize(key) == "" {
		return false
	}
	if _, ok := lookup.CanonicalBuiltin(key); ok {
		return true
	}
	if c.report.Info(key) != nil {
		return true
	}
	for _, id := range c.ids.All() {
		var match bool
		if err := capture(func() { match = lookup.Equal(id.DataTypeLookupKey(), key) }); err != nil {
			continue
		}
		if match {
			return true
		}
	}
	_, ok := c.fallbacks.Resolve(key)
	return ok
}
