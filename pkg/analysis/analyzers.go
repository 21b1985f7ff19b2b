package analysis

import (
	"fmt"

	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/culture"
	"vigil-hq/vigil/pkg/lookup"
	"vigil-hq/vigil/pkg/providers"
)

// serviceAnalyzer resolves one provider category for a lookup key. Each
// resolution runs through every registered culture where the category is
// culture-aware (formatter, parser).
type serviceAnalyzer interface {
	Service() Service
	Analyze(key string, vh *conftree.ValueHostConfig) *ServiceResult
}

// identifierAnalyzer resolves the single identifier matching a lookup key.
// Built-in keys with no registered identifier synthesize the corresponding
// built-in instance.
type identifierAnalyzer struct {
	identifiers *providers.Registry[providers.Identifier]
}

func (a *identifierAnalyzer) Service() Service { return ServiceIdentifier }

func (a *identifierAnalyzer) Analyze(key string, vh *conftree.ValueHostConfig) *ServiceResult {
	key = effectiveKey(key, vh)
	res := &ServiceResult{Service: ServiceIdentifier}

	var failure error
	for _, id := range a.identifiers.All() {
		var match bool
		if err := capture(func() { match = lookup.Equal(id.DataTypeLookupKey(), key) }); err != nil {
			if failure == nil {
				failure = err
			}
			continue
		}
		if match {
			res.Found = true
			res.ClassFound = providers.ClassName(id)
			res.Instance = id
			return res
		}
	}

	if id, ok := providers.BuiltinIdentifierFor(key); ok {
		res.Found = true
		res.ClassFound = providers.ClassName(id)
		res.Instance = id
		return res
	}

	res.Severity = SeverityError
	res.Message = fmt.Sprintf("No DataTypeIdentifier for LookupKey %q", key)
	if failure != nil {
		res.Message = failure.Error()
	}
	return res
}

// formatterAnalyzer resolves a formatter per registered culture. Within a
// culture the first registered formatter wins; a miss on the exact culture
// retries the culture's fallback-chain ancestors.
type formatterAnalyzer struct {
	formatters *providers.Registry[providers.Formatter]
	cultures   *culture.Service
	fallbacks  *lookup.FallbackRegistry
}

func (a *formatterAnalyzer) Service() Service { return ServiceFormatter }

func (a *formatterAnalyzer) Analyze(key string, vh *conftree.ValueHostConfig) *ServiceResult {
	key = effectiveKey(key, vh)
	res := &ServiceResult{Service: ServiceFormatter}

	anyMissing := false
	for _, cid := range a.cultures.AvailableCultures() {
		row := a.analyzeCulture(key, cid)
		res.Cultures = append(res.Cultures, row)
		if row.Found {
			res.Found = true
		} else {
			anyMissing = true
		}
	}

	if anyMissing {
		if _, ok := a.fallbacks.Resolve(key); ok {
			res.TryFallback = true
		}
	}
	return res
}

func (a *formatterAnalyzer) analyzeCulture(key, cultureID string) *CultureSpecificResult {
	row := &CultureSpecificResult{RequestedCultureID: cultureID}

	var failure error
	for _, candidate := range cultureCandidates(a.cultures, cultureID) {
		for _, f := range a.formatters.All() {
			var supports bool
			if err := capture(func() { supports = f.Supports(key, candidate) }); err != nil {
				if failure == nil {
					failure = err
				}
				continue
			}
			if supports {
				row.Found = true
				row.ActualCultureID = candidate
				row.ClassFound = providers.ClassName(f)
				row.Instance = f
				return row
			}
		}
	}

	row.Severity = SeverityError
	row.Message = fmt.Sprintf("No DataTypeFormatter for LookupKey %q with culture %q", key, cultureID)
	if failure != nil {
		row.Message = failure.Error()
	}
	return row
}

// cultureCandidates returns the cultures to probe for one requested
// culture: the culture itself, its fallback-chain ancestors, and the
// closest registered language-only form.
func cultureCandidates(cultures *culture.Service, cultureID string) []string {
	candidates := cultures.FallbackChain(cultureID)
	if closest, ok := cultures.GetClosestCultureID(cultureID); ok {
		found := false
		for _, c := range candidates {
			if c == closest {
				found = true
				break
			}
		}
		if !found {
			candidates = append(candidates, closest)
		}
	}
	return candidates
}

// converterAnalyzer resolves a converter from the value host's data type
// to the requested result key. Converters are probed with a sample value;
// the fallback registry is never consulted.
type converterAnalyzer struct {
	converters *providers.Registry[providers.Converter]
	samples    *SampleValueResolver
}

func (a *converterAnalyzer) Service() Service { return ServiceConverter }

func (a *converterAnalyzer) Analyze(resultKey string, vh *conftree.ValueHostConfig) *ServiceResult {
	resultKey = effectiveKey(resultKey, vh)
	res := &ServiceResult{Service: ServiceConverter}

	sourceKey := ""
	if vh != nil {
		sourceKey = lookup.Normalize(vh.DataType)
	}

	sample, ok := a.samples.GetSampleValue(sourceKey, vh)
	if !ok {
		res.Severity = SeverityWarning
		res.Message = fmt.Sprintf("No sample value found for LookupKey %q. Cannot check for a DataTypeConverter.", sourceKey)
		return res
	}

	var failure error
	for _, conv := range a.converters.All() {
		var can bool
		if err := capture(func() { can = conv.CanConvert(sample, sourceKey, resultKey) }); err != nil {
			if failure == nil {
				failure = err
			}
			continue
		}
		if can {
			res.Found = true
			res.ClassFound = providers.ClassName(conv)
			res.Instance = conv
			res.DataExamples = []any{sample}
			return res
		}
	}

	res.Severity = SeverityError
	res.Message = fmt.Sprintf("No DataTypeConverter for LookupKey %q", resultKey)
	if failure != nil {
		res.Message = failure.Error()
	}
	res.DataExamples = []any{sample}
	return res
}

// defaultComparerName is the classFound value recorded when a sample's
// shape matches the implicit number/string comparer, which has no
// instance.
const defaultComparerName = "defaultComparer"

// comparerAnalyzer resolves a comparer for comparison-category conditions.
// Numbers and strings use the implicit default comparer; booleans use the
// built-in boolean comparer; everything else probes registered comparers
// with the sample on both sides.
type comparerAnalyzer struct {
	comparers *providers.Registry[providers.Comparer]
	samples   *SampleValueResolver
}

func (a *comparerAnalyzer) Service() Service { return ServiceComparer }

func (a *comparerAnalyzer) Analyze(key string, vh *conftree.ValueHostConfig) *ServiceResult {
	key = effectiveKey(key, vh)
	res := &ServiceResult{Service: ServiceComparer}

	sample, ok := a.samples.GetSampleValue(key, vh)
	if !ok {
		res.Severity = SeverityWarning
		res.Message = fmt.Sprintf("Cannot check the comparer. No sample value found for LookupKey %q.", key)
		return res
	}

	if providers.IsNumber(sample) || providers.IsString(sample) {
		res.Found = true
		res.ClassFound = defaultComparerName
		return res
	}
	if providers.IsBool(sample) {
		cmp := providers.BooleanComparer{}
		res.Found = true
		res.ClassFound = providers.ClassName(cmp)
		res.Instance = cmp
		return res
	}

	var failure error
	for _, cmp := range a.comparers.All() {
		var supports bool
		if err := capture(func() { supports = cmp.SupportsValues(sample, sample, key, key) }); err != nil {
			if failure == nil {
				failure = err
			}
			continue
		}
		if supports {
			res.Found = true
			res.ClassFound = providers.ClassName(cmp)
			res.Instance = cmp
			return res
		}
	}

	res.Severity = SeverityError
	res.Message = fmt.Sprintf("No DataTypeComparer for LookupKey %q", key)
	if failure != nil {
		res.Message = failure.Error()
	}
	return res
}

// parserAnalyzer resolves parsers per registered culture. Unlike the
// formatter, every compatible parser within a culture is reported, and a
// parser predicate failure becomes an error entry in the culture's match
// list instead of aborting the analysis.
type parserAnalyzer struct {
	parsers   *providers.Registry[providers.Parser]
	cultures  *culture.Service
	fallbacks *lookup.FallbackRegistry
}

func (a *parserAnalyzer) Service() Service { return ServiceParser }

func (a *parserAnalyzer) Analyze(key string, vh *conftree.ValueHostConfig) *ServiceResult {
	key = effectiveKey(key, vh)
	res := &ServiceResult{Service: ServiceParser}

	anyMissing := false
	for _, cid := range a.cultures.AvailableCultures() {
		row := &CultureSpecificResult{
			RequestedCultureID: cid,
			ActualCultureID:    cid,
		}
		for _, p := range a.parsers.All() {
			var compatible bool
			if err := capture(func() { compatible = p.IsCompatible(key, cid) }); err != nil {
				row.Matches = append(row.Matches, &ParserMatch{
					Severity: SeverityError,
					Message:  err.Error(),
				})
				continue
			}
			if compatible {
				row.Found = true
				row.Matches = append(row.Matches, &ParserMatch{
					ClassFound: providers.ClassName(p),
					Instance:   p,
				})
			}
		}
		if row.Found {
			res.Found = true
		} else {
			anyMissing = true
			row.Severity = SeverityError
			row.Message = fmt.Sprintf("No DataTypeParser for LookupKey %q with culture %q", key, cid)
		}
		res.Cultures = append(res.Cultures, row)
	}

	if anyMissing {
		if _, ok := a.fallbacks.Resolve(key); ok {
			res.TryFallback = true
		}
	}
	return res
}
