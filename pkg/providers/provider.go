// Package providers defines the five provider capabilities a validation
// configuration can reference through lookup keys: formatting, conversion,
// comparison, parsing, and type identification.
//
// Each capability is a small interface whose predicate method declares
// support for a (lookup key, culture) pair or a candidate value. Providers
// share no base state; ordered registries own the collections and iterate
// in registration order. The audit engine treats every predicate as
// untrusted: panics raised inside one are recovered by the caller and
// reported as diagnostics, never propagated.
package providers

// Formatter converts a native value into localized display text for a
// lookup key. Supports is consulted per culture; within one culture the
// first registered formatter that supports the pair wins.
type Formatter interface {
	// Supports reports whether this formatter can format values for the
	// given lookup key and culture.
	Supports(lookupKey, cultureID string) bool

	// Format renders value as display text for the lookup key and culture.
	Format(value any, lookupKey, cultureID string) (string, error)
}

// Converter changes a value from one lookup key's native type to
// another's. Converters are exact-typed: resolution never retries through
// the lookup-key fallback registry.
type Converter interface {
	// CanConvert reports whether this converter can convert value, known
	// under sourceKey, into the type named by resultKey.
	CanConvert(value any, sourceKey, resultKey string) bool

	// Convert performs the conversion declared by CanConvert.
	Convert(value any, sourceKey, resultKey string) (any, error)
}

// Comparer orders or equates two values under their lookup keys. Numbers
// and strings are handled by an implicit default comparer and never reach
// registered comparers.
type Comparer interface {
	// SupportsValues reports whether this comparer can compare the two
	// values given their lookup keys.
	SupportsValues(value1, value2 any, key1, key2 string) bool

	// Compare returns a negative, zero, or positive result in the usual
	// ordering convention.
	Compare(value1, value2 any, key1, key2 string) (int, error)
}

// Parser converts user-entered text into a native value. Several parsers
// may be compatible with the same lookup key within one culture; the audit
// reports all of them.
type Parser interface {
	// IsCompatible reports whether this parser accepts input for the
	// given lookup key and culture.
	IsCompatible(lookupKey, cultureID string) bool

	// Parse converts text into the native value for the lookup key.
	Parse(text, lookupKey, cultureID string) (any, error)
}

// Identifier ties a native value shape to a lookup key and can produce a
// representative sample value for probing other providers.
type Identifier interface {
	// DataTypeLookupKey returns the lookup key this identifier resolves.
	DataTypeLookupKey() string

	// SupportsValue reports whether value has the native shape this
	// identifier describes.
	SupportsValue(value any) bool

	// SampleValue returns a representative value of the identified type.
	SampleValue() any
}
