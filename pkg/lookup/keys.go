// Package lookup defines lookup keys, the strings that identify a data type
// or a display/semantic format throughout a validation configuration, plus
// the fallback registry that maps custom keys to standin keys.
//
// Lookup keys have case-insensitive and whitespace-insensitive identity: two
// keys that differ only by case or surrounding whitespace name the same key
// once normalized. Registries in this package always compare keys with
// Equal, never with ==.
package lookup

import "strings"

// Built-in lookup keys. Custom configurations may define additional keys;
// these are the ones the built-in providers understand.
const (
	KeyString     = "String"
	KeyNumber     = "Number"
	KeyInteger    = "Integer"
	KeyBoolean    = "Boolean"
	KeyDate       = "Date"
	KeyDateTime   = "DateTime"
	KeyTimeOfDay  = "TimeOfDay"
	KeyCurrency   = "Currency"
	KeyPercentage = "Percentage"
)

// builtinKeys preserves a stable declaration order for canonicalization.
var builtinKeys = []string{
	KeyString,
	KeyNumber,
	KeyInteger,
	KeyBoolean,
	KeyDate,
	KeyDateTime,
	KeyTimeOfDay,
	KeyCurrency,
	KeyPercentage,
}

// BuiltinKeys returns the built-in lookup keys in declaration order.
// The returned slice is a copy.
func BuiltinKeys() []string {
	keys := make([]string, len(builtinKeys))
	copy(keys, builtinKeys)
	return keys
}

// Normalize trims surrounding whitespace from a lookup key. It does not
// change case: the canonical casing is whichever spelling was registered
// first (or the built-in spelling).
func Normalize(key string) string {
	return strings.TrimSpace(key)
}

// Equal reports whether two lookup keys name the same key, ignoring case
// and surrounding whitespace.
func Equal(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Fold returns the case-folded, trimmed form of a key, suitable for use as
// a map key when deduplicating case-insensitively.
func Fold(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// CanonicalBuiltin returns the built-in spelling matching key, if key is a
// built-in lookup key under case-insensitive identity.
func CanonicalBuiltin(key string) (string, bool) {
	for _, b := range builtinKeys {
		if Equal(b, key) {
			return b, true
		}
	}
	return "", false
}
