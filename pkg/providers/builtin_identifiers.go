package providers

import (
	"time"

	"vigil-hq/vigil/pkg/lookup"
)

// Built-in identifiers cover the primitive data types every configuration
// uses. Sample values are arbitrary but stable so that probing converters
// and comparers is deterministic.

// StringIdentifier resolves the String lookup key.
type StringIdentifier struct{}

func (StringIdentifier) DataTypeLookupKey() string { return lookup.KeyString }
func (StringIdentifier) SupportsValue(v any) bool  { return IsString(v) }
func (StringIdentifier) SampleValue() any          { return "sample text" }

// NumberIdentifier resolves the Number lookup key for any numeric value.
type NumberIdentifier struct{}

func (NumberIdentifier) DataTypeLookupKey() string { return lookup.KeyNumber }
func (NumberIdentifier) SupportsValue(v any) bool  { return IsNumber(v) }
func (NumberIdentifier) SampleValue() any          { return float64(-100.5) }

// IntegerIdentifier resolves the Integer lookup key.
type IntegerIdentifier struct{}

func (IntegerIdentifier) DataTypeLookupKey() string { return lookup.KeyInteger }
func (IntegerIdentifier) SupportsValue(v any) bool  { return IsInteger(v) }
func (IntegerIdentifier) SampleValue() any          { return 100 }

// BooleanIdentifier resolves the Boolean lookup key.
type BooleanIdentifier struct{}

func (BooleanIdentifier) DataTypeLookupKey() string { return lookup.KeyBoolean }
func (BooleanIdentifier) SupportsValue(v any) bool  { return IsBool(v) }
func (BooleanIdentifier) SampleValue() any          { return true }

// DateIdentifier resolves the Date lookup key for time.Time values.
type DateIdentifier struct{}

func (DateIdentifier) DataTypeLookupKey() string { return lookup.KeyDate }

func (DateIdentifier) SupportsValue(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func (DateIdentifier) SampleValue() any {
	return time.Date(2030, time.June, 15, 0, 0, 0, 0, time.UTC)
}

// BuiltinIdentifiers returns fresh instances of every built-in identifier
// in resolution order.
func BuiltinIdentifiers() []Identifier {
	return []Identifier{
		StringIdentifier{},
		NumberIdentifier{},
		IntegerIdentifier{},
		BooleanIdentifier{},
		DateIdentifier{},
	}
}

// BuiltinIdentifierFor returns a built-in identifier for a built-in lookup
// key that maps directly to one, synthesizing the instance on demand.
func BuiltinIdentifierFor(key string) (Identifier, bool) {
	for _, id := range BuiltinIdentifiers() {
		if lookup.Equal(id.DataTypeLookupKey(), key) {
			return id, true
		}
	}
	return nil, false
}
