package providers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"vigil-hq/vigil/pkg/lookup"
)

// NumberToIntegerConverter truncates any numeric value into an integer for
// the Integer result key.
type NumberToIntegerConverter struct{}

func (NumberToIntegerConverter) CanConvert(value any, sourceKey, resultKey string) bool {
	return IsNumber(value) && lookup.Equal(resultKey, lookup.KeyInteger)
}

func (NumberToIntegerConverter) Convert(value any, sourceKey, resultKey string) (any, error) {
	f, ok := AsFloat(value)
	if !ok {
		return nil, fmt.Errorf("value %T is not numeric", value)
	}
	return int(math.Trunc(f)), nil
}

// StringToNumberConverter parses a numeric string into a float64 for the
// Number result key.
type StringToNumberConverter struct{}

func (StringToNumberConverter) CanConvert(value any, sourceKey, resultKey string) bool {
	s, ok := value.(string)
	if !ok || !lookup.Equal(resultKey, lookup.KeyNumber) {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func (StringToNumberConverter) Convert(value any, sourceKey, resultKey string) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("value %T is not a string", value)
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// DateToNumberConverter turns a time.Time into a total-days count for the
// Number result key, letting date fields participate in numeric
// comparisons.
type DateToNumberConverter struct{}

func (DateToNumberConverter) CanConvert(value any, sourceKey, resultKey string) bool {
	_, ok := value.(time.Time)
	return ok && lookup.Equal(resultKey, lookup.KeyNumber)
}

func (DateToNumberConverter) Convert(value any, sourceKey, resultKey string) (any, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, fmt.Errorf("value %T is not a time.Time", value)
	}
	return float64(t.Unix()) / 86400.0, nil
}

// BuiltinConverters returns the built-in converters in resolution order.
func BuiltinConverters() []Converter {
	return []Converter{
		NumberToIntegerConverter{},
		StringToNumberConverter{},
		DateToNumberConverter{},
	}
}
