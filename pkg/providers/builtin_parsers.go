package providers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vigil-hq/vigil/pkg/culture"
	"vigil-hq/vigil/pkg/lookup"
)

// decimalComma lists languages whose short number form uses "," as the
// decimal separator.
var decimalComma = map[string]bool{
	"fr": true,
	"de": true,
	"es": true,
	"it": true,
	"pt": true,
	"nl": true,
}

// NumberParser parses user-entered numeric text for the Number, Integer,
// and Percentage lookup keys, honoring the culture's decimal separator.
type NumberParser struct{}

func (NumberParser) IsCompatible(lookupKey, cultureID string) bool {
	return lookup.Equal(lookupKey, lookup.KeyNumber) ||
		lookup.Equal(lookupKey, lookup.KeyInteger) ||
		lookup.Equal(lookupKey, lookup.KeyPercentage)
}

func (NumberParser) Parse(text, lookupKey, cultureID string) (any, error) {
	s := strings.TrimSpace(text)
	if decimalComma[culture.LanguageCode(cultureID)] {
		s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as a number: %w", text, err)
	}
	if lookup.Equal(lookupKey, lookup.KeyInteger) {
		return int(f), nil
	}
	return f, nil
}

// BooleanParser parses true/false words for the Boolean lookup key. Word
// sets are per language; English is always available.
type BooleanParser struct {
	trueWords  map[string][]string
	falseWords map[string][]string
}

// NewBooleanParser creates a boolean parser with per-language word lists.
// Nil maps fall back to English words only.
func NewBooleanParser(trueWords, falseWords map[string][]string) *BooleanParser {
	if trueWords == nil {
		trueWords = map[string][]string{}
	}
	if falseWords == nil {
		falseWords = map[string][]string{}
	}
	return &BooleanParser{trueWords: trueWords, falseWords: falseWords}
}

func (*BooleanParser) IsCompatible(lookupKey, cultureID string) bool {
	return lookup.Equal(lookupKey, lookup.KeyBoolean)
}

func (p *BooleanParser) Parse(text, lookupKey, cultureID string) (any, error) {
	lang := culture.LanguageCode(cultureID)
	s := strings.ToLower(strings.TrimSpace(text))
	for _, w := range append(p.trueWords[lang], "true", "yes") {
		if s == strings.ToLower(w) {
			return true, nil
		}
	}
	for _, w := range append(p.falseWords[lang], "false", "no") {
		if s == strings.ToLower(w) {
			return false, nil
		}
	}
	return nil, fmt.Errorf("cannot parse %q as a boolean", text)
}

// ShortDateParser parses short-date text for the Date lookup key using the
// same per-language layouts as DateFormatter.
type ShortDateParser struct{}

func (ShortDateParser) IsCompatible(lookupKey, cultureID string) bool {
	return lookup.Equal(lookupKey, lookup.KeyDate)
}

func (ShortDateParser) Parse(text, lookupKey, cultureID string) (any, error) {
	t, err := time.Parse(shortDateLayout(cultureID), strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as a date: %w", text, err)
	}
	return t, nil
}

// BuiltinParsers returns the built-in parsers in resolution order.
func BuiltinParsers() []Parser {
	return []Parser{
		NumberParser{},
		NewBooleanParser(nil, nil),
		ShortDateParser{},
	}
}
