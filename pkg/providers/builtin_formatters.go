package providers

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"vigil-hq/vigil/pkg/culture"
	"vigil-hq/vigil/pkg/lookup"
)

// NumberFormatter formats numeric values for the Number and Percentage
// lookup keys using the locale-aware printers from golang.org/x/text.
type NumberFormatter struct{}

func (NumberFormatter) Supports(lookupKey, cultureID string) bool {
	if !lookup.Equal(lookupKey, lookup.KeyNumber) && !lookup.Equal(lookupKey, lookup.KeyPercentage) {
		return false
	}
	_, err := language.Parse(cultureID)
	return err == nil
}

func (NumberFormatter) Format(value any, lookupKey, cultureID string) (string, error) {
	f, ok := AsFloat(value)
	if !ok {
		return "", fmt.Errorf("value %T is not numeric", value)
	}
	tag, err := language.Parse(cultureID)
	if err != nil {
		return "", fmt.Errorf("culture %q: %w", cultureID, err)
	}
	p := message.NewPrinter(tag)
	if lookup.Equal(lookupKey, lookup.KeyPercentage) {
		return p.Sprintf("%v", number.Percent(f)), nil
	}
	return p.Sprintf("%v", number.Decimal(f)), nil
}

// IntegerFormatter formats integer values for the Integer lookup key.
type IntegerFormatter struct{}

func (IntegerFormatter) Supports(lookupKey, cultureID string) bool {
	if !lookup.Equal(lookupKey, lookup.KeyInteger) {
		return false
	}
	_, err := language.Parse(cultureID)
	return err == nil
}

func (IntegerFormatter) Format(value any, lookupKey, cultureID string) (string, error) {
	f, ok := AsFloat(value)
	if !ok {
		return "", fmt.Errorf("value %T is not numeric", value)
	}
	tag, err := language.Parse(cultureID)
	if err != nil {
		return "", fmt.Errorf("culture %q: %w", cultureID, err)
	}
	return message.NewPrinter(tag).Sprintf("%v", number.Decimal(int64(f))), nil
}

// CurrencyFormatter formats numeric values as the region's currency for the
// Currency lookup key. It only supports cultures whose tag implies a
// currency unit.
type CurrencyFormatter struct{}

func (CurrencyFormatter) Supports(lookupKey, cultureID string) bool {
	if !lookup.Equal(lookupKey, lookup.KeyCurrency) {
		return false
	}
	tag, err := language.Parse(cultureID)
	if err != nil {
		return false
	}
	_, conf := currency.FromTag(tag)
	return conf > 0
}

func (CurrencyFormatter) Format(value any, lookupKey, cultureID string) (string, error) {
	f, ok := AsFloat(value)
	if !ok {
		return "", fmt.Errorf("value %T is not numeric", value)
	}
	tag, err := language.Parse(cultureID)
	if err != nil {
		return "", fmt.Errorf("culture %q: %w", cultureID, err)
	}
	unit, _ := currency.FromTag(tag)
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(f))), nil
}

// BooleanFormatter renders booleans with per-language word pairs. The
// default pairs cover English; callers can supply their own map keyed by
// language code with index 0 for true and 1 for false.
type BooleanFormatter struct {
	texts map[string][2]string
}

// NewBooleanFormatter creates a boolean formatter with the given word
// pairs, falling back to English "true"/"false" for unlisted languages.
func NewBooleanFormatter(texts map[string][2]string) *BooleanFormatter {
	if texts == nil {
		texts = map[string][2]string{}
	}
	return &BooleanFormatter{texts: texts}
}

func (*BooleanFormatter) Supports(lookupKey, cultureID string) bool {
	return lookup.Equal(lookupKey, lookup.KeyBoolean)
}

func (f *BooleanFormatter) Format(value any, lookupKey, cultureID string) (string, error) {
	b, ok := value.(bool)
	if !ok {
		return "", fmt.Errorf("value %T is not a boolean", value)
	}
	pair, ok := f.texts[culture.LanguageCode(cultureID)]
	if !ok {
		pair = [2]string{"true", "false"}
	}
	if b {
		return pair[0], nil
	}
	return pair[1], nil
}

// shortDateLayouts maps language codes to short-date layouts. Unlisted
// languages use the ISO form.
var shortDateLayouts = map[string]string{
	"en": "1/2/2006",
	"fr": "02/01/2006",
	"de": "02.01.2006",
	"es": "02/01/2006",
}

func shortDateLayout(cultureID string) string {
	if layout, ok := shortDateLayouts[culture.LanguageCode(cultureID)]; ok {
		return layout
	}
	return "2006-01-02"
}

// DateFormatter renders time.Time values as a short date for the Date
// lookup key.
type DateFormatter struct{}

func (DateFormatter) Supports(lookupKey, cultureID string) bool {
	return lookup.Equal(lookupKey, lookup.KeyDate)
}

func (DateFormatter) Format(value any, lookupKey, cultureID string) (string, error) {
	t, ok := value.(time.Time)
	if !ok {
		return "", fmt.Errorf("value %T is not a time.Time", value)
	}
	return t.Format(shortDateLayout(cultureID)), nil
}

// BuiltinFormatters returns the built-in formatters in resolution order.
func BuiltinFormatters() []Formatter {
	return []Formatter{
		NumberFormatter{},
		IntegerFormatter{},
		CurrencyFormatter{},
		NewBooleanFormatter(nil),
		DateFormatter{},
	}
}
