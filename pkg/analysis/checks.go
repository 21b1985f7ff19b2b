package analysis

import (
	"fmt"
	"strings"

	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/l10n"
	"vigil-hq/vigil/pkg/lookup"
)

// CheckLookupKeyProperty audits a configuration property whose value is a
// lookup key. Blank values are skipped entirely. A spelling that differs
// from the canonical key (case or whitespace) is a property error. The key
// is then registered against the requested service; a not-found outcome
// becomes a property error naming className and serviceName, softened to a
// warning when the fallback registry offers a standin to retry.
func (c *Context) CheckLookupKeyProperty(propertyName, rawKey string, svc Service, vh *conftree.ValueHostConfig, issues *[]Issue, className, serviceName string) {
	trimmed := lookup.Normalize(rawKey)
	if trimmed == "" {
		return
	}

	canonical, _ := c.canonicalKey(trimmed)
	if rawKey != canonical {
		*issues = append(*issues, Issue{
			Feature:      FeatureProperty,
			PropertyName: propertyName,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("Value is not an exact match to the expected value of %q. Fix it.", canonical),
		})
	}

	result := c.RegisterLookupKey(rawKey, svc, vh)
	if result == nil || result.Found {
		return
	}
	if standin, ok := c.fallbacks.Resolve(canonical); ok {
		*issues = append(*issues, Issue{
			Feature:      FeatureProperty,
			PropertyName: propertyName,
			Severity:     SeverityWarning,
			Message:      fmt.Sprintf("LookupKey %q does not have a %s registered but it will also try the Lookup Key %q.", canonical, className, standin),
		})
		return
	}
	*issues = append(*issues, Issue{
		Feature:      FeatureProperty,
		PropertyName: propertyName,
		Severity:     SeverityError,
		Message:      fmt.Sprintf("Not found. Please register a %s to %s.", className, serviceName),
	})
}

// CheckLocalization audits that every registered culture can resolve the
// localization key. Wildcard hits are reported as informational because
// the text came from a culture other than the requested one. A complete
// miss is a warning when literal fallback text exists and an error when it
// does not.
func (c *Context) CheckLocalization(propertyName, l10nKey, fallbackText string, issues *[]Issue) {
	if strings.TrimSpace(l10nKey) == "" {
		return
	}

	for _, cid := range c.cultures.AvailableCultures() {
		if _, ok := c.localizer.Lookup(l10nKey, cid); ok {
			continue
		}
		if _, ok := c.localizer.Lookup(l10nKey, l10n.Wildcard); ok {
			*issues = append(*issues, Issue{
				Feature:      FeatureLocalization,
				PropertyName: propertyName,
				Severity:     SeverityInfo,
				Message:      fmt.Sprintf("Localized text was found using the %q culture for culture %q with key %q.", l10n.Wildcard, cid, l10nKey),
			})
			continue
		}
		if fallbackText != "" {
			*issues = append(*issues, Issue{
				Feature:      FeatureLocalization,
				PropertyName: propertyName,
				Severity:     SeverityWarning,
				Message:      fmt.Sprintf("No localized text found for culture %q with key %q. The fallback text %q will be used.", cid, l10nKey, fallbackText),
			})
			continue
		}
		*issues = append(*issues, Issue{
			Feature:      FeatureLocalization,
			PropertyName: propertyName,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("No localized text found for culture %q with key %q. No text will be used.", cid, l10nKey),
		})
	}
}

// CheckValueHostNameExists audits a reference to a value host by name.
// Nil and blank references are skipped; a non-string is an error. A name
// absent from the inventory is diagnosed as precisely as possible:
// whitespace to remove, casing to fix, or a dangling reference.
func (c *Context) CheckValueHostNameExists(name any, propertyName string, issues *[]Issue) {
	if name == nil {
		return
	}
	s, ok := name.(string)
	if !ok {
		*issues = append(*issues, Issue{
			Feature:      FeatureProperty,
			PropertyName: propertyName,
			Severity:     SeverityError,
			Message:      "Must be a string.",
		})
		return
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return
	}

	if c.hostNames[s] {
		return
	}
	if c.hostNames[trimmed] {
		*issues = append(*issues, Issue{
			Feature:      FeatureProperty,
			PropertyName: propertyName,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("ValueHostName %q has surrounding whitespace. Remove whitespace.", s),
		})
		return
	}
	for _, known := range c.hostNameList {
		if strings.EqualFold(known, trimmed) {
			*issues = append(*issues, Issue{
				Feature:      FeatureProperty,
				PropertyName: propertyName,
				Severity:     SeverityError,
				Message:      fmt.Sprintf("Change to %q.", known),
			})
			return
		}
	}
	msg := fmt.Sprintf("ValueHostName %q does not exist.", trimmed)
	if hint := suggestName(trimmed, c.hostNameList); hint != "" {
		msg += " " + hint
	}
	*issues = append(*issues, Issue{
		Feature:      FeatureProperty,
		PropertyName: propertyName,
		Severity:     SeverityError,
		Message:      msg,
	})
}

// CheckValuePropertyContents audits a literal value supplied in a
// condition. A value whose native shape a registered identifier claims
// needs no further checks. Otherwise a declared conversion target must be
// reachable by some converter, and a value with no known key and no
// identifier match is noted as unverifiable. A custom valueLookupKey that
// is known is trusted as declared.
func (c *Context) CheckValuePropertyContents(value any, propertyName, valueLookupKey, conversionLookupKey string, issues *[]Issue) {
	if value == nil {
		return
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return
	}

	for _, id := range c.ids.All() {
		var supports bool
		if err := capture(func() { supports = id.SupportsValue(value) }); err != nil {
			continue
		}
		if supports {
			return
		}
	}

	if lookup.Normalize(conversionLookupKey) != "" {
		for _, conv := range c.converters.All() {
			var can bool
			if err := capture(func() { can = conv.CanConvert(value, valueLookupKey, conversionLookupKey) }); err != nil {
				continue
			}
			if can {
				return
			}
		}
		*issues = append(*issues, Issue{
			Feature:      FeatureProperty,
			PropertyName: propertyName,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("Value cannot be converted to Lookup Key %q.", lookup.Normalize(conversionLookupKey)),
		})
		return
	}

	if !c.keyKnown(valueLookupKey) {
		*issues = append(*issues, Issue{
			Feature:      FeatureProperty,
			PropertyName: propertyName,
			Severity:     SeverityInfo,
			Message:      "Value could not be validated.",
		})
	}
}
