// Package l10n defines the text-localization collaborator the audit engine
// consults when checking that every supported culture has localized text
// for a message key.
package l10n

import "strings"

// Wildcard is the pseudo-culture whose entries serve as the default text
// when a specific culture has no entry of its own.
const Wildcard = "*"

// TextLocalizer resolves a localization key for one culture. Lookup must
// be exact: implementations do not fall back across cultures themselves;
// the audit engine applies the Wildcard convention explicitly.
type TextLocalizer interface {
	// Lookup returns the text registered for (key, cultureID), or false
	// when no entry exists for that exact pair.
	Lookup(key, cultureID string) (string, bool)
}

// InMemoryLocalizer is a TextLocalizer backed by nested maps, keyed by
// culture ID then localization key.
type InMemoryLocalizer struct {
	texts map[string]map[string]string
}

// NewInMemoryLocalizer creates a localizer from culture -> key -> text
// maps. The maps are used directly, not copied.
func NewInMemoryLocalizer(texts map[string]map[string]string) *InMemoryLocalizer {
	if texts == nil {
		texts = map[string]map[string]string{}
	}
	return &InMemoryLocalizer{texts: texts}
}

// Register adds or replaces the text for (key, cultureID).
func (l *InMemoryLocalizer) Register(cultureID, key, text string) {
	cultureID = strings.TrimSpace(cultureID)
	if l.texts[cultureID] == nil {
		l.texts[cultureID] = map[string]string{}
	}
	l.texts[cultureID][key] = text
}

// Lookup implements TextLocalizer.
func (l *InMemoryLocalizer) Lookup(key, cultureID string) (string, bool) {
	entries, ok := l.texts[strings.TrimSpace(cultureID)]
	if !ok {
		return "", false
	}
	text, ok := entries[key]
	return text, ok
}
