// Package culture tracks the locale identifiers a configuration supports
// and the fallback chain that connects a region-specific culture to its
// language-only parent (for example "en-US" falling back to "en").
package culture

import "strings"

// maxChainDepth bounds fallback-chain traversal. Fallback pointers are not
// checked for cycles at registration time, so every traversal is bounded
// instead.
const maxChainDepth = 10

// Entry describes one supported culture. FallbackCultureID may be empty
// when the culture has no explicit parent.
type Entry struct {
	CultureID         string `yaml:"id" json:"cultureId"`
	FallbackCultureID string `yaml:"fallback,omitempty" json:"fallbackCultureId,omitempty"`
}

// Service is the culture registry for one audit run. The first culture
// registered becomes the active culture. Entries are kept in registration
// order; re-registering a culture ID replaces its entry in place.
type Service struct {
	entries []Entry
	index   map[string]int // culture ID -> position in entries
	active  string
}

// NewService creates an empty culture registry.
func NewService() *Service {
	return &Service{
		index: make(map[string]int),
	}
}

// Register upserts a culture entry by its culture ID. The first registered
// culture becomes the active culture.
func (s *Service) Register(e Entry) {
	id := strings.TrimSpace(e.CultureID)
	if id == "" {
		return
	}
	e.CultureID = id
	e.FallbackCultureID = strings.TrimSpace(e.FallbackCultureID)

	if pos, ok := s.index[id]; ok {
		s.entries[pos] = e
		return
	}
	s.index[id] = len(s.entries)
	s.entries = append(s.entries, e)
	if s.active == "" {
		s.active = id
	}
}

// ActiveCultureID returns the active (default) culture ID, or "" when no
// culture has been registered.
func (s *Service) ActiveCultureID() string {
	return s.active
}

// Find returns the registered entry for the given culture ID.
func (s *Service) Find(cultureID string) (Entry, bool) {
	pos, ok := s.index[strings.TrimSpace(cultureID)]
	if !ok {
		return Entry{}, false
	}
	return s.entries[pos], true
}

// GetClosestCultureID resolves cultureID to a registered culture: an exact
// match first, then the language-only form with the region suffix stripped.
// It returns false when neither is registered.
func (s *Service) GetClosestCultureID(cultureID string) (string, bool) {
	id := strings.TrimSpace(cultureID)
	if _, ok := s.index[id]; ok {
		return id, true
	}
	lang := LanguageCode(id)
	if lang != id {
		if _, ok := s.index[lang]; ok {
			return lang, true
		}
	}
	return "", false
}

// AvailableCultures returns every registered culture ID in registration
// order.
func (s *Service) AvailableCultures() []string {
	ids := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		ids = append(ids, e.CultureID)
	}
	return ids
}

// AvailableLanguages returns the deduplicated language codes of every
// registered culture, in first-seen order.
func (s *Service) AvailableLanguages() []string {
	seen := make(map[string]bool)
	var langs []string
	for _, e := range s.entries {
		lang := LanguageCode(e.CultureID)
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	return langs
}

// FallbackChain returns the cultures to try for cultureID, starting with
// the culture itself and following fallback pointers. Traversal stops at
// an unregistered culture, a repeated culture, or maxChainDepth hops.
func (s *Service) FallbackChain(cultureID string) []string {
	var chain []string
	seen := make(map[string]bool)
	id := strings.TrimSpace(cultureID)
	for i := 0; i < maxChainDepth && id != "" && !seen[id]; i++ {
		chain = append(chain, id)
		seen[id] = true
		e, ok := s.Find(id)
		if !ok {
			break
		}
		id = e.FallbackCultureID
	}
	return chain
}

// LanguageCode extracts the language code from a culture ID: the substring
// before the first "-", or the whole string when there is none.
func LanguageCode(cultureID string) string {
	if i := strings.Index(cultureID, "-"); i >= 0 {
		return cultureID[:i]
	}
	return cultureID
}
