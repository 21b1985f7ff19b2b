package lookup

// FallbackRegistry maps a custom lookup key to a standin lookup key that
// provider matching retries when nothing matches the custom key directly.
// The standin is only used to retry matching; reports always carry the
// original key.
type FallbackRegistry struct {
	standins map[string]string // folded custom key -> standin key
}

// NewFallbackRegistry creates an empty fallback registry.
func NewFallbackRegistry() *FallbackRegistry {
	return &FallbackRegistry{
		standins: make(map[string]string),
	}
}

// Register maps customKey to standinKey. Last registration for the same
// custom key wins. No cycle detection is performed; resolution is a single
// hop, so cycles cannot loop the caller.
func (r *FallbackRegistry) Register(customKey, standinKey string) {
	custom := Normalize(customKey)
	standin := Normalize(standinKey)
	if custom == "" || standin == "" {
		return
	}
	r.standins[Fold(custom)] = standin
}

// Resolve returns the standin key registered for customKey, if any.
func (r *FallbackRegistry) Resolve(customKey string) (string, bool) {
	standin, ok := r.standins[Fold(customKey)]
	return standin, ok
}

// Len returns the number of registered fallback entries.
func (r *FallbackRegistry) Len() int {
	return len(r.standins)
}
