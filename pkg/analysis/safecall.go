package analysis

import (
	"fmt"

	"vigil-hq/vigil/pkg/conftree"
	"vigil-hq/vigil/pkg/lookup"
)

// capture runs an untrusted provider predicate and converts a panic into
// an error so one misbehaving plugin cannot abort the audit.
func capture(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

func equalKeys(a, b string) bool {
	return lookup.Equal(a, b)
}

// effectiveKey substitutes the value host's data type when no lookup key
// was supplied.
func effectiveKey(key string, vh *conftree.ValueHostConfig) string {
	k := lookup.Normalize(key)
	if k == "" && vh != nil {
		k = lookup.Normalize(vh.DataType)
	}
	return k
}
