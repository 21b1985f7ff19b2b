package providers

import (
	"fmt"
	"reflect"
	"strings"
)

// Registry holds an ordered list of provider instances for one capability.
// Matching queries iterate in registration order so that earlier
// registrations win ties. A registry belongs to a single audit run and is
// not safe for concurrent mutation.
type Registry[T any] struct {
	items []T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Register appends a provider to the registry. Nil interface values are
// ignored.
func (r *Registry[T]) Register(items ...T) {
	for _, item := range items {
		if isNil(item) {
			continue
		}
		r.items = append(r.items, item)
	}
}

// All returns the registered providers in registration order. The returned
// slice must not be mutated.
func (r *Registry[T]) All() []T {
	return r.items
}

// Len returns the number of registered providers.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// ClassName returns the unqualified type name of a provider instance, used
// in diagnostic messages ("classFound"). Pointer indirection is stripped.
func ClassName(v any) string {
	if v == nil {
		return ""
	}
	name := fmt.Sprintf("%T", v)
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
