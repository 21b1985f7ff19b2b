package providers

import (
	"fmt"
	"time"
)

// BooleanComparer equates two boolean values. Booleans have no ordering;
// Compare returns 0 for equal values and 1 otherwise.
type BooleanComparer struct{}

func (BooleanComparer) SupportsValues(value1, value2 any, key1, key2 string) bool {
	return IsBool(value1) && IsBool(value2)
}

func (BooleanComparer) Compare(value1, value2 any, key1, key2 string) (int, error) {
	b1, ok1 := value1.(bool)
	b2, ok2 := value2.(bool)
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("values %T and %T are not booleans", value1, value2)
	}
	if b1 == b2 {
		return 0, nil
	}
	return 1, nil
}

// DateComparer orders two time.Time values chronologically.
type DateComparer struct{}

func (DateComparer) SupportsValues(value1, value2 any, key1, key2 string) bool {
	_, ok1 := value1.(time.Time)
	_, ok2 := value2.(time.Time)
	return ok1 && ok2
}

func (DateComparer) Compare(value1, value2 any, key1, key2 string) (int, error) {
	t1, ok1 := value1.(time.Time)
	t2, ok2 := value2.(time.Time)
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("values %T and %T are not times", value1, value2)
	}
	return t1.Compare(t2), nil
}

// BuiltinComparers returns the built-in comparers in resolution order.
func BuiltinComparers() []Comparer {
	return []Comparer{
		BooleanComparer{},
		DateComparer{},
	}
}
