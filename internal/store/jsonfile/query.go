package jsonfile

// Predicate is a match condition evaluated against a single in-memory
// record. The variant set below is closed: equality, array membership and
// array contains-all are the only supported operators, so handling is
// exhaustive and no free-form operator objects exist.
type Predicate[T any] interface {
	Match(record T) bool
}

// Equals matches records whose extracted field equals Value.
type Equals[T any, V comparable] struct {
	Field func(T) V
	Value V
}

func (p Equals[T, V]) Match(record T) bool {
	return p.Field(record) == p.Value
}

// ArrayContains matches records whose extracted array field contains Value.
type ArrayContains[T any, V comparable] struct {
	Field func(T) []V
	Value V
}

func (p ArrayContains[T, V]) Match(record T) bool {
	for _, v := range p.Field(record) {
		if v == p.Value {
			return true
		}
	}
	return false
}

// ArrayContainsAll matches records whose extracted array field contains
// every value in Values.
type ArrayContainsAll[T any, V comparable] struct {
	Field  func(T) []V
	Values []V
}

func (p ArrayContainsAll[T, V]) Match(record T) bool {
	for _, want := range p.Values {
		found := false
		for _, v := range p.Field(record) {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// findOne returns the first record matching the predicate in collection
// order. The second return value reports whether a match was found; absence
// is not an error.
func findOne[T any](records []T, p Predicate[T]) (T, bool) {
	for _, r := range records {
		if p.Match(r) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// findAll returns every record matching the predicate, preserving
// collection order.
func findAll[T any](records []T, p Predicate[T]) []T {
	var out []T
	for _, r := range records {
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
