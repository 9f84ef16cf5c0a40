package primitives

// Eq reports whether two elements are considered the same member of a collection.
type Eq[T any] func(a, b T) bool

// Same is the default equality: identity for handles and values.
func Same[T comparable](a, b T) bool {
	return a == b
}

// ContainsFunc reports whether x is a member of s under eq.
func ContainsFunc[T any](s []T, x T, eq Eq[T]) bool {
	for _, y := range s {
		if eq(x, y) {
			return true
		}
	}
	return false
}

// Contains reports whether x is a member of s.
func Contains[T comparable](s []T, x T) bool {
	return ContainsFunc(s, x, Same[T])
}

// IntersectionFunc returns the elements of a that are present in b under eq.
// The order of a is preserved. The result is empty if either input is empty.
func IntersectionFunc[T any](a, b []T, eq Eq[T]) []T {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	var out []T
	for _, x := range a {
		if ContainsFunc(b, x, eq) {
			out = append(out, x)
		}
	}
	return out
}

// Intersection is IntersectionFunc with identity equality.
func Intersection[T comparable](a, b []T) []T {
	return IntersectionFunc(a, b, Same[T])
}

// MergeFunc returns a followed by every element of b not already present under eq.
// Duplicates inside b itself are collapsed as well, so merging into an empty
// collection deduplicates b.
func MergeFunc[T any](a, b []T, eq Eq[T]) []T {
	out := make([]T, len(a), len(a)+len(b))
	copy(out, a)
	for _, x := range b {
		if !ContainsFunc(out, x, eq) {
			out = append(out, x)
		}
	}
	return out
}

// Merge is MergeFunc with identity equality.
func Merge[T comparable](a, b []T) []T {
	return MergeFunc(a, b, Same[T])
}

// Concat returns a followed by b, keeping duplicates.
func Concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Product returns every tuple x++y for x in a and y in b, with a varying slowest.
// The result is empty if either input is empty.
func Product[T any](a, b [][]T) [][]T {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([][]T, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, Concat(x, y))
		}
	}
	return out
}

// Singletons turns each element of s into a one-element tuple, ready for Product.
func Singletons[T any](s []T) [][]T {
	if len(s) == 0 {
		return nil
	}
	out := make([][]T, len(s))
	for i, x := range s {
		out[i] = []T{x}
	}
	return out
}

// EqualFunc reports whether a and b hold equal elements in the same order.
func EqualFunc[T any](a, b []T, eq Eq[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}
