package slices

// Find returns the first element of the slice satisfying the predicate.
func Find[E ~[]T, T any](l E, pred func(T) bool) (T, bool) {
	for _, x := range l {
		if pred(x) {
			return x, true
		}
	}
	var x T
	return x, false
}

func OneOf[T comparable](x T, xs ...T) bool {
	for _, x2 := range xs {
		if x == x2 {
			return true
		}
	}

	return false
}
