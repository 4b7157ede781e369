package common

// Contains returns true if v is one of the elements of s.
func Contains[S ~[]E, E comparable](s S, v E) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}

	return false
}
