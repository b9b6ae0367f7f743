package functional

// Map applies f to every element, preserving order.
func Map[T any, R any](items []T, f func(T) R) []R {
	result := make([]R, len(items))
	for i, v := range items {
		result[i] = f(v)
	}
	return result
}

// Filter keeps the elements for which keep returns true, in order.
func Filter[T any](items []T, keep func(T) bool) []T {
	var result []T
	for _, v := range items {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}
