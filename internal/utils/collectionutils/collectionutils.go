package collectionutils

// Associate builds a map from a slice by applying transform to each
// item; later items overwrite earlier ones on key collisions.
func Associate[T any, K comparable, V any](items []T, transform func(T) (K, V)) map[K]V {
	m := make(map[K]V, len(items))
	for _, item := range items {
		k, v := transform(item)
		m[k] = v
	}

	return m
}
