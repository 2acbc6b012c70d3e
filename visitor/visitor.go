package visitor

// Visitor visits (key, element) pairs.
// If the callback returns (false, nil), the Visit stops.
// If the callback returns an error, the Visit stops and returns that error.
type Visitor[K comparable, E any] func(func(key K, element E) (bool, error)) error

// Collect returns visited elements indexed by key
func (v Visitor[K, E]) Collect() (map[K]E, error) {
	result := make(map[K]E)
	err := v(func(key K, element E) (bool, error) {
		result[key] = element
		return true, nil
	})
	return result, err
}
