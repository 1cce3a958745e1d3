package utils

// OrderedMap is a map that remembers the order in which keys were first inserted.
// It is not safe for concurrent use.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]*V
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		values: make(map[K]*V),
	}
}

// GetOrCreate returns the value stored under key. When the key is missing, create is
// called once and its result is stored at the end of the insertion order.
func (m *OrderedMap[K, V]) GetOrCreate(key K, create func() V) *V {
	if value, ok := m.values[key]; ok {
		return value
	}
	value := create()
	m.keys = append(m.keys, key)
	m.values[key] = &value
	return &value
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.values[key]
	if !ok {
		var zero V
		return zero, false
	}
	return *value, true
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns copies of the stored values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	values := make([]V, len(m.keys))
	for i, key := range m.keys {
		values[i] = *m.values[key]
	}
	return values
}
