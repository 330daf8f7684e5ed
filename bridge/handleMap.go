package bridge

import "sync"

// HandleMap assigns opaque handles to values so they can be referenced
// across the boundary without crossing it themselves. Handles are
// unique for the lifetime of the map and never zero.
type HandleMap[T any] struct {
	mu     sync.Mutex
	next   uint64
	values map[uint64]T
}

// NewHandleMap creates an empty HandleMap.
func NewHandleMap[T any]() *HandleMap[T] {
	return &HandleMap[T]{
		values: make(map[uint64]T),
	}
}

// Insert stores the value and returns its new handle.
func (m *HandleMap[T]) Insert(value T) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.values[m.next] = value
	return m.next
}

// Get returns the value for the handle, and whether it is live.
func (m *HandleMap[T]) Get(handle uint64) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[handle]
	return value, ok
}

// Remove drops the handle. Removing an unknown handle is a no-op.
func (m *HandleMap[T]) Remove(handle uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, handle)
}

// Len reports the number of live handles.
func (m *HandleMap[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}
