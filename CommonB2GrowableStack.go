package box2d

/// A slice-backed LIFO stack that keeps its storage between uses, so the
/// island search does not allocate once it has warmed up.
type B2GrowableStack[T any] struct {
	items []T
}

func NewB2GrowableStack[T any](capacity int) *B2GrowableStack[T] {
	return &B2GrowableStack[T]{
		items: make([]T, 0, capacity),
	}
}

// Return the stack's length
func (s B2GrowableStack[T]) GetCount() int {
	return len(s.items)
}

func (s *B2GrowableStack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Remove the top element from the stack and return it's value.
// The zero value is returned when the stack is empty.
func (s *B2GrowableStack[T]) Pop() (value T) {
	n := len(s.items)
	if n == 0 {
		return value
	}

	value = s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return value
}

// Drop every element but keep the backing array.
func (s *B2GrowableStack[T]) Reset() {
	var zero T
	for i := range s.items {
		s.items[i] = zero
	}
	s.items = s.items[:0]
}
