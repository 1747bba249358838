package stack

// Stack is a LIFO slice. The zero value is ready to use.
type Stack[T any] []T

func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

// Pop removes and returns the top item. The second return value is
// false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	l := len(*s)
	if l == 0 {
		return zero, false
	}
	v := (*s)[l-1]
	(*s)[l-1] = zero
	*s = (*s)[:l-1]

	if c := cap(*s); c > 20 && c > len(*s)*2 {
		*s = append(Stack[T](nil), *s...)
	}
	return v, true
}

// Peek returns the top item without removing it.
func (s Stack[T]) Peek() (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[len(s)-1], true
}

func (s Stack[T]) Len() int {
	return len(s)
}

// All returns the items from bottom to top.
func (s Stack[T]) All() []T {
	return s
}
