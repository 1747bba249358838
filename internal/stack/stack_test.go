package stack_test

import (
	"testing"

	"github.com/lestrrat-go/axml/internal/stack"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	var s stack.Stack[int]
	_, ok := s.Pop()
	require.False(t, ok, "Pop on empty stack fails")
	_, ok = s.Peek()
	require.False(t, ok, "Peek on empty stack fails")

	for i := range 100 {
		s.Push(i)
	}
	require.Equal(t, 100, s.Len())

	v, ok := s.Peek()
	require.True(t, ok)
	require.Equal(t, 99, v)

	for i := 99; i >= 0; i-- {
		v, ok := s.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Equal(t, 0, s.Len())
}
