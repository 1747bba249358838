// Package nsstack tracks the namespace declarations that are in scope
// while walking a document.
package nsstack

import "github.com/lestrrat-go/axml/internal/stack"

type Item struct {
	prefix string
	uri    string
}

func (i Item) Prefix() string {
	return i.prefix
}

func (i Item) URI() string {
	return i.uri
}

// Stack keeps the declarations in order, and indexes them by prefix
// and by URI so that lookups do not depend on the number of
// declarations in scope.
type Stack struct {
	items    stack.Stack[Item]
	prefixes map[string]*stack.Stack[string]
	uris     map[string]*stack.Stack[string]
}

func New() *Stack {
	return &Stack{
		prefixes: make(map[string]*stack.Stack[string]),
		uris:     make(map[string]*stack.Stack[string]),
	}
}

func push(m map[string]*stack.Stack[string], key, value string) {
	s, ok := m[key]
	if !ok {
		s = &stack.Stack[string]{}
		m[key] = s
	}
	s.Push(value)
}

func pop(m map[string]*stack.Stack[string], key string) {
	s, ok := m[key]
	if !ok {
		return
	}
	s.Pop()
	if s.Len() == 0 {
		delete(m, key)
	}
}

func peek(m map[string]*stack.Stack[string], key string) (string, bool) {
	s, ok := m[key]
	if !ok {
		return "", false
	}
	return s.Peek()
}

func (s *Stack) Push(prefix, uri string) {
	s.items.Push(Item{prefix: prefix, uri: uri})
	push(s.prefixes, prefix, uri)
	push(s.uris, uri, prefix)
}

// Pop removes the most recent declaration.
func (s *Stack) Pop() (Item, bool) {
	item, ok := s.items.Pop()
	if !ok {
		return item, false
	}
	pop(s.prefixes, item.prefix)
	pop(s.uris, item.uri)
	return item, true
}

func (s *Stack) Peek() (Item, bool) {
	return s.items.Peek()
}

func (s *Stack) Len() int {
	return s.items.Len()
}

// Lookup returns the URI bound to prefix by the innermost declaration.
func (s *Stack) Lookup(prefix string) (string, bool) {
	return peek(s.prefixes, prefix)
}

// LookupPrefix returns the prefix of the innermost declaration of uri,
// provided that prefix has not been rebound to another URI since.
// Outer declarations of uri are not consulted.
func (s *Stack) LookupPrefix(uri string) (string, bool) {
	prefix, ok := peek(s.uris, uri)
	if !ok {
		return "", false
	}
	if bound, _ := s.Lookup(prefix); bound != uri {
		return "", false
	}
	return prefix, true
}

// Declared reports whether the exact binding is in scope.
func (s *Stack) Declared(prefix, uri string) bool {
	bound, ok := s.Lookup(prefix)
	return ok && bound == uri
}
