package nsstack_test

import (
	"fmt"
	"testing"

	"github.com/lestrrat-go/axml/internal/stack/nsstack"
	"github.com/stretchr/testify/require"
)

const (
	androidNS = "http://schemas.android.com/apk/res/android"
	toolsNS   = "http://schemas.android.com/tools"
)

func TestNsStack(t *testing.T) {
	s := nsstack.New()
	s.Push("android", androidNS)
	s.Push("tools", toolsNS)
	require.Equal(t, 2, s.Len())

	uri, ok := s.Lookup("tools")
	require.True(t, ok)
	require.Equal(t, toolsNS, uri)

	prefix, ok := s.LookupPrefix(androidNS)
	require.True(t, ok)
	require.Equal(t, "android", prefix)
	require.True(t, s.Declared("android", androidNS))

	item, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, "tools", item.Prefix())
	require.Equal(t, toolsNS, item.URI())

	_, ok = s.Lookup("tools")
	require.False(t, ok, `Lookup("tools") fails after Pop`)
	_, ok = s.LookupPrefix(toolsNS)
	require.False(t, ok)
}

func TestNsStackShadowing(t *testing.T) {
	s := nsstack.New()
	s.Push("a", androidNS)
	s.Push("a", toolsNS)

	uri, _ := s.Lookup("a")
	require.Equal(t, toolsNS, uri, "innermost declaration wins")

	_, ok := s.LookupPrefix(androidNS)
	require.False(t, ok, "prefix bound to androidNS has been shadowed")

	s.Pop()
	prefix, ok := s.LookupPrefix(androidNS)
	require.True(t, ok)
	require.Equal(t, "a", prefix)
}

func TestNsStackOuterDeclaration(t *testing.T) {
	s := nsstack.New()
	s.Push("a", androidNS)
	s.Push("b", androidNS)
	s.Push("b", toolsNS)

	_, ok := s.LookupPrefix(androidNS)
	require.False(t, ok, "only the innermost declaration of a URI is considered")

	s.Pop()
	prefix, ok := s.LookupPrefix(androidNS)
	require.True(t, ok)
	require.Equal(t, "b", prefix)
}

func TestNsStackMany(t *testing.T) {
	const n = 50000
	s := nsstack.New()
	for i := 0; i < n; i++ {
		s.Push(fmt.Sprintf("p%d", i), androidNS)
		require.True(t, s.Declared(fmt.Sprintf("p%d", i), androidNS))
		prefix, ok := s.LookupPrefix(androidNS)
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("p%d", i), prefix)
	}
	for s.Len() > 0 {
		s.Pop()
	}
	_, ok := s.LookupPrefix(androidNS)
	require.False(t, ok)
	_, ok = s.Lookup("p0")
	require.False(t, ok)
}

func BenchmarkLookupPrefix(b *testing.B) {
	s := nsstack.New()
	for i := 0; i < 10000; i++ {
		s.Push(fmt.Sprintf("p%d", i), fmt.Sprintf("urn:%d", i%10))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.LookupPrefix("urn:3")
	}
}
