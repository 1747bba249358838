package orderedmap_test

import (
	"testing"

	"github.com/lestrrat-go/axml/internal/orderedmap"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := orderedmap.New[string, int]()
	require.NoError(t, m.Set("b", 1))
	require.NoError(t, m.Set("a", 2))
	require.ErrorIs(t, m.Set("b", 3), orderedmap.ErrDuplicateEntry)

	require.True(t, m.Put("b", 4), "Put reports an existing key")
	require.False(t, m.Put("c", 5))

	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, 4, v)
	_, ok = m.Get("z")
	require.False(t, ok)

	var keys []string
	var values []int
	for k, v := range m.Range() {
		keys = append(keys, k)
		values = append(values, v)
	}
	require.Equal(t, []string{"b", "a", "c"}, keys, "overwrite keeps the first position")
	require.Equal(t, []int{4, 2, 5}, values)
	require.Equal(t, 3, m.Len())
}
