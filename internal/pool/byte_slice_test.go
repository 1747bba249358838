package pool_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/lestrrat-go/axml/internal/pool"
	"github.com/lestrrat-go/axml/node"
	"github.com/stretchr/testify/require"
)

// content copies the content of n the way the serializer does: into a
// pooled scratch buffer that is returned afterwards.
func content(t *testing.T, n node.Node) string {
	t.Helper()
	buf := pool.ByteSlice().Get()
	defer pool.ByteSlice().Put(buf)
	require.Empty(t, buf, "pooled buffers are handed out empty")

	b, err := n.Content(buf)
	require.NoError(t, err)
	return string(b)
}

func TestByteSliceNodeContent(t *testing.T) {
	doc := node.NewDocument()
	long := bytes.Repeat([]byte("x"), 1000)

	require.Equal(t, " first ", content(t, doc.CreateComment([]byte(" first "))))
	require.Equal(t, string(long), content(t, doc.CreateText(long)), "content larger than the buffer grows it")
	require.Equal(t, "b", content(t, doc.CreateText([]byte("b"))), "nothing of the previous content remains")
}

func TestByteSliceCapacity(t *testing.T) {
	b := pool.ByteSlice().GetCapacity(4096)
	require.Empty(t, b)
	require.GreaterOrEqual(t, cap(b), 4096)
	pool.ByteSlice().Put(b)

	// buffers above 64KiB are dropped instead of being kept in the pool
	pool.ByteSlice().Put(make([]byte, 0, 1<<20))
	for range 10 {
		b := pool.ByteSlice().Get()
		require.LessOrEqual(t, cap(b), 64*1024)
		pool.ByteSlice().Put(b)
	}
}

func TestByteSliceConcurrentContent(t *testing.T) {
	const n = 32
	doc := node.NewDocument()
	texts := make([]node.Node, n)
	for i := range n {
		texts[i] = doc.CreateText([]byte(fmt.Sprintf("text node %d", i)))
	}

	results := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			buf := pool.ByteSlice().Get()
			defer pool.ByteSlice().Put(buf)
			b, err := texts[i].Content(buf)
			if err == nil {
				results[i] = string(b)
			}
		}()
	}
	wg.Wait()

	for i, s := range results {
		require.Equal(t, fmt.Sprintf("text node %d", i), s)
	}
}
