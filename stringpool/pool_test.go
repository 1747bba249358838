package stringpool_test

import (
	"strings"
	"testing"

	"github.com/lestrrat-go/axml/chunk"
	"github.com/lestrrat-go/axml/internal/axmltest"
	"github.com/lestrrat-go/axml/internal/bytecursor"
	"github.com/lestrrat-go/axml/stringpool"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, buf []byte) (*stringpool.Pool, *bytecursor.Cursor, error) {
	t.Helper()
	cur := bytecursor.New(buf)
	h, err := chunk.ParseHeader(cur)
	require.NoError(t, err, "chunk.ParseHeader should succeed")
	p, err := stringpool.Parse(cur, h)
	return p, cur, err
}

func TestParse(t *testing.T) {
	inputs := []string{"hello", "中文", "", "\U0001F600"}

	for _, utf8 := range []bool{false, true} {
		name := "utf-16"
		if utf8 {
			name = "utf-8"
		}
		t.Run(name, func(t *testing.T) {
			buf := axmltest.StringPool(axmltest.PoolSpec{Strings: inputs, UTF8: utf8})
			p, cur, err := parse(t, buf)
			require.NoError(t, err)
			require.Equal(t, len(buf), cur.Pos(), "cursor should be at the end of the chunk")

			require.Equal(t, name, p.Encoding().String())
			require.Equal(t, len(inputs), p.Len())
			require.Equal(t, inputs, p.Strings())
			require.False(t, p.IsSorted())
			require.Equal(t, stringpool.Stats{}, p.Stats(), "aapt style pools have nothing unusual")

			for i, expected := range inputs {
				s, err := p.Get(uint32(i))
				require.NoError(t, err)
				require.Equal(t, expected, s)
			}
		})
	}
}

func TestEntryOffsets(t *testing.T) {
	buf := axmltest.StringPool(axmltest.PoolSpec{Strings: []string{"ab"}})
	p, _, err := parse(t, buf)
	require.NoError(t, err)

	e, err := p.Entry(0)
	require.NoError(t, err)
	// header (28) + one offset (4)
	require.Equal(t, 32, e.Start)
	// length (2) + two units (4) + terminator (2)
	require.Equal(t, 40, e.End)
}

func TestLongStrings(t *testing.T) {
	t.Run("utf-16 two unit length", func(t *testing.T) {
		long := strings.Repeat("a", 0x8001)
		p, _, err := parse(t, axmltest.StringPool(axmltest.PoolSpec{Strings: []string{long, "b"}}))
		require.NoError(t, err)
		require.Equal(t, []string{long, "b"}, p.Strings())
	})
	t.Run("utf-8 two byte length", func(t *testing.T) {
		long := strings.Repeat("x", 300)
		p, _, err := parse(t, axmltest.StringPool(axmltest.PoolSpec{Strings: []string{long, "b"}, UTF8: true}))
		require.NoError(t, err)
		require.Equal(t, []string{long, "b"}, p.Strings())
	})
}

func TestNotTerminated(t *testing.T) {
	for _, utf8 := range []bool{false, true} {
		buf := axmltest.StringPool(axmltest.PoolSpec{
			Strings:      []string{"ok", "abc"},
			UTF8:         utf8,
			Unterminated: 2,
		})
		p, _, err := parse(t, buf)
		require.Nil(t, p)
		require.ErrorIs(t, err, stringpool.ErrNotTerminated, "utf8=%t", utf8)
		require.Contains(t, err.Error(), "entry 1")
	}
}

func TestLengthPastData(t *testing.T) {
	buf := axmltest.StringPool(axmltest.PoolSpec{Strings: []string{"ab"}, UTF8: true})
	p, _, err := parse(t, buf)
	require.NoError(t, err)
	e, err := p.Entry(0)
	require.NoError(t, err)

	// two byte form of the byte length, 0x7FFF bytes
	buf[e.Start+1] = 0xFF
	buf[e.Start+2] = 0xFF
	_, _, err = parse(t, buf)
	require.ErrorIs(t, err, stringpool.ErrNotTerminated)
}

func TestStylesStartWithoutStyles(t *testing.T) {
	buf := axmltest.StringPool(axmltest.PoolSpec{
		Strings:     []string{"a", "b"},
		StylesStart: 0x1000,
	})
	p, _, err := parse(t, buf)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, p.Strings())
	require.Equal(t, 0, p.StyleCount())
	require.True(t, p.Stats().StylesStartWithoutData)
}

func TestStyles(t *testing.T) {
	buf := axmltest.StringPool(axmltest.PoolSpec{
		Strings: []string{"bold text", "b"},
		Styles: [][]axmltest.Span{
			{{Name: 1, First: 0, Last: 3}},
		},
	})
	p, _, err := parse(t, buf)
	require.NoError(t, err)
	require.Equal(t, 1, p.StyleCount())

	e, err := p.Entry(0)
	require.NoError(t, err)
	require.Equal(t, "bold text", e.Text)
	require.Equal(t, []stringpool.Span{{Name: 1, FirstChar: 0, LastChar: 3}}, e.Spans)

	e, err = p.Entry(1)
	require.NoError(t, err)
	require.Empty(t, e.Spans)
}

func TestLookup(t *testing.T) {
	p, _, err := parse(t, axmltest.StringPool(axmltest.PoolSpec{Strings: []string{"a"}}))
	require.NoError(t, err)

	s, err := p.Lookup(stringpool.NoIndex)
	require.NoError(t, err)
	require.Equal(t, "", s)

	_, err = p.Get(1)
	require.ErrorIs(t, err, stringpool.ErrIndexOutOfRange)
	_, err = p.Lookup(42)
	require.ErrorIs(t, err, stringpool.ErrIndexOutOfRange)
}

func TestCorruptPools(t *testing.T) {
	t.Run("header too small", func(t *testing.T) {
		_, _, err := parse(t, axmltest.StringPool(axmltest.PoolSpec{Strings: []string{"a"}, HeaderSize: 20}))
		require.ErrorIs(t, err, stringpool.ErrCorruptPool)
	})
	t.Run("offset outside of data", func(t *testing.T) {
		_, _, err := parse(t, axmltest.StringPool(axmltest.PoolSpec{
			Strings: []string{"a"},
			Offsets: []uint32{0x1000},
		}))
		require.ErrorIs(t, err, stringpool.ErrEntryOutOfBounds)
	})
	t.Run("offset table outside of chunk", func(t *testing.T) {
		buf := axmltest.StringPool(axmltest.PoolSpec{Strings: []string{"a"}})
		// claim a million strings
		buf[8] = 0x40
		buf[9] = 0x42
		buf[10] = 0x0F
		_, _, err := parse(t, buf)
		require.ErrorIs(t, err, stringpool.ErrCorruptPool)
	})
}

func TestDuplicateOffsets(t *testing.T) {
	buf := axmltest.StringPool(axmltest.PoolSpec{
		Strings: []string{"a", "b"},
		Offsets: []uint32{0, 0},
	})
	p, _, err := parse(t, buf)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "a"}, p.Strings())
	require.Equal(t, 1, p.Stats().DuplicateOffsets)
}

func TestOverlappingEntries(t *testing.T) {
	// entry 0 is "a\x00" stored in [0, 8). Offset 4 points at its
	// embedded NUL unit, which reads as an empty string that ends
	// inside entry 0.
	buf := axmltest.StringPool(axmltest.PoolSpec{
		Strings: []string{"a\x00", "x"},
		Offsets: []uint32{0, 4},
	})
	p, _, err := parse(t, buf)
	require.NoError(t, err)
	require.Equal(t, []string{"a\x00", ""}, p.Strings())
	require.Equal(t, 1, p.Stats().OverlappingEntries)
}
