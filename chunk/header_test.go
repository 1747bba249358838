package chunk_test

import (
	"testing"

	"github.com/lestrrat-go/axml/chunk"
	"github.com/lestrrat-go/axml/internal/bytecursor"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	testcases := []struct {
		Name    string
		Input   []byte
		Error   error
		Message string
	}{
		{
			Name:    "buffer too small",
			Input:   []byte{0x02, 0x01},
			Error:   chunk.ErrBufferUnderrun,
			Message: "cannot read past buffer size",
		},
		{
			Name:    "chunk smaller than header",
			Input:   []byte{0x02, 0x01, 0xFF, 0xFF, 0x08, 0x00, 0x00, 0x00},
			Error:   chunk.ErrChunkSmallerThanHeader,
			Message: "smaller than header size",
		},
		{
			Name:    "header too small",
			Input:   []byte{0x02, 0x01, 0x01, 0x00, 0x08, 0x00, 0x00, 0x00},
			Error:   chunk.ErrHeaderTooSmall,
			Message: "declared header size is smaller than required size",
		},
		{
			Name:    "chunk too small",
			Input:   []byte{0x02, 0x01, 0x08, 0x00, 0x04, 0x00, 0x00, 0x00},
			Error:   chunk.ErrChunkTooSmall,
			Message: "declared chunk size is smaller than required size",
		},
		{
			Name:    "chunk exceeds buffer",
			Input:   []byte{0x02, 0x01, 0x08, 0x00, 0x10, 0x00, 0x00, 0x00},
			Error:   chunk.ErrChunkOutOfBounds,
			Message: "exceeds buffer size",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			h, err := chunk.ParseHeader(bytecursor.New(tc.Input))
			require.Nil(t, h)
			require.ErrorIs(t, err, tc.Error)
			require.Contains(t, err.Error(), tc.Message)
		})
	}

	t.Run("valid header", func(t *testing.T) {
		h, err := chunk.ParseHeader(bytecursor.New([]byte{
			0xCA, 0xFE, 0x08, 0x00, 0x10, 0x00, 0x00, 0x00,
			0xDE, 0xEA, 0xBE, 0xEF, 0x42, 0x42, 0x42, 0x42,
		}))
		require.NoError(t, err)
		require.Equal(t, chunk.Type(0xFECA), h.Type)
		require.Equal(t, uint16(8), h.HeaderSize)
		require.Equal(t, uint32(16), h.Size)
		require.Equal(t, 0, h.Start)
		require.Equal(t, 16, h.End())
		require.Equal(t, 8, h.BodyStart())
		require.Equal(t, "<ResChunkHeader idx='0x00000000' type='65226' header_size='8' size='16'>", h.String())
	})

	t.Run("start is the cursor position", func(t *testing.T) {
		cur := bytecursor.New([]byte{
			0x00, 0x00, 0x00, 0x00,
			0x03, 0x00, 0x08, 0x00, 0x08, 0x00, 0x00, 0x00,
		})
		require.NoError(t, cur.Seek(4))
		h, err := chunk.ParseHeader(cur)
		require.NoError(t, err)
		require.Equal(t, 4, h.Start)
		require.Equal(t, 12, h.End())
		require.Equal(t, chunk.TypeXML, h.Type)
	})
}

func TestParseHeaderExpect(t *testing.T) {
	input := []byte{0x01, 0x00, 0x08, 0x00, 0x08, 0x00, 0x00, 0x00}

	h, err := chunk.ParseHeaderExpect(bytecursor.New(input), chunk.TypeStringPool)
	require.NoError(t, err)
	require.Equal(t, chunk.TypeStringPool, h.Type)

	_, err = chunk.ParseHeaderExpect(bytecursor.New(input), chunk.TypeXML, chunk.TypeTable)
	require.ErrorIs(t, err, chunk.ErrUnexpectedType)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "XML_START_ELEMENT", chunk.TypeXMLStartElement.String())
	require.Equal(t, "UNKNOWN(0xdead)", chunk.Type(0xDEAD).String())
	require.True(t, chunk.TypeXMLCDATA.IsXMLNode())
	require.False(t, chunk.TypeXMLResourceMap.IsXMLNode())
}
