package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, name := range []string{"utf8", "UTF-8", "utf-16", "utf-16le", "UTF16LE"} {
		require.NotNil(t, Load(name), "Load(%q) should succeed", name)
	}
	require.Nil(t, Load("shift_jis"), "string pools are never stored as shift_jis")
}

func TestDecodeUTF16(t *testing.T) {
	testcases := []struct {
		Name     string
		Input    []byte
		Expected string
	}{
		{Name: "ascii", Input: []byte{'a', 0, 'b', 0}, Expected: "ab"},
		{Name: "cjk", Input: []byte{0x2d, 0x4e, 0x87, 0x65}, Expected: "中文"},
		{Name: "surrogate pair", Input: []byte{0x04, 0xD8, 0x34, 0xDE}, Expected: "\U00011234"},
		{Name: "unpaired surrogate", Input: []byte{0x04, 0xD8, 'a', 0}, Expected: "\uFFFDa"},
		{Name: "embedded nul", Input: []byte{'a', 0, 0, 0, 'b', 0}, Expected: "a\x00b"},
		{Name: "empty", Input: nil, Expected: ""},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			s, err := DecodeUTF16(tc.Input)
			require.NoError(t, err)
			require.Equal(t, tc.Expected, s)
		})
	}
}

func TestDecodeUTF8(t *testing.T) {
	s, err := DecodeUTF8([]byte("hello \xe4\xb8\xad"))
	require.NoError(t, err)
	require.Equal(t, "hello 中", s)

	s, err = DecodeUTF8([]byte{'a', 0xff, 'b'})
	require.NoError(t, err)
	require.Equal(t, "a\uFFFDb", s, "invalid bytes are replaced")
}
