package axml_test

import (
	"testing"

	"github.com/lestrrat-go/axml"
	"github.com/stretchr/testify/require"
)

func TestFixName(t *testing.T) {
	testcases := []struct {
		Input    string
		Expected string
	}{
		{Input: "foobar", Expected: "foobar"},
		{Input: "5foobar", Expected: "_5foobar"},
		{Input: "android:foobar", Expected: "foobar"},
		{Input: "5:foobar", Expected: "_5_foobar"},
		{Input: "foo:bar", Expected: "foo_bar"},
		{Input: "", Expected: "_"},
		{Input: "-x", Expected: "_-x"},
		{Input: "a b", Expected: "a_b"},
		{Input: "layout_width", Expected: "layout_width"},
		{Input: "中文", Expected: "中文"},
		{Input: "a\x00b", Expected: "a_b"},
	}

	for _, tc := range testcases {
		t.Run(tc.Input, func(t *testing.T) {
			require.Equal(t, tc.Expected, axml.FixName(tc.Input))
		})
	}
}

func TestFixValue(t *testing.T) {
	testcases := []struct {
		Name     string
		Input    string
		Expected string
	}{
		{Name: "plain", Input: "hello world", Expected: "hello world"},
		{Name: "control characters that are allowed", Input: "Foobar \n\r\u0b12", Expected: "Foobar \n\r\u0b12"},
		{Name: "supplementary plane", Input: "hello \U00011234", Expected: "hello \U00011234"},
		{Name: "noncharacter", Input: "\uFFFF", Expected: "_"},
		{Name: "embedded nul", Input: "hello\x00world", Expected: "hello"},
		{Name: "control character", Input: "a\x01b", Expected: "a_b"},
		{Name: "empty", Input: "", Expected: ""},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			fixed := axml.FixValue(tc.Input)
			require.Equal(t, tc.Expected, fixed)
			require.Equal(t, fixed, axml.FixValue(fixed), "FixValue should be idempotent")
		})
	}
}

func TestFixComment(t *testing.T) {
	require.Equal(t, " note ", axml.FixComment(" note "))
	require.Equal(t, "a- -b", axml.FixComment("a--b"))
	require.Equal(t, "a- - -b", axml.FixComment("a---b"))
	require.Equal(t, "trailing- ", axml.FixComment("trailing-"))
	require.Equal(t, "cut", axml.FixComment("cut\x00--"))
}
