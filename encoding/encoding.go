// Package encoding wraps around the decoders in golang.org/x/text/encoding
// that are needed to read Android string pools. Part of the reason this
// exists is that the package name "unicode" clashes with the stdlib, and
// it's rather easier if we just hide it from the rest of axml
package encoding

import (
	"strings"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Load returns the encoding registered under name, or nil if the name
// is not one a string pool can be stored in.
func Load(name string) enc.Encoding {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return unicode.UTF8
	case "utf16", "utf-16", "utf16le", "utf-16le":
		// string pools are always little endian and carry no BOM
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}
	return nil
}

// DecodeUTF8 decodes b, replacing invalid sequences with U+FFFD.
func DecodeUTF8(b []byte) (string, error) {
	return decode("utf-8", b)
}

// DecodeUTF16 decodes little endian UTF-16 code units in b, replacing
// unpaired surrogates with U+FFFD.
func DecodeUTF16(b []byte) (string, error) {
	return decode("utf-16le", b)
}

func decode(name string, b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	out, err := Load(name).NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
