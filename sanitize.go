package axml

import (
	"strings"
)

// FixName turns a decoded tag or attribute name into a legal XML
// name. The "android:" prefix is dropped, any other colon becomes an
// underscore, characters that cannot appear in a name are replaced
// with an underscore, and an underscore is prepended when the name
// does not start with a name start character.
func FixName(name string) string {
	if prefix, local, ok := strings.Cut(name, ":"); ok && prefix == "android" {
		name = local
	}
	if name == "" {
		return "_"
	}

	var sb strings.Builder
	sb.Grow(len(name) + 1)
	for i, r := range name {
		if i == 0 && !isNameStartChar(r) {
			sb.WriteByte('_')
		}
		if r == ':' || !isNameChar(r) {
			sb.WriteByte('_')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FixValue makes s legal as XML character data: it is cut at the
// first NUL, and every character outside of the XML 1.0 character
// range is replaced with an underscore. Invalid UTF-8 is decoded as
// U+FFFD.
func FixValue(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if !isXMLChar(r) {
			sb.WriteByte('_')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FixComment is FixValue for comment text, which additionally may
// not contain "--" or end with "-".
func FixComment(s string) string {
	s = FixValue(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	if strings.HasSuffix(s, "-") {
		s += " "
	}
	return s
}

func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// isNameStartChar excludes the colon, as names in a namespace aware
// document are NCNames.
func isNameStartChar(r rune) bool {
	return r == '_' ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 0xC0 && r <= 0xD6) ||
		(r >= 0xD8 && r <= 0xF6) ||
		(r >= 0xF8 && r <= 0x2FF) ||
		(r >= 0x370 && r <= 0x37D) ||
		(r >= 0x37F && r <= 0x1FFF) ||
		(r >= 0x200C && r <= 0x200D) ||
		(r >= 0x2070 && r <= 0x218F) ||
		(r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) ||
		(r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0xEFFFF)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) ||
		r == '-' || r == '.' ||
		(r >= '0' && r <= '9') ||
		r == 0xB7 ||
		(r >= 0x0300 && r <= 0x036F) ||
		(r >= 0x203F && r <= 0x2040)
}

// isNCName reports whether s can be used as a namespace prefix.
func isNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isNameStartChar(r) {
			return false
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}
