package s11n

import "github.com/lestrrat-go/option"

type Option = option.Interface

type identIndent struct{}
type identXMLDeclaration struct{}

// WithIndent sets the string written once per nesting level in front
// of child elements. Elements containing character data are never
// indented, so the text content is preserved. The empty string (the
// default) disables indentation.
func WithIndent(v string) Option {
	return option.New(identIndent{}, v)
}

// WithXMLDeclaration specifies if DumpDoc writes the XML declaration.
// It is written by default.
func WithXMLDeclaration(v bool) Option {
	return option.New(identXMLDeclaration{}, v)
}
