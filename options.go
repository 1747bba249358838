package axml

import (
	"github.com/lestrrat-go/axml/sax"
	"github.com/lestrrat-go/option"
)

const DefaultMaxDepth = 1024

type Option = option.Interface

type identMaxDepth struct{}
type identResourceNames struct{}
type identComments struct{}
type identSAXHandler struct{}

type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct{ Option }

func (*parseOption) parseOption() {}

// WithMaxDepth sets the maximum element nesting. Deeper documents are
// reported as invalid. The default is DefaultMaxDepth.
func WithMaxDepth(v int) ParseOption {
	return &parseOption{option.New(identMaxDepth{}, v)}
}

// WithResourceNames specifies if attribute names are resolved through
// the resource map. This is on by default, which is what the Android
// runtime does.
func WithResourceNames(v bool) ParseOption {
	return &parseOption{option.New(identResourceNames{}, v)}
}

// WithComments specifies if comments recorded in node chunks are
// added to the tree. On by default.
func WithComments(v bool) ParseOption {
	return &parseOption{option.New(identComments{}, v)}
}

// WithSAXHandler registers a handler that receives every event in
// addition to the tree builder.
func WithSAXHandler(v sax.Handler) ParseOption {
	return &parseOption{option.New(identSAXHandler{}, v)}
}
