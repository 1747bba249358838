package sax_test

import (
	"testing"

	"github.com/lestrrat-go/axml/sax"
	"github.com/stretchr/testify/require"
)

func TestSAX2(t *testing.T) {
	s := sax.New()
	var h sax.Handler = s

	require.ErrorIs(t, h.StartDocument(nil), sax.ErrHandlerUnspecified, "unset callbacks report ErrHandlerUnspecified")
	require.ErrorIs(t, h.Characters(nil, []byte("x")), sax.ErrHandlerUnspecified)

	var names []string
	s.StartElementHandler = func(_ sax.Context, elem *sax.Element) error {
		names = append(names, elem.Name)
		return nil
	}
	s.EndElementHandler = func(_ sax.Context, uri, name string) error {
		names = append(names, "/"+name)
		return nil
	}

	h = s
	require.NoError(t, h.StartElement(nil, &sax.Element{Name: "manifest"}))
	require.NoError(t, h.EndElement(nil, "", "manifest"))
	require.Equal(t, []string{"manifest", "/manifest"}, names)
}
