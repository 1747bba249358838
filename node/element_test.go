package node_test

import (
	"testing"

	"github.com/lestrrat-go/axml/node"
	"github.com/stretchr/testify/require"
)

const androidNS = "http://schemas.android.com/apk/res/android"

func TestElement(t *testing.T) {
	t.Run("TreeOperations", func(t *testing.T) {
		t.Run("AddMultipleChildren", func(t *testing.T) {
			doc := node.NewDocument()
			parent := doc.CreateElement("parent")
			child1 := doc.CreateElement("child1")
			child2 := doc.CreateElement("child2")

			require.NoError(t, parent.AddChild(child1))
			require.NoError(t, parent.AddChild(child2))

			require.Equal(t, child1, parent.FirstChild())
			require.Equal(t, child2, parent.LastChild())
			require.Equal(t, child2, child1.NextSibling())
			require.Equal(t, child1, child2.PrevSibling())
			require.Equal(t, parent, child2.Parent())
			require.Equal(t, []*node.Element{child1, child2}, parent.ChildElements())
		})

		t.Run("AddSibling", func(t *testing.T) {
			doc := node.NewDocument()
			parent := doc.CreateElement("parent")
			first := doc.CreateElement("first")
			sibling := doc.CreateElement("sibling")

			require.NoError(t, parent.AddChild(first))
			require.NoError(t, first.AddSibling(sibling))

			require.Equal(t, sibling, parent.LastChild())
			require.Equal(t, first, sibling.PrevSibling())
			require.Equal(t, parent, sibling.Parent())
		})

		t.Run("ReplaceInMiddle", func(t *testing.T) {
			doc := node.NewDocument()
			parent := doc.CreateElement("parent")
			first := doc.CreateElement("first")
			middle := doc.CreateElement("middle")
			last := doc.CreateElement("last")
			replacement := doc.CreateElement("replacement")

			require.NoError(t, parent.AddChild(first))
			require.NoError(t, parent.AddChild(middle))
			require.NoError(t, parent.AddChild(last))
			require.NoError(t, middle.Replace(replacement))

			require.Equal(t, first, parent.FirstChild())
			require.Equal(t, last, parent.LastChild())
			require.Equal(t, replacement, first.NextSibling())
			require.Equal(t, last, replacement.NextSibling())
			require.Equal(t, parent, replacement.Parent())
			require.Nil(t, middle.Parent(), "replaced node is detached")
		})

		t.Run("AttributeIsNotAChild", func(t *testing.T) {
			doc := node.NewDocument()
			e := doc.CreateElement("e")
			require.ErrorIs(t, e.AddChild(doc.CreateAttribute("a", "b")), node.ErrInvalidOperation)
		})
	})
}

func TestElementTextAndTail(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("root")
	require.NoError(t, root.AddContent([]byte("Hello ")))
	require.NoError(t, root.AddContent([]byte("World!")))

	require.IsType(t, (*node.Text)(nil), root.LastChild(), "LastChild is a Text node")
	require.Equal(t, root.FirstChild(), root.LastChild(), "adjacent text is merged")
	require.Equal(t, "Hello World!", root.Text())

	child := doc.CreateElement("child")
	require.NoError(t, root.AddChild(child))
	require.NoError(t, root.AddContent([]byte("after")))
	require.NoError(t, root.AddContent([]byte(" child")))

	require.Equal(t, "Hello World!", root.Text(), "text stops at the first child element")
	require.Equal(t, "after child", child.Tail())
	require.Equal(t, "", child.Text())

	buf, err := root.Content(nil)
	require.NoError(t, err)
	require.Equal(t, "Hello World!after child", string(buf))
}

func TestElementAttributes(t *testing.T) {
	doc := node.NewDocument()
	ns := node.NewNamespace("android", androidNS)

	e := doc.CreateElement("manifest")
	require.NoError(t, e.SetAttribute("package", "com.example"))
	require.ErrorIs(t, e.SetAttribute("package", "again"), node.ErrDuplicateAttribute)

	attr, replaced := e.PutAttributeNS("versionCode", "1", ns)
	require.False(t, replaced)
	require.Equal(t, "{"+androidNS+"}versionCode", attr.ClarkName())
	require.Equal(t, "android:versionCode", attr.Name())
	require.Equal(t, e, attr.Parent())
	attr.SetTypedValue(0x10, 1)

	_, replaced = e.PutAttributeNS("label", "first", ns)
	require.False(t, replaced)
	_, replaced = e.PutAttributeNS("label", "second", ns)
	require.True(t, replaced, "the same qualified name replaces the value")

	// same local name without a namespace is a different attribute
	_, replaced = e.PutAttributeNS("label", "plain", nil)
	require.False(t, replaced)

	attrs := e.Attributes(nil)
	require.Len(t, attrs, 4)
	require.Equal(t, e.AttributeCount(), len(attrs))

	var names, values []string
	for _, a := range attrs {
		names = append(names, a.ClarkName())
		values = append(values, a.Value())
	}
	require.Equal(t, []string{
		"package",
		"{" + androidNS + "}versionCode",
		"{" + androidNS + "}label",
		"label",
	}, names)
	require.Equal(t, []string{"com.example", "1", "second", "plain"}, values)

	got, ok := e.Attribute(androidNS, "versionCode")
	require.True(t, ok)
	typ, data, typed := got.TypedValue()
	require.True(t, typed)
	require.Equal(t, uint8(0x10), typ)
	require.Equal(t, uint32(1), data)

	got, ok = e.Attribute("", "package")
	require.True(t, ok)
	_, _, typed = got.TypedValue()
	require.False(t, typed)
}

func TestElementNamespace(t *testing.T) {
	doc := node.NewDocument()

	e := doc.CreateElement("element")
	e.SetNamespace("ns", "http://example.com/namespace")
	require.Equal(t, "ns", e.Prefix())
	require.Equal(t, "http://example.com/namespace", e.URI())
	require.Equal(t, "ns:element", e.Name())
	require.Equal(t, "{http://example.com/namespace}element", e.ClarkName())
	require.Equal(t, "element", e.LocalName())

	e.SetNamespace("", "")
	require.Nil(t, e.Namespace())
	require.Equal(t, "element", e.Name())
	require.Equal(t, "element", e.ClarkName())

	e.DeclareNamespace("android", androidNS)
	e.DeclareNamespace("tools", "http://schemas.android.com/tools")
	defs := e.NamespaceDefs()
	require.Len(t, defs, 2)
	require.Equal(t, "android", defs[0].Prefix())
	require.Equal(t, "http://schemas.android.com/tools", defs[1].URI())

	e.SetLine(42)
	require.Equal(t, uint32(42), e.Line())
}
