package report_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/lestrrat-go/axml"
	"github.com/lestrrat-go/axml/internal/axmltest"
	"github.com/lestrrat-go/axml/internal/report"
	"github.com/lestrrat-go/axml/s11n"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newReport(t *testing.T, b *axmltest.Builder, options ...s11n.Option) *report.Report {
	t.Helper()
	doc, err := axml.Parse(context.Background(), b.Bytes())
	require.NoError(t, err, "axml.Parse should succeed")
	r, err := report.New("AndroidManifest.xml", doc, options...)
	require.NoError(t, err, "report.New should succeed")
	return r
}

func TestNew(t *testing.T) {
	r := newReport(t, axmltest.Manifest(), s11n.WithIndent(""), s11n.WithXMLDeclaration(false))

	require.Equal(t, "AndroidManifest.xml", r.File)
	require.True(t, r.Valid)
	require.False(t, r.Packed)
	require.Empty(t, r.Anomalies)
	require.Equal(t, &report.Header{Type: "XML", HeaderSize: 8, Size: r.Header.Size}, r.Header)
	require.Equal(t, "utf-16", r.StringPool.Encoding)
	require.NotZero(t, r.StringPool.Strings)
	require.Equal(t, "XML", r.Chunks[0].Type)
	require.Equal(t, "STRING_POOL", r.Chunks[1].Type)
	require.Equal(t, "XML_START_NAMESPACE", r.Chunks[2].Type)
	require.Equal(t, `<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.app" android:versionCode="1"><application android:label="Example"/></manifest>`+"\n", r.XML)
}

func TestEncodeYAML(t *testing.T) {
	b := axmltest.Manifest()
	b.Trailing = []byte{0xde, 0xad, 0xbe, 0xef}
	r := newReport(t, b)

	var buf bytes.Buffer
	require.NoError(t, r.EncodeYAML(&buf))

	var m map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, "AndroidManifest.xml", m["file"])
	require.Equal(t, true, m["valid"])
	require.Equal(t, true, m["packed"])
	require.Contains(t, m, "string_pool")
	require.Contains(t, m, "chunks")
	require.Contains(t, m["xml"], "<manifest")

	anomalies, ok := m["anomalies"].([]any)
	require.True(t, ok, "anomalies should be a list")
	require.Len(t, anomalies, 1)
	require.Equal(t, "appended-data", anomalies[0].(map[string]any)["kind"])
}

func TestEncodeCBOR(t *testing.T) {
	r := newReport(t, axmltest.Manifest())

	var buf bytes.Buffer
	require.NoError(t, r.EncodeCBOR(&buf))

	var m map[string]any
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, true, m["valid"])
	require.Equal(t, false, m["packed"])
	require.NotContains(t, m, "anomalies", "empty lists are omitted")

	var decoded report.Report
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, r.XML, decoded.XML)
	require.Equal(t, r.Chunks, decoded.Chunks)
}

func TestInvalidDocument(t *testing.T) {
	b := axmltest.New()
	b.StartElement("", "a")
	r := newReport(t, b)

	require.False(t, r.Valid)
	require.Empty(t, r.XML, "invalid documents have no XML")
	require.NotEmpty(t, r.Anomalies)
	require.Equal(t, "unclosed-element", r.Anomalies[len(r.Anomalies)-1].Kind)
	require.True(t, r.Anomalies[len(r.Anomalies)-1].Invalid)
}

func TestFailed(t *testing.T) {
	r := report.Failed("x.bin", errors.New("chunk is truncated"))

	var buf bytes.Buffer
	require.NoError(t, r.EncodeYAML(&buf))

	var m map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, "chunk is truncated", m["error"])
	require.NotContains(t, m, "xml")
	require.NotContains(t, m, "header")
}
