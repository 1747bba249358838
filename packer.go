package axml

import (
	"fmt"

	"github.com/lestrrat-go/axml/chunk"
	"github.com/lestrrat-go/axml/stringpool"
)

// AnomalyKind classifies something unusual the parser recovered from
// or stopped at.
type AnomalyKind int

const (
	AnomalyNone AnomalyKind = iota
	// file level
	AnomalyFileHeader
	AnomalyAppendedData
	AnomalyFileType
	AnomalyStringPool
	AnomalyResourceMap
	AnomalyUnknownChunk
	// chunk layout
	AnomalyNodeHeaderSize
	AnomalyAttributeSize
	// namespaces
	AnomalyEmptyNamespaceURI
	AnomalyInvalidNamespacePrefix
	AnomalyDuplicateNamespace
	AnomalyUnmatchedEndNamespace
	AnomalyUnclosedNamespace
	AnomalyReservedNamespace
	// elements and attributes
	AnomalyNameFixed
	AnomalyValueFixed
	AnomalyDuplicateAttribute
	AnomalyMaskedAttributeName
	AnomalyResourceOnlyName
	AnomalyUnknownSystemAttribute
	AnomalyUnmatchedEndElement
	AnomalyUnclosedElement
	AnomalySecondRoot
	AnomalyMissingRoot
	AnomalyTextOutsideRoot
	AnomalyMaxDepth
)

var anomalyNames = map[AnomalyKind]string{
	AnomalyNone:                   "none",
	AnomalyFileHeader:             "file-header",
	AnomalyAppendedData:           "appended-data",
	AnomalyFileType:               "file-type",
	AnomalyStringPool:             "string-pool",
	AnomalyResourceMap:            "resource-map",
	AnomalyUnknownChunk:           "unknown-chunk",
	AnomalyNodeHeaderSize:         "node-header-size",
	AnomalyAttributeSize:          "attribute-size",
	AnomalyEmptyNamespaceURI:      "empty-namespace-uri",
	AnomalyInvalidNamespacePrefix: "invalid-namespace-prefix",
	AnomalyDuplicateNamespace:     "duplicate-namespace",
	AnomalyUnmatchedEndNamespace:  "unmatched-end-namespace",
	AnomalyUnclosedNamespace:      "unclosed-namespace",
	AnomalyReservedNamespace:      "reserved-namespace",
	AnomalyNameFixed:              "name-fixed",
	AnomalyValueFixed:             "value-fixed",
	AnomalyDuplicateAttribute:     "duplicate-attribute",
	AnomalyMaskedAttributeName:    "masked-attribute-name",
	AnomalyResourceOnlyName:       "resource-only-name",
	AnomalyUnknownSystemAttribute: "unknown-system-attribute",
	AnomalyUnmatchedEndElement:    "unmatched-end-element",
	AnomalyUnclosedElement:        "unclosed-element",
	AnomalySecondRoot:             "second-root",
	AnomalyMissingRoot:            "missing-root",
	AnomalyTextOutsideRoot:        "text-outside-root",
	AnomalyMaxDepth:               "max-depth",
}

func (k AnomalyKind) String() string {
	if s, ok := anomalyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("anomaly(%d)", int(k))
}

// Anomaly is one recorded observation. Invalid is set when the
// anomaly made the document invalid.
type Anomaly struct {
	Kind    AnomalyKind
	Offset  int
	Line    uint32
	Detail  string
	Invalid bool
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s at 0x%08x (line %d): %s", a.Kind, a.Offset, a.Line, a.Detail)
}

// ChunkInfo records the header of a chunk visited by the walk.
type ChunkInfo struct {
	Offset     int
	Type       chunk.Type
	HeaderSize uint16
	Size       uint32
}

// Evidence is what the packer heuristic looks at. It is collected
// during the walk whether or not the document turns out valid.
type Evidence struct {
	FileType     chunk.Type
	DeclaredSize int
	BufferSize   int
	PoolStats    stringpool.Stats
	Anomalies    []Anomaly
}

// packingKinds are the anomalies aapt never produces, but which the
// runtime tolerates.
var packingKinds = map[AnomalyKind]struct{}{
	AnomalyAppendedData:           {},
	AnomalyFileType:               {},
	AnomalyUnknownChunk:           {},
	AnomalyNodeHeaderSize:         {},
	AnomalyAttributeSize:          {},
	AnomalyEmptyNamespaceURI:      {},
	AnomalyInvalidNamespacePrefix: {},
	AnomalyDuplicateNamespace:     {},
	AnomalyReservedNamespace:      {},
	AnomalyNameFixed:              {},
	AnomalyValueFixed:             {},
	AnomalyDuplicateAttribute:     {},
	AnomalyMaskedAttributeName:    {},
	AnomalyResourceOnlyName:       {},
	AnomalyUnknownSystemAttribute: {},
}

// DetectPacker reports whether ev carries a signature of a tool that
// rewrites binary XML to break parsers other than the runtime. The
// result does not depend on validity.
func DetectPacker(ev Evidence) bool {
	if ev.DeclaredSize != ev.BufferSize {
		return true
	}
	// TypeNull means the header could not be read
	if ev.FileType != chunk.TypeXML && ev.FileType != chunk.TypeNull {
		return true
	}

	stats := ev.PoolStats
	if stats.StylesStartWithoutData ||
		stats.StringsStartMismatch ||
		stats.DuplicateOffsets > 0 ||
		stats.OverlappingEntries > 0 ||
		stats.LengthMismatches > 0 ||
		stats.MalformedStyles > 0 {
		return true
	}

	for _, a := range ev.Anomalies {
		if _, ok := packingKinds[a.Kind]; ok {
			return true
		}
	}
	return false
}
