package chunk

import "fmt"

// Type identifies the kind of a chunk (ResChunk_header.type).
type Type uint16

const (
	TypeNull       Type = 0x0000
	TypeStringPool Type = 0x0001
	TypeTable      Type = 0x0002
	TypeXML        Type = 0x0003

	// XML node chunks
	TypeXMLFirstChunk     Type = 0x0100
	TypeXMLStartNamespace Type = 0x0100
	TypeXMLEndNamespace   Type = 0x0101
	TypeXMLStartElement   Type = 0x0102
	TypeXMLEndElement     Type = 0x0103
	TypeXMLCDATA          Type = 0x0104
	TypeXMLLastChunk      Type = 0x017f
	TypeXMLResourceMap    Type = 0x0180

	TypeTablePackage  Type = 0x0200
	TypeTableType     Type = 0x0201
	TypeTableTypeSpec Type = 0x0202
	TypeTableLibrary  Type = 0x0203
)

// IsXMLNode reports whether t is within the range reserved for XML
// tree node chunks.
func (t Type) IsXMLNode() bool {
	return t >= TypeXMLFirstChunk && t <= TypeXMLLastChunk
}

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "NULL"
	case TypeStringPool:
		return "STRING_POOL"
	case TypeTable:
		return "TABLE"
	case TypeXML:
		return "XML"
	case TypeXMLStartNamespace:
		return "XML_START_NAMESPACE"
	case TypeXMLEndNamespace:
		return "XML_END_NAMESPACE"
	case TypeXMLStartElement:
		return "XML_START_ELEMENT"
	case TypeXMLEndElement:
		return "XML_END_ELEMENT"
	case TypeXMLCDATA:
		return "XML_CDATA"
	case TypeXMLResourceMap:
		return "XML_RESOURCE_MAP"
	case TypeTablePackage:
		return "TABLE_PACKAGE"
	case TypeTableType:
		return "TABLE_TYPE"
	case TypeTableTypeSpec:
		return "TABLE_TYPE_SPEC"
	case TypeTableLibrary:
		return "TABLE_LIBRARY"
	}
	return fmt.Sprintf("UNKNOWN(0x%04x)", uint16(t))
}

// Conventional header sizes emitted by aapt/aapt2. The runtime honors
// whatever header size is declared, so these are only expectations.
const (
	XMLHeaderSize        = 8
	StringPoolHeaderSize = 28
	XMLNodeHeaderSize    = 16
)
