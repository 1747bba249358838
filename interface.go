package axml

import (
	"github.com/lestrrat-go/axml/chunk"
	"github.com/lestrrat-go/axml/node"
	"github.com/lestrrat-go/axml/sax"
	"github.com/lestrrat-go/axml/stringpool"
)

type Parser struct {
	maxDepth      int
	resourceNames bool
	comments      bool
	sax           sax.Handler
}

// Document is the result of a parse. It is immutable.
type Document struct {
	tree        *node.Document
	valid       bool
	packed      bool
	header      *chunk.Header
	pool        *stringpool.Pool
	resourceIDs []uint32
	chunks      []ChunkInfo
	anomalies   []Anomaly
	evidence    Evidence
}
