// Package report summarizes a decoded document for inspection, as
// YAML for people and CBOR for tools.
package report

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/lestrrat-go/axml"
	"github.com/lestrrat-go/axml/s11n"
	"gopkg.in/yaml.v3"
)

var encMode cbor.EncMode

func init() {
	var err error
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create report CBOR encoder mode: %v", err))
	}
}

type Header struct {
	Type       string `yaml:"type" cbor:"type"`
	HeaderSize uint16 `yaml:"header_size" cbor:"header_size"`
	Size       uint32 `yaml:"size" cbor:"size"`
}

type Chunk struct {
	Offset     int    `yaml:"offset" cbor:"offset"`
	Type       string `yaml:"type" cbor:"type"`
	HeaderSize uint16 `yaml:"header_size" cbor:"header_size"`
	Size       uint32 `yaml:"size" cbor:"size"`
}

type StringPool struct {
	Strings                int    `yaml:"strings" cbor:"strings"`
	Styles                 int    `yaml:"styles" cbor:"styles"`
	Encoding               string `yaml:"encoding" cbor:"encoding"`
	Sorted                 bool   `yaml:"sorted" cbor:"sorted"`
	DuplicateOffsets       int    `yaml:"duplicate_offsets,omitempty" cbor:"duplicate_offsets,omitempty"`
	OverlappingEntries     int    `yaml:"overlapping_entries,omitempty" cbor:"overlapping_entries,omitempty"`
	LengthMismatches       int    `yaml:"length_mismatches,omitempty" cbor:"length_mismatches,omitempty"`
	MalformedStyles        int    `yaml:"malformed_styles,omitempty" cbor:"malformed_styles,omitempty"`
	StylesStartWithoutData bool   `yaml:"styles_start_without_data,omitempty" cbor:"styles_start_without_data,omitempty"`
	StringsStartMismatch   bool   `yaml:"strings_start_mismatch,omitempty" cbor:"strings_start_mismatch,omitempty"`
}

type Anomaly struct {
	Kind    string `yaml:"kind" cbor:"kind"`
	Offset  int    `yaml:"offset" cbor:"offset"`
	Line    uint32 `yaml:"line,omitempty" cbor:"line,omitempty"`
	Detail  string `yaml:"detail" cbor:"detail"`
	Invalid bool   `yaml:"invalid,omitempty" cbor:"invalid,omitempty"`
}

// Report is the summary of one file. Error is set instead of the rest
// when the file could not be decoded at all.
type Report struct {
	File        string      `yaml:"file,omitempty" cbor:"file,omitempty"`
	Error       string      `yaml:"error,omitempty" cbor:"error,omitempty"`
	Valid       bool        `yaml:"valid" cbor:"valid"`
	Packed      bool        `yaml:"packed" cbor:"packed"`
	Header      *Header     `yaml:"header,omitempty" cbor:"header,omitempty"`
	StringPool  *StringPool `yaml:"string_pool,omitempty" cbor:"string_pool,omitempty"`
	ResourceIDs []uint32    `yaml:"resource_ids,omitempty,flow" cbor:"resource_ids,omitempty"`
	Chunks      []Chunk     `yaml:"chunks,omitempty" cbor:"chunks,omitempty"`
	Anomalies   []Anomaly   `yaml:"anomalies,omitempty" cbor:"anomalies,omitempty"`
	XML         string      `yaml:"xml,omitempty" cbor:"xml,omitempty"`
}

// New summarizes doc. The XML is only included for valid documents,
// serialized with options.
func New(file string, doc *axml.Document, options ...s11n.Option) (*Report, error) {
	r := &Report{
		File:        file,
		Valid:       doc.IsValid(),
		Packed:      doc.IsPacked(),
		ResourceIDs: doc.ResourceIDs(),
	}

	if h := doc.Header(); h != nil {
		r.Header = &Header{Type: h.Type.String(), HeaderSize: h.HeaderSize, Size: h.Size}
	}
	if p := doc.StringPool(); p != nil {
		stats := p.Stats()
		r.StringPool = &StringPool{
			Strings:                p.Len(),
			Styles:                 p.StyleCount(),
			Encoding:               p.Encoding().String(),
			Sorted:                 p.IsSorted(),
			DuplicateOffsets:       stats.DuplicateOffsets,
			OverlappingEntries:     stats.OverlappingEntries,
			LengthMismatches:       stats.LengthMismatches,
			MalformedStyles:        stats.MalformedStyles,
			StylesStartWithoutData: stats.StylesStartWithoutData,
			StringsStartMismatch:   stats.StringsStartMismatch,
		}
	}
	for _, c := range doc.Chunks() {
		r.Chunks = append(r.Chunks, Chunk{
			Offset:     c.Offset,
			Type:       c.Type.String(),
			HeaderSize: c.HeaderSize,
			Size:       c.Size,
		})
	}
	for _, a := range doc.Anomalies() {
		r.Anomalies = append(r.Anomalies, Anomaly{
			Kind:    a.Kind.String(),
			Offset:  a.Offset,
			Line:    a.Line,
			Detail:  a.Detail,
			Invalid: a.Invalid,
		})
	}

	if doc.IsValid() {
		out, err := doc.XML(options...)
		if err != nil {
			return nil, err
		}
		r.XML = string(out)
	}
	return r, nil
}

// Failed returns the report of a file that could not be decoded.
func Failed(file string, err error) *Report {
	return &Report{File: file, Error: err.Error()}
}

// EncodeYAML writes r as a YAML document.
func (r *Report) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// EncodeCBOR writes r as one CBOR data item.
func (r *Report) EncodeCBOR(w io.Writer) error {
	return encMode.NewEncoder(w).Encode(r)
}
