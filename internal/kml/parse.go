// Package kml reads the styles and placemarks of a KML document.
//
// Parsing is a single pure pass over already-fetched bytes: Style elements
// become StyleRecords keyed by id, Placemarks become Features tagged with a
// GeometryKind. Nothing here performs I/O beyond the supplied reader.
package kml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/paulmach/orb"
)

// ErrMalformedDocument is wrapped by every parse failure.
var ErrMalformedDocument = errors.New("malformed kml document")

// Document is the parsed content of one KML file.
type Document struct {
	Styles   Styles
	Features []Feature
}

// Bounds returns the extent of all feature geometries. It is the zero Bound
// when the document has no features.
func (d *Document) Bounds() orb.Bound {
	var b orb.Bound
	for i, f := range d.Features {
		if i == 0 {
			b = f.Geometry.Bound()
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

// Parse reads a KML document. Style and Placemark elements are collected at
// any depth. On error no partial document is returned.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{Styles: Styles{}}
	sawRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		switch se.Name.Local {
		case "Style":
			var s xmlStyle
			if err := dec.DecodeElement(&s, &se); err != nil {
				return nil, fmt.Errorf("%w: style: %v", ErrMalformedDocument, err)
			}
			doc.addStyle(s)
		case "Placemark":
			var p xmlPlacemark
			if err := dec.DecodeElement(&p, &se); err != nil {
				return nil, fmt.Errorf("%w: placemark: %v", ErrMalformedDocument, err)
			}
			for _, s := range p.Styles {
				doc.addStyle(s)
			}
			doc.Features = append(doc.Features, p.features()...)
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	return doc, nil
}

// ParseStyles returns only the style mapping of a document.
func ParseStyles(data []byte) (Styles, error) {
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return doc.Styles, nil
}

// ParseFeatures returns only the features of a document, in document order.
func ParseFeatures(data []byte) ([]Feature, error) {
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return doc.Features, nil
}

// addStyle registers s when it has an id. Later duplicates overwrite.
func (d *Document) addStyle(s xmlStyle) {
	if s.ID == "" {
		return
	}
	d.Styles[s.ID] = s.record()
}
