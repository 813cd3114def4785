// Package sniff classifies raw report bytes and isolates the XML payload.
//
// Integrity writes its result files either as plain XML or as an HTML page
// wrapping an XML island. The HTML wrapper is not well-formed XML, so before
// streaming a file through an XML decoder we cut it down to the parts a
// decoder can actually consume: the DOCTYPE declaration (which may carry
// entity definitions) plus the embedded <xmldata> island.
package sniff

import "bytes"

// MIME content types reported for the two recognized shapes.
const (
	ContentTypeXML  = "text/xml;charset=UTF-8"
	ContentTypeHTML = "text/html;charset=UTF-8"
)

var (
	xmlDeclPrefix = []byte("<?xml")
	doctypePrefix = []byte("<!DOCTYPE ")
	xmlDataMarker = []byte("<xmldata ")
)

// Classification describes one report buffer.
type Classification struct {
	// ContentType is ContentTypeXML or ContentTypeHTML.
	ContentType string
	// XMLStart is the offset where the XML payload begins. For plain XML
	// this is 0. For HTML it is the position of the <xmldata marker, or
	// len(data) when no marker was found (no usable payload).
	XMLStart int
	// DoctypeEnd is the offset one past the '>' closing a leading
	// <!DOCTYPE declaration, or 0 when there is none. Only meaningful for
	// HTML-wrapped input.
	DoctypeEnd int
}

// IsXML reports whether the buffer was classified as plain XML.
func (c Classification) IsXML() bool { return c.ContentType == ContentTypeXML }

// Classify inspects a report buffer and determines its shape.
//
// If the first five non-whitespace bytes are exactly "<?xml" the buffer is
// plain XML. Anything else is treated as HTML wrapping an XML island: a
// leading <!DOCTYPE declaration is scanned to its closing '>', then the
// buffer is searched for the literal "<xmldata " marking the island start.
func Classify(data []byte) Classification {
	trimmed := data
	for len(trimmed) > 0 && isSpace(trimmed[0]) {
		trimmed = trimmed[1:]
	}
	if bytes.HasPrefix(trimmed, xmlDeclPrefix) {
		return Classification{ContentType: ContentTypeXML}
	}

	c := Classification{ContentType: ContentTypeHTML}
	if bytes.HasPrefix(data, doctypePrefix) {
		if end := bytes.IndexByte(data, '>'); end >= 0 {
			c.DoctypeEnd = end + 1
		}
	}

	idx := bytes.Index(data[c.DoctypeEnd:], xmlDataMarker)
	if idx < 0 {
		c.XMLStart = len(data)
	} else {
		c.XMLStart = c.DoctypeEnd + idx
	}
	return c
}

// ParseInput returns the byte stream to feed into the XML decoder.
// Plain XML passes through untouched. For HTML the DOCTYPE declaration is
// concatenated with the XML island, dropping the HTML body between them.
func ParseInput(data []byte, c Classification) []byte {
	if c.IsXML() {
		return data
	}
	if c.XMLStart >= len(data) {
		// No island found. Keep whatever DOCTYPE there was so the decoder
		// reports a sensible "no content" outcome instead of HTML noise.
		return data[:c.DoctypeEnd]
	}
	if c.DoctypeEnd == 0 {
		return data[c.XMLStart:]
	}
	out := make([]byte, 0, c.DoctypeEnd+len(data)-c.XMLStart+1)
	out = append(out, data[:c.DoctypeEnd]...)
	out = append(out, '\n')
	out = append(out, data[c.XMLStart:]...)
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
