package summary

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// xsltNamespace is the XSLT namespace URI; report templates embed a
// stylesheet block whose lookalike tags must not be mistaken for data.
const xsltNamespace = "http://www.w3.org/1999/XSL/Transform"

// Extract streams the given XML input and pulls out the run name and the
// four counters of the first qualifying summary element.
//
// The summary element is the first <result> directly inside the outermost
// <suite> that carries no "type" attribute (call results are also <result>
// elements but always typed). Once it is seen the scan stops; reports can
// be large and the summary is structurally first. Reaching end of document
// without a summary is not an error: the zero Counts are returned.
//
// entities supplies named-entity expansions for HTML-wrapped input; nil is
// fine for plain XML.
func Extract(input []byte, entities map[string]string) (Counts, error) {
	dec := xml.NewDecoder(bytes.NewReader(input))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = entities

	var (
		counts     Counts
		suiteDepth int
		insideXSLT int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return counts, nil
		}
		if err != nil {
			return counts, errors.Wrap(err, "scanning report")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if insideXSLT > 0 {
				insideXSLT++
				continue
			}
			if isStylesheet(t.Name) {
				insideXSLT = 1
				continue
			}
			switch t.Name.Local {
			case "suite":
				suiteDepth++
			case "integrity":
				if v, ok := attr(t, "name"); ok {
					counts.RunName = v
				}
			case "result":
				if suiteDepth != 1 {
					continue
				}
				if _, typed := attr(t, "type"); typed {
					continue
				}
				if err := readCounters(t, &counts); err != nil {
					return counts, err
				}
				// Everything needed has been read; skip the rest of the
				// document.
				return counts, nil
			}
		case xml.EndElement:
			if insideXSLT > 0 {
				insideXSLT--
				continue
			}
			if t.Name.Local == "suite" {
				suiteDepth--
			}
		}
	}
}

// readCounters copies the four counter attributes into counts. Attribute
// names are matched case-insensitively; a missing attribute leaves its
// counter untouched.
func readCounters(el xml.StartElement, counts *Counts) error {
	for _, target := range []struct {
		name string
		dst  *int
	}{
		{"successCount", &counts.Success},
		{"failureCount", &counts.Failure},
		{"testExceptionCount", &counts.TestException},
		{"callExceptionCount", &counts.CallException},
	} {
		v, ok := attrFold(el, target.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "summary attribute %s", target.name)
		}
		*target.dst = n
	}
	return nil
}

func isStylesheet(name xml.Name) bool {
	return name.Local == "stylesheet" && (name.Space == "xsl" || name.Space == xsltNamespace)
}

func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attrFold(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}
