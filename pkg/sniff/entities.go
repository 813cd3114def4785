package sniff

// Entities returns the named entities an XML decoder needs to resolve when
// reading an HTML-wrapped report. The wrapper is produced by an XSLT template
// that freely uses HTML-only entities; XML predefines only lt, gt, amp, apos
// and quot, so everything else here would otherwise abort the parse.
//
// The returned map is a fresh copy, so callers may extend it with additional
// entities from configuration before handing it to a decoder.
func Entities() map[string]string {
	m := make(map[string]string, len(htmlEntities))
	for k, v := range htmlEntities {
		m[k] = v
	}
	return m
}

// htmlEntities covers the entities observed in Integrity report templates:
// layout spacing, typography and the German letters appearing in suite names.
var htmlEntities = map[string]string{
	"nbsp":   "\u00a0",
	"shy":    "\u00ad",
	"copy":   "\u00a9",
	"reg":    "\u00ae",
	"trade":  "\u2122",
	"laquo":  "\u00ab",
	"raquo":  "\u00bb",
	"middot": "\u00b7",
	"ndash":  "\u2013",
	"mdash":  "\u2014",
	"hellip": "\u2026",
	"times":  "\u00d7",
	"auml":   "\u00e4",
	"ouml":   "\u00f6",
	"uuml":   "\u00fc",
	"Auml":   "\u00c4",
	"Ouml":   "\u00d6",
	"Uuml":   "\u00dc",
	"szlig":  "\u00df",
}
