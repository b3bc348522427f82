package render

import "strings"

// Text nodes only need the markup delimiters escaped; quotes are left alone
// so tooltip and aria text reads naturally in the output.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Attribute values are always written double-quoted. Whitespace control
// characters are kept as references so SVG path data and inline styles
// survive attribute value normalization.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

func escapeHTML(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
