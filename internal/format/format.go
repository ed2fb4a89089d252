// Package format composes the display strings used by every renderer.
//
// Numbers are grouped the Russian way with golang.org/x/text. CLDR uses a
// no-break space as the Russian group separator; it is replaced with a plain
// space so the documents match the layout managers are used to.
package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is the only locale the reports are produced in.
var Locale = language.Russian

var printer = message.NewPrinter(Locale)

// separatorReplacer normalizes CLDR grouping separators to a plain space.
var separatorReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ")

// Count formats n with a thousands separator: 12345 becomes "12 345".
func Count(n int) string {
	return separatorReplacer.Replace(printer.Sprintf("%d", n))
}

// WithNote appends a parenthesized note to text. An empty note leaves
// text unchanged.
func WithNote(text, note string) string {
	if note == "" {
		return text
	}
	return text + " (" + note + ")"
}

// WithAside renders "value (label — other)", the form used for a total that
// is qualified by a related figure.
func WithAside(value, label, other string) string {
	return value + " (" + label + " — " + other + ")"
}

// Pair joins a name and a value with an em dash: "name — value".
func Pair(name, value string) string {
	return name + " — " + value
}

// Bullet prefixes a conclusion line with the dash used in the paginated report.
func Bullet(line string) string {
	return "— " + line
}
