// Package format substitutes positional arguments into message templates.
//
// Templates use %@ for "the next argument" and %@N for argument N
// (1-indexed). An explicit %@N does not move the cursor used by %@.
// Missing arguments render as the empty string and nil renders as "(null)".
// Arguments are rendered through an x/text message printer, so numbers
// follow the formatter's locale.
package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const nullText = "(null)"

// Formatter renders templates for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New builds a Formatter for locale (e.g. "en", "fr-CA"). Unparseable
// locales fall back to English.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Language returns the locale the Formatter renders for.
func (f *Formatter) Language() language.Tag {
	return f.tag
}

// Format expands every %@ and %@N token in template.
func (f *Formatter) Format(template string, args ...any) string {
	if !strings.Contains(template, "%@") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	next := 0
	for i := 0; i < len(template); {
		if template[i] != '%' || i+1 >= len(template) || template[i+1] != '@' {
			b.WriteByte(template[i])
			i++
			continue
		}
		i += 2

		start := i
		for i < len(template) && template[i] >= '0' && template[i] <= '9' {
			i++
		}

		index := next
		if i > start {
			index = atoi(template[start:i]) - 1
		} else {
			next++
		}
		b.WriteString(f.render(args, index))
	}
	return b.String()
}

func (f *Formatter) render(args []any, index int) string {
	if index < 0 || index >= len(args) {
		return ""
	}
	if args[index] == nil {
		return nullText
	}
	return f.printer.Sprint(args[index])
}

// atoi saturates instead of overflowing; any index that large is missing.
func atoi(digits string) int {
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
		if n > 1<<20 {
			return 1 << 20
		}
	}
	return n
}

var std = New("en")

// Format expands template with the English formatter.
func Format(template string, args ...any) string {
	return std.Format(template, args...)
}
