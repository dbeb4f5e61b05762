package format_test

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/tailored-agentic-units/observers/format"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{name: "no tokens", template: "plain text", args: []any{"x"}, want: "plain text"},
		{name: "positional", template: "%@ and %@", args: []any{"a", "b"}, want: "a and b"},
		{name: "explicit", template: "%@2 before %@1", args: []any{"a", "b"}, want: "b before a"},
		{name: "explicit does not advance", template: "%@2 %@ %@", args: []any{"a", "b"}, want: "b a b"},
		{name: "missing positional", template: "[%@][%@]", args: []any{"a"}, want: "[a][]"},
		{name: "missing explicit", template: "[%@3]", args: []any{"a"}, want: "[]"},
		{name: "zero index", template: "[%@0]", args: []any{"a"}, want: "[]"},
		{name: "nil argument", template: "owner=%@", args: []any{nil}, want: "owner=(null)"},
		{name: "no arguments", template: "%@", want: ""},
		{name: "trailing percent", template: "100%", want: "100%"},
		{name: "percent not followed by at", template: "%s %@", args: []any{"a"}, want: "%s a"},
		{name: "multi digit index", template: "%@10", args: []any{1, 2, 3, 4, 5, 6, 7, 8, 9, "ten"}, want: "ten"},
		{name: "huge index", template: "%@99999999999999999999", args: []any{"a"}, want: ""},
		{name: "boolean", template: "%@", args: []any{true}, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format.Format(tt.template, tt.args...); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestNew_Locale(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{locale: "fr", want: language.French},
		{locale: "en", want: language.English},
		{locale: "not a locale!", want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := format.New(tt.locale).Language(); got != tt.want {
				t.Errorf("Language() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	if got := format.FromConfig(nil).Language(); got != language.English {
		t.Errorf("FromConfig(nil) language = %v, want en", got)
	}
	if got := format.FromConfig(&format.Config{Locale: "fr"}).Language(); got != language.French {
		t.Errorf("FromConfig(fr) language = %v, want fr", got)
	}
}
