package sources

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// options configures the parsers.
type options struct {
	file       string
	headerRows int
	caser      cases.Caser
}

func defaultOptions() *options {
	return &options{
		headerRows: 2,
		caser:      cases.Title(language.English),
	}
}

// title title-cases a station name. A letter after an apostrophe starts a
// new word, so O'HARE becomes O'Hare.
func (o *options) title(s string) string {
	runes := []rune(o.caser.String(s))
	for i := 1; i < len(runes); i++ {
		if runes[i-1] == '\'' && unicode.IsLetter(runes[i]) {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}

// Option is a function that configures a parser.
type Option func(*options)

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// newOptions returns parser options with default values.
// A Caser holds state, so every parse gets its own.
func newOptions(opts ...Option) *options {
	return defaultOptions().apply(opts...)
}

// WithFile names the file being parsed in parse errors.
func WithFile(name string) Option {
	return func(o *options) {
		o.file = name
	}
}

// WithHeaderRows sets how many leading lines of the station list are skipped.
func WithHeaderRows(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.headerRows = n
		}
	}
}

// WithLanguage sets the language used to title-case station names.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.caser = cases.Title(tag)
	}
}
