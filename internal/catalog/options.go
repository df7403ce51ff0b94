package catalog

import "golang.org/x/text/language"

// DefaultLocale is used for name collation when no locale is configured.
var DefaultLocale = language.English

type options struct {
	locale language.Tag
}

// Option tunes how the engine orders text.
type Option func(*options)

// WithLocale sets the collation locale used when sorting by name.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

func buildOptions(opts []Option) options {
	o := options{locale: DefaultLocale}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
