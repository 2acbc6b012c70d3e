package hydrator

import (
	"github.com/viant/hydrator/conv"
	"github.com/viant/tagly/format/text"
)

// Filter is applied to every raw value before scheme resolution,
// it receives the raw value, the field name and the field default value
type Filter func(value interface{}, field string, defaultValue interface{}) (interface{}, error)

var defaultConverter = conv.New(conv.DefaultOptions())

type options struct {
	filter     Filter
	scheme     Scheme
	mapping    Mapping
	caseFormat text.CaseFormat
	converter  *conv.Converter
}

// Option hydration option
type Option func(o *options)

// Options represents hydration options
type Options []Option

// Apply applies options
func (o Options) Apply(opts *options) {
	if len(o) == 0 {
		return
	}
	for _, opt := range o {
		opt(opts)
	}
}

func newOptions(opts []Option) *options {
	ret := &options{converter: defaultConverter}
	Options(opts).Apply(ret)
	if ret.converter == nil {
		ret.converter = defaultConverter
	}
	return ret
}

// WithFilter returns option with filter applied to every raw value
func WithFilter(filter Filter) Option {
	return func(o *options) {
		o.filter = filter
	}
}

// WithScheme returns option with call scheme, merged over type declared scheme
func WithScheme(scheme Scheme) Option {
	return func(o *options) {
		o.scheme = o.scheme.Merge(scheme)
	}
}

// WithMapping returns option with call mapping, merged over type declared mapping
func WithMapping(mapping Mapping) Option {
	return func(o *options) {
		o.mapping = o.mapping.Merge(mapping)
	}
}

// WithCaseFormat returns option formatting field names into lookup keys when no mapping is defined, i.e. text.CaseFormatLowerCamel
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(o *options) {
		o.caseFormat = caseFormat
	}
}

// WithConverter returns option with converter used to fit values into fields
func WithConverter(converter *conv.Converter) Option {
	return func(o *options) {
		o.converter = converter
	}
}
