package conv

// Options contains configuration for the converter
type Options struct {
	// TimeLayout specifies the default layout for time parsing, empty uses format/time.Layouts
	TimeLayout string
	// StrictNumbers rejects fractional values converted to integers
	StrictNumbers bool
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{}
}

type convertOptions struct {
	timeLayout string
}

// Option represents per conversion option
type Option func(o *convertOptions)

// WithTimeLayout returns option with time layout
func WithTimeLayout(layout string) Option {
	return func(o *convertOptions) {
		o.timeLayout = layout
	}
}
