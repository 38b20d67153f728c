package parser

// NormalizeOptions configures grammar selection.
type NormalizeOptions struct {
	// JSX selects the JSX-capable grammar for the typed family.
	// Default: true, matching a parser with both JSX and type annotations enabled.
	JSX bool
}

// NormalizeOption is a functional option for Normalize, Units and ExtractImports.
type NormalizeOption func(*NormalizeOptions)

// WithJSX enables or disables JSX for the typed family.
// Plain .ts files should disable it so angle-bracket type assertions parse.
func WithJSX(enabled bool) NormalizeOption {
	return func(o *NormalizeOptions) {
		o.JSX = enabled
	}
}

func newNormalizeOptions(opts []NormalizeOption) NormalizeOptions {
	o := NormalizeOptions{JSX: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
