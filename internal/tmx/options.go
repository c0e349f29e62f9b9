package tmx

type parseOptions struct {
	strictSize bool
}

// Option configures Parse.
type Option func(*parseOptions)

// WithStrictSize makes Parse fail when the number of tiles differs from
// width*height. Without it the mismatch is left for the caller to report.
func WithStrictSize() Option {
	return func(o *parseOptions) {
		o.strictSize = true
	}
}
