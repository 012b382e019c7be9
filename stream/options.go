package stream

// Option configures Encoder behavior.
type Option func(*streamOpts)

type streamOpts struct {
	spacing bool
	colors  *Colors
}

// WithSpacing puts a space after commas and colons.
func WithSpacing() Option {
	return func(opts *streamOpts) {
		opts.spacing = true
	}
}

// WithColors colors the output. A nil c disables coloring.
func WithColors(c *Colors) Option {
	return func(opts *streamOpts) {
		opts.colors = c
	}
}
