package buffer

// Option configures a Buffer at creation time.
type Option func(*Buffer)

// WithPath associates a file path with the buffer.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithFiletype associates a filetype hint with the buffer.
func WithFiletype(ft string) Option {
	return func(b *Buffer) {
		b.filetype = ft
	}
}

// WithReadOnly marks the buffer read-only from the start.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}
