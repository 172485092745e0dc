package transform

import "context"

// Request carries one transformation to a provider.
type Request struct {
	// Text is the captured source text, lines joined by \n.
	Text string

	// Instruction is the user's natural-language instruction.
	Instruction string

	// Filetype is an optional language hint ("go", "python", ...).
	Filetype string

	// Path is an optional file path hint.
	Path string
}

// Provider transforms text according to an instruction.
type Provider interface {
	// Transform returns the transformed text. Implementations must honor
	// context cancellation and deadlines.
	Transform(ctx context.Context, req Request) (string, error)

	// Name identifies the provider for configuration and logging.
	Name() string
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, req Request) (string, error)

// Transform calls f.
func (f ProviderFunc) Transform(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Name returns a generic name.
func (f ProviderFunc) Name() string { return "func" }
