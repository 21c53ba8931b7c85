package generation

import "context"

// Prompt is the pair of instructions sent to the language model.
type Prompt struct {
	System string
	User   string
}

// Generator is the port to the external language model. Implementations
// request a JSON object reply at a fixed sampling temperature and return the
// raw reply text.
//
// Every failure to obtain a reply (transport, timeout, authentication, empty
// reply) must be reported as an *InvocationError. Implementations must honour
// ctx cancellation.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt Prompt) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt Prompt) (string, error) {
	return f(ctx, prompt)
}

// ReadingAnnotator produces a kana reading for a Japanese word. It returns an
// empty string when no reading can be determined.
type ReadingAnnotator interface {
	Reading(word string) string
}
