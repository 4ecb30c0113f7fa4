// Package stages defines the pluggable stage handler contract and the
// simulated implementations used until real model inference is wired in.
package stages

import "context"

// Input carries everything a stage handler may need: the owning job ID, the
// raw uploaded image, and the client-supplied configuration object.
type Input struct {
	JobID  string
	Image  []byte
	Config map[string]any
}

// Handler is one unit of pipeline work. Implementations must return an
// error to signal failure; the executor converts it into terminal job
// state. Handlers own their internal retry policy.
type Handler interface {
	Run(ctx context.Context, in Input) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, in Input) error

func (f HandlerFunc) Run(ctx context.Context, in Input) error {
	return f(ctx, in)
}

// Set maps stage names to their handlers.
type Set map[string]Handler

// With returns a copy of the set with the named handler replaced. Useful
// for swapping in a failing or instrumented handler in tests.
func (s Set) With(stage string, h Handler) Set {
	out := make(Set, len(s))
	for name, handler := range s {
		out[name] = handler
	}
	out[stage] = h
	return out
}
