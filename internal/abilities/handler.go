package abilities

//go:generate mockgen -destination=mock/mock_clock.go -package=mockabilities github.com/KirkDiggler/skirmish/internal/abilities Clock

import (
	"context"
	"time"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
)

// Use is one attempt to use an ability
type Use struct {
	Ability string
	Caster  *character.Character
	Target  *character.Character // Optional
}

// Handler performs an ability use
type Handler interface {
	Handle(ctx context.Context, use *Use) error
}

// HandlerFunc is a function that implements Handler
type HandlerFunc func(ctx context.Context, use *Use) error

// Handle implements Handler
func (f HandlerFunc) Handle(ctx context.Context, use *Use) error {
	return f(ctx, use)
}

// Middleware is a function that wraps a handler
type Middleware func(Handler) Handler

// Chain creates a single middleware from multiple middleware.
// The first middleware is the outermost and runs first.
func Chain(middleware ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(middleware) - 1; i >= 0; i-- {
			next = middleware[i](next)
		}
		return next
	}
}

// Clock tells the cooldown middleware what time it is
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// Noop is a handler that does nothing, for chains whose middleware do all the work
var Noop Handler = HandlerFunc(func(context.Context, *Use) error { return nil })
