package abilities

import (
	"context"
	"log"
	"time"

	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// Logger is a custom logging interface
type Logger interface {
	LogUse(use *Use)
	LogError(use *Use, err error)
}

// WithLogging logs every use and every failure.
// A nil logger writes through the standard log package.
func WithLogging(logger Logger) Middleware {
	if logger == nil {
		logger = &defaultLogger{}
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, use *Use) error {
			logger.LogUse(use)

			err := next.Handle(ctx, use)
			if err != nil {
				logger.LogError(use, err)
			}
			return err
		})
	}
}

// WithValidation rejects uses by a defeated caster or against a defeated target
func WithValidation() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, use *Use) error {
			if use == nil || use.Caster == nil {
				return dnderr.InvalidArgument("ability use needs a caster")
			}
			if use.Ability == "" {
				return dnderr.InvalidArgument("ability is required")
			}
			if !use.Caster.IsAlive() {
				return dnderr.FailedPreconditionf("%s cannot use %s while not alive", use.Caster.Name, use.Ability).
					WithMeta("ability", use.Ability)
			}
			if use.Target != nil && !use.Target.IsAlive() {
				return dnderr.FailedPreconditionf("%s is not a valid target", use.Target.Name).
					WithMeta("ability", use.Ability)
			}

			return next.Handle(ctx, use)
		})
	}
}

// WithCooldown refuses a use until window has passed since the caster last used the ability.
// Cooldowns live on the caster so two characters never share one. Expects WithValidation earlier in the chain.
func WithCooldown(clock Clock, window time.Duration) Middleware {
	if clock == nil {
		clock = RealClock{}
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, use *Use) error {
			now := clock.Now()
			if remaining := use.Caster.CooldownRemaining(use.Ability, window, now); remaining > 0 {
				return dnderr.FailedPreconditionf("%s is on cooldown for %v", use.Ability, remaining).
					WithMeta("ability", use.Ability).
					WithMeta("remaining", remaining)
			}

			if err := next.Handle(ctx, use); err != nil {
				return err
			}

			use.Caster.MarkUsed(use.Ability, now)
			return nil
		})
	}
}

// WithManaCost spends cost mana from the caster before the ability runs.
// Expects WithValidation earlier in the chain.
func WithManaCost(cost int) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, use *Use) error {
			if err := use.Caster.SpendMana(cost); err != nil {
				return dnderr.Wrapf(err, "cannot pay for %s", use.Ability)
			}
			return next.Handle(ctx, use)
		})
	}
}

// defaultLogger provides basic stdout logging
type defaultLogger struct{}

func (l *defaultLogger) LogUse(use *Use) {
	if use == nil || use.Caster == nil {
		return
	}
	if use.Target != nil {
		log.Printf("[Ability] %s uses %s on %s", use.Caster.Name, use.Ability, use.Target.Name)
		return
	}
	log.Printf("[Ability] %s uses %s", use.Caster.Name, use.Ability)
}

func (l *defaultLogger) LogError(use *Use, err error) {
	name := "unknown"
	if use != nil {
		name = use.Ability
	}
	if meta := dnderr.GetMeta(err); len(meta) > 0 {
		log.Printf("[Ability] Error in %s (%s): %v %v", name, dnderr.GetCode(err), err, meta)
		return
	}
	log.Printf("[Ability] Error in %s (%s): %v", name, dnderr.GetCode(err), err)
}
