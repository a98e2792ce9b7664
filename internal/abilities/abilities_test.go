package abilities_test

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/KirkDiggler/skirmish/internal/abilities"
	mockabilities "github.com/KirkDiggler/skirmish/internal/abilities/mock"
	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/combat"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var _ combat.SpecialGate = (*abilities.Gate)(nil)

type recordingLogger struct {
	uses   []string
	errors []error
}

func (l *recordingLogger) LogUse(use *abilities.Use) {
	l.uses = append(l.uses, use.Ability)
}

func (l *recordingLogger) LogError(_ *abilities.Use, err error) {
	l.errors = append(l.errors, err)
}

func newMage(t *testing.T) *character.Character {
	t.Helper()
	c, err := character.New("Merlin", character.ClassMage)
	require.NoError(t, err)
	return c
}

func TestChain_RunsInOrder(t *testing.T) {
	var calls []string
	mark := func(name string) abilities.Middleware {
		return func(next abilities.Handler) abilities.Handler {
			return abilities.HandlerFunc(func(ctx context.Context, use *abilities.Use) error {
				calls = append(calls, name)
				return next.Handle(ctx, use)
			})
		}
	}

	handler := abilities.Chain(mark("first"), mark("second"), mark("third"))(
		abilities.HandlerFunc(func(context.Context, *abilities.Use) error {
			calls = append(calls, "handler")
			return nil
		}),
	)

	require.NoError(t, handler.Handle(context.Background(), &abilities.Use{Ability: "x"}))
	assert.Equal(t, []string{"first", "second", "third", "handler"}, calls)
}

func TestWithValidation(t *testing.T) {
	mage := newMage(t)
	fallen, err := character.NewWithStats("Fallen", character.ClassMonster, 1, character.Stats{MaxHealth: 10})
	require.NoError(t, err)

	handler := abilities.Chain(abilities.WithValidation())(abilities.Noop)
	ctx := context.Background()

	assert.NoError(t, handler.Handle(ctx, &abilities.Use{Ability: "bolt", Caster: mage}))
	assert.True(t, dnderr.IsInvalidArgument(handler.Handle(ctx, nil)))
	assert.True(t, dnderr.IsInvalidArgument(handler.Handle(ctx, &abilities.Use{Caster: mage})))
	assert.True(t, dnderr.IsFailedPrecondition(handler.Handle(ctx, &abilities.Use{Ability: "bolt", Caster: fallen})))
	assert.True(t, dnderr.IsFailedPrecondition(handler.Handle(ctx, &abilities.Use{Ability: "bolt", Caster: mage, Target: fallen})))
}

func TestWithCooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mockabilities.NewMockClock(ctrl)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	gomock.InOrder(
		clock.EXPECT().Now().Return(start),
		clock.EXPECT().Now().Return(start.Add(2*time.Second)),
		clock.EXPECT().Now().Return(start.Add(5*time.Second)),
	)

	mage := newMage(t)
	other := newMage(t)
	handler := abilities.Chain(abilities.WithValidation(), abilities.WithCooldown(clock, 5*time.Second))(abilities.Noop)
	use := &abilities.Use{Ability: "blink", Caster: mage}

	require.NoError(t, handler.Handle(context.Background(), use))

	err := handler.Handle(context.Background(), use)
	require.Error(t, err)
	assert.True(t, dnderr.IsFailedPrecondition(err))
	assert.Equal(t, 3*time.Second, dnderr.GetMeta(err)["remaining"])

	require.NoError(t, handler.Handle(context.Background(), use))

	assert.Zero(t, other.CooldownRemaining("blink", 5*time.Second, start), "cooldowns are per character")
}

func TestWithManaCost(t *testing.T) {
	mage := newMage(t)
	handler := abilities.Chain(abilities.WithValidation(), abilities.WithManaCost(60))(abilities.Noop)
	use := &abilities.Use{Ability: "meteor", Caster: mage}

	require.NoError(t, handler.Handle(context.Background(), use))
	assert.Equal(t, 40, mage.Stats().Mana)

	err := handler.Handle(context.Background(), use)
	assert.True(t, dnderr.IsFailedPrecondition(err))
	assert.Equal(t, 40, mage.Stats().Mana)
}

func TestWithLogging(t *testing.T) {
	logger := &recordingLogger{}
	failing := abilities.HandlerFunc(func(context.Context, *abilities.Use) error {
		return dnderr.Validation("boom")
	})

	handler := abilities.Chain(abilities.WithLogging(logger))(failing)
	err := handler.Handle(context.Background(), &abilities.Use{Ability: "fizzle", Caster: newMage(t)})

	require.Error(t, err)
	assert.Equal(t, []string{"fizzle"}, logger.uses)
	require.Len(t, logger.errors, 1)
	assert.True(t, dnderr.IsValidation(logger.errors[0]))
}

func TestWithLogging_DefaultLoggerIncludesCode(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	failing := abilities.HandlerFunc(func(context.Context, *abilities.Use) error {
		return dnderr.FailedPreconditionf("on cooldown").WithMeta("remaining", "2s")
	})

	handler := abilities.Chain(abilities.WithLogging(nil))(failing)
	err := handler.Handle(context.Background(), &abilities.Use{Ability: "blink", Caster: newMage(t)})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "[Ability] Error in blink (failed_precondition): on cooldown")
	assert.Contains(t, out, "remaining:2s")
}

func TestGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mockabilities.NewMockClock(ctrl)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()

	logger := &recordingLogger{}
	gate := abilities.NewGate(&abilities.GateConfig{
		Ability:  "power_strike",
		ManaCost: 10,
		Cooldown: time.Minute,
		Clock:    clock,
		Logger:   logger,
	})

	mage := newMage(t)
	assert.True(t, gate.Allow(context.Background(), mage))
	assert.Equal(t, 90, mage.Stats().Mana)

	assert.False(t, gate.Allow(context.Background(), mage), "second use is on cooldown")
	assert.Equal(t, 90, mage.Stats().Mana, "a refused use costs nothing")
	assert.Len(t, logger.errors, 1)

	assert.Panics(t, func() { abilities.NewGate(&abilities.GateConfig{}) })
}

func TestGate_ManaOnly(t *testing.T) {
	gate := abilities.NewGate(&abilities.GateConfig{Ability: "smite", ManaCost: 40, Logger: &recordingLogger{}})
	warrior, err := character.New("Conan", character.ClassWarrior)
	require.NoError(t, err)

	assert.False(t, gate.Allow(context.Background(), warrior), "30 mana cannot pay 40")
	assert.Equal(t, 30, warrior.Stats().Mana)
}
