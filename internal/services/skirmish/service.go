package skirmish

//go:generate mockgen -destination=mock/mock_service.go -package=mockskirmish -source=service.go

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/combat"
	"github.com/KirkDiggler/skirmish/internal/domain/inventory"
	"github.com/KirkDiggler/skirmish/internal/domain/item"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/KirkDiggler/skirmish/internal/repositories/saves"
	"github.com/KirkDiggler/skirmish/internal/services/bestiary"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultInventorySlots is the pack size of a new hero
const DefaultInventorySlots = 10

// Service defines the skirmish service interface
type Service interface {
	// Run fights one skirmish for a hero, then banks experience and loot into the save
	Run(ctx context.Context, input *RunInput) (*Outcome, error)

	// UseItem consumes one of an item from the hero's pack. False means nothing was used.
	UseItem(ctx context.Context, saveID, itemID string) (bool, error)

	// Rest fully restores the hero of a save
	Rest(ctx context.Context, saveID string) (*saves.Snapshot, error)
}

// RunInput contains data for running a skirmish
type RunInput struct {
	OwnerID string

	// SaveID continues an existing hero; empty creates one from HeroName and HeroClass
	SaveID    string
	HeroName  string
	HeroClass character.Class

	// Monsters are bestiary keys; repeats spawn separate monsters
	Monsters []string
}

// Outcome is what a skirmish produced
type Outcome struct {
	Result       *combat.CombatResult
	LevelsGained int
	Added        []item.Item
	Discarded    []item.Item
	Save         *saves.Snapshot
}

type service struct {
	repository     saves.Repository
	bestiary       bestiary.Source
	resolver       combat.Resolver
	inventorySlots int
	tracer         trace.Tracer
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository saves.Repository // Required
	Bestiary   bestiary.Source  // Required
	Resolver   combat.Resolver  // Required

	InventorySlots int          // Defaults to DefaultInventorySlots
	Tracer         trace.Tracer // Defaults to the global provider
}

// NewService creates a new skirmish service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Bestiary == nil {
		panic("bestiary is required")
	}
	if cfg.Resolver == nil {
		panic("resolver is required")
	}

	svc := &service{
		repository:     cfg.Repository,
		bestiary:       cfg.Bestiary,
		resolver:       cfg.Resolver,
		inventorySlots: cfg.InventorySlots,
		tracer:         cfg.Tracer,
	}

	if svc.inventorySlots < 1 {
		svc.inventorySlots = DefaultInventorySlots
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer("github.com/KirkDiggler/skirmish/internal/services/skirmish")
	}

	return svc
}

// Run fights one skirmish for a hero, then banks experience and loot into the save
func (s *service) Run(ctx context.Context, input *RunInput) (outcome *Outcome, err error) {
	if err := validateRunInput(input); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "skirmish.Run", trace.WithAttributes(
		attribute.String("skirmish.owner_id", input.OwnerID),
		attribute.StringSlice("skirmish.monsters", input.Monsters),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	save, isNew, err := s.loadOrCreate(ctx, input)
	if err != nil {
		return nil, err
	}

	hero := save.Character
	if !hero.IsAlive() {
		return nil, dnderr.FailedPreconditionf("%s is defeated and must rest first", hero.Name).
			WithMeta("save_id", save.ID)
	}
	span.SetAttributes(attribute.String("skirmish.hero", hero.Name))

	adversaries, err := s.spawn(ctx, input.Monsters)
	if err != nil {
		return nil, err
	}

	result, err := s.resolver.Resolve(ctx, hero, adversaries)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to resolve skirmish for %s", hero.Name)
	}

	outcome = &Outcome{Result: result, Save: save}

	if result.Experience > 0 {
		leveled, err := hero.GainExperience(result.Experience)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to award experience to %s", hero.Name)
		}
		if leveled {
			outcome.LevelsGained = 1
			log.Printf("%s reached level %d", hero.Name, hero.Level)
		}
	}

	outcome.Added, outcome.Discarded = stow(save.Inventory, result.Loot)

	if isNew {
		err = s.repository.Create(ctx, save)
	} else {
		err = s.repository.Update(ctx, save)
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to persist save")
	}

	span.SetAttributes(
		attribute.String("skirmish.id", result.ID),
		attribute.String("skirmish.save_id", save.ID),
		attribute.String("skirmish.winner", result.Winner),
		attribute.Int("skirmish.turns", result.Turns),
		attribute.Bool("skirmish.stalemate", result.Stalemate),
	)
	log.Printf("Skirmish %s for save %s: winner=%q turns=%d xp=%d loot=%d discarded=%d",
		result.ID, save.ID, result.Winner, result.Turns, result.Experience, len(outcome.Added), len(outcome.Discarded))

	return outcome, nil
}

// UseItem consumes one of an item from the hero's pack
func (s *service) UseItem(ctx context.Context, saveID, itemID string) (bool, error) {
	if strings.TrimSpace(itemID) == "" {
		return false, dnderr.InvalidArgument("item id is required")
	}

	save, err := s.repository.Get(ctx, saveID)
	if err != nil {
		return false, err
	}

	used, err := save.Inventory.UseItem(itemID, save.Character)
	if err != nil {
		return false, dnderr.Wrapf(err, "failed to use %s", itemID).
			WithMeta("save_id", saveID)
	}
	if !used {
		return false, nil
	}

	if err := s.repository.Update(ctx, save); err != nil {
		return false, dnderr.Wrap(err, "failed to persist save")
	}

	return true, nil
}

// Rest fully restores the hero of a save
func (s *service) Rest(ctx context.Context, saveID string) (*saves.Snapshot, error) {
	save, err := s.repository.Get(ctx, saveID)
	if err != nil {
		return nil, err
	}

	save.Character.Rest()

	if err := s.repository.Update(ctx, save); err != nil {
		return nil, dnderr.Wrap(err, "failed to persist save")
	}

	return save, nil
}

func validateRunInput(input *RunInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.OwnerID) == "" {
		return dnderr.InvalidArgument("owner id is required")
	}
	if input.SaveID == "" && strings.TrimSpace(input.HeroName) == "" {
		return dnderr.InvalidArgument("hero name is required for a new save")
	}
	if len(input.Monsters) == 0 {
		return dnderr.Validation("at least one monster is required")
	}
	return nil
}

func (s *service) loadOrCreate(ctx context.Context, input *RunInput) (*saves.Snapshot, bool, error) {
	if input.SaveID != "" {
		save, err := s.repository.Get(ctx, input.SaveID)
		if err != nil {
			return nil, false, err
		}
		if save.OwnerID != input.OwnerID {
			return nil, false, dnderr.FailedPreconditionf("save %s belongs to another owner", save.ID).
				WithMeta("save_id", save.ID)
		}
		return save, false, nil
	}

	class := input.HeroClass
	if class == "" {
		class = character.ClassWarrior
	}

	hero, err := character.New(input.HeroName, class)
	if err != nil {
		return nil, false, err
	}

	return &saves.Snapshot{
		OwnerID:   input.OwnerID,
		Character: hero,
		Inventory: inventory.New(s.inventorySlots),
	}, true, nil
}

// spawn creates one monster per key; repeated kinds are numbered so names stay unique
func (s *service) spawn(ctx context.Context, keys []string) ([]*character.Character, error) {
	counts := make(map[string]int, len(keys))
	for _, key := range keys {
		counts[strings.ToLower(key)]++
	}

	seen := make(map[string]int, len(keys))
	adversaries := make([]*character.Character, 0, len(keys))
	for _, key := range keys {
		monster, err := s.bestiary.Spawn(ctx, key)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to spawn %s", key)
		}

		normalized := strings.ToLower(key)
		if counts[normalized] > 1 {
			seen[normalized]++
			monster.Name = fmt.Sprintf("%s %d", monster.Name, seen[normalized])
		}

		adversaries = append(adversaries, monster)
	}

	return adversaries, nil
}

// stow adds each drop to the pack; whatever does not fit is reported back
func stow(inv *inventory.Inventory, loot []item.Item) (added, discarded []item.Item) {
	for _, drop := range loot {
		ok, err := inv.AddItem(drop)
		if err != nil {
			log.Printf("Discarding %s: %v", drop.GetID(), err)
		}
		if err != nil || !ok {
			discarded = append(discarded, drop)
			continue
		}
		added = append(added, drop)
	}
	return added, discarded
}
