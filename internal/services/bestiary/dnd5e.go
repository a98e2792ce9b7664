package bestiary

import (
	"context"
	"log"
	"math"
	"sync"

	"github.com/KirkDiggler/skirmish/internal/clients/dnd5e"
	"github.com/KirkDiggler/skirmish/internal/dice"
	"github.com/KirkDiggler/skirmish/internal/domain/character"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

const baseSpeed = 10

type apiSource struct {
	dndClient dnd5e.Client
	fallback  Source
	minCR     float32
	maxCR     float32

	mu           sync.Mutex
	monsterCache map[string]*dnd5e.MonsterTemplate
}

// APISourceConfig holds configuration for the API backed source
type APISourceConfig struct {
	DNDClient dnd5e.Client // Required
	Fallback  Source       // Optional, used when the API cannot answer
	MinCR     float32
	MaxCR     float32 // Defaults to 2
}

// NewAPISource creates a source that converts D&D 5e API monsters into combatants
func NewAPISource(cfg *APISourceConfig) Source {
	if cfg == nil || cfg.DNDClient == nil {
		panic("DND client is required")
	}

	maxCR := cfg.MaxCR
	if maxCR <= 0 {
		maxCR = 2
	}

	return &apiSource{
		dndClient:    cfg.DNDClient,
		fallback:     cfg.Fallback,
		minCR:        cfg.MinCR,
		maxCR:        maxCR,
		monsterCache: make(map[string]*dnd5e.MonsterTemplate),
	}
}

func (s *apiSource) Spawn(ctx context.Context, key string) (*character.Character, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("monster key is required")
	}

	template, err := s.getMonster(key)
	if err != nil {
		if s.fallback != nil {
			log.Printf("Failed to get monster %s from the API (%s), using fallback: %v", key, dnderr.GetCode(err), err)
			return s.fallback.Spawn(ctx, key)
		}
		return nil, err
	}

	return FromTemplate(template)
}

func (s *apiSource) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.dndClient.ListMonsterKeysByCR(s.minCR, s.maxCR)
	if err == nil && len(keys) > 0 {
		return keys, nil
	}

	if s.fallback != nil {
		log.Printf("No monster keys from the API for CR %v-%v, using fallback: %v", s.minCR, s.maxCR, err)
		return s.fallback.Keys(ctx)
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list monsters")
	}
	return keys, nil
}

func (s *apiSource) getMonster(key string) (*dnd5e.MonsterTemplate, error) {
	s.mu.Lock()
	cached, ok := s.monsterCache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	template, err := s.dndClient.GetMonster(key)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get monster '%s'", key)
	}
	if template == nil {
		return nil, dnderr.NotFoundf("monster %s not found", key).
			WithMeta("key", key)
	}

	s.mu.Lock()
	s.monsterCache[key] = template
	s.mu.Unlock()

	return template, nil
}

// FromTemplate converts an API stat block into a combatant.
// Armor class above 10 becomes defense. The best attack bonus plus the average of that
// attack's first damage dice becomes attack, and the bonus also adds to speed.
func FromTemplate(template *dnd5e.MonsterTemplate) (*character.Character, error) {
	if template == nil {
		return nil, dnderr.InvalidArgument("monster template is required")
	}

	bonus, damage := bestAttack(template.Actions)

	health := template.HitPoints
	if health < 1 {
		health = 1
	}

	stats := character.Stats{
		Health:    health,
		MaxHealth: health,
		Attack:    max(0, bonus+damage),
		Defense:   max(0, template.ArmorClass-10),
		Speed:     max(0, baseSpeed+bonus),
	}

	level := max(1, int(math.Round(template.ChallengeRating)))

	name := template.Name
	if name == "" {
		name = template.Key
	}

	return character.NewWithStats(name, character.ClassMonster, level, stats)
}

func bestAttack(actions []*dnd5e.MonsterAction) (bonus, damage int) {
	var best *dnd5e.MonsterAction
	for _, action := range actions {
		if action == nil {
			continue
		}
		if best == nil || action.AttackBonus > best.AttackBonus {
			best = action
		}
	}
	if best == nil {
		return 0, 0
	}

	if len(best.Damage) > 0 {
		if avg, err := dice.Average(best.Damage[0]); err == nil {
			damage = avg
		}
	}

	return best.AttackBonus, damage
}
