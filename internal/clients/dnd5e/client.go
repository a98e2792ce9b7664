package dnd5e

import (
	"log"
	"net/http"

	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"golang.org/x/sync/errgroup"
)

// lookupConcurrency bounds the parallel monster fetches of a CR listing.
const lookupConcurrency = 8

// TODO: add context to functions once the api client accepts one
type client struct {
	client dnd5e.Interface
}

type Config struct {
	HttpClient *http.Client
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("missing parameter: cfg")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to create dnd5e api client")
	}

	return &client{
		client: dndClient,
	}, nil
}

func (c *client) GetMonster(key string) (*MonsterTemplate, error) {
	monster, err := c.client.GetMonster(key)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get monster from the API").
			WithMeta("key", key)
	}
	if monster == nil {
		return nil, dnderr.NotFoundf("monster %s not found", key)
	}

	return apiToMonsterTemplate(monster), nil
}

// ListMonsterKeysByCR returns monster keys within a challenge rating range, in API order.
// The API has no CR filter, so every listed monster is fetched and checked.
// Lookups that fail are logged and skipped.
func (c *client) ListMonsterKeysByCR(minCR, maxCR float32) ([]string, error) {
	refs, err := c.client.ListMonsters()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to list monsters from the API")
	}

	matched := make([]bool, len(refs))

	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, ref := range refs {
		if ref == nil || ref.Key == "" {
			continue
		}
		g.Go(func() error {
			monster, err := c.client.GetMonster(ref.Key)
			if err != nil || monster == nil {
				log.Printf("Failed to get monster %s while filtering by CR: %v", ref.Key, err)
				return nil
			}
			matched[i] = monster.ChallengeRating >= minCR && monster.ChallengeRating <= maxCR
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keys := []string{}
	seen := make(map[string]bool)
	for i, ref := range refs {
		if !matched[i] || seen[ref.Key] {
			continue
		}
		seen[ref.Key] = true
		keys = append(keys, ref.Key)
	}

	return keys, nil
}

func apiToMonsterTemplate(input *apiEntities.Monster) *MonsterTemplate {
	if input == nil {
		return nil
	}

	return &MonsterTemplate{
		Key:             input.Key,
		Name:            input.Name,
		Type:            input.Type,
		ArmorClass:      int(input.ArmorClass),
		HitPoints:       int(input.HitPoints),
		HitDice:         input.HitDice,
		ChallengeRating: float64(input.ChallengeRating),
		Actions:         apisToMonsterActions(input.MonsterActions),
	}
}

func apisToMonsterActions(input []*apiEntities.MonsterAction) []*MonsterAction {
	if input == nil {
		return nil
	}

	var actions []*MonsterAction
	for _, ma := range input {
		if action := apiToMonsterAction(ma); action != nil {
			actions = append(actions, action)
		}
	}

	return actions
}

func apiToMonsterAction(input *apiEntities.MonsterAction) *MonsterAction {
	if input == nil {
		return nil
	}

	action := &MonsterAction{
		Name:        input.Name,
		Description: input.Description,
		AttackBonus: int(input.AttackBonus),
	}
	for _, d := range input.Damage {
		if d != nil && d.DamageDice != "" {
			action.Damage = append(action.Damage, d.DamageDice)
		}
	}

	return action
}
