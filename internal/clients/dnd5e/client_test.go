package dnd5e

import (
	"errors"
	"testing"

	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiToMonsterTemplate(t *testing.T) {
	monster := &apiEntities.Monster{
		Key:             "goblin",
		Name:            "Goblin",
		Type:            "humanoid",
		ArmorClass:      15,
		HitPoints:       7,
		HitDice:         "2d6",
		ChallengeRating: 0.25,
		MonsterActions: []*apiEntities.MonsterAction{
			{
				Name:        "Scimitar",
				Description: "Melee Weapon Attack: +4 to hit, reach 5 ft., one target.",
				AttackBonus: 4,
				Damage:      []*apiEntities.Damage{{DamageDice: "1d6+2"}, nil},
			},
			nil,
			{Name: "Nimble Escape"},
		},
	}

	template := apiToMonsterTemplate(monster)
	require.NotNil(t, template)

	assert.Equal(t, "goblin", template.Key)
	assert.Equal(t, "Goblin", template.Name)
	assert.Equal(t, 15, template.ArmorClass)
	assert.Equal(t, 7, template.HitPoints)
	assert.InDelta(t, 0.25, template.ChallengeRating, 0.0001)

	require.Len(t, template.Actions, 2)
	assert.Equal(t, "Scimitar", template.Actions[0].Name)
	assert.Equal(t, 4, template.Actions[0].AttackBonus)
	assert.Equal(t, []string{"1d6+2"}, template.Actions[0].Damage)
	assert.Empty(t, template.Actions[1].Damage)

	assert.Nil(t, apiToMonsterTemplate(nil))
}

// stubAPI serves monsters from a map; methods it does not override panic.
type stubAPI struct {
	dnd5e.Interface
	monsters map[string]*apiEntities.Monster
	refs     []*apiEntities.ReferenceItem
	err      error
}

func (s *stubAPI) GetMonster(key string) (*apiEntities.Monster, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.monsters[key], nil
}

func (s *stubAPI) ListMonsters() ([]*apiEntities.ReferenceItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.refs, nil
}

func TestGetMonster(t *testing.T) {
	api := &stubAPI{monsters: map[string]*apiEntities.Monster{
		"goblin": {Key: "goblin", Name: "Goblin", ArmorClass: 15, HitPoints: 7, ChallengeRating: 0.25},
	}}
	c := &client{client: api}

	template, err := c.GetMonster("goblin")
	require.NoError(t, err)
	assert.Equal(t, "Goblin", template.Name)
	assert.Equal(t, 0.25, template.ChallengeRating)

	_, err = c.GetMonster("tarrasque")
	assert.True(t, dnderr.IsNotFound(err))
}

func TestGetMonster_APIErrorIsUnavailable(t *testing.T) {
	c := &client{client: &stubAPI{err: errors.New("503 service unavailable")}}

	_, err := c.GetMonster("goblin")
	require.Error(t, err)
	assert.True(t, dnderr.IsUnavailable(err))
	assert.Equal(t, "goblin", dnderr.GetMeta(err)["key"])

	_, err = c.ListMonsterKeysByCR(0, 1)
	assert.True(t, dnderr.IsUnavailable(err))
}

func TestListMonsterKeysByCR(t *testing.T) {
	api := &stubAPI{
		monsters: map[string]*apiEntities.Monster{
			"rat":    {Key: "rat", ChallengeRating: 0},
			"goblin": {Key: "goblin", ChallengeRating: 0.25},
			"orc":    {Key: "orc", ChallengeRating: 0.5},
			"ogre":   {Key: "ogre", ChallengeRating: 2},
		},
		refs: []*apiEntities.ReferenceItem{
			{Key: "rat"}, {Key: "goblin"}, {Key: "ghost"}, nil, {Key: "orc"}, {Key: "ogre"}, {Key: "goblin"},
		},
	}
	c := &client{client: api}

	keys, err := c.ListMonsterKeysByCR(0.2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"goblin", "orc"}, keys)

	keys, err = c.ListMonsterKeysByCR(10, 20)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
