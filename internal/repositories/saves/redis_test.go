package saves

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/inventory"
	"github.com/KirkDiggler/skirmish/internal/domain/item"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/KirkDiggler/skirmish/internal/repositories/saves/mocks"
	"github.com/KirkDiggler/skirmish/internal/uuid"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient   *redis.Client
	mock         redismock.ClientMock
	repo         Repository
	mockCtrl     *gomock.Controller
	timeProvider *mocks.MockTimeProvider
	now          time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mocks.NewMockTimeProvider(s.mockCtrl)
	s.now = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	s.repo = NewRedisRepository(&RedisConfig{
		Client:        s.mockClient,
		UUIDGenerator: uuid.NewSequentialGenerator("save"),
		TimeProvider:  s.timeProvider,
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) newSave(id, ownerID string) *Snapshot {
	hero, err := character.New("Aria", character.ClassRogue)
	s.Require().NoError(err)

	inv := inventory.New(5)
	_, err = inv.AddItem(&item.Consumable{Base: item.Base{ID: "health_potion", Name: "Health Potion", Quantity: 2, Value: 25}, MaxStack: 10, HealAmount: 30})
	s.Require().NoError(err)
	_, err = inv.AddItem(&item.Weapon{Base: item.Base{ID: "dagger", Name: "Dagger", Quantity: 1, Value: 10}, Damage: 4})
	s.Require().NoError(err)

	return &Snapshot{ID: id, OwnerID: ownerID, Character: hero, Inventory: inv}
}

func (s *RedisRepoTestSuite) marshal(save *Snapshot) string {
	data, err := ToData(save)
	s.Require().NoError(err)
	jsonData, err := json.Marshal(data)
	s.Require().NoError(err)
	return string(jsonData)
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	s.timeProvider.EXPECT().Now().Return(s.now)

	save := s.newSave("", "owner-1")
	expected := s.newSave("save-1", "owner-1")
	expected.CreatedAt, expected.UpdatedAt = s.now, s.now

	s.mock.ExpectExists("save:save-1").SetVal(0)
	s.mock.ExpectSet("save:save-1", s.marshal(expected), 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:owner-1:saves", "save-1").SetVal(1)

	err := s.repo.Create(ctx, save)
	s.NoError(err)
	s.Equal("save-1", save.ID)
	s.Equal(s.now, save.CreatedAt)
}

func (s *RedisRepoTestSuite) TestCreate_AlreadyExists() {
	ctx := context.Background()

	s.mock.ExpectExists("save:taken").SetVal(1)

	err := s.repo.Create(ctx, s.newSave("taken", "owner-1"))
	s.True(dnderr.IsAlreadyExists(err))
}

func (s *RedisRepoTestSuite) TestCreate_Errors() {
	ctx := context.Background()

	// Dependency error
	s.mock.ExpectExists("save:save-x").SetErr(errors.New("redis error"))
	err := s.repo.Create(ctx, s.newSave("save-x", "owner-1"))
	s.True(dnderr.IsUnavailable(err))

	// Input validation
	s.True(dnderr.IsInvalidArgument(s.repo.Create(ctx, nil)))
	s.True(dnderr.IsInvalidArgument(s.repo.Create(ctx, &Snapshot{OwnerID: "owner-1"})))
	s.True(dnderr.IsInvalidArgument(s.repo.Create(ctx, s.newSave("x", ""))))
}

func (s *RedisRepoTestSuite) TestCreate_WriteFailureLeavesCallerUntouched() {
	ctx := context.Background()
	s.timeProvider.EXPECT().Now().Return(s.now)

	save := s.newSave("", "owner-1")
	expected := s.newSave("save-1", "owner-1")
	expected.CreatedAt, expected.UpdatedAt = s.now, s.now

	s.mock.ExpectExists("save:save-1").SetVal(0)
	s.mock.ExpectSet("save:save-1", s.marshal(expected), 0).SetErr(errors.New("redis error"))

	err := s.repo.Create(ctx, save)
	s.True(dnderr.IsUnavailable(err))
	s.Equal("save-1", dnderr.GetMeta(err)["save_id"])
	s.Empty(save.ID)
	s.True(save.CreatedAt.IsZero())
	s.True(save.UpdatedAt.IsZero())
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	stored := s.newSave("save-1", "owner-1")
	stored.CreatedAt, stored.UpdatedAt = s.now, s.now

	// Happy path
	s.mock.ExpectGet("save:save-1").SetVal(s.marshal(stored))

	save, err := s.repo.Get(ctx, "save-1")
	s.Require().NoError(err)
	s.Equal("owner-1", save.OwnerID)
	s.Equal("Aria", save.Character.Name)
	s.Equal(stored.Character.Stats(), save.Character.Stats())
	s.Equal(3, save.Inventory.ItemCount())
	s.Equal(5, save.Inventory.MaxSlots())
	potion, ok := save.Inventory.GetItem("health_potion")
	s.Require().True(ok)
	s.IsType(&item.Consumable{}, potion)

	// Not found
	s.mock.ExpectGet("save:missing").RedisNil()
	_, err = s.repo.Get(ctx, "missing")
	s.True(dnderr.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("save:save-1").SetErr(errors.New("redis error"))
	_, err = s.repo.Get(ctx, "save-1")
	s.True(dnderr.IsUnavailable(err))
	s.False(dnderr.IsNotFound(err))

	// Input validation
	_, err = s.repo.Get(ctx, "")
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestUpdate() {
	ctx := context.Background()
	later := s.now.Add(time.Hour)
	s.timeProvider.EXPECT().Now().Return(later)

	stored := s.newSave("save-1", "owner-1")
	stored.CreatedAt, stored.UpdatedAt = s.now, s.now

	save := s.newSave("save-1", "owner-2")
	save.CreatedAt = s.now
	_, err := save.Character.TakeDamage(10)
	s.Require().NoError(err)

	expected := s.newSave("save-1", "owner-2")
	expected.CreatedAt, expected.UpdatedAt = s.now, later
	_, err = expected.Character.TakeDamage(10)
	s.Require().NoError(err)

	s.mock.ExpectGet("save:save-1").SetVal(s.marshal(stored))
	s.mock.ExpectSet("save:save-1", s.marshal(expected), 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:owner-2:saves", "save-1").SetVal(1)
	s.mock.ExpectSRem("owner:owner-1:saves", "save-1").SetVal(1)

	err = s.repo.Update(ctx, save)
	s.NoError(err)
	s.Equal(later, save.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestUpdate_WriteFailureKeepsUpdatedAt() {
	ctx := context.Background()
	later := s.now.Add(time.Hour)
	s.timeProvider.EXPECT().Now().Return(later)

	stored := s.newSave("save-1", "owner-1")
	stored.CreatedAt, stored.UpdatedAt = s.now, s.now

	save := s.newSave("save-1", "owner-1")
	save.CreatedAt, save.UpdatedAt = s.now, s.now

	expected := s.newSave("save-1", "owner-1")
	expected.CreatedAt, expected.UpdatedAt = s.now, later

	s.mock.ExpectGet("save:save-1").SetVal(s.marshal(stored))
	s.mock.ExpectSet("save:save-1", s.marshal(expected), 0).SetErr(errors.New("redis error"))

	err := s.repo.Update(ctx, save)
	s.True(dnderr.IsUnavailable(err))
	s.Equal(s.now, save.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("save:ghost").RedisNil()

	err := s.repo.Update(ctx, s.newSave("ghost", "owner-1"))
	s.True(dnderr.IsNotFound(err))

	err = s.repo.Update(ctx, s.newSave("", "owner-1"))
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()
	stored := s.newSave("save-1", "owner-1")

	// Happy path
	s.mock.ExpectGet("save:save-1").SetVal(s.marshal(stored))
	s.mock.ExpectDel("save:save-1").SetVal(1)
	s.mock.ExpectSRem("owner:owner-1:saves", "save-1").SetVal(1)

	err := s.repo.Delete(ctx, "save-1")
	s.NoError(err)

	// Dependency error
	s.mock.ExpectGet("save:save-1").SetErr(errors.New("redis error"))

	err = s.repo.Delete(ctx, "save-1")
	s.True(dnderr.IsUnavailable(err))

	// Pipeline failure
	s.mock.ExpectGet("save:save-1").SetVal(s.marshal(stored))
	s.mock.ExpectDel("save:save-1").SetErr(errors.New("redis error"))

	err = s.repo.Delete(ctx, "save-1")
	s.True(dnderr.IsUnavailable(err))

	// Input validation
	err = s.repo.Delete(ctx, "")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestListByOwner() {
	ctx := context.Background()
	stored := s.newSave("save-1", "owner-1")

	// Happy path
	s.mock.ExpectSMembers("owner:owner-1:saves").SetVal([]string{"save-1"})
	s.mock.ExpectGet("save:save-1").SetVal(s.marshal(stored))

	saves, err := s.repo.ListByOwner(ctx, "owner-1")
	s.Require().NoError(err)
	s.Require().Len(saves, 1)
	s.Equal("save-1", saves[0].ID)

	// Stale index entries are skipped
	s.mock.ExpectSMembers("owner:owner-1:saves").SetVal([]string{"gone"})
	s.mock.ExpectGet("save:gone").RedisNil()

	saves, err = s.repo.ListByOwner(ctx, "owner-1")
	s.NoError(err)
	s.Empty(saves)

	// Dependency error
	s.mock.ExpectSMembers("owner:owner-1:saves").SetErr(errors.New("redis error"))

	_, err = s.repo.ListByOwner(ctx, "owner-1")
	s.True(dnderr.IsUnavailable(err))

	// Input validation
	_, err = s.repo.ListByOwner(ctx, "")
	s.Error(err)
}
