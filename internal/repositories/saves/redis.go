package saves

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/KirkDiggler/skirmish/internal/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// RedisConfig holds configuration for the Redis repository
type RedisConfig struct {
	Client        redis.UniversalClient // Required
	UUIDGenerator uuid.Generator
	TimeProvider  TimeProvider
}

// NewRedisRepository creates a new Redis-backed save repository
func NewRedisRepository(cfg *RedisConfig) Repository {
	if cfg == nil {
		panic("RedisConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	repo := &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if repo.timeProvider == nil {
		repo.timeProvider = &RealTimeProvider{}
	}

	return repo
}

// NewRedis creates a Redis-backed save repository with real ids and clock
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisConfig{Client: client})
}

// key generates the Redis key for a save
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("save:%s", id)
}

// ownerSavesKey generates the Redis key for an owner's save set
func (r *redisRepo) ownerSavesKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:saves", ownerID)
}

func (r *redisRepo) Create(ctx context.Context, save *Snapshot) error {
	if err := validate(save); err != nil {
		return err
	}

	stamped := *save
	if stamped.ID == "" {
		stamped.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, r.key(stamped.ID)).Result()
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to check save existence")
	}
	if exists > 0 {
		return alreadyExists(stamped.ID)
	}

	now := r.timeProvider.Now()
	stamped.CreatedAt = now
	stamped.UpdatedAt = now

	if err := r.set(ctx, &stamped); err != nil {
		return err
	}

	// caller sees the id and times only once the write landed
	save.ID, save.CreatedAt, save.UpdatedAt = stamped.ID, now, now
	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*Snapshot, error) {
	data, err := r.getData(ctx, id)
	if err != nil {
		return nil, err
	}

	return FromData(data)
}

func (r *redisRepo) Update(ctx context.Context, save *Snapshot) error {
	if err := validate(save); err != nil {
		return err
	}
	if save.ID == "" {
		return errIDRequired
	}

	existing, err := r.getData(ctx, save.ID)
	if err != nil {
		return err
	}

	stamped := *save
	stamped.UpdatedAt = r.timeProvider.Now()
	if err := r.set(ctx, &stamped); err != nil {
		return err
	}
	save.UpdatedAt = stamped.UpdatedAt

	if existing.OwnerID != save.OwnerID {
		if err := r.client.SRem(ctx, r.ownerSavesKey(existing.OwnerID), save.ID).Err(); err != nil {
			log.Printf("Failed to remove save %s from owner %s index: %v", save.ID, existing.OwnerID, err)
		}
	}

	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	existing, err := r.getData(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerSavesKey(existing.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to delete save from Redis")
	}

	return nil
}

func (r *redisRepo) ListByOwner(ctx context.Context, ownerID string) ([]*Snapshot, error) {
	if ownerID == "" {
		return nil, errOwnerRequired
	}

	ids, err := r.client.SMembers(ctx, r.ownerSavesKey(ownerID)).Result()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get owner saves from Redis")
	}

	saves := make([]*Snapshot, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			save, err := r.Get(gctx, id)
			if err != nil {
				if dnderr.IsNotFound(err) {
					// stale index entry
					log.Printf("Save %s listed for owner %s but missing", id, ownerID)
					return nil
				}
				return dnderr.Wrapf(err, "failed to get save %s", id)
			}
			saves[i] = save
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*Snapshot, 0, len(saves))
	for _, save := range saves {
		if save != nil {
			result = append(result, save)
		}
	}
	sortByCreated(result)

	return result, nil
}

func (r *redisRepo) getData(ctx context.Context, id string) (*Data, error) {
	if id == "" {
		return nil, errIDRequired
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(id)
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get save from Redis").
			WithMeta("save_id", id)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, dnderr.Wrapf(err, "failed to unmarshal save %s", id)
	}

	return &data, nil
}

func (r *redisRepo) set(ctx context.Context, save *Snapshot) error {
	data, err := ToData(save)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal save data")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(save.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.ownerSavesKey(save.OwnerID), save.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to set save in Redis").
			WithMeta("save_id", save.ID)
	}

	return nil
}
