package saves

import (
	"context"
	"sync"

	"github.com/KirkDiggler/skirmish/internal/uuid"
)

// inMemoryRepo keeps stored forms rather than live pointers so callers never share state
type inMemoryRepo struct {
	mu            sync.RWMutex
	saves         map[string]*Data
	byOwner       map[string]map[string]bool
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// InMemoryConfig holds configuration for the in-memory repository
type InMemoryConfig struct {
	UUIDGenerator uuid.Generator
	TimeProvider  TimeProvider
}

// NewInMemoryRepository creates a new in-memory save repository
func NewInMemoryRepository(cfg *InMemoryConfig) Repository {
	repo := &inMemoryRepo{
		saves:         make(map[string]*Data),
		byOwner:       make(map[string]map[string]bool),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
		timeProvider:  &RealTimeProvider{},
	}

	if cfg != nil {
		if cfg.UUIDGenerator != nil {
			repo.uuidGenerator = cfg.UUIDGenerator
		}
		if cfg.TimeProvider != nil {
			repo.timeProvider = cfg.TimeProvider
		}
	}

	return repo
}

func (r *inMemoryRepo) Create(_ context.Context, save *Snapshot) error {
	if err := validate(save); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stamped := *save
	if stamped.ID == "" {
		stamped.ID = r.uuidGenerator.New()
	}
	if _, exists := r.saves[stamped.ID]; exists {
		return alreadyExists(stamped.ID)
	}

	now := r.timeProvider.Now()
	stamped.CreatedAt = now
	stamped.UpdatedAt = now

	if err := r.store(&stamped); err != nil {
		return err
	}
	save.ID, save.CreatedAt, save.UpdatedAt = stamped.ID, now, now
	return nil
}

func (r *inMemoryRepo) Get(_ context.Context, id string) (*Snapshot, error) {
	if id == "" {
		return nil, errIDRequired
	}

	r.mu.RLock()
	data, exists := r.saves[id]
	r.mu.RUnlock()

	if !exists {
		return nil, notFound(id)
	}

	return FromData(data)
}

func (r *inMemoryRepo) Update(_ context.Context, save *Snapshot) error {
	if err := validate(save); err != nil {
		return err
	}
	if save.ID == "" {
		return errIDRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.saves[save.ID]
	if !exists {
		return notFound(save.ID)
	}
	stamped := *save
	stamped.UpdatedAt = r.timeProvider.Now()
	if err := r.store(&stamped); err != nil {
		return err
	}
	if existing.OwnerID != save.OwnerID {
		delete(r.byOwner[existing.OwnerID], save.ID)
	}
	save.UpdatedAt = stamped.UpdatedAt
	return nil
}

func (r *inMemoryRepo) Delete(_ context.Context, id string) error {
	if id == "" {
		return errIDRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.saves[id]
	if !exists {
		return notFound(id)
	}

	delete(r.saves, id)
	delete(r.byOwner[existing.OwnerID], id)
	return nil
}

func (r *inMemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*Snapshot, error) {
	if ownerID == "" {
		return nil, errOwnerRequired
	}

	r.mu.RLock()
	ids := make([]string, 0, len(r.byOwner[ownerID]))
	for id := range r.byOwner[ownerID] {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	saves := make([]*Snapshot, 0, len(ids))
	for _, id := range ids {
		save, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		saves = append(saves, save)
	}
	sortByCreated(saves)

	return saves, nil
}

// store must be called with the write lock held
func (r *inMemoryRepo) store(save *Snapshot) error {
	data, err := ToData(save)
	if err != nil {
		return err
	}

	r.saves[save.ID] = data
	if r.byOwner[save.OwnerID] == nil {
		r.byOwner[save.OwnerID] = make(map[string]bool)
	}
	r.byOwner[save.OwnerID][save.ID] = true
	return nil
}
