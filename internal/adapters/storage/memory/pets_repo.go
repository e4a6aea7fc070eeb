package memory

import (
	"context"
	"fmt"
	"sync"

	"pet-adoption/internal/domain/pets"
)

// petRepo guarda la colección en un slice ordenado (orden de inserción),
// con la misma semántica de errores que el archivo.
type petRepo struct {
	mu    sync.RWMutex
	items []pets.Pet
}

func NewPetRepo(seed ...pets.Pet) pets.Repository {
	items := make([]pets.Pet, len(seed))
	copy(items, seed)
	return &petRepo{items: items}
}

func (r *petRepo) FetchAll(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *petRepo) Add(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(p.ID) >= 0 {
		return fmt.Errorf("%w: %q", pets.ErrDuplicateKey, p.ID)
	}
	r.items = append(r.items, p)
	return nil
}

func (r *petRepo) Update(ctx context.Context, id string, patch pets.Patch) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	first := -1
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		r.items[i] = patch.Apply(r.items[i])
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		return pets.Pet{}, fmt.Errorf("%w: %q", pets.ErrNotFound, id)
	}
	return r.items[first], nil
}

func (r *petRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0:0]
	for _, p := range r.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(r.items) {
		return fmt.Errorf("%w: %q", pets.ErrNotFound, id)
	}
	r.items = kept
	return nil
}

func (r *petRepo) ReplaceAll(ctx context.Context, items []pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make([]pets.Pet, len(items))
	copy(r.items, items)
	return nil
}

func (r *petRepo) Merge(ctx context.Context, items []pets.Pet) (int, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged, skipped := pets.MergeInto(r.items, items)
	added := len(merged) - len(r.items)
	r.items = merged
	return added, skipped, nil
}

func (r *petRepo) indexOf(id string) int {
	for i, p := range r.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
