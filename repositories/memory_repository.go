package repositories

import (
	"context"
	"sort"
	"sync"

	"tournament-engine/models"
)

// MemoryTournamentRepository keeps tournaments in process memory. It is the
// default backend for tests and for embedding the engine without a database.
type MemoryTournamentRepository struct {
	mu          sync.RWMutex
	tournaments map[string]*models.Tournament
}

func NewMemoryTournamentRepository() *MemoryTournamentRepository {
	return &MemoryTournamentRepository{
		tournaments: make(map[string]*models.Tournament),
	}
}

func (r *MemoryTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tournaments[tournament.ID]; exists {
		return ErrTournamentExists
	}
	r.tournaments[tournament.ID] = tournament.Clone()
	return nil
}

func (r *MemoryTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tournaments[id]
	if !exists {
		return nil, ErrTournamentNotFound
	}
	return t.Clone(), nil
}

func (r *MemoryTournamentRepository) List(ctx context.Context, filter ListFilter) ([]*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		if filter.Contact != nil && t.Contact != *filter.Contact {
			continue
		}
		if filter.Complete != nil && t.IsComplete() != *filter.Complete {
			continue
		}
		matched = append(matched, t)
	}

	// Newest first, ties broken by ID to keep the order deterministic.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start := 0
	if filter.Offset > 0 {
		start = filter.Offset
	}
	if start > len(matched) {
		return []*models.Tournament{}, nil
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}

	out := make([]*models.Tournament, 0, end-start)
	for _, t := range matched[start:end] {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *MemoryTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tournaments[tournament.ID]; !exists {
		return ErrTournamentNotFound
	}
	r.tournaments[tournament.ID] = tournament.Clone()
	return nil
}

func (r *MemoryTournamentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tournaments[id]; !exists {
		return ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}
