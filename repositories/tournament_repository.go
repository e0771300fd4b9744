package repositories

import (
	"context"
	"errors"

	"tournament-engine/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentExists   = errors.New("tournament already exists")
)

// ListFilter narrows List results. Nil fields are ignored.
type ListFilter struct {
	Contact  *string
	Complete *bool
	Limit    int
	Offset   int
}

// TournamentRepository persists tournament aggregates: the tournament row
// together with its participants and matches. Implementations return fully
// assembled aggregates, never partial ones.
type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id string) error
}
