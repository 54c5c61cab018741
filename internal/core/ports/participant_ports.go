package ports

import (
	"context"

	"github.com/contest/api/internal/core/domain"
)

type ParticipantRepository interface {
	// Create assigns the next id (max existing + 1) and persists the
	// participant with a zero vote count.
	Create(ctx context.Context, p *domain.Participant) error
	// ReplaceAll atomically swaps the whole participant set. Either every
	// entry is inserted or the prior set is left untouched.
	ReplaceAll(ctx context.Context, participants []domain.Participant) error
	GetByID(ctx context.Context, id int64) (*domain.Participant, error)
	// IncrementVote atomically bumps the participant's counter and returns
	// the new value.
	IncrementVote(ctx context.Context, id int64) (int64, error)
	GetAll(ctx context.Context) ([]domain.Participant, error)
	Top(ctx context.Context, n int) ([]domain.Participant, error)
	CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error)
	WithZeroVotes(ctx context.Context) ([]domain.Participant, error)
}

type AddParticipantInput struct {
	Name     string
	Category string
	Photo    string
}

// ImportEntry is a participant descriptor consumed by a bulk replace, as read
// from an external import source.
type ImportEntry struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Photo    string `json:"photo,omitempty"`
}

type ParticipantService interface {
	Add(ctx context.Context, input AddParticipantInput) (*domain.Participant, error)
	// BulkReplace validates and normalizes every entry before touching the
	// store; a malformed entry aborts the whole operation.
	BulkReplace(ctx context.Context, entries []ImportEntry) (int, error)
	All(ctx context.Context) ([]domain.Participant, error)
	Top(ctx context.Context, n int) ([]domain.Participant, error)
	CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error)
	WithZeroVotes(ctx context.Context) ([]domain.Participant, error)
}
