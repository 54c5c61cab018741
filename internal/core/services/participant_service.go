package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/ports"
)

type participantService struct {
	repo ports.ParticipantRepository
}

func NewParticipantService(repo ports.ParticipantRepository) ports.ParticipantService {
	return &participantService{
		repo: repo,
	}
}

func (s *participantService) Add(ctx context.Context, input ports.AddParticipantInput) (*domain.Participant, error) {
	if input.Name == "" {
		return nil, errors.New("name is required")
	}
	if input.Category == "" {
		return nil, errors.New("category is required")
	}

	p := &domain.Participant{
		Name:     input.Name,
		Category: input.Category,
		Photo:    domain.NormalizePhoto(input.Photo),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *participantService) BulkReplace(ctx context.Context, entries []ports.ImportEntry) (int, error) {
	participants := make([]domain.Participant, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return 0, fmt.Errorf("%w: entry %d is missing a name", domain.ErrInvalidImport, i)
		}
		if e.Category == "" {
			return 0, fmt.Errorf("%w: entry %d is missing a category", domain.ErrInvalidImport, i)
		}
		participants = append(participants, domain.Participant{
			ID:       e.ID,
			Name:     e.Name,
			Category: e.Category,
			Photo:    domain.NormalizePhoto(e.Photo),
		})
	}

	if err := s.repo.ReplaceAll(ctx, participants); err != nil {
		return 0, err
	}
	return len(participants), nil
}

func (s *participantService) All(ctx context.Context) ([]domain.Participant, error) {
	return s.repo.GetAll(ctx)
}

func (s *participantService) Top(ctx context.Context, n int) ([]domain.Participant, error) {
	if n <= 0 {
		n = 3
	}
	return s.repo.Top(ctx, n)
}

func (s *participantService) CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error) {
	return s.repo.CategoryTotals(ctx)
}

func (s *participantService) WithZeroVotes(ctx context.Context) ([]domain.Participant, error) {
	return s.repo.WithZeroVotes(ctx)
}
