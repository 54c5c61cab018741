package services

import (
	"context"
	"fmt"

	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/ports"
)

type tallyService struct {
	participantRepo ports.ParticipantRepository
	cache           ports.TallyCache
}

func NewTallyService(participantRepo ports.ParticipantRepository, cache ports.TallyCache) ports.TallyService {
	return &tallyService{
		participantRepo: participantRepo,
		cache:           cache,
	}
}

func (s *tallyService) Realtime(ctx context.Context) (*domain.TallySnapshot, error) {
	entries, err := s.cache.AllSortedDescending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tally entries: %w", err)
	}
	total, err := s.cache.ReadTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read total votes: %w", err)
	}
	return &domain.TallySnapshot{Participants: entries, TotalVotes: total}, nil
}

// Rebuild recomputes the cache from the registry in one pass. Only
// participants with counted votes get an entry; the grand total sums every
// counter, so a rebuild also repairs drift left by interrupted vote requests.
func (s *tallyService) Rebuild(ctx context.Context) error {
	participants, err := s.participantRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch participants: %w", err)
	}

	var total int64
	entries := make([]domain.TallyEntry, 0, len(participants))
	for _, p := range participants {
		total += p.VoteCount
		if p.VoteCount == 0 {
			continue
		}
		entries = append(entries, domain.TallyEntry{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Photo:     p.Photo,
			VoteCount: p.VoteCount,
		})
	}

	if err := s.cache.ReplaceAll(ctx, entries, total); err != nil {
		return fmt.Errorf("failed to replace tally cache: %w", err)
	}
	return nil
}
