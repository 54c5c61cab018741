package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/ports"
	"github.com/google/uuid"
)

type voteService struct {
	participantRepo ports.ParticipantRepository
	voteRepo        ports.VoteRepository
	cache           ports.TallyCache
}

func NewVoteService(participantRepo ports.ParticipantRepository, voteRepo ports.VoteRepository, cache ports.TallyCache) ports.VoteService {
	return &voteService{
		participantRepo: participantRepo,
		voteRepo:        voteRepo,
		cache:           cache,
	}
}

// RegisterVote runs the vote pipeline: participant lookup, constrained ledger
// append, counter increment, then a best-effort cache write-through. The
// ledger append is the commit point; everything after it is either derivable
// (the counter, by recount) or disposable (the cache, by rebuild).
func (s *voteService) RegisterVote(ctx context.Context, input ports.VoteInput) (*ports.VoteResult, error) {
	p, err := s.participantRepo.GetByID(ctx, input.ParticipantID)
	if err != nil {
		return nil, err
	}

	vote := &domain.Vote{
		ID:            uuid.New(),
		UserID:        input.UserID,
		ParticipantID: input.ParticipantID,
		CreatedAt:     time.Now(),
	}
	if err := s.voteRepo.Append(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrAlreadyVoted) {
			return &ports.VoteResult{Accepted: false, Reason: "already voted"}, nil
		}
		return nil, err
	}

	newCount, err := s.participantRepo.IncrementVote(ctx, input.ParticipantID)
	if err != nil {
		// The vote record is already durable; the counter is repaired by
		// the next resync.
		return nil, err
	}

	entry := domain.TallyEntry{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Photo:     p.Photo,
		VoteCount: newCount,
	}
	if err := s.cache.Upsert(ctx, entry); err != nil {
		log.Printf("warning: tally cache upsert failed for participant %d: %v", p.ID, err)
	}
	if err := s.cache.IncrementTotal(ctx, 1); err != nil {
		log.Printf("warning: tally cache total increment failed: %v", err)
	}

	return &ports.VoteResult{Accepted: true, NewCount: newCount}, nil
}

func (s *voteService) HasVoted(ctx context.Context, input ports.VoteInput) (bool, error) {
	return s.voteRepo.HasVoted(ctx, input.UserID, input.ParticipantID)
}
