package ports

import (
	"context"

	"github.com/contest/api/internal/core/domain"
	"github.com/google/uuid"
)

type VoteRepository interface {
	// Append inserts the vote record. The (user, participant) pair is
	// enforced as a single store-level uniqueness constraint; a duplicate
	// fails with domain.ErrAlreadyVoted without a prior existence check.
	Append(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, userID uuid.UUID, participantID int64) (bool, error)
}

type VoteInput struct {
	UserID        uuid.UUID
	ParticipantID int64
}

type VoteResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	NewCount int64  `json:"new_count,omitempty"`
}

type VoteService interface {
	RegisterVote(ctx context.Context, input VoteInput) (*VoteResult, error)
	// HasVoted reports whether the user already has a ledger record for the
	// participant.
	HasVoted(ctx context.Context, input VoteInput) (bool, error)
}
