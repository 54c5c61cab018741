package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/ports"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique constraint.
const uniqueViolation = "23505"

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Append relies on the votes_user_participant_key constraint for duplicate
// detection. Two concurrent inserts for the same pair race at the index, not
// in application code, so exactly one wins.
func (r *voteRepository) Append(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, user_id, participant_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, vote.ID, vote.UserID, vote.ParticipantID, vote.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to append vote: %w", err)
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, userID uuid.UUID, participantID int64) (bool, error) {
	query := `SELECT 1 FROM votes WHERE user_id = $1 AND participant_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, userID, participantID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}
