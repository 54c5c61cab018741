package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/ports"
)

type participantRepository struct {
	db *sql.DB
}

func NewParticipantRepository(db *sql.DB) ports.ParticipantRepository {
	return &participantRepository{
		db: db,
	}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	// The next id is computed inside the insert so assignment and write are
	// one statement.
	query := `
		INSERT INTO participants (id, name, category, photo, vote_count)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM participants), $1, $2, $3, 0)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Category, p.Photo).Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	p.VoteCount = 0
	return nil
}

func (r *participantRepository) ReplaceAll(ctx context.Context, participants []domain.Participant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Vote records cascade with their participants, so the ledger stays
	// consistent with the reset counters.
	if _, err := tx.ExecContext(ctx, `DELETE FROM participants`); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}

	query := `
		INSERT INTO participants (id, name, category, photo, vote_count)
		VALUES ($1, $2, $3, $4, 0)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range participants {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Category, p.Photo); err != nil {
			return fmt.Errorf("failed to insert participant %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	query := `
		SELECT id, name, category, photo, vote_count
		FROM participants
		WHERE id = $1
	`
	var p domain.Participant
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Category, &p.Photo, &p.VoteCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &p, nil
}

func (r *participantRepository) IncrementVote(ctx context.Context, id int64) (int64, error) {
	query := `
		UPDATE participants
		SET vote_count = vote_count + 1
		WHERE id = $1
		RETURNING vote_count
	`
	var count int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrParticipantNotFound
		}
		return 0, fmt.Errorf("failed to increment vote count: %w", err)
	}
	return count, nil
}

func (r *participantRepository) GetAll(ctx context.Context) ([]domain.Participant, error) {
	query := `
		SELECT id, name, category, photo, vote_count
		FROM participants
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all participants: %w", err)
	}
	defer rows.Close()

	return scanParticipants(rows)
}

func (r *participantRepository) Top(ctx context.Context, n int) ([]domain.Participant, error) {
	query := `
		SELECT id, name, category, photo, vote_count
		FROM participants
		ORDER BY vote_count DESC, id ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get top participants: %w", err)
	}
	defer rows.Close()

	return scanParticipants(rows)
}

func (r *participantRepository) CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(vote_count), 0) AS total_votes
		FROM participants
		GROUP BY category
		ORDER BY total_votes DESC, category ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.Category, &t.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return totals, nil
}

func (r *participantRepository) WithZeroVotes(ctx context.Context) ([]domain.Participant, error) {
	query := `
		SELECT id, name, category, photo, vote_count
		FROM participants
		WHERE vote_count = 0
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get zero-vote participants: %w", err)
	}
	defer rows.Close()

	return scanParticipants(rows)
}

func scanParticipants(rows *sql.Rows) ([]domain.Participant, error) {
	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Photo, &p.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}
	return participants, nil
}
