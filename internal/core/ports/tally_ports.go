package ports

import (
	"context"

	"github.com/contest/api/internal/core/domain"
)

// TallyCache is the fast, derived, disposable mirror of the current counts.
// It is never a source of truth; any of its state can be rebuilt from the
// registry at any time.
type TallyCache interface {
	// Upsert overwrites or creates the entry for a participant. No merge.
	Upsert(ctx context.Context, entry domain.TallyEntry) error
	// IncrementTotal atomically adds delta to the grand total.
	IncrementTotal(ctx context.Context, delta int64) error
	AllSortedDescending(ctx context.Context) ([]domain.TallyEntry, error)
	// ReadTotal returns 0 when the total has never been written.
	ReadTotal(ctx context.Context) (int64, error)
	// ReplaceAll clears every prior entry and writes the given entries and
	// total as one atomic unit with respect to concurrent readers.
	ReplaceAll(ctx context.Context, entries []domain.TallyEntry, total int64) error
}

type TallyService interface {
	// Realtime serves the public view straight from the cache.
	Realtime(ctx context.Context) (*domain.TallySnapshot, error)
	// Rebuild recomputes the whole cache from the registry. Idempotent.
	Rebuild(ctx context.Context) error
}
