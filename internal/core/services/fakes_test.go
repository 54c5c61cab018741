package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/contest/api/internal/core/domain"
	"github.com/google/uuid"
)

// In-memory doubles for the store ports. The vote fake enforces the
// (user, participant) pair under its lock, mirroring the unique constraint
// the real ledger carries.

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants map[int64]domain.Participant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{participants: make(map[int64]domain.Participant)}
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID int64
	for id := range r.participants {
		if id > maxID {
			maxID = id
		}
	}
	p.ID = maxID + 1
	p.VoteCount = 0
	r.participants[p.ID] = *p
	return nil
}

func (r *fakeParticipantRepo) ReplaceAll(_ context.Context, participants []domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make(map[int64]domain.Participant, len(participants))
	for _, p := range participants {
		p.VoteCount = 0
		next[p.ID] = p
	}
	r.participants = next
	return nil
}

func (r *fakeParticipantRepo) GetByID(_ context.Context, id int64) (*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	return &p, nil
}

func (r *fakeParticipantRepo) IncrementVote(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return 0, domain.ErrParticipantNotFound
	}
	p.VoteCount++
	r.participants[id] = p
	return p.VoteCount, nil
}

func (r *fakeParticipantRepo) GetAll(_ context.Context) ([]domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *fakeParticipantRepo) Top(ctx context.Context, n int) ([]domain.Participant, error) {
	all, _ := r.GetAll(ctx)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].VoteCount != all[j].VoteCount {
			return all[i].VoteCount > all[j].VoteCount
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *fakeParticipantRepo) CategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error) {
	all, _ := r.GetAll(ctx)
	sums := make(map[string]int64)
	for _, p := range all {
		sums[p.Category] += p.VoteCount
	}
	totals := make([]domain.CategoryTotal, 0, len(sums))
	for category, sum := range sums {
		totals = append(totals, domain.CategoryTotal{Category: category, TotalVotes: sum})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].TotalVotes > totals[j].TotalVotes })
	return totals, nil
}

func (r *fakeParticipantRepo) WithZeroVotes(ctx context.Context) ([]domain.Participant, error) {
	all, _ := r.GetAll(ctx)
	var zero []domain.Participant
	for _, p := range all {
		if p.VoteCount == 0 {
			zero = append(zero, p)
		}
	}
	return zero, nil
}

func (r *fakeParticipantRepo) seed(participants ...domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range participants {
		r.participants[p.ID] = p
	}
}

type fakeVoteRepo struct {
	mu    sync.Mutex
	pairs map[string]struct{}
	err   error
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{pairs: make(map[string]struct{})}
}

func pairKey(userID uuid.UUID, participantID int64) string {
	return fmt.Sprintf("%s|%d", userID, participantID)
}

func (r *fakeVoteRepo) Append(_ context.Context, vote *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	key := pairKey(vote.UserID, vote.ParticipantID)
	if _, ok := r.pairs[key]; ok {
		return domain.ErrAlreadyVoted
	}
	r.pairs[key] = struct{}{}
	return nil
}

func (r *fakeVoteRepo) HasVoted(_ context.Context, userID uuid.UUID, participantID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pairs[pairKey(userID, participantID)]
	return ok, nil
}

type fakeTallyCache struct {
	mu         sync.Mutex
	entries    map[int64]domain.TallyEntry
	total      int64
	failWrites bool
}

func newFakeTallyCache() *fakeTallyCache {
	return &fakeTallyCache{entries: make(map[int64]domain.TallyEntry)}
}

func (c *fakeTallyCache) Upsert(_ context.Context, entry domain.TallyEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites {
		return domain.ErrStoreUnavailable
	}
	c.entries[entry.ID] = entry
	return nil
}

func (c *fakeTallyCache) IncrementTotal(_ context.Context, delta int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites {
		return domain.ErrStoreUnavailable
	}
	c.total += delta
	return nil
}

func (c *fakeTallyCache) AllSortedDescending(_ context.Context) ([]domain.TallyEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := make([]domain.TallyEntry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].VoteCount > entries[j].VoteCount })
	return entries, nil
}

func (c *fakeTallyCache) ReadTotal(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, nil
}

func (c *fakeTallyCache) ReplaceAll(_ context.Context, entries []domain.TallyEntry, total int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites {
		return domain.ErrStoreUnavailable
	}
	next := make(map[int64]domain.TallyEntry, len(entries))
	for _, e := range entries {
		next[e.ID] = e
	}
	c.entries = next
	c.total = total
	return nil
}

func (c *fakeTallyCache) state() (map[int64]domain.TallyEntry, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make(map[int64]domain.TallyEntry, len(c.entries))
	for id, e := range c.entries {
		snapshot[id] = e
	}
	return snapshot, c.total
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New()
	r.users[user.Username] = *user
	return nil
}
