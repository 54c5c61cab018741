package domain

// TallyEntry mirrors a participant's registry row as of its last cache write.
// The cache only ever holds entries for participants with at least one counted
// vote; the full roster lives in the registry.
type TallyEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Photo     string `json:"photo"`
	VoteCount int64  `json:"vote_count"`
}

type TallySnapshot struct {
	Participants []TallyEntry `json:"participants"`
	TotalVotes   int64        `json:"total_votes"`
}
