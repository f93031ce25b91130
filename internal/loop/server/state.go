package server

import (
	"cmp"
	"slices"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	seq      int // Used for deterministic tie-break when scores are equal
}

// Snapshot is an immutable view of the server state for rendering.
type Snapshot struct {
	Players   int             // Connected clients
	TopScores []TopScoreEntry // Top N scores for leaderboard display
}

// topScores returns the n best entries, highest first. Equal scores keep
// the order in which they were reached.
func topScores(best map[string]TopScoreEntry, n int) []TopScoreEntry {
	entries := make([]TopScoreEntry, 0, len(best))
	for _, e := range best {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
