package swiss

import (
	"strings"

	"tournament-engine/models"
)

// MatchupSet records which pairs have already met. Lookups are
// order-independent: Played(a, b) == Played(b, a).
type MatchupSet struct {
	seen map[string]struct{}
}

// NewMatchupSet returns an empty set.
func NewMatchupSet() *MatchupSet {
	return &MatchupSet{seen: make(map[string]struct{})}
}

// MatchupsOf collects the pairs of all given matches.
func MatchupsOf(matches []*models.Match) *MatchupSet {
	s := NewMatchupSet()
	for _, m := range matches {
		s.Add(m.Participant1.ID, m.Participant2.ID)
	}
	return s
}

// Add marks a pair as played.
func (s *MatchupSet) Add(a, b string) {
	s.seen[matchupKey(a, b)] = struct{}{}
}

// Played reports whether the pair has met before.
func (s *MatchupSet) Played(a, b string) bool {
	_, ok := s.seen[matchupKey(a, b)]
	return ok
}

// Len returns the number of distinct pairs recorded.
func (s *MatchupSet) Len() int {
	return len(s.seen)
}

// Participant ids never contain '|', so the canonical key is unambiguous.
func matchupKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "|" + b
}
