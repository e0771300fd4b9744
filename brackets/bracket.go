// Package brackets implements the playoff stages consuming a seeded,
// rank-ordered field: single and double elimination knockouts plus a round
// robin league.
package brackets

import (
	"fmt"

	"tournament-engine/models"
)

// Format names used for bracket dispatch.
const (
	FormatSingleElimination = "single_elimination"
	FormatDoubleElimination = "double_elimination"
	FormatRoundRobin        = "round_robin"
)

// Bracket is a playoff stage in progress. Implementations expose the round
// being played, consume its results on AdvanceRound and hold the champion
// once a sole winner remains.
type Bracket interface {
	Format() string
	CurrentRoundMatches() []*models.Match
	AdvanceRound() error
	IsComplete() bool
	Winner() *models.Participant
}

func validateSeeds(seeds []*models.Participant) error {
	ids := make(map[string]struct{}, len(seeds))
	for _, p := range seeds {
		if p == nil {
			return models.ErrNilParticipant
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("%w: %s", models.ErrDuplicateParticipant, p.ID)
		}
		ids[p.ID] = struct{}{}
	}
	return nil
}

// seededPairs produces the opening pairs of a rank-ordered field:
// (1,N),(2,N-1) and so on, reordered for an 8-strong field to the bracket order
// (1,8),(4,5),(3,6),(2,7). Other sizes keep the natural order. An odd field
// leaves the middle seed unpaired; the caller advances it as a bye.
func seededPairs(seeds []*models.Participant) (pairs [][2]*models.Participant, bye *models.Participant) {
	n := len(seeds)
	pairs = make([][2]*models.Participant, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, [2]*models.Participant{seeds[i], seeds[n-1-i]})
	}
	if n%2 == 1 {
		bye = seeds[n/2]
	}
	if n == 8 {
		pairs = [][2]*models.Participant{pairs[0], pairs[3], pairs[2], pairs[1]}
	}
	return pairs, bye
}

// adjacentPairs zips a column into (0,1),(2,3),... pairs. An odd trailing
// participant is returned as a bye.
func adjacentPairs(ps []*models.Participant) (pairs [][2]*models.Participant, bye *models.Participant) {
	pairs = make([][2]*models.Participant, 0, len(ps)/2)
	for i := 0; i+1 < len(ps); i += 2 {
		pairs = append(pairs, [2]*models.Participant{ps[i], ps[i+1]})
	}
	if len(ps)%2 == 1 {
		bye = ps[len(ps)-1]
	}
	return pairs, bye
}

// zipPairs matches two columns index by index: (a0,b0),(a1,b1),...
func zipPairs(a, b []*models.Participant) [][2]*models.Participant {
	pairs := make([][2]*models.Participant, 0, len(a))
	for i := range a {
		pairs = append(pairs, [2]*models.Participant{a[i], b[i]})
	}
	return pairs
}

// matchesForPairs builds the matches of one round, with bracket UIDs in the
// R<round>M<order> form.
func matchesForPairs(pairs [][2]*models.Participant, round int) ([]*models.Match, error) {
	matches := make([]*models.Match, 0, len(pairs))
	for i, pair := range pairs {
		m, err := models.NewMatch(pair[0], pair[1], round)
		if err != nil {
			return nil, err
		}
		m.UID = fmt.Sprintf("R%dM%d", round+1, i+1)
		matches = append(matches, m)
	}
	return matches, nil
}

// decideRound checks that every match of the round holds a decisive result
// and returns winners and losers in match order.
func decideRound(matches []*models.Match) (winners, losers []*models.Participant, err error) {
	winners = make([]*models.Participant, 0, len(matches))
	losers = make([]*models.Participant, 0, len(matches))
	for _, m := range matches {
		if !m.Decided() {
			return nil, nil, fmt.Errorf("%w: %s is undecided", ErrRoundIncomplete, m.UID)
		}
		if m.Result.IsDraw() {
			return nil, nil, fmt.Errorf("%w: %s ended in a draw", ErrDrawInBracket, m.UID)
		}
		w := m.Result.Winner
		winners = append(winners, w)
		losers = append(losers, m.Opponent(w.ID))
	}
	return winners, losers, nil
}
