// Package swiss implements Swiss-system pairing: each round matches
// participants of similar standing while avoiding repeat matchups where
// possible.
package swiss

import (
	"fmt"
	"sort"

	"tournament-engine/models"
)

// Pairing is one table of a round: two participants, or a single one when
// the field is odd and somebody sits the round out.
type Pairing struct {
	Participant1 *models.Participant `json:"participant1"`
	Participant2 *models.Participant `json:"participant2,omitempty"`
}

// IsBye reports whether the pairing is an unopposed singleton.
func (p Pairing) IsBye() bool {
	return p.Participant2 == nil
}

// GeneratePairings pairs the field for the next round. Participants are
// ranked by their entry in standings (score descending, ties keep input
// order) and paired greedily: the current leader takes the nearest
// lower-ranked opponent it has not met yet; when only already-played
// opponents remain, the nearest one is taken again rather than leaving
// anyone unpaired. With an odd field the final leftover becomes a bye.
//
// The forward scan is a heuristic: it does not backtrack, so pathological
// score distributions can produce avoidable repeats.
func GeneratePairings(participants []*models.Participant, previous *MatchupSet, standings map[string]int) ([]Pairing, error) {
	if len(participants) == 0 {
		return []Pairing{}, nil
	}
	ids := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if p == nil {
			return nil, models.ErrNilParticipant
		}
		if _, dup := ids[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateParticipant, p.ID)
		}
		ids[p.ID] = struct{}{}
	}
	if previous == nil {
		previous = NewMatchupSet()
	}

	ranked := make([]*models.Participant, len(participants))
	copy(ranked, participants)
	sort.SliceStable(ranked, func(i, j int) bool {
		return standings[ranked[i].ID] > standings[ranked[j].ID]
	})

	pairings := make([]Pairing, 0, (len(ranked)+1)/2)
	unpaired := ranked
	for len(unpaired) >= 2 {
		lead := unpaired[0]
		opponent := 1
		for j := 1; j < len(unpaired); j++ {
			if !previous.Played(lead.ID, unpaired[j].ID) {
				opponent = j
				break
			}
		}
		pairings = append(pairings, Pairing{Participant1: lead, Participant2: unpaired[opponent]})

		rest := make([]*models.Participant, 0, len(unpaired)-2)
		for k := 1; k < len(unpaired); k++ {
			if k != opponent {
				rest = append(rest, unpaired[k])
			}
		}
		unpaired = rest
	}
	if len(unpaired) == 1 {
		pairings = append(pairings, Pairing{Participant1: unpaired[0]})
	}
	return pairings, nil
}

// CalculateTotalRounds returns the minimum number of rounds r such that
// 2^r >= n. Fields of zero or one participant need no rounds.
func CalculateTotalRounds(n int) int {
	if n <= 1 {
		return 0
	}
	rounds := 0
	for capacity := 1; capacity < n; capacity <<= 1 {
		rounds++
	}
	return rounds
}
