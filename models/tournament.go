package models

import (
	"fmt"
	"sort"
	"time"
)

// Tournament is the aggregate the engine operates on: an owned participant
// set, the accumulated match history and the round cursor. CurrentRound is
// 0-based and never exceeds TotalRounds, which is fixed at creation.
type Tournament struct {
	ID           string         `json:"id" db:"id"`
	Contact      string         `json:"contact" db:"contact"`
	Participants []*Participant `json:"participants" db:"-"`
	Matches      []*Match       `json:"matches" db:"-"`
	CurrentRound int            `json:"current_round" db:"current_round"`
	TotalRounds  int            `json:"total_rounds" db:"total_rounds"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// NewTournament assembles a tournament over an owned participant set.
// Participant order is preserved; it is the registration order and the
// stable tie-break of the standings.
func NewTournament(id, contact string, participants []*Participant, totalRounds int) (*Tournament, error) {
	if len(participants) == 0 {
		return nil, ErrTournamentNoParticipants
	}
	if totalRounds < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrTournamentNegativeRounds, totalRounds)
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if p == nil {
			return nil, ErrNilParticipant
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return &Tournament{
		ID:           id,
		Contact:      contact,
		Participants: participants,
		TotalRounds:  totalRounds,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// IsComplete reports whether every round has been played.
func (t *Tournament) IsComplete() bool {
	return t.CurrentRound >= t.TotalRounds
}

// AdvanceRound moves the round cursor forward by one.
func (t *Tournament) AdvanceRound() error {
	if t.IsComplete() {
		return fmt.Errorf("%w: %s", ErrTournamentCompleted, t.ID)
	}
	t.CurrentRound++
	return nil
}

// ParticipantByID returns the registered participant with the given id, or
// nil if none matches.
func (t *Tournament) ParticipantByID(id string) *Participant {
	for _, p := range t.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RoundMatches returns the matches of one round in creation order.
func (t *Tournament) RoundMatches(round int) []*Match {
	matches := make([]*Match, 0, len(t.Participants)/2)
	for _, m := range t.Matches {
		if m.Round == round {
			matches = append(matches, m)
		}
	}
	return matches
}

// CurrentRoundMatches returns the matches of the round in progress.
func (t *Tournament) CurrentRoundMatches() []*Match {
	return t.RoundMatches(t.CurrentRound)
}

// Standings orders participants by score desc, then wins desc, then losses
// asc. The sort is stable, so full ties keep registration order.
func (t *Tournament) Standings() []*Participant {
	ranked := make([]*Participant, len(t.Participants))
	copy(ranked, t.Participants)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Losses < b.Losses
	})
	return ranked
}

// StandingRows flattens Standings into boundary records.
func (t *Tournament) StandingRows() []Standing {
	ranked := t.Standings()
	rows := make([]Standing, len(ranked))
	for i, p := range ranked {
		rows[i] = Standing{
			ParticipantID: p.ID,
			Score:         p.Score,
			Wins:          p.Wins,
			Losses:        p.Losses,
			Draws:         p.Draws,
		}
	}
	return rows
}

// Clone deep-copies the aggregate. Cloned matches point at the cloned
// participant set, never at the original's.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Participants = make([]*Participant, len(t.Participants))
	byID := make(map[string]*Participant, len(t.Participants))
	for i, p := range t.Participants {
		c.Participants[i] = p.Clone()
		byID[p.ID] = c.Participants[i]
	}
	c.Matches = make([]*Match, len(t.Matches))
	for i, m := range t.Matches {
		mc := *m
		mc.Participant1 = byID[m.Participant1.ID]
		mc.Participant2 = byID[m.Participant2.ID]
		if m.Result != nil {
			rc := *m.Result
			if rc.Winner != nil {
				rc.Winner = byID[rc.Winner.ID]
			}
			mc.Result = &rc
		}
		c.Matches[i] = &mc
	}
	return &c
}
