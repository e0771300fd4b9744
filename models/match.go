package models

import "fmt"

// Match is an unordered pair of two distinct participants in a given round.
// It holds at most one result; recording a second one fails. UID identifies
// the match inside its tournament (bracket-style "R<round>M<index>").
type Match struct {
	UID          string       `json:"uid" db:"uid"`
	Participant1 *Participant `json:"participant1" db:"-"`
	Participant2 *Participant `json:"participant2" db:"-"`
	Round        int          `json:"round" db:"round"`
	Result       *Result      `json:"result,omitempty" db:"-"`
}

// NewMatch pairs two distinct participants for a round.
func NewMatch(p1, p2 *Participant, round int) (*Match, error) {
	if p1 == nil || p2 == nil {
		return nil, ErrNilParticipant
	}
	if p1.Equal(p2) {
		return nil, fmt.Errorf("%w: %s", ErrMatchSameParticipant, p1.ID)
	}
	if round < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrMatchNegativeRound, round)
	}
	return &Match{Participant1: p1, Participant2: p2, Round: round}, nil
}

// HasParticipant reports whether id occupies either slot.
func (m *Match) HasParticipant(id string) bool {
	return m.Participant1.ID == id || m.Participant2.ID == id
}

// Opponent returns the participant facing id, or nil when id is not part of
// the match.
func (m *Match) Opponent(id string) *Participant {
	switch id {
	case m.Participant1.ID:
		return m.Participant2
	case m.Participant2.ID:
		return m.Participant1
	}
	return nil
}

// Equal is order-independent: the same two participants make the same match
// regardless of slot order.
func (m *Match) Equal(other *Match) bool {
	if other == nil {
		return false
	}
	return (m.Participant1.Equal(other.Participant1) && m.Participant2.Equal(other.Participant2)) ||
		(m.Participant1.Equal(other.Participant2) && m.Participant2.Equal(other.Participant1))
}

// Decided reports whether a result has been recorded.
func (m *Match) Decided() bool {
	return m.Result != nil
}

// RecordResult attaches a result to the match. It fails once a result is
// present, and rejects winners that are not one of the two participants.
func (m *Match) RecordResult(r *Result) error {
	if m.Result != nil {
		return fmt.Errorf("%w: %s vs %s", ErrMatchResultRecorded, m.Participant1.ID, m.Participant2.ID)
	}
	if r == nil {
		return ErrMatchNilResult
	}
	if r.Winner != nil && !m.HasParticipant(r.Winner.ID) {
		return fmt.Errorf("%w: %s", ErrResultWinnerNotInMatch, r.Winner.ID)
	}
	m.Result = r
	return nil
}

// Winner returns the recorded winner, or nil for draws and undecided matches.
func (m *Match) Winner() *Participant {
	if m.Result == nil {
		return nil
	}
	return m.Result.Winner
}
