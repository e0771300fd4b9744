package models

import (
	"fmt"
	"regexp"
)

// MaxParticipantIDLength caps the identifier length accepted by NewParticipant.
const MaxParticipantIDLength = 50

// Points awarded per recorded outcome.
const (
	WinPoints  = 3
	DrawPoints = 1
	LossPoints = 0
)

var participantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Participant is a competitor inside a single tournament. Counters change
// only through AddWin, AddLoss, AddDraw and Reset, which keep
// Score == Wins*3 + Draws at all times. Each tournament owns its own
// participant set; instances are never shared across tournaments.
type Participant struct {
	ID     string `json:"id" db:"id"`
	Score  int    `json:"score" db:"score"`
	Wins   int    `json:"wins" db:"wins"`
	Losses int    `json:"losses" db:"losses"`
	Draws  int    `json:"draws" db:"draws"`
}

// NewParticipant validates the identifier and returns a participant with
// zeroed counters.
func NewParticipant(id string) (*Participant, error) {
	if id == "" {
		return nil, ErrParticipantIDEmpty
	}
	if len(id) > MaxParticipantIDLength {
		return nil, fmt.Errorf("%w: %q has %d", ErrParticipantIDTooLong, id, len(id))
	}
	if !participantIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrParticipantIDInvalid, id)
	}
	return &Participant{ID: id}, nil
}

// AddWin records a won match.
func (p *Participant) AddWin() {
	p.Wins++
	p.Score += WinPoints
}

// AddLoss records a lost match. Losses award no points.
func (p *Participant) AddLoss() {
	p.Losses++
	p.Score += LossPoints
}

// AddDraw records a drawn match.
func (p *Participant) AddDraw() {
	p.Draws++
	p.Score += DrawPoints
}

// Reset zeroes all counters.
func (p *Participant) Reset() {
	p.Score = 0
	p.Wins = 0
	p.Losses = 0
	p.Draws = 0
}

// Equal reports whether both participants carry the same identifier.
func (p *Participant) Equal(other *Participant) bool {
	return other != nil && p.ID == other.ID
}

// CheckStats verifies the score bookkeeping invariant.
func (p *Participant) CheckStats() error {
	expected := p.Wins*WinPoints + p.Draws*DrawPoints
	if p.Score != expected {
		return fmt.Errorf("%w: participant %s has score %d, expected %d",
			ErrParticipantStatsDrift, p.ID, p.Score, expected)
	}
	return nil
}

// Clone returns an independent copy.
func (p *Participant) Clone() *Participant {
	c := *p
	return &c
}
