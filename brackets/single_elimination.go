package brackets

import (
	"fmt"

	"tournament-engine/models"
)

// SingleElimination is a knockout bracket over a seeded field (rank 1
// first). Only the round in progress is held; advancing consumes its
// results and pairs the winners adjacently until one participant remains.
type SingleElimination struct {
	round   int
	current []*models.Match
	byes    []*models.Participant
	winner  *models.Participant
}

// NewSingleElimination seeds the opening round from a rank-ordered field.
func NewSingleElimination(seeds []*models.Participant) (*SingleElimination, error) {
	if len(seeds) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewParticipants, len(seeds))
	}
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}

	pairs, bye := seededPairs(seeds)
	matches, err := matchesForPairs(pairs, 0)
	if err != nil {
		return nil, err
	}
	se := &SingleElimination{current: matches}
	if bye != nil {
		se.byes = []*models.Participant{bye}
	}
	return se, nil
}

func (se *SingleElimination) Format() string {
	return FormatSingleElimination
}

// Round is the 0-based index of the round in progress.
func (se *SingleElimination) Round() int {
	return se.round
}

// CurrentRoundMatches returns the matches awaiting results.
func (se *SingleElimination) CurrentRoundMatches() []*models.Match {
	return se.current
}

// IsComplete reports whether a sole winner remains.
func (se *SingleElimination) IsComplete() bool {
	return se.winner != nil
}

// Winner returns the champion, or nil while the bracket is running.
func (se *SingleElimination) Winner() *models.Participant {
	return se.winner
}

// AdvanceRound consumes the current round's results. Match winners and byes
// carry over in bracket order; a single survivor ends the bracket, anything
// more forms the next round.
func (se *SingleElimination) AdvanceRound() error {
	if se.winner != nil {
		return ErrBracketComplete
	}
	winners, _, err := decideRound(se.current)
	if err != nil {
		return err
	}

	advancing := append(winners, se.byes...)
	if len(advancing) == 1 {
		se.winner = advancing[0]
		se.current = nil
		se.byes = nil
		return nil
	}

	se.round++
	pairs, bye := adjacentPairs(advancing)
	matches, err := matchesForPairs(pairs, se.round)
	if err != nil {
		return err
	}
	se.current = matches
	se.byes = nil
	if bye != nil {
		se.byes = []*models.Participant{bye}
	}
	return nil
}
