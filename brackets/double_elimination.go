package brackets

import (
	"fmt"

	"tournament-engine/models"
)

// DoubleElimination runs the eight-player winners/losers bracket. A first
// loss drops a participant into the losers bracket, a second one
// eliminates. The winners-bracket champion enters the grand final
// undefeated; with reset enabled a losers champion winning that match
// forces one deciding rematch instead of taking the title outright.
type DoubleElimination struct {
	phase       Phase
	current     []*models.Match
	enableReset bool

	wbRound1Winners []*models.Participant
	lbRound1Winners []*models.Participant
	wbRound2Winners []*models.Participant
	lbRound3Winner  *models.Participant
	wbChampion      *models.Participant
	lbChampion      *models.Participant
	winner          *models.Participant
}

// NewDoubleElimination seeds the winners bracket from a rank-ordered field.
// The phase graph covers exactly eight participants; power-of-two fields of
// any other size are rejected up front rather than failing mid-bracket.
func NewDoubleElimination(seeds []*models.Participant, enableReset bool) (*DoubleElimination, error) {
	n := len(seeds)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNotPowerOfTwo, n)
	}
	if n != 8 {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedFieldSize, n)
	}
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}

	pairs, _ := seededPairs(seeds)
	matches, err := matchesForPairs(pairs, int(PhaseWinnersRound1))
	if err != nil {
		return nil, err
	}
	return &DoubleElimination{
		phase:       PhaseWinnersRound1,
		current:     matches,
		enableReset: enableReset,
	}, nil
}

func (de *DoubleElimination) Format() string {
	return FormatDoubleElimination
}

// Phase returns the station currently being played.
func (de *DoubleElimination) Phase() Phase {
	return de.phase
}

// ResetEnabled reports whether a losers champion winning the grand final
// forces a rematch.
func (de *DoubleElimination) ResetEnabled() bool {
	return de.enableReset
}

// CurrentRoundMatches returns the matches awaiting results.
func (de *DoubleElimination) CurrentRoundMatches() []*models.Match {
	return de.current
}

// IsComplete reports whether the champion has been decided.
func (de *DoubleElimination) IsComplete() bool {
	return de.phase == PhaseDone
}

// Winner returns the champion, or nil while the bracket is running.
func (de *DoubleElimination) Winner() *models.Participant {
	return de.winner
}

// AdvanceRound consumes the current phase's results and moves to the next
// station of the graph. Draws are rejected in every phase.
func (de *DoubleElimination) AdvanceRound() error {
	if de.phase == PhaseDone {
		return ErrBracketComplete
	}
	winners, losers, err := decideRound(de.current)
	if err != nil {
		return err
	}

	switch de.phase {
	case PhaseWinnersRound1:
		de.wbRound1Winners = winners
		pairs, _ := adjacentPairs(losers)
		return de.enterPhase(PhaseLosersRound1, pairs)

	case PhaseLosersRound1:
		de.lbRound1Winners = winners
		pairs, _ := adjacentPairs(de.wbRound1Winners)
		return de.enterPhase(PhaseWinnersRound2, pairs)

	case PhaseWinnersRound2:
		de.wbRound2Winners = winners
		return de.enterPhase(PhaseLosersRound2, zipPairs(de.lbRound1Winners, losers))

	case PhaseLosersRound2:
		pairs, _ := adjacentPairs(winners)
		return de.enterPhase(PhaseLosersRound3, pairs)

	case PhaseLosersRound3:
		de.lbRound3Winner = winners[0]
		pairs, _ := adjacentPairs(de.wbRound2Winners)
		return de.enterPhase(PhaseWinnersFinal, pairs)

	case PhaseWinnersFinal:
		de.wbChampion = winners[0]
		return de.enterPhase(PhaseLosersFinal, [][2]*models.Participant{{losers[0], de.lbRound3Winner}})

	case PhaseLosersFinal:
		de.lbChampion = winners[0]
		return de.enterPhase(PhaseGrandFinal, [][2]*models.Participant{{de.wbChampion, de.lbChampion}})

	case PhaseGrandFinal:
		if winners[0].Equal(de.wbChampion) || !de.enableReset {
			return de.finish(winners[0])
		}
		// Losers champion broke through: the bracket is reset for one
		// deciding rematch.
		return de.enterPhase(PhaseGrandFinalReset, [][2]*models.Participant{{de.wbChampion, de.lbChampion}})

	case PhaseGrandFinalReset:
		return de.finish(winners[0])

	default:
		return fmt.Errorf("%w: %s", ErrUnknownPhase, de.phase)
	}
}

func (de *DoubleElimination) enterPhase(next Phase, pairs [][2]*models.Participant) error {
	matches, err := matchesForPairs(pairs, int(next))
	if err != nil {
		return err
	}
	de.phase = next
	de.current = matches
	return nil
}

func (de *DoubleElimination) finish(champion *models.Participant) error {
	de.phase = PhaseDone
	de.current = nil
	de.winner = champion
	return nil
}
