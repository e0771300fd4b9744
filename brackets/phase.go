package brackets

import "fmt"

// Phase enumerates the stations of the eight-player double elimination
// graph. DoubleElimination.AdvanceRound drives the transitions with a
// switch that is exhaustive over these values.
type Phase int

const (
	PhaseWinnersRound1 Phase = iota
	PhaseLosersRound1
	PhaseWinnersRound2
	PhaseLosersRound2
	PhaseLosersRound3
	PhaseWinnersFinal
	PhaseLosersFinal
	PhaseGrandFinal
	PhaseGrandFinalReset
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseWinnersRound1:
		return "winners_round_1"
	case PhaseLosersRound1:
		return "losers_round_1"
	case PhaseWinnersRound2:
		return "winners_round_2"
	case PhaseLosersRound2:
		return "losers_round_2"
	case PhaseLosersRound3:
		return "losers_round_3"
	case PhaseWinnersFinal:
		return "winners_final"
	case PhaseLosersFinal:
		return "losers_final"
	case PhaseGrandFinal:
		return "grand_final"
	case PhaseGrandFinalReset:
		return "grand_final_reset"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}
