package models

import "fmt"

// Outcome tags a recorded match result.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// ParseOutcome converts an external outcome string to an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeWin, OutcomeLoss, OutcomeDraw:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrResultUnknownOutcome, s)
	}
}

// Result is the recorded outcome of a match. Winner is nil exactly when the
// outcome is a draw. A loss-tagged result still names the participant who
// took the match: it models a defaulted game, where the named winner
// advances but nobody scores.
type Result struct {
	Outcome Outcome      `json:"outcome" db:"outcome"`
	Winner  *Participant `json:"winner,omitempty" db:"-"`
}

// NewResult validates the outcome/winner combination.
func NewResult(outcome Outcome, winner *Participant) (*Result, error) {
	switch outcome {
	case OutcomeDraw:
		if winner != nil {
			return nil, fmt.Errorf("%w: got %s", ErrResultWinnerOnDraw, winner.ID)
		}
	case OutcomeWin, OutcomeLoss:
		if winner == nil {
			return nil, ErrResultWinnerMissing
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrResultUnknownOutcome, outcome)
	}
	return &Result{Outcome: outcome, Winner: winner}, nil
}

// IsDraw reports whether the result is a draw.
func (r *Result) IsDraw() bool {
	return r.Outcome == OutcomeDraw
}

// Points returns the points awarded to the winner side and the loser side:
// win (3,0), loss (0,0), draw (1,1).
func (r *Result) Points() (winnerSide, loserSide int) {
	switch r.Outcome {
	case OutcomeWin:
		return WinPoints, LossPoints
	case OutcomeDraw:
		return DrawPoints, DrawPoints
	default:
		return LossPoints, LossPoints
	}
}
