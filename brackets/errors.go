package brackets

import (
	"fmt"

	"tournament-engine/models"
)

var (
	ErrTooFewParticipants   = fmt.Errorf("%w: a bracket needs at least two participants", models.ErrValidation)
	ErrNotPowerOfTwo        = fmt.Errorf("%w: double elimination needs a power-of-two field", models.ErrValidation)
	ErrUnsupportedFieldSize = fmt.Errorf("%w: the double elimination phase graph covers exactly eight participants", models.ErrValidation)
	ErrRoundIncomplete      = fmt.Errorf("%w: current round has undecided matches", models.ErrState)
	ErrDrawInBracket        = fmt.Errorf("%w: brackets require a decisive winner", models.ErrState)
	ErrBracketComplete      = fmt.Errorf("%w: bracket already has a winner", models.ErrState)
	ErrUnknownPhase         = fmt.Errorf("%w: bracket reached an unknown phase", models.ErrConsistency)
)
