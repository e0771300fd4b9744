package services

import (
	"fmt"

	"tournament-engine/models"
)

// Service-level sentinels. Each wraps one of the model error categories so
// callers can branch on either the specific failure or its class.
var (
	// Round flow
	ErrMatchNotFound              = fmt.Errorf("%w: no such match in the current round", models.ErrValidation)
	ErrParticipantNotInTournament = fmt.Errorf("%w: participant is not registered in this tournament", models.ErrValidation)
	ErrRoundNotDecided            = fmt.Errorf("%w: current round still has undecided matches", models.ErrState)

	// Playoff seeding
	ErrInvalidBracketSize    = fmt.Errorf("%w: bracket size must be at least 2", models.ErrValidation)
	ErrNotEnoughParticipants = fmt.Errorf("%w: bracket size exceeds participant count", models.ErrValidation)
	ErrTournamentNotComplete = fmt.Errorf("%w: tournament is not complete", models.ErrState)
	ErrUnsupportedFormat     = fmt.Errorf("%w: unsupported bracket format", models.ErrValidation)
)
