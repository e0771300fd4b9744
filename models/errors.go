package models

import (
	"errors"
	"fmt"
)

// Error categories. Every sentinel below wraps exactly one of these, so
// callers can branch either on the precise failure or on the category with
// errors.Is.
var (
	// ErrValidation covers construction-time failures: the caller handed the
	// engine input it cannot accept.
	ErrValidation = errors.New("validation failed")

	// ErrState covers operation-time failures: the call is valid in general
	// but not in the entity's current state.
	ErrState = errors.New("precondition not met")

	// ErrConsistency covers internal invariant violations. Never expected in
	// correct operation.
	ErrConsistency = errors.New("consistency violation")
)

// Participant errors.
var (
	ErrParticipantIDEmpty    = fmt.Errorf("%w: participant id is empty", ErrValidation)
	ErrParticipantIDTooLong  = fmt.Errorf("%w: participant id exceeds %d characters", ErrValidation, MaxParticipantIDLength)
	ErrParticipantIDInvalid  = fmt.Errorf("%w: participant id contains characters outside [A-Za-z0-9_-]", ErrValidation)
	ErrParticipantStatsDrift = fmt.Errorf("%w: participant score does not match recorded outcomes", ErrConsistency)
	ErrNilParticipant        = fmt.Errorf("%w: participant is nil", ErrValidation)
)

// Match and result errors.
var (
	ErrMatchSameParticipant  = fmt.Errorf("%w: match requires two distinct participants", ErrValidation)
	ErrMatchNegativeRound    = fmt.Errorf("%w: match round must not be negative", ErrValidation)
	ErrMatchResultRecorded   = fmt.Errorf("%w: match already has a result", ErrState)
	ErrMatchNilResult        = fmt.Errorf("%w: result is nil", ErrValidation)
	ErrResultUnknownOutcome  = fmt.Errorf("%w: unknown outcome", ErrValidation)
	ErrResultWinnerMissing   = fmt.Errorf("%w: win and loss results require a winner", ErrValidation)
	ErrResultWinnerOnDraw    = fmt.Errorf("%w: a draw cannot name a winner", ErrValidation)
	ErrResultWinnerNotInMatch = fmt.Errorf("%w: winner is not a participant of the match", ErrValidation)
)

// Tournament errors.
var (
	ErrTournamentNoParticipants = fmt.Errorf("%w: tournament requires at least one participant", ErrValidation)
	ErrDuplicateParticipant     = fmt.Errorf("%w: duplicate participant id", ErrValidation)
	ErrTournamentNegativeRounds = fmt.Errorf("%w: total rounds must not be negative", ErrValidation)
	ErrTournamentCompleted      = fmt.Errorf("%w: tournament is already complete", ErrState)
)
