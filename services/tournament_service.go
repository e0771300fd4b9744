package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tournament-engine/brackets"
	"tournament-engine/models"
	"tournament-engine/repositories"
	"tournament-engine/swiss"
)

// MatchResultInput names an unordered current-round pairing and its outcome.
// WinnerID is required for win and loss outcomes and must be empty for draws.
type MatchResultInput struct {
	ParticipantA string `json:"participant_a"`
	ParticipantB string `json:"participant_b"`
	Outcome      string `json:"outcome"`
	WinnerID     string `json:"winner_id,omitempty"`
}

// PlayoffOptions selects the bracket built from the final standings.
type PlayoffOptions struct {
	Format      string `json:"format"`
	Size        int    `json:"size"`
	EnableReset bool   `json:"enable_reset"`
}

// TournamentService runs Swiss tournaments end to end: creation with eager
// first-round pairing, result intake, round advancement, standings, and
// playoff bracket construction from the final table.
type TournamentService interface {
	CreateTournament(ctx context.Context, contact string, participantIDs []string) (*models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListFilter) ([]*models.Tournament, error)
	GetPairings(ctx context.Context, id string) ([]swiss.Pairing, error)
	RecordMatchResult(ctx context.Context, id string, input MatchResultInput) (*models.Match, error)
	AdvanceRound(ctx context.Context, id string) (*models.Tournament, error)
	Standings(ctx context.Context, id string) ([]models.Standing, error)
	SeedPlayoffs(ctx context.Context, id string, size int) ([]*models.Participant, error)
	BuildPlayoffBracket(ctx context.Context, id string, opts PlayoffOptions) (brackets.Bracket, error)
	DeleteTournament(ctx context.Context, id string) error
}

type tournamentService struct {
	repo   repositories.TournamentRepository
	hub    *Hub
	logger zerolog.Logger
	locks  sync.Map // tournament ID -> *sync.Mutex
}

// NewTournamentService wires the manager to its storage. hub may be nil when
// nobody consumes events.
func NewTournamentService(repo repositories.TournamentRepository, hub *Hub, logger zerolog.Logger) TournamentService {
	return &tournamentService{repo: repo, hub: hub, logger: logger}
}

// lock serializes mutating operations on one tournament. Reads and other
// tournaments are unaffected.
func (s *tournamentService) lock(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *tournamentService) publish(event Event) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(event)
}

func (s *tournamentService) CreateTournament(ctx context.Context, contact string, participantIDs []string) (*models.Tournament, error) {
	participants := make([]*models.Participant, 0, len(participantIDs))
	for _, pid := range participantIDs {
		p, err := models.NewParticipant(pid)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	totalRounds := swiss.CalculateTotalRounds(len(participants))
	tournament, err := models.NewTournament(uuid.NewString(), contact, participants, totalRounds)
	if err != nil {
		return nil, err
	}

	// A single entrant plays zero rounds and is complete at creation.
	if !tournament.IsComplete() {
		if err := buildRoundMatches(tournament); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to store tournament: %w", err)
	}

	s.logger.Info().
		Str("tournament_id", tournament.ID).
		Int("participants", len(participants)).
		Int("total_rounds", totalRounds).
		Msg("tournament created")

	s.publish(Event{Type: EventTournamentCreated, TournamentID: tournament.ID, Payload: tournament})
	return tournament, nil
}

// buildRoundMatches materializes the current round's pairings as matches.
// Byes are not stored; the unmatched participant sits the round out and
// scores nothing.
func buildRoundMatches(t *models.Tournament) error {
	standings := make(map[string]int, len(t.Participants))
	for _, p := range t.Participants {
		standings[p.ID] = p.Score
	}

	pairings, err := swiss.GeneratePairings(t.Participants, swiss.MatchupsOf(t.Matches), standings)
	if err != nil {
		return err
	}

	seq := 1
	for _, pairing := range pairings {
		if pairing.IsBye() {
			continue
		}
		m, err := models.NewMatch(pairing.Participant1, pairing.Participant2, t.CurrentRound)
		if err != nil {
			return err
		}
		m.UID = fmt.Sprintf("R%dM%d", t.CurrentRound+1, seq)
		seq++
		t.Matches = append(t.Matches, m)
	}
	return nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListFilter) ([]*models.Tournament, error) {
	return s.repo.List(ctx, filter)
}

// GetPairings reports the current round as pairings: every stored match plus
// a trailing bye entry for the participant left unmatched in odd fields.
func (s *tournamentService) GetPairings(ctx context.Context, id string) ([]swiss.Pairing, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.IsComplete() {
		return nil, fmt.Errorf("%w: %s", models.ErrTournamentCompleted, t.ID)
	}

	matched := make(map[string]bool, len(t.Participants))
	pairings := make([]swiss.Pairing, 0, (len(t.Participants)+1)/2)
	for _, m := range t.CurrentRoundMatches() {
		pairings = append(pairings, swiss.Pairing{Participant1: m.Participant1, Participant2: m.Participant2})
		matched[m.Participant1.ID] = true
		matched[m.Participant2.ID] = true
	}
	for _, p := range t.Participants {
		if !matched[p.ID] {
			pairings = append(pairings, swiss.Pairing{Participant1: p})
		}
	}
	return pairings, nil
}

func (s *tournamentService) RecordMatchResult(ctx context.Context, id string, input MatchResultInput) (*models.Match, error) {
	unlock := s.lock(id)
	defer unlock()

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.IsComplete() {
		return nil, fmt.Errorf("%w: %s", models.ErrTournamentCompleted, t.ID)
	}

	if t.ParticipantByID(input.ParticipantA) == nil {
		return nil, fmt.Errorf("%w: %s", ErrParticipantNotInTournament, input.ParticipantA)
	}
	if t.ParticipantByID(input.ParticipantB) == nil {
		return nil, fmt.Errorf("%w: %s", ErrParticipantNotInTournament, input.ParticipantB)
	}

	match := findMatch(t.CurrentRoundMatches(), input.ParticipantA, input.ParticipantB)
	if match == nil {
		return nil, fmt.Errorf("%w: %s vs %s in round %d",
			ErrMatchNotFound, input.ParticipantA, input.ParticipantB, t.CurrentRound)
	}

	outcome, err := models.ParseOutcome(input.Outcome)
	if err != nil {
		return nil, err
	}

	var winner *models.Participant
	if input.WinnerID != "" {
		if winner = t.ParticipantByID(input.WinnerID); winner == nil {
			return nil, fmt.Errorf("%w: %s", ErrParticipantNotInTournament, input.WinnerID)
		}
	}

	result, err := models.NewResult(outcome, winner)
	if err != nil {
		return nil, err
	}
	if err := match.RecordResult(result); err != nil {
		return nil, err
	}
	applyResultStats(match)

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to store result: %w", err)
	}

	s.logger.Info().
		Str("tournament_id", t.ID).
		Str("match_uid", match.UID).
		Str("outcome", string(outcome)).
		Msg("match result recorded")

	s.publish(Event{Type: EventResultRecorded, TournamentID: t.ID, Payload: match})
	return match, nil
}

// findMatch locates an unordered pairing among the round's matches.
func findMatch(matches []*models.Match, a, b string) *models.Match {
	if a == b {
		return nil
	}
	for _, m := range matches {
		if m.HasParticipant(a) && m.HasParticipant(b) {
			return m
		}
	}
	return nil
}

// applyResultStats folds a freshly recorded result into both participants'
// counters. A loss outcome is a default: the named winner still advances in
// bracket play, but both sides book a loss and nobody scores.
func applyResultStats(m *models.Match) {
	switch m.Result.Outcome {
	case models.OutcomeWin:
		m.Result.Winner.AddWin()
		m.Opponent(m.Result.Winner.ID).AddLoss()
	case models.OutcomeDraw:
		m.Participant1.AddDraw()
		m.Participant2.AddDraw()
	case models.OutcomeLoss:
		m.Participant1.AddLoss()
		m.Participant2.AddLoss()
	}
}

func (s *tournamentService) AdvanceRound(ctx context.Context, id string) (*models.Tournament, error) {
	unlock := s.lock(id)
	defer unlock()

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, m := range t.CurrentRoundMatches() {
		if !m.Decided() {
			return nil, fmt.Errorf("%w: match %s", ErrRoundNotDecided, m.UID)
		}
	}
	if err := t.AdvanceRound(); err != nil {
		return nil, err
	}
	if !t.IsComplete() {
		if err := buildRoundMatches(t); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to store round advance: %w", err)
	}

	s.logger.Info().
		Str("tournament_id", t.ID).
		Int("current_round", t.CurrentRound).
		Bool("complete", t.IsComplete()).
		Msg("round advanced")

	if t.IsComplete() {
		s.publish(Event{Type: EventTournamentCompleted, TournamentID: t.ID, Payload: t.StandingRows()})
	} else {
		s.publish(Event{Type: EventRoundAdvanced, TournamentID: t.ID, Payload: t.CurrentRoundMatches()})
	}
	return t, nil
}

// Standings verifies every participant's counters before reporting, so a
// drifted score surfaces as a consistency error instead of a wrong table.
func (s *tournamentService) Standings(ctx context.Context, id string) ([]models.Standing, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, p := range t.Participants {
		if err := p.CheckStats(); err != nil {
			return nil, fmt.Errorf("tournament %s: %w", t.ID, err)
		}
	}
	return t.StandingRows(), nil
}

// SeedPlayoffs returns the top participants of a finished tournament in
// standings order, ready to seed a bracket.
func (s *tournamentService) SeedPlayoffs(ctx context.Context, id string, size int) ([]*models.Participant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsComplete() {
		return nil, fmt.Errorf("%w: %d of %d rounds played", ErrTournamentNotComplete, t.CurrentRound, t.TotalRounds)
	}
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBracketSize, size)
	}
	if size > len(t.Participants) {
		return nil, fmt.Errorf("%w: want %d of %d", ErrNotEnoughParticipants, size, len(t.Participants))
	}
	return t.Standings()[:size], nil
}

func (s *tournamentService) BuildPlayoffBracket(ctx context.Context, id string, opts PlayoffOptions) (brackets.Bracket, error) {
	seeds, err := s.SeedPlayoffs(ctx, id, opts.Size)
	if err != nil {
		return nil, err
	}

	var bracket brackets.Bracket
	switch opts.Format {
	case brackets.FormatSingleElimination:
		bracket, err = brackets.NewSingleElimination(seeds)
	case brackets.FormatDoubleElimination:
		bracket, err = brackets.NewDoubleElimination(seeds, opts.EnableReset)
	case brackets.FormatRoundRobin:
		bracket, err = brackets.NewRoundRobin(seeds)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("tournament_id", id).
		Str("format", opts.Format).
		Int("size", opts.Size).
		Msg("playoff bracket built")

	return bracket, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("tournament_id", id).Msg("tournament deleted")
	s.publish(Event{Type: EventTournamentDeleted, TournamentID: id})
	return nil
}
