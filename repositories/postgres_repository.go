package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"tournament-engine/models"
)

type postgresTournamentRepository struct {
	db *sql.DB
}

// NewPostgresTournamentRepository wires the repository to a postgres pool.
func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tournaments (id, contact, current_round, total_rounds, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := tx.ExecContext(ctx, query,
		t.ID, t.Contact, t.CurrentRound, t.TotalRounds, t.CreatedAt,
	); err != nil {
		return handleTournamentError(err)
	}

	if err := insertParticipants(ctx, tx, t); err != nil {
		return handleTournamentError(err)
	}
	if err := insertMatches(ctx, tx, t); err != nil {
		return handleTournamentError(err)
	}

	return tx.Commit()
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `
		SELECT id, contact, current_round, total_rounds, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Contact, &t.CurrentRound, &t.TotalRounds, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	var (
		participants []*models.Participant
		records      []matchRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		participants, loadErr = r.loadParticipants(gctx, id)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		records, loadErr = r.loadMatchRecords(gctx, id)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches, err := rebuildMatches(id, records, participants)
	if err != nil {
		return nil, err
	}

	t.Participants = participants
	t.Matches = matches
	return t, nil
}

func (r *postgresTournamentRepository) loadParticipants(ctx context.Context, tournamentID string) ([]*models.Participant, error) {
	query := `
		SELECT id, score, wins, losses, draws
		FROM participants
		WHERE tournament_id = $1
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		p := &models.Participant{}
		if scanErr := rows.Scan(&p.ID, &p.Score, &p.Wins, &p.Losses, &p.Draws); scanErr != nil {
			return nil, scanErr
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *postgresTournamentRepository) loadMatchRecords(ctx context.Context, tournamentID string) ([]matchRecord, error) {
	query := `
		SELECT uid, round, participant1_id, participant2_id, outcome, winner_id
		FROM matches
		WHERE tournament_id = $1
		ORDER BY round, position`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]matchRecord, 0)
	for rows.Next() {
		var rec matchRecord
		if scanErr := rows.Scan(
			&rec.UID, &rec.Round, &rec.Participant1ID, &rec.Participant2ID, &rec.Outcome, &rec.WinnerID,
		); scanErr != nil {
			return nil, scanErr
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListFilter) ([]*models.Tournament, error) {
	query := `
		SELECT id, contact, current_round, total_rounds, created_at
		FROM tournaments
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Contact != nil {
		query += fmt.Sprintf(" AND contact = $%d", argID)
		args = append(args, *filter.Contact)
		argID++
	}
	if filter.Complete != nil {
		if *filter.Complete {
			query += " AND current_round >= total_rounds"
		} else {
			query += " AND current_round < total_rounds"
		}
	}

	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t := &models.Tournament{}
		if scanErr := rows.Scan(&t.ID, &t.Contact, &t.CurrentRound, &t.TotalRounds, &t.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(tournaments) == 0 {
		return tournaments, nil
	}

	ids := make([]string, len(tournaments))
	byID := make(map[string]*models.Tournament, len(tournaments))
	for i, t := range tournaments {
		ids[i] = t.ID
		byID[t.ID] = t
	}

	// Matches resolve against participant pointers, so participants load first.
	if err := r.attachParticipants(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.attachMatches(ctx, ids, byID); err != nil {
		return nil, err
	}

	return tournaments, nil
}

func (r *postgresTournamentRepository) attachParticipants(ctx context.Context, ids []string, byID map[string]*models.Tournament) error {
	query := `
		SELECT tournament_id, id, score, wins, losses, draws
		FROM participants
		WHERE tournament_id = ANY($1)
		ORDER BY tournament_id, position`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tournamentID string
		p := &models.Participant{}
		if scanErr := rows.Scan(&tournamentID, &p.ID, &p.Score, &p.Wins, &p.Losses, &p.Draws); scanErr != nil {
			return scanErr
		}
		if t, ok := byID[tournamentID]; ok {
			t.Participants = append(t.Participants, p)
		}
	}
	return rows.Err()
}

func (r *postgresTournamentRepository) attachMatches(ctx context.Context, ids []string, byID map[string]*models.Tournament) error {
	query := `
		SELECT tournament_id, uid, round, participant1_id, participant2_id, outcome, winner_id
		FROM matches
		WHERE tournament_id = ANY($1)
		ORDER BY tournament_id, round, position`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	grouped := make(map[string][]matchRecord)
	for rows.Next() {
		var tournamentID string
		var rec matchRecord
		if scanErr := rows.Scan(
			&tournamentID, &rec.UID, &rec.Round, &rec.Participant1ID, &rec.Participant2ID, &rec.Outcome, &rec.WinnerID,
		); scanErr != nil {
			return scanErr
		}
		grouped[tournamentID] = append(grouped[tournamentID], rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for tournamentID, records := range grouped {
		t, ok := byID[tournamentID]
		if !ok {
			continue
		}
		matches, err := rebuildMatches(tournamentID, records, t.Participants)
		if err != nil {
			return err
		}
		t.Matches = matches
	}
	return nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE tournaments SET contact = $1, current_round = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, query, t.Contact, t.CurrentRound, t.ID)
	if err != nil {
		return handleTournamentError(err)
	}
	if err := checkAffectedRows(result, ErrTournamentNotFound); err != nil {
		return err
	}

	// Child rows are replaced wholesale on update.
	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE tournament_id = $1`, t.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, t.ID); err != nil {
		return err
	}
	if err := insertParticipants(ctx, tx, t); err != nil {
		return handleTournamentError(err)
	}
	if err := insertMatches(ctx, tx, t); err != nil {
		return handleTournamentError(err)
	}

	return tx.Commit()
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func insertParticipants(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	query := `
		INSERT INTO participants (tournament_id, id, position, score, wins, losses, draws)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i, p := range t.Participants {
		if _, err := exec.ExecContext(ctx, query, t.ID, p.ID, i, p.Score, p.Wins, p.Losses, p.Draws); err != nil {
			return err
		}
	}
	return nil
}

func insertMatches(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	query := `
		INSERT INTO matches (tournament_id, uid, round, participant1_id, participant2_id, outcome, winner_id, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, m := range t.Matches {
		var outcome, winnerID *string
		if m.Result != nil {
			o := string(m.Result.Outcome)
			outcome = &o
			if m.Result.Winner != nil {
				w := m.Result.Winner.ID
				winnerID = &w
			}
		}
		if _, err := exec.ExecContext(ctx, query,
			t.ID, m.UID, m.Round, m.Participant1.ID, m.Participant2.ID, outcome, winnerID, i,
		); err != nil {
			return err
		}
	}
	return nil
}

func handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrTournamentExists
		case "23503":
			return ErrTournamentNotFound
		}
	}
	return err
}
