package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"tournament-engine/models"
)

type sqliteTournamentRepository struct {
	db *sqlx.DB
}

// NewSQLiteTournamentRepository wires the repository to a sqlite handle.
func NewSQLiteTournamentRepository(db *sqlx.DB) TournamentRepository {
	return &sqliteTournamentRepository{db: db}
}

type tournamentRow struct {
	ID           string    `db:"id"`
	Contact      string    `db:"contact"`
	CurrentRound int       `db:"current_round"`
	TotalRounds  int       `db:"total_rounds"`
	CreatedAt    time.Time `db:"created_at"`
}

type participantRow struct {
	TournamentID string `db:"tournament_id"`
	ID           string `db:"id"`
	Position     int    `db:"position"`
	Score        int    `db:"score"`
	Wins         int    `db:"wins"`
	Losses       int    `db:"losses"`
	Draws        int    `db:"draws"`
}

type matchRow struct {
	TournamentID   string         `db:"tournament_id"`
	UID            string         `db:"uid"`
	Round          int            `db:"round"`
	Participant1ID string         `db:"participant1_id"`
	Participant2ID string         `db:"participant2_id"`
	Outcome        sql.NullString `db:"outcome"`
	WinnerID       sql.NullString `db:"winner_id"`
	Position       int            `db:"position"`
}

func participantRows(t *models.Tournament) []participantRow {
	rows := make([]participantRow, 0, len(t.Participants))
	for i, p := range t.Participants {
		rows = append(rows, participantRow{
			TournamentID: t.ID,
			ID:           p.ID,
			Position:     i,
			Score:        p.Score,
			Wins:         p.Wins,
			Losses:       p.Losses,
			Draws:        p.Draws,
		})
	}
	return rows
}

func matchRows(t *models.Tournament) []matchRow {
	rows := make([]matchRow, 0, len(t.Matches))
	for i, m := range t.Matches {
		row := matchRow{
			TournamentID:   t.ID,
			UID:            m.UID,
			Round:          m.Round,
			Participant1ID: m.Participant1.ID,
			Participant2ID: m.Participant2.ID,
			Position:       i,
		}
		if m.Result != nil {
			row.Outcome = sql.NullString{String: string(m.Result.Outcome), Valid: true}
			if m.Result.Winner != nil {
				row.WinnerID = sql.NullString{String: m.Result.Winner.ID, Valid: true}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *sqliteTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO tournaments (id, contact, current_round, total_rounds, created_at)
		VALUES (:id, :contact, :current_round, :total_rounds, :created_at)`,
		tournamentRow{
			ID:           t.ID,
			Contact:      t.Contact,
			CurrentRound: t.CurrentRound,
			TotalRounds:  t.TotalRounds,
			CreatedAt:    t.CreatedAt,
		},
	); err != nil {
		return handleSQLiteError(err)
	}

	if err := insertChildren(ctx, tx, t); err != nil {
		return handleSQLiteError(err)
	}

	return tx.Commit()
}

func insertChildren(ctx context.Context, tx *sqlx.Tx, t *models.Tournament) error {
	if rows := participantRows(t); len(rows) > 0 {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO participants (tournament_id, id, position, score, wins, losses, draws)
			VALUES (:tournament_id, :id, :position, :score, :wins, :losses, :draws)`, rows); err != nil {
			return err
		}
	}
	if rows := matchRows(t); len(rows) > 0 {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO matches (tournament_id, uid, round, participant1_id, participant2_id, outcome, winner_id, position)
			VALUES (:tournament_id, :uid, :round, :participant1_id, :participant2_id, :outcome, :winner_id, :position)`, rows); err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	var row tournamentRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, contact, current_round, total_rounds, created_at
		FROM tournaments WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	var pRows []participantRow
	if err := r.db.SelectContext(ctx, &pRows, `
		SELECT tournament_id, id, position, score, wins, losses, draws
		FROM participants WHERE tournament_id = ? ORDER BY position`, id); err != nil {
		return nil, err
	}

	var mRows []matchRow
	if err := r.db.SelectContext(ctx, &mRows, `
		SELECT tournament_id, uid, round, participant1_id, participant2_id, outcome, winner_id, position
		FROM matches WHERE tournament_id = ? ORDER BY round, position`, id); err != nil {
		return nil, err
	}

	return assembleTournament(row, pRows, mRows)
}

func assembleTournament(row tournamentRow, pRows []participantRow, mRows []matchRow) (*models.Tournament, error) {
	t := &models.Tournament{
		ID:           row.ID,
		Contact:      row.Contact,
		CurrentRound: row.CurrentRound,
		TotalRounds:  row.TotalRounds,
		CreatedAt:    row.CreatedAt,
	}

	t.Participants = make([]*models.Participant, 0, len(pRows))
	for _, pr := range pRows {
		t.Participants = append(t.Participants, &models.Participant{
			ID:     pr.ID,
			Score:  pr.Score,
			Wins:   pr.Wins,
			Losses: pr.Losses,
			Draws:  pr.Draws,
		})
	}

	records := make([]matchRecord, 0, len(mRows))
	for _, mr := range mRows {
		records = append(records, matchRecord{
			UID:            mr.UID,
			Round:          mr.Round,
			Participant1ID: mr.Participant1ID,
			Participant2ID: mr.Participant2ID,
			Outcome:        mr.Outcome,
			WinnerID:       mr.WinnerID,
		})
	}

	matches, err := rebuildMatches(t.ID, records, t.Participants)
	if err != nil {
		return nil, err
	}
	t.Matches = matches
	return t, nil
}

func (r *sqliteTournamentRepository) List(ctx context.Context, filter ListFilter) ([]*models.Tournament, error) {
	query := `SELECT id, contact, current_round, total_rounds, created_at FROM tournaments WHERE 1=1`
	args := []interface{}{}

	if filter.Contact != nil {
		query += " AND contact = ?"
		args = append(args, *filter.Contact)
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
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		// sqlite requires a LIMIT clause before OFFSET; -1 means unbounded.
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	var tRows []tournamentRow
	if err := r.db.SelectContext(ctx, &tRows, query, args...); err != nil {
		return nil, err
	}
	if len(tRows) == 0 {
		return []*models.Tournament{}, nil
	}

	ids := make([]string, len(tRows))
	for i, row := range tRows {
		ids[i] = row.ID
	}

	pQuery, pArgs, err := sqlx.In(`
		SELECT tournament_id, id, position, score, wins, losses, draws
		FROM participants WHERE tournament_id IN (?) ORDER BY tournament_id, position`, ids)
	if err != nil {
		return nil, err
	}
	var pRows []participantRow
	if err := r.db.SelectContext(ctx, &pRows, r.db.Rebind(pQuery), pArgs...); err != nil {
		return nil, err
	}

	mQuery, mArgs, err := sqlx.In(`
		SELECT tournament_id, uid, round, participant1_id, participant2_id, outcome, winner_id, position
		FROM matches WHERE tournament_id IN (?) ORDER BY tournament_id, round, position`, ids)
	if err != nil {
		return nil, err
	}
	var mRows []matchRow
	if err := r.db.SelectContext(ctx, &mRows, r.db.Rebind(mQuery), mArgs...); err != nil {
		return nil, err
	}

	pByTournament := make(map[string][]participantRow)
	for _, pr := range pRows {
		pByTournament[pr.TournamentID] = append(pByTournament[pr.TournamentID], pr)
	}
	mByTournament := make(map[string][]matchRow)
	for _, mr := range mRows {
		mByTournament[mr.TournamentID] = append(mByTournament[mr.TournamentID], mr)
	}

	tournaments := make([]*models.Tournament, 0, len(tRows))
	for _, row := range tRows {
		t, err := assembleTournament(row, pByTournament[row.ID], mByTournament[row.ID])
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

func (r *sqliteTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE tournaments SET contact = ?, current_round = ? WHERE id = ?`,
		t.Contact, t.CurrentRound, t.ID)
	if err != nil {
		return handleSQLiteError(err)
	}
	if err := checkAffectedRows(result, ErrTournamentNotFound); err != nil {
		return err
	}

	// Child rows are replaced wholesale on update.
	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE tournament_id = ?`, t.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = ?`, t.ID); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, t); err != nil {
		return handleSQLiteError(err)
	}

	return tx.Commit()
}

func (r *sqliteTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func handleSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrTournamentExists
		}
	}
	return err
}
