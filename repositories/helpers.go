package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"tournament-engine/models"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, letting statement
// helpers run inside or outside a transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// matchRecord is the flat match row shape shared by the SQL backends.
type matchRecord struct {
	UID            string
	Round          int
	Participant1ID string
	Participant2ID string
	Outcome        sql.NullString
	WinnerID       sql.NullString
}

// rebuildMatches resolves stored match rows against the loaded participant
// set, so that every match points at the same participant instances the
// tournament holds. Rows referencing unknown participants or carrying an
// unparseable outcome indicate corrupted state.
func rebuildMatches(tournamentID string, records []matchRecord, participants []*models.Participant) ([]*models.Match, error) {
	byID := make(map[string]*models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	matches := make([]*models.Match, 0, len(records))
	for _, rec := range records {
		p1, ok := byID[rec.Participant1ID]
		if !ok {
			return nil, fmt.Errorf("%w: tournament %s match %s references unknown participant %q",
				models.ErrConsistency, tournamentID, rec.UID, rec.Participant1ID)
		}
		p2, ok := byID[rec.Participant2ID]
		if !ok {
			return nil, fmt.Errorf("%w: tournament %s match %s references unknown participant %q",
				models.ErrConsistency, tournamentID, rec.UID, rec.Participant2ID)
		}

		m := &models.Match{
			UID:          rec.UID,
			Participant1: p1,
			Participant2: p2,
			Round:        rec.Round,
		}

		if rec.Outcome.Valid {
			outcome, err := models.ParseOutcome(rec.Outcome.String)
			if err != nil {
				return nil, fmt.Errorf("%w: tournament %s match %s has invalid outcome %q",
					models.ErrConsistency, tournamentID, rec.UID, rec.Outcome.String)
			}
			var winner *models.Participant
			if rec.WinnerID.Valid {
				if winner, ok = byID[rec.WinnerID.String]; !ok {
					return nil, fmt.Errorf("%w: tournament %s match %s references unknown winner %q",
						models.ErrConsistency, tournamentID, rec.UID, rec.WinnerID.String)
				}
			}
			result, err := models.NewResult(outcome, winner)
			if err != nil {
				return nil, fmt.Errorf("%w: tournament %s match %s: %v",
					models.ErrConsistency, tournamentID, rec.UID, err)
			}
			m.Result = result
		}

		matches = append(matches, m)
	}
	return matches, nil
}
