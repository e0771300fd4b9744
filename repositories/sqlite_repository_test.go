package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tournament-engine/db"
)

func TestSQLiteTournamentRepository(t *testing.T) {
	testTournamentRepository(t, func(t *testing.T) TournamentRepository {
		t.Helper()

		database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "tournament.db"))
		require.NoError(t, err, "failed to open test database")
		t.Cleanup(func() { database.Close() })

		return NewSQLiteTournamentRepository(database)
	})
}
