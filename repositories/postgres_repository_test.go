package repositories

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tournament-engine/db"
)

// Runs only against a disposable database: the suite wipes the tournaments
// table between subtests.
func TestPostgresTournamentRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := db.Connect(dsn, 5*time.Second)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() { pool.Close() })

	testTournamentRepository(t, func(t *testing.T) TournamentRepository {
		t.Helper()
		_, err := pool.Exec(`DELETE FROM tournaments`)
		require.NoError(t, err)
		return NewPostgresTournamentRepository(pool)
	})
}
