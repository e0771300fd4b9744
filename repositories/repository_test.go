package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-engine/models"
)

// repoFactory returns a fresh, empty repository for each subtest.
type repoFactory func(t *testing.T) TournamentRepository

// storedTournament builds a four-player tournament with one decided and one
// pending first-round match, the smallest aggregate that covers every
// persisted shape.
func storedTournament(t *testing.T, id string) *models.Tournament {
	t.Helper()

	names := []string{"alpha", "beta", "gamma", "delta"}
	participants := make([]*models.Participant, 0, len(names))
	for _, pid := range names {
		p, err := models.NewParticipant(pid)
		require.NoError(t, err)
		participants = append(participants, p)
	}

	tournament, err := models.NewTournament(id, "ops@example.com", participants, 2)
	require.NoError(t, err)

	decided, err := models.NewMatch(participants[0], participants[1], 0)
	require.NoError(t, err)
	decided.UID = "R1M1"
	result, err := models.NewResult(models.OutcomeWin, participants[0])
	require.NoError(t, err)
	require.NoError(t, decided.RecordResult(result))
	participants[0].AddWin()
	participants[1].AddLoss()

	pending, err := models.NewMatch(participants[2], participants[3], 0)
	require.NoError(t, err)
	pending.UID = "R1M2"

	tournament.Matches = []*models.Match{decided, pending}
	return tournament
}

func assertSameTournament(t *testing.T, want, got *models.Tournament) {
	t.Helper()

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Contact, got.Contact)
	assert.Equal(t, want.CurrentRound, got.CurrentRound)
	assert.Equal(t, want.TotalRounds, got.TotalRounds)
	assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Second)
	assert.Equal(t, want.Participants, got.Participants)

	require.Len(t, got.Matches, len(want.Matches))
	for i, wm := range want.Matches {
		gm := got.Matches[i]
		assert.Equal(t, wm.UID, gm.UID)
		assert.Equal(t, wm.Round, gm.Round)
		assert.True(t, wm.Equal(gm), "match %s pairs differ", wm.UID)
		assert.Equal(t, wm.Result, gm.Result)
	}
}

func listIDs(tournaments []*models.Tournament) []string {
	ids := make([]string, 0, len(tournaments))
	for _, tournament := range tournaments {
		ids = append(ids, tournament.ID)
	}
	return ids
}

// testTournamentRepository is the contract suite every backend must pass.
func testTournamentRepository(t *testing.T, newRepo repoFactory) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		repo := newRepo(t)
		want := storedTournament(t, "trn-1")
		require.NoError(t, repo.Create(ctx, want))

		got, err := repo.GetByID(ctx, "trn-1")
		require.NoError(t, err)
		assertSameTournament(t, want, got)

		// Loaded matches reference the tournament's own participant instances.
		require.NotNil(t, got.Matches[0].Result)
		assert.Same(t, got.Participants[0], got.Matches[0].Participant1)
		assert.Same(t, got.Participants[0], got.Matches[0].Result.Winner)
	})

	t.Run("create duplicate", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, storedTournament(t, "trn-1")))

		err := repo.Create(ctx, storedTournament(t, "trn-1"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTournamentExists)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})

	t.Run("list with filters", func(t *testing.T) {
		repo := newRepo(t)
		base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

		first := storedTournament(t, "trn-a")
		first.CreatedAt = base
		second := storedTournament(t, "trn-b")
		second.CreatedAt = base.Add(time.Minute)
		second.Contact = "other@example.com"
		third := storedTournament(t, "trn-c")
		third.CreatedAt = base.Add(2 * time.Minute)
		third.CurrentRound = third.TotalRounds

		for _, tournament := range []*models.Tournament{first, second, third} {
			require.NoError(t, repo.Create(ctx, tournament))
		}

		all, err := repo.List(ctx, ListFilter{})
		require.NoError(t, err)
		require.Equal(t, []string{"trn-c", "trn-b", "trn-a"}, listIDs(all))
		assert.Len(t, all[0].Participants, 4)
		assert.Len(t, all[0].Matches, 2)

		contact := "other@example.com"
		byContact, err := repo.List(ctx, ListFilter{Contact: &contact})
		require.NoError(t, err)
		assert.Equal(t, []string{"trn-b"}, listIDs(byContact))

		complete := true
		done, err := repo.List(ctx, ListFilter{Complete: &complete})
		require.NoError(t, err)
		assert.Equal(t, []string{"trn-c"}, listIDs(done))

		running := false
		active, err := repo.List(ctx, ListFilter{Complete: &running})
		require.NoError(t, err)
		assert.Equal(t, []string{"trn-b", "trn-a"}, listIDs(active))

		page, err := repo.List(ctx, ListFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"trn-b"}, listIDs(page))

		tail, err := repo.List(ctx, ListFilter{Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"trn-a"}, listIDs(tail))
	})

	t.Run("update persists recorded results", func(t *testing.T) {
		repo := newRepo(t)
		tournament := storedTournament(t, "trn-1")
		require.NoError(t, repo.Create(ctx, tournament))

		pending := tournament.Matches[1]
		result, err := models.NewResult(models.OutcomeDraw, nil)
		require.NoError(t, err)
		require.NoError(t, pending.RecordResult(result))
		pending.Participant1.AddDraw()
		pending.Participant2.AddDraw()
		require.NoError(t, tournament.AdvanceRound())

		require.NoError(t, repo.Update(ctx, tournament))

		got, err := repo.GetByID(ctx, "trn-1")
		require.NoError(t, err)
		assert.Equal(t, 1, got.CurrentRound)
		require.NotNil(t, got.Matches[1].Result)
		assert.True(t, got.Matches[1].Result.IsDraw())

		gamma := got.ParticipantByID("gamma")
		require.NotNil(t, gamma)
		assert.Equal(t, 1, gamma.Score)
		assert.Equal(t, 1, gamma.Draws)
	})

	t.Run("update missing", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Update(ctx, storedTournament(t, "missing"))
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, storedTournament(t, "trn-1")))
		require.NoError(t, repo.Delete(ctx, "trn-1"))

		_, err := repo.GetByID(ctx, "trn-1")
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})

	t.Run("delete missing", func(t *testing.T) {
		repo := newRepo(t)
		assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrTournamentNotFound)
	})
}
