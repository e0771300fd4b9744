package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-engine/models"
)

// seedField builds a rank-ordered field seed1..seedN.
func seedField(t *testing.T, n int) []*models.Participant {
	t.Helper()
	seeds := make([]*models.Participant, n)
	for i := range seeds {
		p, err := models.NewParticipant(fmt.Sprintf("seed%d", i+1))
		require.NoError(t, err)
		seeds[i] = p
	}
	return seeds
}

func win(t *testing.T, m *models.Match, p *models.Participant) {
	t.Helper()
	res, err := models.NewResult(models.OutcomeWin, p)
	require.NoError(t, err)
	require.NoError(t, m.RecordResult(res))
}

func draw(t *testing.T, m *models.Match) {
	t.Helper()
	res, err := models.NewResult(models.OutcomeDraw, nil)
	require.NoError(t, err)
	require.NoError(t, m.RecordResult(res))
}

// roundPairs flattens the current round into id pairs for assertions.
func roundPairs(matches []*models.Match) [][2]string {
	out := make([][2]string, len(matches))
	for i, m := range matches {
		out[i] = [2]string{m.Participant1.ID, m.Participant2.ID}
	}
	return out
}

// sweepRound lets the first slot win every current match and advances.
func sweepRound(t *testing.T, b Bracket) {
	t.Helper()
	for _, m := range b.CurrentRoundMatches() {
		win(t, m, m.Participant1)
	}
	require.NoError(t, b.AdvanceRound())
}

func TestSeededPairs(t *testing.T) {
	testCases := []struct {
		n       int
		want    [][2]string
		wantBye string
	}{
		{
			n:    2,
			want: [][2]string{{"seed1", "seed2"}},
		},
		{
			n:    4,
			want: [][2]string{{"seed1", "seed4"}, {"seed2", "seed3"}},
		},
		{
			n: 5,
			want: [][2]string{
				{"seed1", "seed5"}, {"seed2", "seed4"},
			},
			wantBye: "seed3",
		},
		{
			// The eight-strong field is reordered to bracket order.
			n: 8,
			want: [][2]string{
				{"seed1", "seed8"}, {"seed4", "seed5"}, {"seed3", "seed6"}, {"seed2", "seed7"},
			},
		},
		{
			// Sixteen keeps the natural order.
			n: 16,
			want: [][2]string{
				{"seed1", "seed16"}, {"seed2", "seed15"}, {"seed3", "seed14"}, {"seed4", "seed13"},
				{"seed5", "seed12"}, {"seed6", "seed11"}, {"seed7", "seed10"}, {"seed8", "seed9"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			pairs, bye := seededPairs(seedField(t, tc.n))
			got := make([][2]string, len(pairs))
			for i, pair := range pairs {
				got[i] = [2]string{pair[0].ID, pair[1].ID}
			}
			assert.Equal(t, tc.want, got)
			if tc.wantBye == "" {
				assert.Nil(t, bye)
			} else {
				require.NotNil(t, bye)
				assert.Equal(t, tc.wantBye, bye.ID)
			}
		})
	}
}

func TestAdjacentPairs(t *testing.T) {
	field := seedField(t, 5)
	pairs, bye := adjacentPairs(field)
	require.Len(t, pairs, 2)
	assert.Equal(t, "seed1", pairs[0][0].ID)
	assert.Equal(t, "seed2", pairs[0][1].ID)
	assert.Equal(t, "seed3", pairs[1][0].ID)
	assert.Equal(t, "seed4", pairs[1][1].ID)
	require.NotNil(t, bye)
	assert.Equal(t, "seed5", bye.ID)

	pairs, bye = adjacentPairs(field[:4])
	assert.Len(t, pairs, 2)
	assert.Nil(t, bye)
}

func TestMatchesForPairsUIDs(t *testing.T) {
	field := seedField(t, 4)
	pairs, _ := seededPairs(field)
	matches, err := matchesForPairs(pairs, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "R1M1", matches[0].UID)
	assert.Equal(t, "R1M2", matches[1].UID)
	assert.Equal(t, 0, matches[0].Round)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "winners_round_1", PhaseWinnersRound1.String())
	assert.Equal(t, "grand_final_reset", PhaseGrandFinalReset.String())
	assert.Equal(t, "done", PhaseDone.String())
	assert.Equal(t, "Phase(42)", Phase(42).String())
}
