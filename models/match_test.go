package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPair(t *testing.T) (*Participant, *Participant) {
	t.Helper()
	p1, err := NewParticipant("alpha")
	require.NoError(t, err)
	p2, err := NewParticipant("beta")
	require.NoError(t, err)
	return p1, p2
}

func TestNewMatch(t *testing.T) {
	p1, p2 := testPair(t)

	testCases := []struct {
		name    string
		p1, p2  *Participant
		round   int
		wantErr error
	}{
		{
			name:  "valid pair",
			p1:    p1,
			p2:    p2,
			round: 0,
		},
		{
			name:    "nil participant",
			p1:      p1,
			p2:      nil,
			round:   0,
			wantErr: ErrNilParticipant,
		},
		{
			name:    "same participant twice",
			p1:      p1,
			p2:      p1,
			round:   0,
			wantErr: ErrMatchSameParticipant,
		},
		{
			name:    "negative round",
			p1:      p1,
			p2:      p2,
			round:   -1,
			wantErr: ErrMatchNegativeRound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMatch(tc.p1, tc.p2, tc.round)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.False(t, m.Decided())
		})
	}
}

func TestMatchRecordResultOnce(t *testing.T) {
	p1, p2 := testPair(t)
	m, err := NewMatch(p1, p2, 0)
	require.NoError(t, err)

	first, err := NewResult(OutcomeWin, p1)
	require.NoError(t, err)
	require.NoError(t, m.RecordResult(first))
	assert.True(t, m.Decided())
	assert.Equal(t, p1, m.Winner())

	second, err := NewResult(OutcomeWin, p2)
	require.NoError(t, err)
	err = m.RecordResult(second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMatchResultRecorded)
	assert.ErrorIs(t, err, ErrState)

	// The original result stays in place.
	assert.Equal(t, p1, m.Winner())
}

func TestMatchRecordResultValidation(t *testing.T) {
	p1, p2 := testPair(t)
	outsider, err := NewParticipant("gamma")
	require.NoError(t, err)

	m, err := NewMatch(p1, p2, 1)
	require.NoError(t, err)

	err = m.RecordResult(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMatchNilResult)

	foreign, err := NewResult(OutcomeWin, outsider)
	require.NoError(t, err)
	err = m.RecordResult(foreign)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResultWinnerNotInMatch)
	assert.False(t, m.Decided())

	draw, err := NewResult(OutcomeDraw, nil)
	require.NoError(t, err)
	require.NoError(t, m.RecordResult(draw))
	assert.True(t, m.Decided())
	assert.Nil(t, m.Winner())
}

func TestMatchEqualOrderIndependent(t *testing.T) {
	p1, p2 := testPair(t)
	other, err := NewParticipant("gamma")
	require.NoError(t, err)

	ab, err := NewMatch(p1, p2, 0)
	require.NoError(t, err)
	ba, err := NewMatch(p2, p1, 3)
	require.NoError(t, err)
	ac, err := NewMatch(p1, other, 0)
	require.NoError(t, err)

	assert.True(t, ab.Equal(ba))
	assert.True(t, ba.Equal(ab))
	assert.False(t, ab.Equal(ac))
	assert.False(t, ab.Equal(nil))
}

func TestMatchOpponent(t *testing.T) {
	p1, p2 := testPair(t)
	m, err := NewMatch(p1, p2, 0)
	require.NoError(t, err)

	assert.Equal(t, p2, m.Opponent(p1.ID))
	assert.Equal(t, p1, m.Opponent(p2.ID))
	assert.Nil(t, m.Opponent("nobody"))
	assert.True(t, m.HasParticipant(p1.ID))
	assert.False(t, m.HasParticipant("nobody"))
}
