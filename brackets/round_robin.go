package brackets

import (
	"fmt"
	"sort"

	"tournament-engine/models"
)

// RoundRobin plays every participant against every other exactly once. The
// full schedule is fixed up front by the circle method, so nobody appears
// twice in one round; odd fields rest one participant per round. Unlike the
// knockout brackets, draws are legal results here.
type RoundRobin struct {
	seeds   []*models.Participant
	rounds  [][]*models.Match
	current int
	winner  *models.Participant
}

type leagueRow struct {
	participant *models.Participant
	score       int
	wins        int
	losses      int
	draws       int
}

// NewRoundRobin schedules a full league over the field.
func NewRoundRobin(seeds []*models.Participant) (*RoundRobin, error) {
	if len(seeds) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewParticipants, len(seeds))
	}
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}

	rounds, err := circleSchedule(seeds)
	if err != nil {
		return nil, err
	}
	field := make([]*models.Participant, len(seeds))
	copy(field, seeds)
	return &RoundRobin{seeds: field, rounds: rounds}, nil
}

// circleSchedule pins the first seat and rotates the rest one step per
// round, pairing opposite seats. An odd field gets a phantom seat; whoever
// faces it rests that round.
func circleSchedule(seeds []*models.Participant) ([][]*models.Match, error) {
	ring := make([]*models.Participant, len(seeds))
	copy(ring, seeds)
	if len(ring)%2 == 1 {
		ring = append(ring, nil)
	}

	n := len(ring)
	rounds := make([][]*models.Match, 0, n-1)
	for round := 0; round < n-1; round++ {
		pairs := make([][2]*models.Participant, 0, n/2)
		for i := 0; i < n/2; i++ {
			if ring[i] == nil || ring[n-1-i] == nil {
				continue
			}
			pairs = append(pairs, [2]*models.Participant{ring[i], ring[n-1-i]})
		}
		matches, err := matchesForPairs(pairs, round)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, matches)

		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}
	return rounds, nil
}

func (rr *RoundRobin) Format() string {
	return FormatRoundRobin
}

// Round is the 0-based index of the round in progress.
func (rr *RoundRobin) Round() int {
	return rr.current
}

// CurrentRoundMatches returns the matches awaiting results, nil once done.
func (rr *RoundRobin) CurrentRoundMatches() []*models.Match {
	if rr.current >= len(rr.rounds) {
		return nil
	}
	return rr.rounds[rr.current]
}

// IsComplete reports whether the league has been played out.
func (rr *RoundRobin) IsComplete() bool {
	return rr.winner != nil
}

// Winner returns the league champion, or nil while rounds remain.
func (rr *RoundRobin) Winner() *models.Participant {
	return rr.winner
}

// AdvanceRound moves to the next schedule slot once every match of the
// current one is decided. Consuming the last round settles the champion
// from the table.
func (rr *RoundRobin) AdvanceRound() error {
	if rr.winner != nil {
		return ErrBracketComplete
	}
	for _, m := range rr.rounds[rr.current] {
		if !m.Decided() {
			return fmt.Errorf("%w: %s is undecided", ErrRoundIncomplete, m.UID)
		}
	}
	rr.current++
	if rr.current == len(rr.rounds) {
		rr.winner = rr.table()[0].participant
	}
	return nil
}

// Table reports the league table so far: win 3, draw 1, a defaulted match
// counts as a loss for both sides. Rows order like tournament standings,
// with full ties keeping seed order.
func (rr *RoundRobin) Table() []models.Standing {
	rows := rr.table()
	out := make([]models.Standing, len(rows))
	for i, row := range rows {
		out[i] = models.Standing{
			ParticipantID: row.participant.ID,
			Score:         row.score,
			Wins:          row.wins,
			Losses:        row.losses,
			Draws:         row.draws,
		}
	}
	return out
}

func (rr *RoundRobin) table() []leagueRow {
	index := make(map[string]int, len(rr.seeds))
	rows := make([]leagueRow, len(rr.seeds))
	for i, p := range rr.seeds {
		index[p.ID] = i
		rows[i] = leagueRow{participant: p}
	}

	for _, round := range rr.rounds {
		for _, m := range round {
			if !m.Decided() {
				continue
			}
			switch m.Result.Outcome {
			case models.OutcomeWin:
				w := m.Result.Winner
				rows[index[w.ID]].wins++
				rows[index[m.Opponent(w.ID).ID]].losses++
			case models.OutcomeDraw:
				rows[index[m.Participant1.ID]].draws++
				rows[index[m.Participant2.ID]].draws++
			case models.OutcomeLoss:
				rows[index[m.Participant1.ID]].losses++
				rows[index[m.Participant2.ID]].losses++
			}
		}
	}
	for i := range rows {
		rows[i].score = models.WinPoints*rows[i].wins + models.DrawPoints*rows[i].draws
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.wins != b.wins {
			return a.wins > b.wins
		}
		return a.losses < b.losses
	})
	return rows
}
