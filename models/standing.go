package models

// Standing is one row of the standings output, ordered per
// Tournament.Standings.
type Standing struct {
	ParticipantID string `json:"participant_id" db:"participant_id"`
	Score         int    `json:"score" db:"score"`
	Wins          int    `json:"wins" db:"wins"`
	Losses        int    `json:"losses" db:"losses"`
	Draws         int    `json:"draws" db:"draws"`
}
