package models

import "time"

// Standing is a player's cumulative record within one tournament. It is a
// pure projection of the resolved matches: recording any result triggers a
// full recomputation, never an incremental patch.
type Standing struct {
	TournamentID  string    `json:"tournament_id" db:"tournament_id"`
	PlayerID      string    `json:"player_id" db:"player_id"`
	PlayerName    string    `json:"player_name,omitempty" db:"-"`
	Wins          int       `json:"wins" db:"wins"`
	Draws         int       `json:"draws" db:"draws"`
	Losses        int       `json:"losses" db:"losses"`
	MatchesPlayed int       `json:"matches_played" db:"matches_played"`
	Points        float64   `json:"points" db:"points"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
