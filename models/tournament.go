package models

import "time"

// Tournament owns a set of rounds and a roster of players. The default
// calculator name selects which points calculator scores its matches unless
// a result is recorded with an explicit override.
type Tournament struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	DefaultCalculator string    `json:"default_calculator" db:"default_calculator"`
	LogoKey           *string   `json:"-" db:"logo_key"`
	LogoURL           *string   `json:"logo_url,omitempty" db:"-"`

	// Optional linked data, populated by the service layer, not mapped
	// directly from the tournaments table.
	Players   []TournamentPlayer `json:"players,omitempty" db:"-"`
	Rounds    []Round            `json:"rounds,omitempty" db:"-"`
	Standings []Standing         `json:"standings,omitempty" db:"-"`
}

// TournamentPlayer is a roster membership entry. AbleToPlay is flipped only
// by the knockout elimination transitions; a player missing from the roster
// can never appear in a match of that tournament.
type TournamentPlayer struct {
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	PlayerID     string    `json:"player_id" db:"player_id"`
	PlayerName   string    `json:"player_name,omitempty" db:"-"`
	AddedAt      time.Time `json:"added_at" db:"added_at"`
	AbleToPlay   bool      `json:"able_to_play" db:"able_to_play"`
}

// WaitingEntry is one queued player deferred from pairing. The queue is
// ordered by insertion time and belongs to the knockout flow only.
type WaitingEntry struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	PlayerID     string    `json:"player_id" db:"player_id"`
	AddedAt      time.Time `json:"added_at" db:"added_at"`
}
