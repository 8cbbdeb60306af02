package models

import "time"

// Known round types. Strategies register under these names; RoundType on a
// round records which strategy produced it.
const (
	RoundTypeRoundRobin = "roundrobin"
	RoundTypeKnockout   = "knockout"
	RoundTypeSwiss      = "swiss"
	RoundTypeFreeForAll = "freeforall"
)

// Round is one ordered batch of matches within a tournament. Ordinals are
// 1-based, strictly increasing and gapless per tournament. Rounds are
// immutable once created.
type Round struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	RoundType    string    `json:"round_type" db:"round_type"`
	Ordinal      int       `json:"ordinal" db:"ordinal"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RoundConfig carries everything a strategy needs to build a round.
// PlayersPerMatch must be at least 2 for every strategy except free-for-all,
// which derives it from the pool size.
type RoundConfig struct {
	TournamentID    string         `json:"tournament_id"`
	RoundType       string         `json:"round_type"`
	PlayersPerMatch int            `json:"players_per_match"`
	Params          map[string]any `json:"params,omitempty"`
}
