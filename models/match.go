package models

import (
	"slices"
	"time"
)

// MatchOutcome is the result tag of a match. A nil outcome means the match
// is still pending.
type MatchOutcome string

const (
	OutcomeDraw     MatchOutcome = "draw"
	OutcomeComplete MatchOutcome = "complete"
	// OutcomeAuto marks a synthetic auto-bye match resolved at creation.
	OutcomeAuto MatchOutcome = "auto"
)

// Match is one scheduled game between PlayersPerMatch players (or a single
// player for an auto-bye). Result fields move from unset to set exactly once
// and are never mutated again.
type Match struct {
	ID              string         `json:"id" db:"id"`
	RoundID         string         `json:"round_id" db:"round_id"`
	TournamentID    string         `json:"tournament_id" db:"tournament_id"`
	PlayerIDs       []string       `json:"player_ids" db:"player_ids"`
	ScheduledAt     time.Time      `json:"scheduled_at" db:"scheduled_at"`
	Result          *MatchOutcome  `json:"result,omitempty" db:"result"`
	WinnerIDs       []string       `json:"winner_ids,omitempty" db:"winner_ids"`
	Rankings        map[string]int `json:"rankings,omitempty" db:"rankings"`
	AutoBye         bool           `json:"auto_bye" db:"auto_bye"`
	PlayersPerMatch int            `json:"players_per_match" db:"players_per_match"`
}

// Resolved reports whether a result has been recorded.
func (m *Match) Resolved() bool {
	return m.Result != nil
}

// IsDraw reports whether the recorded result is a draw.
func (m *Match) IsDraw() bool {
	return m.Result != nil && *m.Result == OutcomeDraw
}

// HasPlayer reports whether the given player participates in the match.
func (m *Match) HasPlayer(playerID string) bool {
	return slices.Contains(m.PlayerIDs, playerID)
}

// HasWinner reports whether the given player is among the recorded winners.
func (m *Match) HasWinner(playerID string) bool {
	return slices.Contains(m.WinnerIDs, playerID)
}

// ToResult reconstructs the MatchResult recorded on a resolved match. It is
// used when standings are recomputed by replaying resolved matches.
func (m *Match) ToResult() *MatchResult {
	return &MatchResult{
		MatchID:   m.ID,
		WinnerIDs: slices.Clone(m.WinnerIDs),
		Rankings:  m.Rankings,
		IsDraw:    m.IsDraw(),
	}
}

// MatchResult is the caller-supplied outcome of a match. For a non-draw the
// rank-1 holders are exactly the winners; a draw may carry several tied
// winners or none at all.
type MatchResult struct {
	MatchID   string         `json:"match_id"`
	WinnerIDs []string       `json:"winner_ids"`
	Rankings  map[string]int `json:"rankings,omitempty"`
	IsDraw    bool           `json:"is_draw"`
}
