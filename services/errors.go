package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	// Validation and business-rule errors.
	ErrValidationFailed         = errors.New("validation failed")
	ErrPlayerNameRequired       = errors.New("player name is required")
	ErrTournamentNameRequired   = errors.New("tournament name is required")
	ErrInvalidPlayersPerMatch   = errors.New("players per match must be at least 2")
	ErrInvalidResult            = errors.New("invalid match result")
	ErrWinnerNotInMatch         = errors.New("winner is not a participant of the match")
	ErrRankedPlayerNotInMatch   = errors.New("ranked player is not a participant of the match")
	ErrUnsupportedLogoType      = errors.New("unsupported logo content type")
	ErrLogoStorageNotConfigured = errors.New("logo storage is not configured")

	// Round orchestration guards.
	ErrUnknownStrategy        = errors.New("unknown matchmaking strategy")
	ErrUnknownCalculator      = errors.New("unknown points calculator")
	ErrUnsupportedPlayerCount = errors.New("strategy does not support this players per match")
	ErrNoEligiblePlayers      = errors.New("no eligible players to pair")
	ErrPendingMatchesExist    = errors.New("tournament has unresolved matches")
	ErrTournamentDecided      = errors.New("tournament already has a decided winner")

	// Entity lookups. These mirror the repository sentinels so handlers can
	// map either layer uniformly.
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Conflicts.
	ErrMatchAlreadyResolved = errors.New("match result has already been recorded")

	// Authentication.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
