package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Dosada05/matchplay/repositories"
)

// tournamentLocks serializes mutating operations per tournament. Round
// creation and result recording read several tables and write back without a
// wrapping transaction, so concurrent calls for the same tournament must not
// interleave. Different tournaments proceed in parallel.
type tournamentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTournamentLocks() *tournamentLocks {
	return &tournamentLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the given tournament and returns the unlock func.
func (l *tournamentLocks) acquire(tournamentID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[tournamentID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[tournamentID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// mapRepositoryError translates repository sentinels into their service-level
// counterparts so callers only ever match on the services errors.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrRoundNotFound):
		return ErrRoundNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchAlreadyResolved):
		return ErrMatchAlreadyResolved
	default:
		return err
	}
}

// extensionFromContentType picks a file extension for an uploaded logo.
func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLogoType, contentType)
	}
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
