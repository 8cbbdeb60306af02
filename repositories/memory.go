package repositories

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/matchplay/models"
)

// memoryStore is the shared state behind the in-memory repositories. One
// mutex guards everything; the test workloads are tiny.
type memoryStore struct {
	mu sync.RWMutex

	players     map[string]*models.Player
	tournaments map[string]*models.Tournament
	roster      map[string][]*models.TournamentPlayer // tournament id -> entries in add order
	rounds      map[string]*models.Round
	matches     map[string]*models.Match
	matchOrder  []string                               // match ids in creation order
	standings   map[string]map[string]*models.Standing // tournament id -> player id -> standing
	waiting     map[string][]models.WaitingEntry       // tournament id -> queue
}

// InMemory bundles map-backed implementations of every repository interface.
// They return the same sentinel errors as the Postgres implementations, so
// the service layer behaves identically against either backend. Used by the
// unit tests and handy for throwaway local runs.
type InMemory struct {
	Players     PlayerRepository
	Tournaments TournamentRepository
	Roster      RosterRepository
	Rounds      RoundRepository
	Matches     MatchRepository
	Standings   StandingRepository
	WaitingList WaitingListRepository
}

func NewInMemory() *InMemory {
	store := &memoryStore{
		players:     make(map[string]*models.Player),
		tournaments: make(map[string]*models.Tournament),
		roster:      make(map[string][]*models.TournamentPlayer),
		rounds:      make(map[string]*models.Round),
		matches:     make(map[string]*models.Match),
		standings:   make(map[string]map[string]*models.Standing),
		waiting:     make(map[string][]models.WaitingEntry),
	}
	return &InMemory{
		Players:     &memoryPlayerRepository{store},
		Tournaments: &memoryTournamentRepository{store},
		Roster:      &memoryRosterRepository{store},
		Rounds:      &memoryRoundRepository{store},
		Matches:     &memoryMatchRepository{store},
		Standings:   &memoryStandingRepository{store},
		WaitingList: &memoryWaitingListRepository{store},
	}
}

func copyPlayer(p *models.Player) *models.Player {
	c := *p
	return &c
}

func copyMatch(m *models.Match) *models.Match {
	c := *m
	c.PlayerIDs = slices.Clone(m.PlayerIDs)
	c.WinnerIDs = slices.Clone(m.WinnerIDs)
	if m.Result != nil {
		outcome := *m.Result
		c.Result = &outcome
	}
	if m.Rankings != nil {
		c.Rankings = make(map[string]int, len(m.Rankings))
		for k, v := range m.Rankings {
			c.Rankings[k] = v
		}
	}
	return &c
}

type memoryPlayerRepository struct{ s *memoryStore }

func (r *memoryPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[player.ID]; ok {
		return ErrPlayerConflict
	}
	r.s.players[player.ID] = copyPlayer(player)
	return nil
}

func (r *memoryPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return copyPlayer(p), nil
}

func (r *memoryPlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	players := make([]*models.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		players = append(players, copyPlayer(p))
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID < players[j].ID
	})
	return players, nil
}

func (r *memoryPlayerRepository) UpdateName(ctx context.Context, id, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	p.Name = name
	return nil
}

type memoryTournamentRepository struct{ s *memoryStore }

func (r *memoryTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[tournament.ID]; ok {
		return ErrTournamentConflict
	}
	c := *tournament
	r.s.tournaments[tournament.ID] = &c
	return nil
}

func (r *memoryTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	c := *t
	return &c, nil
}

func (r *memoryTournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tournaments := make([]*models.Tournament, 0, len(r.s.tournaments))
	for _, t := range r.s.tournaments {
		c := *t
		tournaments = append(tournaments, &c)
	}
	sort.Slice(tournaments, func(i, j int) bool {
		if !tournaments[i].CreatedAt.Equal(tournaments[j].CreatedAt) {
			return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt)
		}
		return tournaments[i].ID < tournaments[j].ID
	})
	return tournaments, nil
}

func (r *memoryTournamentRepository) UpdateDefaultCalculator(ctx context.Context, id, calculator string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return ErrTournamentNotFound
	}
	t.DefaultCalculator = calculator
	return nil
}

func (r *memoryTournamentRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return ErrTournamentNotFound
	}
	t.LogoKey = logoKey
	return nil
}

type memoryRosterRepository struct{ s *memoryStore }

func (r *memoryRosterRepository) Add(ctx context.Context, tournamentID, playerID string, addedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.roster[tournamentID] {
		if e.PlayerID == playerID {
			return nil // idempotent
		}
	}
	name := ""
	if p, ok := r.s.players[playerID]; ok {
		name = p.Name
	}
	r.s.roster[tournamentID] = append(r.s.roster[tournamentID], &models.TournamentPlayer{
		TournamentID: tournamentID,
		PlayerID:     playerID,
		PlayerName:   name,
		AddedAt:      addedAt,
		AbleToPlay:   true,
	})
	r.s.ensureStandingLocked(tournamentID, playerID, addedAt)
	return nil
}

func (r *memoryRosterRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentPlayer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	entries := make([]*models.TournamentPlayer, 0, len(r.s.roster[tournamentID]))
	for _, e := range r.s.roster[tournamentID] {
		c := *e
		entries = append(entries, &c)
	}
	return entries, nil
}

func (r *memoryRosterRepository) SetAbleToPlay(ctx context.Context, tournamentID, playerID string, able bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.roster[tournamentID] {
		if e.PlayerID == playerID {
			e.AbleToPlay = able
			return nil
		}
	}
	return ErrRosterEntryNotFound
}

func (r *memoryRosterRepository) CountEligible(ctx context.Context, tournamentID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, e := range r.s.roster[tournamentID] {
		if e.AbleToPlay {
			count++
		}
	}
	return count, nil
}

type memoryRoundRepository struct{ s *memoryStore }

func (r *memoryRoundRepository) Create(ctx context.Context, round *models.Round) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rounds {
		if existing.TournamentID == round.TournamentID && existing.Ordinal == round.Ordinal {
			return ErrRoundOrdinalConflict
		}
	}
	c := *round
	r.s.rounds[round.ID] = &c
	return nil
}

func (r *memoryRoundRepository) GetByID(ctx context.Context, id string) (*models.Round, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rd, ok := r.s.rounds[id]
	if !ok {
		return nil, ErrRoundNotFound
	}
	c := *rd
	return &c, nil
}

func (r *memoryRoundRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.Round, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rounds := make([]*models.Round, 0)
	for _, rd := range r.s.rounds {
		if rd.TournamentID == tournamentID {
			c := *rd
			rounds = append(rounds, &c)
		}
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Ordinal < rounds[j].Ordinal })
	return rounds, nil
}

func (r *memoryRoundRepository) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, rd := range r.s.rounds {
		if rd.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

func (r *memoryRoundRepository) LatestByType(ctx context.Context, tournamentID, roundType string) (*models.Round, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var latest *models.Round
	for _, rd := range r.s.rounds {
		if rd.TournamentID != tournamentID || rd.RoundType != roundType {
			continue
		}
		if latest == nil || rd.Ordinal > latest.Ordinal {
			latest = rd
		}
	}
	if latest == nil {
		return nil, ErrRoundNotFound
	}
	c := *latest
	return &c, nil
}

func (r *memoryRoundRepository) ExistsOfType(ctx context.Context, tournamentID, roundType string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rd := range r.s.rounds {
		if rd.TournamentID == tournamentID && rd.RoundType == roundType {
			return true, nil
		}
	}
	return false, nil
}

type memoryMatchRepository struct{ s *memoryStore }

func (r *memoryMatchRepository) Create(ctx context.Context, match *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.matches[match.ID] = copyMatch(match)
	r.s.matchOrder = append(r.s.matchOrder, match.ID)
	return nil
}

func (r *memoryMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return copyMatch(m), nil
}

func (r *memoryMatchRepository) ListByRound(ctx context.Context, roundID string) ([]*models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matches := make([]*models.Match, 0)
	for _, id := range r.s.matchOrder {
		if m := r.s.matches[id]; m.RoundID == roundID {
			matches = append(matches, copyMatch(m))
		}
	}
	return matches, nil
}

func (r *memoryMatchRepository) ListResolvedByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matches := make([]*models.Match, 0)
	for _, id := range r.s.matchOrder {
		if m := r.s.matches[id]; m.TournamentID == tournamentID && m.Resolved() {
			matches = append(matches, copyMatch(m))
		}
	}
	return matches, nil
}

func (r *memoryMatchRepository) UpdateResult(ctx context.Context, matchID string, result *models.MatchResult) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	if m.Resolved() {
		return ErrMatchAlreadyResolved
	}
	outcome := models.OutcomeComplete
	if result.IsDraw {
		outcome = models.OutcomeDraw
	}
	m.Result = &outcome
	m.WinnerIDs = slices.Clone(result.WinnerIDs)
	if result.Rankings != nil {
		m.Rankings = make(map[string]int, len(result.Rankings))
		for k, v := range result.Rankings {
			m.Rankings[k] = v
		}
	}
	return nil
}

func (r *memoryMatchRepository) CountPendingByTournament(ctx context.Context, tournamentID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, m := range r.s.matches {
		if m.TournamentID == tournamentID && !m.Resolved() && !m.AutoBye {
			count++
		}
	}
	return count, nil
}

func (r *memoryMatchRepository) CountPendingByRound(ctx context.Context, roundID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, m := range r.s.matches {
		if m.RoundID == roundID && !m.Resolved() && !m.AutoBye {
			count++
		}
	}
	return count, nil
}

func (r *memoryMatchRepository) PairPlayed(ctx context.Context, tournamentID, playerA, playerB string) (bool, error) {
	return r.GroupPlayed(ctx, tournamentID, []string{playerA, playerB})
}

func (r *memoryMatchRepository) GroupPlayed(ctx context.Context, tournamentID string, playerIDs []string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	want := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		want[id] = struct{}{}
	}
	for _, m := range r.s.matches {
		if m.TournamentID != tournamentID || len(m.PlayerIDs) != len(want) {
			continue
		}
		same := true
		for _, id := range m.PlayerIDs {
			if _, ok := want[id]; !ok {
				same = false
				break
			}
		}
		if same {
			return true, nil
		}
	}
	return false, nil
}

type memoryStandingRepository struct{ s *memoryStore }

func (s *memoryStore) ensureStandingLocked(tournamentID, playerID string, at time.Time) {
	if s.standings[tournamentID] == nil {
		s.standings[tournamentID] = make(map[string]*models.Standing)
	}
	if _, ok := s.standings[tournamentID][playerID]; !ok {
		s.standings[tournamentID][playerID] = &models.Standing{
			TournamentID: tournamentID,
			PlayerID:     playerID,
			UpdatedAt:    at,
		}
	}
}

func (r *memoryStandingRepository) ResetByTournament(ctx context.Context, tournamentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, s := range r.s.standings[tournamentID] {
		s.Wins, s.Draws, s.Losses, s.MatchesPlayed, s.Points = 0, 0, 0, 0, 0
		s.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *memoryStandingRepository) Upsert(ctx context.Context, standing *models.Standing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ensureStandingLocked(standing.TournamentID, standing.PlayerID, time.Now().UTC())
	s := r.s.standings[standing.TournamentID][standing.PlayerID]
	s.Wins = standing.Wins
	s.Draws = standing.Draws
	s.Losses = standing.Losses
	s.MatchesPlayed = standing.MatchesPlayed
	s.Points = standing.Points
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryStandingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.Standing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	standings := make([]*models.Standing, 0, len(r.s.standings[tournamentID]))
	for _, s := range r.s.standings[tournamentID] {
		c := *s
		if p, ok := r.s.players[s.PlayerID]; ok {
			c.PlayerName = p.Name
		}
		standings = append(standings, &c)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PlayerID < standings[j].PlayerID
	})
	return standings, nil
}

func (r *memoryStandingRepository) PointsByPlayer(ctx context.Context, tournamentID string) (map[string]float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	points := make(map[string]float64, len(r.s.standings[tournamentID]))
	for id, s := range r.s.standings[tournamentID] {
		points[id] = s.Points
	}
	return points, nil
}

type memoryWaitingListRepository struct{ s *memoryStore }

func (r *memoryWaitingListRepository) Add(ctx context.Context, id, tournamentID, playerID string, addedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.waiting[tournamentID] = append(r.s.waiting[tournamentID], models.WaitingEntry{
		ID:           id,
		TournamentID: tournamentID,
		PlayerID:     playerID,
		AddedAt:      addedAt,
	})
	return nil
}

func (r *memoryWaitingListRepository) ListPlayers(ctx context.Context, tournamentID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	players := make([]string, 0, len(r.s.waiting[tournamentID]))
	for _, e := range r.s.waiting[tournamentID] {
		players = append(players, e.PlayerID)
	}
	return players, nil
}

func (r *memoryWaitingListRepository) Clear(ctx context.Context, tournamentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.waiting, tournamentID)
	return nil
}
