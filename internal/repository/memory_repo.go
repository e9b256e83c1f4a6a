package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yakoovad/club-api/internal/query"
)

// MemoryStore keeps clubs and players in process memory. It backs local runs
// and handler tests and honours the same contracts as the DynamoDB store.
// Values are copied on the way in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	clubs   map[int64]*Club
	players map[int64]map[string]*Player
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clubs:   make(map[int64]*Club),
		players: make(map[int64]map[string]*Player),
	}
}

func (m *MemoryStore) Clubs() ClubRepository {
	return &memoryClubRepository{m}
}

func (m *MemoryStore) Players() PlayerRepository {
	return &memoryPlayerRepository{m}
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

type memoryClubRepository struct {
	s *MemoryStore
}

func (r *memoryClubRepository) Get(_ context.Context, id int64) (*Club, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	club, ok := r.s.clubs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return club.clone(), nil
}

func (r *memoryClubRepository) List(_ context.Context) ([]*Club, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	clubs := make([]*Club, 0, len(r.s.clubs))
	for _, c := range r.s.clubs {
		clubs = append(clubs, c.clone())
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].ID < clubs[j].ID })
	return clubs, nil
}

func (r *memoryClubRepository) Put(_ context.Context, club *Club) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.clubs[club.ID] = club.clone()
	return nil
}

func (r *memoryClubRepository) Update(_ context.Context, patch *ClubPatch) (*Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	club, ok := r.s.clubs[patch.ID]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		club.Name = *patch.Name
	}
	if patch.City != nil {
		club.City = *patch.City
	}
	if patch.YearFounded != nil {
		club.YearFounded = *patch.YearFounded
	}
	club.Version++

	return club.clone(), nil
}

func (r *memoryClubRepository) UpdateTranslations(_ context.Context, id int64, cache map[string]Translation, expectedVersion int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	club, ok := r.s.clubs[id]
	if !ok {
		return ErrNotFound
	}
	if club.Version != expectedVersion {
		return ErrVersionConflict
	}

	club.TranslationCache = copyTranslations(cache)
	club.Version++
	return nil
}

func (r *memoryClubRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clubs[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.clubs, id)
	return nil
}

type memoryPlayerRepository struct {
	s *MemoryStore
}

func (r *memoryPlayerRepository) Query(_ context.Context, plan query.Plan) ([]*Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	players := make([]*Player, 0)
	for _, p := range r.s.players[plan.OwnerID] {
		switch plan.Strategy {
		case query.StrategyCategoryPrefix:
			if !strings.HasPrefix(p.Position, plan.Prefix) {
				continue
			}
		case query.StrategyNamePrefix:
			if !strings.HasPrefix(p.PlayerName, plan.Prefix) {
				continue
			}
		}
		cp := *p
		players = append(players, &cp)
	}

	if plan.Strategy == query.StrategyCategoryPrefix {
		sort.Slice(players, func(i, j int) bool {
			if players[i].Position != players[j].Position {
				return players[i].Position < players[j].Position
			}
			return players[i].PlayerName < players[j].PlayerName
		})
	} else {
		sort.Slice(players, func(i, j int) bool { return players[i].PlayerName < players[j].PlayerName })
	}

	return players, nil
}

func (r *memoryPlayerRepository) Put(_ context.Context, player *Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byName, ok := r.s.players[player.ClubID]
	if !ok {
		byName = make(map[string]*Player)
		r.s.players[player.ClubID] = byName
	}
	cp := *player
	byName[player.PlayerName] = &cp
	return nil
}
