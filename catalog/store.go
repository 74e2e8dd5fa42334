package catalog

import (
	"fmt"
	"slices"

	"github.com/poiesic/gamerec/core"
)

// Store is an immutable set of games keyed by ID. Iteration order is the
// order games were loaded in. Safe for concurrent reads.
type Store struct {
	games    []*core.Game
	byID     map[core.GameID]int
	emotions map[core.Emotion]bool
}

// New builds a store from games. emotions lists the emotion columns present
// in the source; scores for other emotions are never used for ranking.
// Returns ErrDuplicateID if two games share an ID.
func New(games []*core.Game, emotions ...core.Emotion) (*Store, error) {
	s := &Store{
		games:    make([]*core.Game, 0, len(games)),
		byID:     make(map[core.GameID]int, len(games)),
		emotions: make(map[core.Emotion]bool, len(emotions)),
	}

	for _, game := range games {
		if err := core.ValidateGame(game); err != nil {
			return nil, err
		}
		if _, exists := s.byID[game.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, game.ID)
		}
		s.byID[game.ID] = len(s.games)
		s.games = append(s.games, game)
	}

	for _, e := range emotions {
		s.emotions[e] = true
	}

	return s, nil
}

// Len returns the number of games.
func (s *Store) Len() int {
	return len(s.games)
}

// Select returns the games whose IDs appear in ids, in catalog order.
// Unknown IDs are ignored and duplicates collapse.
func (s *Store) Select(ids []core.GameID) []*core.Game {
	positions := make([]int, 0, len(ids))
	for _, id := range ids {
		if idx, ok := s.byID[id]; ok {
			positions = append(positions, idx)
		}
	}
	slices.Sort(positions)
	positions = slices.Compact(positions)

	selected := make([]*core.Game, len(positions))
	for i, idx := range positions {
		selected[i] = s.games[idx]
	}
	return selected
}

// HasEmotion reports whether the source carried a column for e.
func (s *Store) HasEmotion(e core.Emotion) bool {
	return s.emotions[e]
}

// All returns every game in catalog order. The slice must not be modified.
func (s *Store) All() []*core.Game {
	return s.games
}
