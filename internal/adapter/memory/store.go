package memory

import (
	"sync"
	"time"

	"learnlog/internal/domain"
)

type entry struct {
	turn domain.Turn
	at   time.Time
}

type Store struct {
	mu            sync.Mutex
	conversations map[int64][]entry
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		conversations: make(map[int64][]entry),
		now:           time.Now,
	}
}

func (s *Store) Add(chatID int64, turn domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[chatID] = append(s.conversations[chatID], entry{turn: turn, at: s.now()})
}

// FreshTurns returns the newest turns younger than ttl, at most limit of them,
// in chronological order. Stale turns are pruned from the store as a side effect.
func (s *Store) FreshTurns(chatID int64, limit int, ttl time.Duration) []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.conversations[chatID]
	if len(history) == 0 {
		return nil
	}

	cutoff := s.now().Add(-ttl)
	fresh := make([]entry, 0, len(history))
	for _, e := range history {
		if e.at.After(cutoff) {
			fresh = append(fresh, e)
		}
	}
	s.conversations[chatID] = fresh

	if limit >= 0 && len(fresh) > limit {
		fresh = fresh[len(fresh)-limit:]
	}

	turns := make([]domain.Turn, 0, len(fresh))
	for _, e := range fresh {
		turns = append(turns, e.turn)
	}
	return turns
}

func (s *Store) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, chatID)
}
