package memory

import (
	"sync"
	"time"

	"trivia-quiz-service/internal/domain"
)

// LeaderboardStore is an in-memory implementation of app.LeaderboardStore.
// It applies the same ranking and truncation rules as the file-backed store
// but never touches durable storage; useful for tests and demos.
type LeaderboardStore struct {
	clock func() time.Time

	mu      sync.Mutex
	users   map[string]domain.UserStats
	entries []domain.LeaderboardEntry
}

func NewLeaderboardStore() *LeaderboardStore {
	return NewLeaderboardStoreWithClock(time.Now)
}

// NewLeaderboardStoreWithClock is test-only for deterministic timestamps.
func NewLeaderboardStoreWithClock(clock func() time.Time) *LeaderboardStore {
	return &LeaderboardStore{
		clock: clock,
		users: make(map[string]domain.UserStats),
	}
}

func (s *LeaderboardStore) RecordAttempt(attempt domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	s.users[attempt.Username] = s.users[attempt.Username].ApplyAttempt(attempt, now)
	s.entries = domain.RankEntries(append(s.entries, domain.NewLeaderboardEntry(attempt, now)))
	return nil
}

func (s *LeaderboardStore) Top(n int) []domain.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	return append([]domain.LeaderboardEntry(nil), s.entries[:n]...)
}

func (s *LeaderboardStore) Stats(username string) (domain.UserStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.users[username]
	return stats, ok
}
