package file

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"trivia-quiz-service/internal/domain"
)

// document is the on-disk leaderboard layout.
type document struct {
	Users       map[string]domain.UserStats `json:"users"`
	Leaderboard []domain.LeaderboardEntry   `json:"leaderboard"`
	LastUpdated time.Time                   `json:"last_updated"`
}

// Store is a write-through leaderboard store backed by a single JSON file.
// The in-memory state is the source of truth: a failed flush is surfaced to
// the caller but never rolls the mutation back.
type Store struct {
	path  string
	clock func() time.Time

	mu      sync.Mutex
	users   map[string]domain.UserStats
	entries []domain.LeaderboardEntry
}

// NewStore loads the leaderboard file at path. A missing or unreadable file
// degrades to an empty leaderboard.
func NewStore(path string) *Store {
	return NewStoreWithClock(path, time.Now)
}

// NewStoreWithClock is test-only for deterministic timestamps.
func NewStoreWithClock(path string, clock func() time.Time) *Store {
	s := &Store{
		path:  path,
		clock: clock,
		users: make(map[string]domain.UserStats),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return
	}
	if doc.Users != nil {
		s.users = doc.Users
	}
	s.entries = doc.Leaderboard
}

// RecordAttempt folds a finished attempt into the user's lifetime stats,
// appends a ranked entry, re-sorts and truncates the sequence, and flushes
// the whole document to disk.
func (s *Store) RecordAttempt(attempt domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	s.users[attempt.Username] = s.users[attempt.Username].ApplyAttempt(attempt, now)
	s.entries = domain.RankEntries(append(s.entries, domain.NewLeaderboardEntry(attempt, now)))

	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	doc := document{
		Users:       s.users,
		Leaderboard: s.entries,
		LastUpdated: s.clock(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}

// Top returns the n highest-ranked entries. n <= 0 returns every entry.
func (s *Store) Top(n int) []domain.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	return append([]domain.LeaderboardEntry(nil), s.entries[:n]...)
}

// Stats returns the lifetime statistics for a user, if any exist.
func (s *Store) Stats(username string) (domain.UserStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.users[username]
	return stats, ok
}
