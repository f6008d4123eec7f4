package domain

import (
	"sort"
	"time"
)

// MaxLeaderboardEntries bounds the ranked history; entries beyond the cutoff
// are discarded on every insert.
const MaxLeaderboardEntries = 50

// ApplyAttempt folds one completed attempt into the user's lifetime stats.
// The average is recomputed from the cumulative sum on every call. A
// zero-valued UserStats is a valid starting point; its first-quiz timestamp
// is set on the first fold.
func (s UserStats) ApplyAttempt(attempt Attempt, now time.Time) UserStats {
	if s.TotalQuizzes == 0 {
		s.FirstQuiz = now
	}
	s.TotalQuizzes++
	s.TotalScore += attempt.Percentage
	s.AverageScore = s.TotalScore / float64(s.TotalQuizzes)
	s.TotalQuestionsAnswered += attempt.TotalQuestions
	s.TotalTimeSpent += attempt.TimeTaken
	s.LastQuiz = now
	if attempt.Percentage > s.BestScore {
		s.BestScore = attempt.Percentage
	}
	return s
}

// NewLeaderboardEntry snapshots an attempt for the ranked history.
func NewLeaderboardEntry(attempt Attempt, now time.Time) LeaderboardEntry {
	return LeaderboardEntry{
		Username:       attempt.Username,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
		TimeTaken:      attempt.TimeTaken,
		Category:       attempt.Category,
		Timestamp:      now,
		Date:           now.Format("2006-01-02 15:04:05"),
	}
}

// RankEntries re-sorts the full sequence by descending percentage with ties
// broken by ascending elapsed time, then truncates it to the entry cap. The
// sort is stable, so full ties keep their insertion order.
func RankEntries(entries []LeaderboardEntry) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		return entries[i].TimeTaken < entries[j].TimeTaken
	})
	if len(entries) > MaxLeaderboardEntries {
		entries = entries[:MaxLeaderboardEntries]
	}
	return entries
}
