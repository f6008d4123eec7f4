package domain

import "time"

// Kind is the input modality of a question.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindFillBlank      Kind = "fill_blank"
)

// Valid reports whether k is one of the closed set of question kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindFillBlank:
		return true
	}
	return false
}

// Difficulty tags a question for analytics; it carries no scoring weight.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// CategoryAll selects questions from every category when starting a session.
const CategoryAll = "All"

// CategoryUnknown is reported when a question cannot be matched back to the catalog.
const CategoryUnknown = "Unknown"

// Question is an immutable record in the question catalog. Free-text
// questions carry no options; choice questions expect the answer to be one
// of the option strings verbatim.
type Question struct {
	Prompt      string     `json:"question" yaml:"prompt"`
	Options     []string   `json:"options,omitempty" yaml:"options,omitempty"`
	Answer      string     `json:"answer" yaml:"answer"`
	Explanation string     `json:"explanation" yaml:"explanation"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Kind        Kind       `json:"type" yaml:"kind"`
}

// AnswerRecord captures one submitted answer: what was asked, what the user
// said, and everything the analytics pass needs without going back to the
// catalog. Category and kind are resolved at evaluation time.
type AnswerRecord struct {
	Prompt        string     `json:"question"`
	UserAnswer    string     `json:"userAnswer"`
	CorrectAnswer string     `json:"correctAnswer"`
	Correct       bool       `json:"isCorrect"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      string     `json:"category"`
	Kind          Kind       `json:"type"`
	TimeTaken     float64    `json:"timeTaken"` // seconds
}

// UserStats accumulates a user's lifetime quiz history.
// AverageScore is recomputed as TotalScore/TotalQuizzes on every update.
type UserStats struct {
	TotalQuizzes           int       `json:"total_quizzes"`
	TotalScore             float64   `json:"total_score"` // sum of attempt percentages
	AverageScore           float64   `json:"average_score"`
	BestScore              float64   `json:"best_score"`
	TotalQuestionsAnswered int       `json:"total_questions_answered"`
	TotalTimeSpent         float64   `json:"total_time_spent"` // seconds
	FirstQuiz              time.Time `json:"first_quiz"`
	LastQuiz               time.Time `json:"last_quiz"`
}

// LeaderboardEntry is the immutable summary of one completed attempt.
type LeaderboardEntry struct {
	Username       string    `json:"username"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	TimeTaken      float64   `json:"time_taken"` // seconds
	Category       string    `json:"category"`
	Timestamp      time.Time `json:"timestamp"`
	Date           string    `json:"date"` // human-readable, e.g. "2024-11-22 10:30:00"
}

// Attempt is the scoring signal handed to the leaderboard store when a
// session finishes.
type Attempt struct {
	Username       string
	Score          int
	TotalQuestions int
	Percentage     float64
	TimeTaken      float64 // seconds
	Category       string
}
