package app

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"trivia-quiz-service/internal/domain"
)

// CatalogRepository loads the question catalog (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context) (domain.Catalog, error)
}

// LeaderboardStore holds the process-wide user statistics and ranked attempt
// history (file-backed, in-memory, etc).
type LeaderboardStore interface {
	RecordAttempt(attempt domain.Attempt) error
	Top(n int) []domain.LeaderboardEntry
	Stats(username string) (domain.UserStats, bool)
}

// QuizService contains the quiz use cases: starting a session, evaluating
// answers, advancing through questions, and finishing an attempt.
type QuizService struct {
	catalog CatalogRepository
	board   LeaderboardStore
	clock   func() time.Time
	rnd     *rand.Rand
}

func NewQuizService(catalog CatalogRepository, board LeaderboardStore) *QuizService {
	return NewQuizServiceWithClock(catalog, board, time.Now, time.Now().UnixNano())
}

// NewQuizServiceWithClock is test-only for deterministic timestamps and draws.
func NewQuizServiceWithClock(catalog CatalogRepository, board LeaderboardStore, clock func() time.Time, seed int64) *QuizService {
	return &QuizService{
		catalog: catalog,
		board:   board,
		clock:   clock,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// StartSession draws a question subset for the given category and kinds and
// returns a fresh session. count <= 0, or a count above the pool size,
// selects every matching question.
func (s *QuizService) StartSession(ctx context.Context, username, category string, count int, kinds []domain.Kind) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if len(kinds) == 0 {
		return nil, domain.ErrNoKindsSelected
	}

	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[domain.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		wanted[k] = struct{}{}
	}
	var pool []domain.Question
	for _, q := range catalog.Questions(category) {
		if _, ok := wanted[q.Kind]; ok {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return nil, domain.ErrNoQuestions
	}

	now := s.clock()
	return &Session{
		username:        username,
		category:        category,
		catalog:         catalog,
		questions:       s.draw(pool, count),
		startedAt:       now,
		questionShownAt: now,
		clock:           s.clock,
	}, nil
}

// SubmitAnswer evaluates the raw answer against the session's current
// question, appends the record to the session log, and updates the running
// score. Blank free-text submissions are rejected without creating a record.
func (s *QuizService) SubmitAnswer(session *Session, raw string) (domain.AnswerRecord, error) {
	return session.submit(raw)
}

// Advance moves the session to the next question and resets the per-question
// timer. The current question must have been answered first.
func (s *QuizService) Advance(session *Session) error {
	return session.advance()
}

// Result summarizes a finished attempt.
type Result struct {
	Username   string           `json:"username"`
	Category   string           `json:"category"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	TimeTaken  float64          `json:"timeTaken"` // seconds
	Summary    Summary          `json:"summary"`
	Rating     Rating           `json:"rating"`
	UserStats  domain.UserStats `json:"userStats"`
}

// Finish completes the session, records the attempt on the leaderboard, and
// derives the analytics summary. A non-nil error alongside a valid Result
// means the leaderboard flush failed; the in-memory update and the returned
// Result still stand.
func (s *QuizService) Finish(session *Session) (Result, error) {
	answers, totalTime, err := session.finish()
	if err != nil {
		return Result{}, err
	}

	total := session.Total()
	score := session.Score()
	percentage := float64(score) / float64(total) * 100

	summary, _ := Summarize(answers)

	saveErr := s.board.RecordAttempt(domain.Attempt{
		Username:       session.Username(),
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		TimeTaken:      totalTime,
		Category:       session.Category(),
	})

	stats, _ := s.board.Stats(session.Username())
	return Result{
		Username:   session.Username(),
		Category:   session.Category(),
		Score:      score,
		Total:      total,
		Percentage: percentage,
		TimeTaken:  totalTime,
		Summary:    summary,
		Rating:     RateScore(percentage),
		UserStats:  stats,
	}, saveErr
}

// Leaderboard returns the top n ranked attempts.
func (s *QuizService) Leaderboard(n int) []domain.LeaderboardEntry {
	return s.board.Top(n)
}

// UserStats returns the lifetime statistics for a user, if any.
func (s *QuizService) UserStats(username string) (domain.UserStats, bool) {
	return s.board.Stats(username)
}

// CatalogStats summarizes the question bank for the setup screen.
func (s *QuizService) CatalogStats(ctx context.Context) (domain.CatalogStats, error) {
	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return domain.CatalogStats{}, err
	}
	return catalog.Stats(), nil
}

// draw samples count questions without replacement from the pool.
func (s *QuizService) draw(pool []domain.Question, count int) []domain.Question {
	out := append([]domain.Question(nil), pool...)
	s.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if count <= 0 || count > len(out) {
		count = len(out)
	}
	return out[:count]
}

// Session is one user's strictly sequential pass over a drawn question
// subset. Before the next question is shown len(answers) == index, and the
// score always equals the count of correct records in the log.
type Session struct {
	username        string
	category        string
	catalog         domain.Catalog
	questions       []domain.Question
	index           int
	score           int
	answers         []domain.AnswerRecord
	startedAt       time.Time
	questionShownAt time.Time
	finished        bool
	clock           func() time.Time
}

// Username returns the display name the session was started with.
func (q *Session) Username() string { return q.username }

// Category returns the category filter the session was started with.
func (q *Session) Category() string { return q.category }

// Total returns the number of questions drawn for this session.
func (q *Session) Total() int { return len(q.questions) }

// Index returns the 0-based position of the current question.
func (q *Session) Index() int { return q.index }

// Score returns the count of correct answers so far.
func (q *Session) Score() int { return q.score }

// Finished reports whether the session has been completed.
func (q *Session) Finished() bool { return q.finished }

// Current returns the question awaiting an answer, or false when the session
// is finished or every question has been answered.
func (q *Session) Current() (domain.Question, bool) {
	if q.finished || q.index >= len(q.questions) {
		return domain.Question{}, false
	}
	return q.questions[q.index], true
}

// Answered reports whether the current question already has a recorded answer.
func (q *Session) Answered() bool {
	return len(q.answers) > q.index
}

// Answers returns a copy of the session's answer log.
func (q *Session) Answers() []domain.AnswerRecord {
	return append([]domain.AnswerRecord(nil), q.answers...)
}

func (q *Session) submit(raw string) (domain.AnswerRecord, error) {
	if q.finished {
		return domain.AnswerRecord{}, domain.ErrSessionFinished
	}
	question, ok := q.Current()
	if !ok {
		return domain.AnswerRecord{}, domain.ErrSessionFinished
	}
	if q.Answered() {
		return domain.AnswerRecord{}, domain.ErrAlreadyAnswered
	}
	if question.Kind == domain.KindFillBlank && strings.TrimSpace(raw) == "" {
		return domain.AnswerRecord{}, domain.ErrEmptyAnswer
	}

	record := domain.AnswerRecord{
		Prompt:        question.Prompt,
		UserAnswer:    raw,
		CorrectAnswer: question.Answer,
		Correct:       evaluateAnswer(question, raw),
		Explanation:   question.Explanation,
		Difficulty:    question.Difficulty,
		Category:      q.catalog.CategoryOf(question.Prompt),
		Kind:          question.Kind,
		TimeTaken:     q.clock().Sub(q.questionShownAt).Seconds(),
	}
	q.answers = append(q.answers, record)
	if record.Correct {
		q.score++
	}
	return record, nil
}

func (q *Session) advance() error {
	if q.finished {
		return domain.ErrSessionFinished
	}
	if !q.Answered() {
		return domain.ErrAnswerPending
	}
	if q.index+1 >= len(q.questions) {
		return domain.ErrSessionFinished
	}
	q.index++
	q.questionShownAt = q.clock()
	return nil
}

func (q *Session) finish() ([]domain.AnswerRecord, float64, error) {
	if q.finished {
		return nil, 0, domain.ErrSessionFinished
	}
	if len(q.answers) != len(q.questions) {
		return nil, 0, domain.ErrAnswerPending
	}
	q.finished = true
	return q.answers, q.clock().Sub(q.startedAt).Seconds(), nil
}

// evaluateAnswer applies the kind-specific comparison rule: free-text
// answers are trimmed and case-folded, choice answers must match an option
// string exactly.
func evaluateAnswer(question domain.Question, raw string) bool {
	switch question.Kind {
	case domain.KindFillBlank:
		return strings.EqualFold(strings.TrimSpace(raw), strings.TrimSpace(question.Answer))
	default:
		return raw == question.Answer
	}
}
