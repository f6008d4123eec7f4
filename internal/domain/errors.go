package domain

import "errors"

var (
	// ErrUsernameRequired is returned when a session is started without a display name.
	ErrUsernameRequired = errors.New("username required")
	// ErrNoKindsSelected is returned when a session is started with no question kinds.
	ErrNoKindsSelected = errors.New("no question kinds selected")
	// ErrNoQuestions indicates the category/kind filter matched nothing.
	ErrNoQuestions = errors.New("no questions match the selected category and kinds")
	// ErrEmptyAnswer rejects a blank free-text submission; no record is created.
	ErrEmptyAnswer = errors.New("answer must not be empty")
	// ErrAnswerPending is returned when advancing before the current question was answered.
	ErrAnswerPending = errors.New("current question has not been answered")
	// ErrAlreadyAnswered is returned when the current question already has a recorded answer.
	ErrAlreadyAnswered = errors.New("current question already answered")
	// ErrSessionFinished rejects operations on a session that has been completed.
	ErrSessionFinished = errors.New("quiz session already finished")
	// ErrCatalogNotFound indicates the question catalog could not be loaded.
	ErrCatalogNotFound = errors.New("question catalog not found")
)
