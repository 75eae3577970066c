package domain

import "errors"

var (
	// ErrQuestionNotFound indicates a submitted question id is unknown.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrScoreNotFound is returned by strict lookups when no score record exists.
	ErrScoreNotFound = errors.New("score record not found")
	// ErrUnknownCategory indicates a category outside the fixed set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrGuestSessionNotFound is returned when a guest acts before fetching questions.
	ErrGuestSessionNotFound = errors.New("guest session not found")
)
