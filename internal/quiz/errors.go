package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionFinished is returned when an answer is submitted to a
	// session that has already completed.
	ErrSessionFinished = errors.New("quiz session already finished")
	// ErrSessionNotStarted is returned when an answer is submitted to a
	// session that was never started.
	ErrSessionNotStarted = errors.New("quiz session not started")
	// ErrNoActiveSession is returned when a user has no session in flight.
	ErrNoActiveSession = errors.New("no active quiz session")
)

// NotEnoughWordsError reports a pool too small to start a session. It is a
// user-visible condition, not a bug.
type NotEnoughWordsError struct {
	Required int
	Actual   int
}

func (e *NotEnoughWordsError) Error() string {
	return fmt.Sprintf("need at least %d words to start a quiz, have %d", e.Required, e.Actual)
}
