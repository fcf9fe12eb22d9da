package quiz

import (
	"time"

	"github.com/vocabmaster/api/internal/model"
)

// Mode selects which field of a word a session quizzes on. The values are
// the wire values the store and frontend already use.
type Mode string

const (
	ModeTranslation Mode = "translation"
	ModeDefinition  Mode = "definition"
)

func (m Mode) Valid() bool {
	return m == ModeTranslation || m == ModeDefinition
}

// Status is the session lifecycle state.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Question is a single multiple-choice question derived from one word.
type Question struct {
	SourceWord    string   `json:"word"`
	CorrectAnswer string   `json:"correct_answer"`
	Choices       []string `json:"choices"`
	Mode          Mode     `json:"mode"`
}

// AnswerRecord captures one submitted answer.
type AnswerRecord struct {
	SourceWord    string `json:"word"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correct"`
	IsCorrect     bool   `json:"is_correct"`
}

// Session is one quiz playthrough. It is a plain value mutated by
// SubmitAnswer; it is never persisted, only its final GameResult is.
type Session struct {
	Questions    []Question
	CurrentIndex int
	Score        int
	Answers      []AnswerRecord
	Mode         Mode
	Status       Status
}

// Current returns the question awaiting an answer.
func (s *Session) Current() Question {
	return s.Questions[s.CurrentIndex]
}

// GameResult builds the persistable outcome of a completed session. The
// store assigns the document ID.
func (s *Session) GameResult(userID string, playedAt time.Time) model.GameResult {
	total := len(s.Questions)
	return model.GameResult{
		UserID:         userID,
		Score:          s.Score,
		TotalQuestions: total,
		Percentage:     100 * float64(s.Score) / float64(total),
		PlayedAt:       model.NewTimestamp(playedAt),
	}
}
