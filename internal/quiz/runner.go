package quiz

// SubmitAnswer records one answer against the current question and advances
// the session. Calling it twice records two separate answers; there is no
// undo. The final call flips the session to StatusCompleted, after which the
// caller persists the GameResult.
func (s *Session) SubmitAnswer(selectedChoice string) (AnswerRecord, error) {
	switch s.Status {
	case StatusInProgress:
	case StatusCompleted:
		return AnswerRecord{}, ErrSessionFinished
	default:
		return AnswerRecord{}, ErrSessionNotStarted
	}

	q := s.Questions[s.CurrentIndex]
	record := AnswerRecord{
		SourceWord:    q.SourceWord,
		Selected:      selectedChoice,
		CorrectAnswer: q.CorrectAnswer,
		IsCorrect:     selectedChoice == q.CorrectAnswer,
	}
	s.Answers = append(s.Answers, record)
	if record.IsCorrect {
		s.Score++
	}

	if s.CurrentIndex == len(s.Questions)-1 {
		s.Status = StatusCompleted
	} else {
		s.CurrentIndex++
	}
	return record, nil
}
