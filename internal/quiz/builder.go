package quiz

import (
	"math/rand"

	"github.com/vocabmaster/api/internal/model"
)

const (
	// MinPoolSize is the smallest vocabulary that can sustain a quiz.
	MinPoolSize = 15
	// QuestionsPerSession is fixed for every playthrough.
	QuestionsPerSession = 10
)

// StartSession samples QuestionsPerSession words from the pool and builds one
// shuffled multiple-choice question per word. Distractors draw on the entire
// pool, not just the sampled words. The rng drives all selection so callers
// can fix a seed in tests.
func StartSession(rng *rand.Rand, pool []model.WordEntry, mode Mode) (*Session, error) {
	if len(pool) < MinPoolSize {
		return nil, &NotEnoughWordsError{Required: MinPoolSize, Actual: len(pool)}
	}

	questions := make([]Question, 0, QuestionsPerSession)
	for _, i := range rng.Perm(len(pool))[:QuestionsPerSession] {
		entry := pool[i]
		correct := entry.Translation
		if mode == ModeDefinition {
			correct = entry.Definition
		}

		choices := append([]string{correct}, GenerateDistractors(rng, correct, pool, mode)...)
		rng.Shuffle(len(choices), func(a, b int) {
			choices[a], choices[b] = choices[b], choices[a]
		})

		questions = append(questions, Question{
			SourceWord:    entry.Word,
			CorrectAnswer: correct,
			Choices:       choices,
			Mode:          mode,
		})
	}

	return &Session{
		Questions: questions,
		Mode:      mode,
		Status:    StatusInProgress,
	}, nil
}
