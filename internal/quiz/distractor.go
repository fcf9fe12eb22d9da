package quiz

import (
	"math/rand"

	"github.com/vocabmaster/api/internal/model"
)

const numDistractors = 3

// Fallback choices used when the user's own pool cannot supply three
// distinct wrong answers. Generic but plausible for either mode.
var genericTranslations = []string{
	"Un animal domestique",
	"Un objet de cuisine",
	"Une couleur vive",
	"Un moyen de transport",
	"Un sentiment positif",
	"Une action quotidienne",
	"Un élément naturel",
	"Une partie du corps",
}

var genericDefinitions = []string{
	"A feeling of great pleasure and happiness",
	"The action of traveling in or through an unfamiliar area",
	"A person whom one knows and with whom one has a bond",
	"The ability to do something that frightens one",
	"The quality of having experience, knowledge, and good judgment",
	"A large naturally occurring community of flora and fauna",
	"The practice of being or tendency to be positive or optimistic",
	"Something that is remembered from the past",
}

// GenerateDistractors returns exactly three wrong answers for a question.
// Candidates come from the caller's whole word pool (translation or
// definition field depending on mode); when fewer than three distinct
// candidates exist the result is padded from the generic lists.
func GenerateDistractors(rng *rand.Rand, correctAnswer string, pool []model.WordEntry, mode Mode) []string {
	seen := make(map[string]struct{}, len(pool))
	var candidates []string
	for _, entry := range pool {
		value := entry.Translation
		if mode == ModeDefinition {
			value = entry.Definition
		}
		if value == "" || value == correctAnswer {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		candidates = append(candidates, value)
	}

	if len(candidates) >= numDistractors {
		picked := make([]string, 0, numDistractors)
		for _, i := range rng.Perm(len(candidates))[:numDistractors] {
			picked = append(picked, candidates[i])
		}
		return picked
	}

	distractors := append([]string(nil), candidates...)
	generic := genericTranslations
	if mode == ModeDefinition {
		generic = genericDefinitions
	}
	for _, i := range rng.Perm(len(generic)) {
		if len(distractors) == numDistractors {
			break
		}
		value := generic[i]
		if value == correctAnswer {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		distractors = append(distractors, value)
	}
	return distractors
}
