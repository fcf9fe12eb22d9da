package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	codeFenceOpen  = regexp.MustCompile("(?s)```json\\s*")
	codeFenceClose = regexp.MustCompile("(?s)```\\s*$")

	definitionPattern  = regexp.MustCompile(`[Dd]efinition[:\s]*([^.\n]+)`)
	translationPattern = regexp.MustCompile(`[Tt]ranslation[:\s]*([^.\n]+)`)
	examplePattern     = regexp.MustCompile(`[Ee]xample[^:]*:[^"]*"([^"]+)"`)
)

// ExtractJSON pulls a JSON object out of a model response that may contain
// surrounding prose or markdown fences.
func ExtractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)
	response = codeFenceOpen.ReplaceAllString(response, "")
	response = codeFenceClose.ReplaceAllString(response, "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no valid JSON object found in response")
	}

	jsonStr := response[start : end+1]

	var js json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &js); err != nil {
		return "", fmt.Errorf("extracted text is not valid JSON: %w", err)
	}

	return jsonStr, nil
}

// extractCard scrapes card fields out of free-form model text. Missing
// fields get fallback values so the card is always complete.
func extractCard(text, word string) *WordCard {
	card := FallbackCard(word)

	if m := definitionPattern.FindStringSubmatch(text); m != nil {
		card.Definition = strings.TrimSpace(m[1])
	}
	if m := translationPattern.FindStringSubmatch(text); m != nil {
		card.Translation = strings.TrimSpace(m[1])
	}
	examples := examplePattern.FindAllStringSubmatch(text, 2)
	if len(examples) > 0 {
		card.Example1 = examples[0][1]
	}
	if len(examples) > 1 {
		card.Example2 = examples[1][1]
	}
	return card
}

// FallbackCard is the offline stand-in when generation fails entirely.
func FallbackCard(word string) *WordCard {
	return &WordCard{
		Word:        word,
		Definition:  fmt.Sprintf("Definition for %q - consult a dictionary for details.", word),
		Translation: fmt.Sprintf("Traduction de %q non disponible.", word),
		Example1:    fmt.Sprintf("Example sentence with %q.", word),
		Example2:    fmt.Sprintf("Another example with %q.", word),
	}
}
