// Package validator checks user-submitted words before they reach the
// language model.
package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxWordLen = 64

var (
	ErrEmptyWord   = errors.New("word is required")
	ErrWordTooLong = fmt.Errorf("word must be at most %d characters", maxWordLen)
)

// ValidateWord accepts single English words and short expressions: ASCII
// letters with internal spaces, hyphens and apostrophes. This is a shape
// check, not language detection.
func ValidateWord(input string) error {
	word := strings.TrimSpace(input)
	if word == "" {
		return ErrEmptyWord
	}
	if utf8.RuneCountInString(word) > maxWordLen {
		return ErrWordTooLong
	}

	hasLetter := false
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == ' ', r == '-', r == '\'':
		default:
			return fmt.Errorf("word contains unsupported character %q", r)
		}
	}
	if !hasLetter {
		return ErrEmptyWord
	}
	return nil
}

// Normalize returns the canonical form used for duplicate checks.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
