// Package store talks to the hosted JSON database holding words and game
// results. Collections are flat key-value maps of documents keyed by a
// server-generated push key; all filtering happens client-side.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vocabmaster/api/internal/model"
)

var (
	// ErrWordExists is returned when the user already saved the word
	// (case-insensitive match).
	ErrWordExists = errors.New("word already exists for this user")
)

type FirebaseStore struct {
	databaseURL string
	httpClient  *http.Client
	now         func() time.Time
	newID       func() string
}

func NewFirebaseStore(databaseURL string) *FirebaseStore {
	return &FirebaseStore{
		databaseURL: strings.TrimSuffix(databaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// AddWord persists a new vocabulary entry for entry.UserID, assigning its ID
// and creation time. The word must not already exist for that user.
func (s *FirebaseStore) AddWord(ctx context.Context, entry model.WordEntry) (model.WordEntry, error) {
	existing, err := s.ListWords(ctx, entry.UserID)
	if err != nil {
		return model.WordEntry{}, err
	}
	for _, w := range existing {
		if strings.EqualFold(w.Word, entry.Word) {
			return model.WordEntry{}, ErrWordExists
		}
	}

	entry.ID = s.newID()
	entry.CreatedAt = model.NewTimestamp(s.now())
	if err := s.post(ctx, "/words.json", entry); err != nil {
		return model.WordEntry{}, err
	}
	return entry, nil
}

// ListWords returns the user's vocabulary, newest first. A user with no
// words gets an empty slice, not an error.
func (s *FirebaseStore) ListWords(ctx context.Context, userID string) ([]model.WordEntry, error) {
	var docs map[string]model.WordEntry
	if err := s.get(ctx, "/words.json", &docs); err != nil {
		return nil, err
	}

	words := make([]model.WordEntry, 0, len(docs))
	for _, doc := range docs {
		if doc.UserID == userID {
			words = append(words, doc)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		return words[i].CreatedAt.After(words[j].CreatedAt.Time)
	})
	return words, nil
}

// CountWords returns how many words the user has saved.
func (s *FirebaseStore) CountWords(ctx context.Context, userID string) (int, error) {
	words, err := s.ListWords(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(words), nil
}

// SaveGameResult persists a finished quiz outcome, assigning its ID and
// played-at time when unset.
func (s *FirebaseStore) SaveGameResult(ctx context.Context, result model.GameResult) (model.GameResult, error) {
	result.ID = s.newID()
	if result.PlayedAt.IsZero() {
		result.PlayedAt = model.NewTimestamp(s.now())
	}
	if err := s.post(ctx, "/game_results.json", result); err != nil {
		return model.GameResult{}, err
	}
	return result, nil
}

// ListGameResults returns the user's game history, oldest first.
func (s *FirebaseStore) ListGameResults(ctx context.Context, userID string) ([]model.GameResult, error) {
	var docs map[string]model.GameResult
	if err := s.get(ctx, "/game_results.json", &docs); err != nil {
		return nil, err
	}

	results := make([]model.GameResult, 0, len(docs))
	for _, doc := range docs {
		if doc.UserID == userID {
			results = append(results, doc)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].PlayedAt.Before(results[j].PlayedAt.Time)
	})
	return results, nil
}

func (s *FirebaseStore) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.databaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("word store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("word store returned status %d: %s", resp.StatusCode, string(body))
	}

	// The database returns the JSON literal null for empty collections.
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *FirebaseStore) post(ctx context.Context, path string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.databaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("word store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("word store returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
