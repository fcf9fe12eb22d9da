package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/vocabmaster/api/internal/llm"
	"github.com/vocabmaster/api/internal/model"
	"github.com/vocabmaster/api/internal/store"
)

type fakeGenerator struct {
	card *llm.WordCard
	err  error
}

func (f *fakeGenerator) GenerateWordCard(_ context.Context, word string) (*llm.WordCard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.card, nil
}

func wordTestRouter(h *WordHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/api", func(c *gin.Context) {
		c.Set("userID", "u1")
	})
	authed.POST("/words/generate", h.Generate)
	authed.POST("/words", h.Create)
	authed.GET("/words", h.List)
	return r
}

func TestGenerateReturnsCard(t *testing.T) {
	gen := &fakeGenerator{card: &llm.WordCard{
		Word:        "hello",
		Definition:  "a greeting",
		Translation: "bonjour",
	}}
	r := wordTestRouter(NewWordHandler(&fakeWordStore{}, gen, nil))

	w := postJSON(r, "/api/words/generate", gin.H{"word": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var card llm.WordCard
	if err := json.Unmarshal(w.Body.Bytes(), &card); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if card.Translation != "bonjour" {
		t.Fatalf("unexpected card: %+v", card)
	}
}

func TestGenerateDegradesToFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	r := wordTestRouter(NewWordHandler(&fakeWordStore{}, gen, nil))

	w := postJSON(r, "/api/words/generate", gin.H{"word": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var card llm.WordCard
	if err := json.Unmarshal(w.Body.Bytes(), &card); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if card.Word != "hello" || card.Definition == "" || card.Translation == "" {
		t.Fatalf("fallback card incomplete: %+v", card)
	}
}

func TestGenerateRejectsInvalidWord(t *testing.T) {
	r := wordTestRouter(NewWordHandler(&fakeWordStore{}, &fakeGenerator{}, nil))

	w := postJSON(r, "/api/words/generate", gin.H{"word": "hello123"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestCreateWord(t *testing.T) {
	words := &fakeWordStore{}
	r := wordTestRouter(NewWordHandler(words, &fakeGenerator{}, nil))

	w := postJSON(r, "/api/words", gin.H{
		"word":        "hello",
		"translation": "bonjour",
		"definition":  "a greeting",
		"example1":    "Hello there.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var entry model.WordEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if entry.ID == "" || entry.UserID != "u1" || entry.Word != "hello" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if len(words.words) != 1 {
		t.Fatalf("stored %d words, want 1", len(words.words))
	}
}

func TestCreateWordMissingFields(t *testing.T) {
	r := wordTestRouter(NewWordHandler(&fakeWordStore{}, &fakeGenerator{}, nil))

	w := postJSON(r, "/api/words", gin.H{"word": "hello"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestCreateWordDuplicate(t *testing.T) {
	words := &fakeWordStore{addErr: store.ErrWordExists}
	r := wordTestRouter(NewWordHandler(words, &fakeGenerator{}, nil))

	w := postJSON(r, "/api/words", gin.H{
		"word":        "hello",
		"translation": "bonjour",
		"definition":  "a greeting",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestListWords(t *testing.T) {
	words := &fakeWordStore{words: quizPool(3)}
	r := wordTestRouter(NewWordHandler(words, &fakeGenerator{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/words", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Words []model.WordEntry `json:"words"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Count != 3 || len(resp.Words) != 3 {
		t.Fatalf("unexpected list: %+v", resp)
	}
}
