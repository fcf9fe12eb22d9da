package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vocabmaster/api/internal/model"
	"github.com/vocabmaster/api/internal/quiz"
)

type fakeWordStore struct {
	words  []model.WordEntry
	err    error
	addErr error
}

func (f *fakeWordStore) AddWord(_ context.Context, entry model.WordEntry) (model.WordEntry, error) {
	if f.addErr != nil {
		return model.WordEntry{}, f.addErr
	}
	entry.ID = "w-new"
	f.words = append(f.words, entry)
	return entry, nil
}

func (f *fakeWordStore) ListWords(_ context.Context, userID string) ([]model.WordEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.words, nil
}

type fakeResultSink struct {
	saved []model.GameResult
	err   error
}

func (f *fakeResultSink) SaveGameResult(_ context.Context, result model.GameResult) (model.GameResult, error) {
	if f.err != nil {
		return model.GameResult{}, f.err
	}
	result.ID = fmt.Sprintf("r-%d", len(f.saved))
	f.saved = append(f.saved, result)
	return result, nil
}

func quizPool(n int) []model.WordEntry {
	pool := make([]model.WordEntry, n)
	for i := range pool {
		pool[i] = model.WordEntry{
			ID:          fmt.Sprintf("w%d", i),
			UserID:      "u1",
			Word:        fmt.Sprintf("word%d", i),
			Translation: fmt.Sprintf("mot%d", i),
			Definition:  fmt.Sprintf("definition %d", i),
		}
	}
	return pool
}

func quizTestRouter(h *QuizHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/api", func(c *gin.Context) {
		c.Set("userID", "u1")
	})
	authed.POST("/quiz/start", h.Start)
	authed.GET("/quiz", h.Get)
	authed.POST("/quiz/answer", h.Answer)
	authed.POST("/quiz/result", h.SaveResult)
	authed.DELETE("/quiz", h.Abandon)
	return r
}

func newQuizTestHandler(words *fakeWordStore, results *fakeResultSink) (*QuizHandler, *quiz.SessionStore) {
	sessions := quiz.NewSessionStore()
	h := NewQuizHandler(words, results, sessions, nil)
	h.newRNG = func() *rand.Rand { return rand.New(rand.NewSource(42)) }
	h.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return h, sessions
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuizStart(t *testing.T) {
	h, sessions := newQuizTestHandler(&fakeWordStore{words: quizPool(20)}, &fakeResultSink{})
	r := quizTestRouter(h)

	w := postJSON(r, "/api/quiz/start", gin.H{"mode": "translation"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status         quiz.Status `json:"status"`
		TotalQuestions int         `json:"total_questions"`
		CurrentIndex   int         `json:"current_index"`
		Question       struct {
			Word    string   `json:"word"`
			Choices []string `json:"choices"`
		} `json:"question"`
		Answers []quiz.AnswerRecord `json:"answers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Status != quiz.StatusInProgress || resp.TotalQuestions != 10 || resp.CurrentIndex != 0 {
		t.Fatalf("unexpected session view: %+v", resp)
	}
	if resp.Question.Word == "" || len(resp.Question.Choices) != 4 {
		t.Fatalf("unexpected question: %+v", resp.Question)
	}
	if resp.Answers != nil {
		t.Fatalf("in-progress view must not expose answers")
	}

	if _, ok := sessions.Get("u1"); !ok {
		t.Fatalf("session not stored")
	}
}

func TestQuizStartNotEnoughWords(t *testing.T) {
	h, _ := newQuizTestHandler(&fakeWordStore{words: quizPool(5)}, &fakeResultSink{})
	r := quizTestRouter(h)

	w := postJSON(r, "/api/quiz/start", gin.H{"mode": "definition"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Required int `json:"required"`
		Actual   int `json:"actual"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Required != quiz.MinPoolSize || resp.Actual != 5 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
}

func TestQuizStartInvalidMode(t *testing.T) {
	h, _ := newQuizTestHandler(&fakeWordStore{words: quizPool(20)}, &fakeResultSink{})
	r := quizTestRouter(h)

	w := postJSON(r, "/api/quiz/start", gin.H{"mode": "charades"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestQuizStartStoreUnavailable(t *testing.T) {
	h, _ := newQuizTestHandler(&fakeWordStore{err: errors.New("down")}, &fakeResultSink{})
	r := quizTestRouter(h)

	w := postJSON(r, "/api/quiz/start", gin.H{"mode": "translation"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestQuizGetWithoutSession(t *testing.T) {
	h, _ := newQuizTestHandler(&fakeWordStore{}, &fakeResultSink{})
	r := quizTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/quiz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

// playThrough answers every question correctly, returning the last recorder.
func playThrough(t *testing.T, r *gin.Engine, sessions *quiz.SessionStore) *httptest.ResponseRecorder {
	t.Helper()

	var w *httptest.ResponseRecorder
	for i := 0; i < quiz.QuestionsPerSession; i++ {
		session, ok := sessions.Get("u1")
		if !ok {
			t.Fatalf("session missing at question %d", i)
		}
		correct := session.Questions[session.CurrentIndex].CorrectAnswer

		w = postJSON(r, "/api/quiz/answer", gin.H{"choice": correct})
	}
	return w
}

func TestQuizFullGame(t *testing.T) {
	results := &fakeResultSink{}
	h, sessions := newQuizTestHandler(&fakeWordStore{words: quizPool(20)}, results)
	r := quizTestRouter(h)

	if w := postJSON(r, "/api/quiz/start", gin.H{"mode": "translation"}); w.Code != http.StatusCreated {
		t.Fatalf("start failed: %d %s", w.Code, w.Body.String())
	}

	w := playThrough(t, r, sessions)
	if w.Code != http.StatusOK {
		t.Fatalf("final answer status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Correct bool             `json:"correct"`
		Score   int              `json:"score"`
		Status  quiz.Status      `json:"status"`
		Result  model.GameResult `json:"result"`
		Answers []quiz.AnswerRecord
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if !resp.Correct || resp.Score != 10 || resp.Status != quiz.StatusCompleted {
		t.Fatalf("unexpected final answer: %+v", resp)
	}
	if resp.Result.Percentage != 100 || resp.Result.UserID != "u1" {
		t.Fatalf("unexpected result: %+v", resp.Result)
	}

	if len(results.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(results.saved))
	}
	if _, ok := sessions.Get("u1"); ok {
		t.Fatalf("session should be deleted after save")
	}
}

func TestQuizAnswerAfterCompletion(t *testing.T) {
	h, sessions := newQuizTestHandler(&fakeWordStore{words: quizPool(20)}, &fakeResultSink{err: errors.New("down")})
	r := quizTestRouter(h)

	postJSON(r, "/api/quiz/start", gin.H{"mode": "translation"})
	playThrough(t, r, sessions)

	// The failed save kept the completed session around.
	w := postJSON(r, "/api/quiz/answer", gin.H{"choice": "anything"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestQuizSaveFailureThenRetry(t *testing.T) {
	results := &fakeResultSink{err: errors.New("store down")}
	h, sessions := newQuizTestHandler(&fakeWordStore{words: quizPool(20)}, results)
	r := quizTestRouter(h)

	postJSON(r, "/api/quiz/start", gin.H{"mode": "definition"})

	w := playThrough(t, r, sessions)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("final answer status = %d, body %s", w.Code, w.Body.String())
	}
	if _, ok := sessions.Get("u1"); !ok {
		t.Fatalf("session must survive a failed save")
	}

	results.err = nil
	w = postJSON(r, "/api/quiz/result", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("retry status = %d, body %s", w.Code, w.Body.String())
	}
	if len(results.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(results.saved))
	}
	if _, ok := sessions.Get("u1"); ok {
		t.Fatalf("session should be deleted after retry succeeds")
	}
}

func TestQuizSaveResultWhileInProgress(t *testing.T) {
	h, _ := newQuizTestHandler(&fakeWordStore{words: quizPool(20)}, &fakeResultSink{})
	r := quizTestRouter(h)

	postJSON(r, "/api/quiz/start", gin.H{"mode": "translation"})

	w := postJSON(r, "/api/quiz/result", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestQuizAbandon(t *testing.T) {
	h, sessions := newQuizTestHandler(&fakeWordStore{words: quizPool(20)}, &fakeResultSink{})
	r := quizTestRouter(h)

	postJSON(r, "/api/quiz/start", gin.H{"mode": "translation"})

	req := httptest.NewRequest(http.MethodDelete, "/api/quiz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if _, ok := sessions.Get("u1"); ok {
		t.Fatalf("session should be gone after abandon")
	}
}
